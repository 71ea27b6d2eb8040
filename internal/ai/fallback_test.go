package ai

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubLLM struct {
	resp  LLMResponse
	err   error
	calls int
	last  LLMRequest
}

func (s *stubLLM) Complete(_ context.Context, req LLMRequest) (LLMResponse, error) {
	s.calls++
	s.last = req
	return s.resp, s.err
}

func TestFallbackClient_PrimarySucceeds(t *testing.T) {
	primary := &stubLLM{resp: LLMResponse{Text: "primary answer"}}
	fallback := &stubLLM{resp: LLMResponse{Text: "fallback answer"}}
	c := NewFallbackClient(primary, fallback, nil)

	resp, err := c.Complete(context.Background(), LLMRequest{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "primary answer", resp.Text)
	assert.Equal(t, 0, fallback.calls)
}

func TestFallbackClient_FallsBack(t *testing.T) {
	primary := &stubLLM{err: errors.New("throttled")}
	fallback := &stubLLM{resp: LLMResponse{Text: "fallback answer"}}
	c := NewFallbackClient(primary, fallback, nil)

	resp, err := c.Complete(context.Background(), LLMRequest{Model: "m"})
	require.NoError(t, err)
	assert.Equal(t, "fallback answer", resp.Text)
	assert.Equal(t, 1, primary.calls)
	assert.Equal(t, 1, fallback.calls)
}

func TestFallbackClient_NoFallbackReturnsPrimaryError(t *testing.T) {
	primaryErr := errors.New("throttled")
	c := NewFallbackClient(&stubLLM{err: primaryErr}, nil, nil)

	_, err := c.Complete(context.Background(), LLMRequest{Model: "m"})
	assert.ErrorIs(t, err, primaryErr)
}

func TestFallbackClient_BothFailReturnsFallbackError(t *testing.T) {
	fallbackErr := errors.New("fallback down")
	c := NewFallbackClient(&stubLLM{err: errors.New("primary down")}, &stubLLM{err: fallbackErr}, nil)

	_, err := c.Complete(context.Background(), LLMRequest{Model: "m"})
	assert.ErrorIs(t, err, fallbackErr)
}
