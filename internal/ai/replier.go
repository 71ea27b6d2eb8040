package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/handyfix/lead-intake/pkg/logging"
)

const (
	defaultMaxTokens   = 512
	defaultTemperature = 0.4
)

// LLMReplier turns a single intake prompt into a model reply. It satisfies
// the engine's ReplyGenerator contract.
type LLMReplier struct {
	client LLMClient
	model  string
	logger *logging.Logger
}

// NewLLMReplier wraps an LLM client for single-turn replies.
func NewLLMReplier(client LLMClient, model string, logger *logging.Logger) *LLMReplier {
	if logger == nil {
		logger = logging.Default()
	}
	return &LLMReplier{client: client, model: model, logger: logger}
}

// Reply completes the prompt as a single user turn.
func (r *LLMReplier) Reply(ctx context.Context, prompt string) (string, error) {
	resp, err := r.client.Complete(ctx, LLMRequest{
		Model:       r.model,
		Messages:    []ChatMessage{{Role: ChatRoleUser, Content: prompt}},
		MaxTokens:   defaultMaxTokens,
		Temperature: defaultTemperature,
	})
	if err != nil {
		return "", fmt.Errorf("ai: reply failed: %w", err)
	}
	if strings.TrimSpace(resp.Text) == "" {
		return noResponseText, nil
	}
	return resp.Text, nil
}

// HTTPReplier calls an external chat endpoint instead of a local provider.
// The endpoint takes {"message": "..."} and usually answers {"text": "..."},
// but ExtractText copes with the other shapes seen in the wild.
type HTTPReplier struct {
	endpoint string
	client   *http.Client
}

// NewHTTPReplier points a replier at a remote /api/ai/chat style endpoint.
func NewHTTPReplier(endpoint string, client *http.Client) *HTTPReplier {
	if client == nil {
		client = http.DefaultClient
	}
	return &HTTPReplier{endpoint: endpoint, client: client}
}

func (r *HTTPReplier) Reply(ctx context.Context, prompt string) (string, error) {
	body, err := json.Marshal(map[string]string{"message": prompt})
	if err != nil {
		return "", fmt.Errorf("ai: marshal chat request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("ai: build chat request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("ai: chat endpoint unreachable: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	payload, err := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if err != nil {
		return "", fmt.Errorf("ai: read chat response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("ai: chat endpoint returned %d: %s", resp.StatusCode, strings.TrimSpace(string(payload)))
	}
	return ExtractText(payload), nil
}
