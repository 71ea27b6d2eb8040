package notify

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockSES struct {
	in  *sesv2.SendEmailInput
	err error
}

func (m *mockSES) SendEmail(_ context.Context, in *sesv2.SendEmailInput, _ ...func(*sesv2.Options)) (*sesv2.SendEmailOutput, error) {
	m.in = in
	if m.err != nil {
		return nil, m.err
	}
	return &sesv2.SendEmailOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSESSender_Send(t *testing.T) {
	mock := &mockSES{}
	sender := NewSESSender(mock, SESConfig{FromEmail: "no-reply@handyfix.example"}, nil)
	require.NotNil(t, sender)

	err := sender.Send(context.Background(), EmailMessage{
		To:      "ops@handyfix.example",
		Subject: "New lead",
		Body:    "plain body",
		HTML:    "<p>html body</p>",
	})
	require.NoError(t, err)

	require.NotNil(t, mock.in)
	assert.Equal(t, "HandyFix <no-reply@handyfix.example>", *mock.in.FromEmailAddress, "default from name")
	assert.Equal(t, []string{"ops@handyfix.example"}, mock.in.Destination.ToAddresses)
	assert.Equal(t, "plain body", *mock.in.Content.Simple.Body.Text.Data)
	assert.Equal(t, "<p>html body</p>", *mock.in.Content.Simple.Body.Html.Data)
}

func TestSESSender_NilClient(t *testing.T) {
	assert.Nil(t, NewSESSender(nil, SESConfig{}, nil))
}

func TestStubEmailSender_Send(t *testing.T) {
	sender := NewStubEmailSender(nil)
	assert.NoError(t, sender.Send(context.Background(), EmailMessage{To: "a@b.c", Subject: "s"}))
}
