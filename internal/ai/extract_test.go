package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractText(t *testing.T) {
	tests := []struct {
		name    string
		payload string
		want    string
	}{
		{"bare json string", `"All set, see you soon!"`, "All set, see you soon!"},
		{"output_text field", `{"output_text":"from output_text"}`, "from output_text"},
		{"text field", `{"text":"from text"}`, "from text"},
		{"message field", `{"message":"from message"}`, "from message"},
		{"output_text wins over text", `{"output_text":"a","text":"b"}`, "a"},
		{"text wins over message", `{"text":"b","message":"c"}`, "b"},
		{"unknown shape passes through", `{"reply":"hi"}`, `{"reply":"hi"}`},
		{"numeric text is rendered", `{"text":123}`, "123"},
		{"fractional text keeps its form", `{"text":1.5}`, "1.5"},
		{"zero falls through to next key", `{"text":0,"message":"backup"}`, "backup"},
		{"empty string falls through", `{"output_text":"","text":"next"}`, "next"},
		{"false falls through", `{"text":false,"message":"kept"}`, "kept"},
		{"true renders as text", `{"text":true}`, "true"},
		{"nested object is stringified", `{"text":{"a":1}}`, `{"a":1}`},
		{"empty payload", ``, "Sorry — no response."},
		{"whitespace payload", `   `, "Sorry — no response."},
		{"empty json string", `""`, "Sorry — no response."},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractText([]byte(tt.payload)))
		})
	}
}
