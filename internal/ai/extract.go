package ai

import (
	"bytes"
	"encoding/json"
	"strings"
)

const noResponseText = "Sorry — no response."

// ExtractText pulls a human-readable reply out of an AI endpoint payload.
// Different backends wrap the text differently, so it sniffs the common
// shapes before giving up and returning the raw JSON.
func ExtractText(payload []byte) string {
	trimmed := strings.TrimSpace(string(payload))
	if trimmed == "" {
		return noResponseText
	}

	var asString string
	if err := json.Unmarshal(payload, &asString); err == nil {
		if strings.TrimSpace(asString) == "" {
			return noResponseText
		}
		return asString
	}

	dec := json.NewDecoder(bytes.NewReader(payload))
	dec.UseNumber()
	var shaped map[string]any
	if err := dec.Decode(&shaped); err == nil {
		for _, key := range []string{"output_text", "text", "message"} {
			if s, ok := coerceText(shaped[key]); ok {
				return s
			}
		}
	}

	// Unknown shape: surface the body as-is rather than swallowing it.
	return trimmed
}

// coerceText renders a JSON value as reply text. Empty strings, zero,
// false, and null are skipped so the next candidate key gets a chance.
func coerceText(v any) (string, bool) {
	switch t := v.(type) {
	case string:
		if t == "" {
			return "", false
		}
		return t, true
	case json.Number:
		if f, err := t.Float64(); err == nil && f == 0 {
			return "", false
		}
		return t.String(), true
	case bool:
		if !t {
			return "", false
		}
		return "true", true
	case nil:
		return "", false
	default:
		// Nested objects and arrays come back as their JSON form.
		b, err := json.Marshal(v)
		if err != nil {
			return "", false
		}
		return string(b), true
	}
}
