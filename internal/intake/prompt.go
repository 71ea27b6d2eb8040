package intake

import "fmt"

const closingSentence = `We'll contact you shortly to schedule and confirm pricing.`

// BuildPrompt composes the AI-reply prompt for a finalized lead. The prompt
// embeds the captured field summary and the formatting rules the reply must
// follow, ending with the fixed scheduling-confirmation sentence.
func BuildPrompt(lead Lead) string {
	return fmt.Sprintf(`You are HandyFix assistant for a handyman company.

Rules:
- Do NOT ask for info already provided in "Captured details".
- Ask at most 1-2 short clarifying questions ONLY if needed.
- End with: %q

Captured details:
%s

Write a friendly, concise reply (2-6 sentences).`, closingSentence, lead.Summary())
}
