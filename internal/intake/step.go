package intake

// Step is one stage of the linear intake state machine. Steps only move
// forward; the order below is the canonical order (name-first).
type Step int

const (
	StepName Step = iota
	StepIssue
	StepLocation
	StepUrgency
	StepPhone
	StepAddress
	StepPhotos
	StepDone
)

func (s Step) String() string {
	switch s {
	case StepName:
		return "name"
	case StepIssue:
		return "issue"
	case StepLocation:
		return "location"
	case StepUrgency:
		return "urgency"
	case StepPhone:
		return "phone"
	case StepAddress:
		return "address"
	case StepPhotos:
		return "photos"
	case StepDone:
		return "done"
	default:
		return "unknown"
	}
}

// Prompt returns the entry question asked when the conversation reaches
// the step.
func (s Step) Prompt() string {
	switch s {
	case StepName:
		return "What's your name?"
	case StepIssue:
		return "Thanks. What do you need help with? (one sentence is fine)"
	case StepLocation:
		return "What's your zip code or city?"
	case StepUrgency:
		return "How urgent is this? (today / this week / flexible)"
	case StepPhone:
		return "What's the best phone number to reach you?"
	case StepAddress:
		return "Optional: what's the address? (or type \"skip\")"
	case StepPhotos:
		return "Optional: attach up to 3 photos now, or type \"skip\"."
	default:
		return "Thanks!"
	}
}
