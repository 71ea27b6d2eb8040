package intake

import "strings"

const skipToken = "skip"

// TurnInput is one user turn as seen by the sequencer.
type TurnInput struct {
	Text           string
	PhotosThisTurn int // photos attached in this turn
	PhotosStaged   int // total staged for submission, including this turn's
}

// Advance applies one user turn to the current step and returns the next
// step, the field changes, and the assistant's reply. It is total: every
// input produces a transition, and a rejected answer re-prompts the same
// step without regressing.
func Advance(step Step, in TurnInput) (Step, LeadPatch, string) {
	text := strings.TrimSpace(in.Text)

	switch step {
	case StepName:
		name, ok, reprompt := ValidateName(text)
		if !ok {
			return StepName, LeadPatch{}, reprompt
		}
		return StepIssue, LeadPatch{Name: &name}, StepIssue.Prompt()

	case StepIssue:
		issue, ok, reprompt := ValidateIssue(text, in.PhotosThisTurn)
		if !ok {
			return StepIssue, LeadPatch{}, reprompt
		}
		return StepLocation, LeadPatch{Issue: &issue}, StepLocation.Prompt()

	case StepLocation:
		loc, ok, reprompt := ValidateLocation(text)
		if !ok {
			return StepLocation, LeadPatch{}, reprompt
		}
		return StepUrgency, LeadPatch{LocationHint: &loc}, StepUrgency.Prompt()

	case StepUrgency:
		urgency, ok, reprompt := ValidateUrgency(text)
		if !ok {
			return StepUrgency, LeadPatch{}, reprompt
		}
		return StepPhone, LeadPatch{Urgency: &urgency}, StepPhone.Prompt()

	case StepPhone:
		phone, ok, reprompt := ValidatePhone(text)
		if !ok {
			return StepPhone, LeadPatch{}, reprompt
		}
		return StepAddress, LeadPatch{Phone: &phone}, StepAddress.Prompt()

	case StepAddress:
		// Empty input is not auto-advanced; the visitor must answer or
		// type "skip", which maps to the empty address.
		if text == "" {
			return StepAddress, LeadPatch{}, StepAddress.Prompt()
		}
		addr := text
		if strings.EqualFold(text, skipToken) {
			addr = ""
		}
		return StepPhotos, LeadPatch{Address: &addr}, StepPhotos.Prompt()

	case StepPhotos:
		skipped := strings.EqualFold(text, skipToken)
		if !skipped && in.PhotosStaged == 0 {
			return StepPhotos, LeadPatch{},
				"You can attach up to 3 photos now, or type \"skip\"."
		}
		return StepDone, LeadPatch{},
			"Perfect. Here's what I captured. Reply \"confirm\" to submit, or type what to change."

	case StepDone:
		return StepDone, LeadPatch{},
			"Thanks - we've got your details. Anything else you want to add?"

	default:
		return step, LeadPatch{}, "Thanks!"
	}
}
