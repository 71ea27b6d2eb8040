package leads

import "errors"

var (
	// ErrMissingName is returned when the name is empty
	ErrMissingName = errors.New("name is required")

	// ErrMissingIssue is returned when the issue description is empty
	ErrMissingIssue = errors.New("issue is required")

	// ErrMissingLocation is returned when neither zip nor city was given
	ErrMissingLocation = errors.New("zip or city is required")

	// ErrMissingUrgency is returned when the urgency is empty
	ErrMissingUrgency = errors.New("urgency is required")

	// ErrInvalidPhone is returned when the phone does not normalize to 10 digits
	ErrInvalidPhone = errors.New("phone must be a valid 10-digit number")

	// ErrLeadNotFound is returned when a lead is not found
	ErrLeadNotFound = errors.New("lead not found")
)
