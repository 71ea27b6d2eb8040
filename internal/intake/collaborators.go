package intake

import "context"

// The engine consumes three external collaborators on confirm. Each is an
// abstract contract; implementations live outside this package.

// PhotoUploader sends staged photo payloads to storage and returns one
// publicly fetchable URL per payload, in submission order.
type PhotoUploader interface {
	Upload(ctx context.Context, files []File) ([]string, error)
}

// SavedLead is the persistence collaborator's acknowledgment.
type SavedLead struct {
	ID     string
	Status string
}

// LeadSaver persists the finalized lead.
type LeadSaver interface {
	Save(ctx context.Context, lead Lead) (SavedLead, error)
}

// ReplyGenerator produces the assistant's free-text reply for a composed
// prompt.
type ReplyGenerator interface {
	Reply(ctx context.Context, prompt string) (string, error)
}
