package leads

import (
	"context"

	"github.com/handyfix/lead-intake/internal/intake"
)

// IntakeSaver adapts the lead service to the dialogue engine's LeadSaver
// contract.
type IntakeSaver struct {
	svc *Service
}

// NewIntakeSaver creates the adapter.
func NewIntakeSaver(svc *Service) *IntakeSaver {
	return &IntakeSaver{svc: svc}
}

// Save persists a finalized intake lead.
func (s *IntakeSaver) Save(ctx context.Context, l intake.Lead) (intake.SavedLead, error) {
	lead, err := s.svc.Create(ctx, &CreateLeadRequest{
		Issue:       l.Issue,
		ZipOrCity:   l.LocationHint,
		Urgency:     l.Urgency.String(),
		Name:        l.Name,
		Phone:       l.Phone,
		Address:     l.Address,
		PhotosCount: l.PhotosCount,
		PhotoURLs:   l.PhotoURLs,
		Source:      "webchat",
	})
	if err != nil {
		return intake.SavedLead{}, err
	}
	return intake.SavedLead{ID: lead.ID, Status: lead.Status}, nil
}
