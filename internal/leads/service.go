package leads

import (
	"context"

	"github.com/handyfix/lead-intake/pkg/logging"
)

// Notifier tells the operator about a freshly saved lead. Failures are the
// notifier's problem to report; a lead is never lost over a notification.
type Notifier interface {
	NotifyLeadCreated(ctx context.Context, lead *Lead) error
}

// Service wraps the repository so every successful save also fires the
// operator notification.
type Service struct {
	repo     Repository
	notifier Notifier
	logger   *logging.Logger
}

// NewService creates a lead service. notifier may be nil.
func NewService(repo Repository, notifier Notifier, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{repo: repo, notifier: notifier, logger: logger}
}

// Create persists the lead and notifies the operator best-effort.
func (s *Service) Create(ctx context.Context, req *CreateLeadRequest) (*Lead, error) {
	lead, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if s.notifier != nil {
		if err := s.notifier.NotifyLeadCreated(ctx, lead); err != nil {
			s.logger.Warn("leads: operator notification failed", "error", err, "lead_id", lead.ID)
		}
	}

	return lead, nil
}

// GetByID retrieves a lead.
func (s *Service) GetByID(ctx context.Context, id string) (*Lead, error) {
	return s.repo.GetByID(ctx, id)
}
