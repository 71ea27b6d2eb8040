package notify

import (
	"context"
	"fmt"
	"strings"

	"github.com/handyfix/lead-intake/internal/leads"
	"github.com/handyfix/lead-intake/pkg/logging"
)

// Service emails the operator when a new lead lands.
type Service struct {
	email       EmailSender
	notifyEmail string
	logger      *logging.Logger
}

// NewService creates a notification service. notifyEmail is the operator
// inbox; if empty, notifications are skipped.
func NewService(email EmailSender, notifyEmail string, logger *logging.Logger) *Service {
	if logger == nil {
		logger = logging.Default()
	}
	return &Service{email: email, notifyEmail: notifyEmail, logger: logger}
}

// NotifyLeadCreated sends the new-lead summary email.
func (s *Service) NotifyLeadCreated(ctx context.Context, lead *leads.Lead) error {
	if s.email == nil || s.notifyEmail == "" {
		s.logger.Debug("notify: operator email not configured, skipping")
		return nil
	}

	subject := fmt.Sprintf("New lead: %s (%s)", lead.Name, lead.Urgency)
	msg := EmailMessage{
		To:      s.notifyEmail,
		Subject: subject,
		Body:    leadSummaryBody(lead),
	}
	if err := s.email.Send(ctx, msg); err != nil {
		return fmt.Errorf("notify: lead created email: %w", err)
	}
	return nil
}

func leadSummaryBody(lead *leads.Lead) string {
	var b strings.Builder
	fmt.Fprintf(&b, "A new lead just came in via the chat widget.\n\n")
	fmt.Fprintf(&b, "Name:     %s\n", lead.Name)
	fmt.Fprintf(&b, "Phone:    %s\n", lead.Phone)
	fmt.Fprintf(&b, "Issue:    %s\n", lead.Issue)
	fmt.Fprintf(&b, "Area:     %s\n", lead.ZipOrCity)
	fmt.Fprintf(&b, "Urgency:  %s\n", lead.Urgency)
	if lead.Address != "" {
		fmt.Fprintf(&b, "Address:  %s\n", lead.Address)
	}
	if lead.PhotosCount > 0 {
		fmt.Fprintf(&b, "Photos:   %d\n", lead.PhotosCount)
		for _, u := range lead.PhotoURLs {
			fmt.Fprintf(&b, "  - %s\n", u)
		}
	}
	fmt.Fprintf(&b, "\nLead ID: %s (status %s)\n", lead.ID, lead.Status)
	return b.String()
}
