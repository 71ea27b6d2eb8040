package leads

import (
	"strings"
	"time"

	"github.com/handyfix/lead-intake/internal/intake"
)

// Lead is a persisted lead record.
type Lead struct {
	ID          string    `json:"id"`
	Issue       string    `json:"issue"`
	ZipOrCity   string    `json:"zipOrCity"`
	Urgency     string    `json:"urgency"`
	Name        string    `json:"name"`
	Phone       string    `json:"phone"`
	Address     string    `json:"address"`
	PhotosCount int       `json:"photosCount"`
	PhotoURLs   []string  `json:"photoUrls"`
	Source      string    `json:"source"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"createdAt"`
}

// CreateLeadRequest is the request body for creating a lead. The field
// names match what the chat widget submits.
type CreateLeadRequest struct {
	Issue       string   `json:"issue"`
	ZipOrCity   string   `json:"zipOrCity"`
	Urgency     string   `json:"urgency"`
	Name        string   `json:"name"`
	Phone       string   `json:"phone"`
	Address     string   `json:"address"`
	PhotosCount int      `json:"photosCount"`
	PhotoURLs   []string `json:"photoUrls"`
	Source      string   `json:"source"`
}

// Validate checks required fields and normalizes the phone number.
func (r *CreateLeadRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return ErrMissingName
	}
	if strings.TrimSpace(r.Issue) == "" {
		return ErrMissingIssue
	}
	if strings.TrimSpace(r.ZipOrCity) == "" {
		return ErrMissingLocation
	}
	if strings.TrimSpace(r.Urgency) == "" {
		return ErrMissingUrgency
	}
	phone := intake.NormalizePhone(r.Phone)
	if phone == "" {
		return ErrInvalidPhone
	}
	r.Phone = phone
	// The stored count always mirrors the URL list; a client-supplied
	// count is never trusted.
	r.PhotosCount = len(r.PhotoURLs)
	if r.Source == "" {
		r.Source = "webchat"
	}
	return nil
}
