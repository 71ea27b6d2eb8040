package intake

import (
	"fmt"
	"strings"
)

// UrgencyLevel is the canonical urgency bucket for a lead.
type UrgencyLevel int

const (
	UrgencyUnset UrgencyLevel = iota
	UrgencyToday
	UrgencyThisWeek
	UrgencyASAP
	UrgencyFlexible
	UrgencyOther
)

// Urgency pairs a canonical level with the raw text for the Other case.
type Urgency struct {
	Level UrgencyLevel
	Raw   string
}

// IsZero reports whether urgency has not been captured yet.
func (u Urgency) IsZero() bool { return u.Level == UrgencyUnset }

func (u Urgency) String() string {
	switch u.Level {
	case UrgencyToday:
		return "Today"
	case UrgencyThisWeek:
		return "This week"
	case UrgencyASAP:
		return "ASAP"
	case UrgencyFlexible:
		return "Flexible"
	case UrgencyOther:
		return u.Raw
	default:
		return ""
	}
}

// Lead is the record accumulated across the conversation. Every field
// except Address and PhotoURLs must be set before a confirm is accepted.
type Lead struct {
	Issue        string
	LocationHint string
	Urgency      Urgency
	Name         string
	Phone        string // normalized to exactly 10 digits
	Address      string // empty = not provided
	PhotoURLs    []string
	PhotosCount  int
}

// Complete reports whether the lead carries everything required for
// submission.
func (l Lead) Complete() bool {
	return l.Name != "" &&
		l.Issue != "" &&
		l.LocationHint != "" &&
		!l.Urgency.IsZero() &&
		l.Phone != ""
}

// Summary renders the lead as the multi-line recap shown before confirm.
func (l Lead) Summary() string {
	photos := l.PhotosCount
	if len(l.PhotoURLs) > 0 {
		photos = len(l.PhotoURLs)
	}
	address := l.Address
	if address == "" {
		address = "(optional / not provided)"
	}
	phone := l.Phone
	if phone != "" {
		phone = FormatPhone(phone)
	}
	lines := []string{
		fmt.Sprintf("**Name:** %s", orDash(l.Name)),
		fmt.Sprintf("**Issue:** %s", orDash(l.Issue)),
		fmt.Sprintf("**Zip/City:** %s", orDash(l.LocationHint)),
		fmt.Sprintf("**Urgency:** %s", orDash(l.Urgency.String())),
		fmt.Sprintf("**Phone:** %s", orDash(phone)),
		fmt.Sprintf("**Address:** %s", address),
		fmt.Sprintf("**Photos selected:** %d", photos),
	}
	return strings.Join(lines, "\n")
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// LeadPatch describes the field changes produced by one step transition.
// Nil pointers leave the corresponding field untouched; each transition
// sets at most two fields.
type LeadPatch struct {
	Name         *string
	Issue        *string
	LocationHint *string
	Urgency      *Urgency
	Phone        *string
	Address      *string
}

// Apply merges the patch into a copy of the lead and returns it.
func (p LeadPatch) Apply(l Lead) Lead {
	if p.Name != nil {
		l.Name = *p.Name
	}
	if p.Issue != nil {
		l.Issue = *p.Issue
	}
	if p.LocationHint != nil {
		l.LocationHint = *p.LocationHint
	}
	if p.Urgency != nil {
		l.Urgency = *p.Urgency
	}
	if p.Phone != nil {
		l.Phone = *p.Phone
	}
	if p.Address != nil {
		l.Address = *p.Address
	}
	return l
}

// IsEmpty reports whether the patch changes nothing.
func (p LeadPatch) IsEmpty() bool {
	return p.Name == nil && p.Issue == nil && p.LocationHint == nil &&
		p.Urgency == nil && p.Phone == nil && p.Address == nil
}
