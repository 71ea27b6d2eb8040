package intake

import (
	"strings"

	"github.com/google/uuid"
)

// MaxAttachments caps how many photos may be staged for one lead.
// Selections beyond the cap are dropped, not queued.
const MaxAttachments = 3

// File is a raw selection from the visitor's photo picker.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// PreviewHandle is a scoped local-display resource for one attachment.
// Release must be safe to call exactly once; the AttachmentSet guarantees
// it is never called twice.
type PreviewHandle interface {
	URL() string
	Release() error
}

// PreviewFactory acquires a preview handle for a newly staged attachment.
type PreviewFactory func(id, name, contentType string, data []byte) PreviewHandle

// noopPreview is used when no factory is configured.
type noopPreview struct{}

func (noopPreview) URL() string    { return "" }
func (noopPreview) Release() error { return nil }

// Attachment is one staged photo. Payload is the only part uploaded.
type Attachment struct {
	ID          string
	Name        string
	ContentType string
	Payload     []byte
	preview     PreviewHandle
}

// PreviewURL returns the local display URL while the preview is alive.
func (a *Attachment) PreviewURL() string {
	if a.preview == nil {
		return ""
	}
	return a.preview.URL()
}

func (a *Attachment) releasePreview() {
	if a.preview == nil {
		return
	}
	_ = a.preview.Release()
	a.preview = nil
}

// AttachmentSet holds photos selected for the eventual submission. The
// staged collection survives across turns; the pending collection is the
// turn-local preview list cleared on every send.
type AttachmentSet struct {
	previews PreviewFactory
	staged   []*Attachment
	pending  []*Attachment
}

// NewAttachmentSet creates an empty set. factory may be nil.
func NewAttachmentSet(factory PreviewFactory) *AttachmentSet {
	return &AttachmentSet{previews: factory}
}

// Add filters files to image types, caps the staged total at
// MaxAttachments, and stages the rest. Non-images and extras are dropped
// silently. Returns the attachments actually accepted, in order.
func (s *AttachmentSet) Add(files []File) []*Attachment {
	var accepted []*Attachment
	for _, f := range files {
		if !strings.HasPrefix(f.ContentType, "image/") {
			continue
		}
		if len(s.staged) >= MaxAttachments {
			break
		}
		a := &Attachment{
			ID:          uuid.NewString(),
			Name:        f.Name,
			ContentType: f.ContentType,
			Payload:     f.Data,
		}
		if s.previews != nil {
			a.preview = s.previews(a.ID, a.Name, a.ContentType, a.Payload)
		} else {
			a.preview = noopPreview{}
		}
		s.staged = append(s.staged, a)
		s.pending = append(s.pending, a)
		accepted = append(accepted, a)
	}
	return accepted
}

// Remove releases the attachment's preview and drops it from both the
// pending and staged collections. Returns false for an unknown id.
func (s *AttachmentSet) Remove(id string) bool {
	found := false
	s.staged = filterOut(s.staged, id, func(a *Attachment) {
		a.releasePreview()
		found = true
	})
	s.pending = filterOut(s.pending, id, nil)
	return found
}

func filterOut(list []*Attachment, id string, onRemove func(*Attachment)) []*Attachment {
	out := list[:0]
	for _, a := range list {
		if a.ID == id {
			if onRemove != nil {
				onRemove(a)
			}
			continue
		}
		out = append(out, a)
	}
	return out
}

// Staged returns the attachments held for submission, in selection order.
func (s *AttachmentSet) Staged() []*Attachment {
	out := make([]*Attachment, len(s.staged))
	copy(out, s.staged)
	return out
}

// StagedCount returns how many attachments are held for submission.
func (s *AttachmentSet) StagedCount() int { return len(s.staged) }

// PendingCount returns how many attachments await their transcript echo.
func (s *AttachmentSet) PendingCount() int { return len(s.pending) }

// FlushPending clears the turn-local preview list and returns it. Staged
// attachments are unaffected: they remain held until submission.
func (s *AttachmentSet) FlushPending() []*Attachment {
	out := s.pending
	s.pending = nil
	return out
}

// ClearStaged drops all staged attachments, releasing previews. Called
// after a successful upload, when payloads are no longer needed.
func (s *AttachmentSet) ClearStaged() {
	for _, a := range s.staged {
		a.releasePreview()
	}
	s.staged = nil
	s.pending = nil
}

// ReleaseAll tears the set down at session end.
func (s *AttachmentSet) ReleaseAll() {
	s.ClearStaged()
}
