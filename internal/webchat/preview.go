package webchat

import (
	"net/http"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/handyfix/lead-intake/internal/intake"
)

// PreviewRegistry holds staged photo bytes so the widget can render
// thumbnails before upload. Entries live exactly as long as the attachment's
// preview handle; releasing the handle drops the bytes.
type PreviewRegistry struct {
	basePath string

	mu      sync.RWMutex
	entries map[string]previewEntry
}

type previewEntry struct {
	contentType string
	data        []byte
}

// NewPreviewRegistry creates a registry serving previews under basePath
// (e.g. "/webchat/preview").
func NewPreviewRegistry(basePath string) *PreviewRegistry {
	return &PreviewRegistry{
		basePath: strings.TrimRight(basePath, "/"),
		entries:  make(map[string]previewEntry),
	}
}

// Factory returns the preview factory the intake engine consumes.
func (p *PreviewRegistry) Factory() intake.PreviewFactory {
	return func(id, _, contentType string, data []byte) intake.PreviewHandle {
		p.mu.Lock()
		p.entries[id] = previewEntry{contentType: contentType, data: data}
		p.mu.Unlock()
		return &registryHandle{registry: p, id: id}
	}
}

// Len reports how many previews are currently held.
func (p *PreviewRegistry) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return len(p.entries)
}

// ServePreview handles GET {basePath}/{id}.
func (p *PreviewRegistry) ServePreview(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	p.mu.RLock()
	entry, ok := p.entries[id]
	p.mu.RUnlock()
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", entry.contentType)
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(entry.data)
}

func (p *PreviewRegistry) release(id string) {
	p.mu.Lock()
	delete(p.entries, id)
	p.mu.Unlock()
}

type registryHandle struct {
	registry *PreviewRegistry
	id       string
}

func (h *registryHandle) URL() string {
	return h.registry.basePath + "/" + h.id
}

func (h *registryHandle) Release() error {
	h.registry.release(h.id)
	return nil
}
