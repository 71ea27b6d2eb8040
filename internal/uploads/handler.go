package uploads

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/handyfix/lead-intake/internal/intake"
	"github.com/handyfix/lead-intake/pkg/logging"
)

// Handler accepts multipart photo uploads from the widget.
type Handler struct {
	store    *Store
	maxBytes int64
	logger   *logging.Logger
}

// NewHandler creates an upload handler. maxBytes bounds the whole request body.
func NewHandler(store *Store, maxBytes int64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &Handler{store: store, maxBytes: maxBytes, logger: logger}
}

// UploadResponse carries the public URLs of the stored photos.
type UploadResponse struct {
	URLs []string `json:"urls"`
}

// UploadPhotos handles POST /api/leads/upload. It takes multipart "files"
// parts, keeps the first three image parts, and returns their URLs.
func (h *Handler) UploadPhotos(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		h.logger.Error("uploads: failed to parse multipart form", "error", err)
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	parts := r.MultipartForm.File["files"]
	if len(parts) == 0 {
		http.Error(w, "no files provided", http.StatusBadRequest)
		return
	}

	files := make([]intake.File, 0, intake.MaxAttachments)
	for _, part := range parts {
		if len(files) == intake.MaxAttachments {
			break
		}
		contentType := part.Header.Get("Content-Type")
		if !strings.HasPrefix(contentType, "image/") {
			h.logger.Debug("uploads: skipping non-image part", "name", part.Filename, "content_type", contentType)
			continue
		}
		f, err := part.Open()
		if err != nil {
			h.logger.Error("uploads: failed to open part", "error", err, "name", part.Filename)
			http.Error(w, "failed to read upload", http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			http.Error(w, "failed to read upload", http.StatusBadRequest)
			return
		}
		files = append(files, intake.File{Name: part.Filename, ContentType: contentType, Data: data})
	}

	if len(files) == 0 {
		http.Error(w, "no image files provided", http.StatusBadRequest)
		return
	}

	urls, err := h.store.Upload(r.Context(), files)
	if err != nil {
		h.logger.Error("uploads: upload failed", "error", err)
		http.Error(w, "upload failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(UploadResponse{URLs: urls})
}
