package ai

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/handyfix/lead-intake/pkg/logging"
)

// Replier is the minimal reply contract the handler needs.
type Replier interface {
	Reply(ctx context.Context, prompt string) (string, error)
}

// Handler serves the widget's chat endpoint.
type Handler struct {
	replier Replier
	logger  *logging.Logger
}

// NewHandler creates a chat handler.
func NewHandler(replier Replier, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	return &Handler{replier: replier, logger: logger}
}

// ChatRequest is the body of POST /api/ai/chat.
type ChatRequest struct {
	Message string `json:"message"`
}

// ChatResponse wraps the model reply.
type ChatResponse struct {
	Text string `json:"text"`
}

// Chat handles POST /api/ai/chat requests.
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	var req ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		http.Error(w, "message is required", http.StatusBadRequest)
		return
	}

	text, err := h.replier.Reply(r.Context(), req.Message)
	if err != nil {
		h.logger.Error("ai: chat reply failed", "error", err)
		http.Error(w, "ai reply failed", http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(ChatResponse{Text: text})
}
