package webchat

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"golang.org/x/net/websocket"

	"github.com/handyfix/lead-intake/internal/intake"
	"github.com/handyfix/lead-intake/pkg/logging"
)

const busyText = "One moment - still working on your last request."

// Handler hosts intake sessions over WebSocket and plain HTTP.
type Handler struct {
	sessions *SessionRegistry
	previews *PreviewRegistry
	maxBytes int64
	logger   *logging.Logger
}

// NewHandler creates a webchat handler.
func NewHandler(sessions *SessionRegistry, previews *PreviewRegistry, maxBytes int64, logger *logging.Logger) *Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	return &Handler{sessions: sessions, previews: previews, maxBytes: maxBytes, logger: logger}
}

// InboundMessage is what the widget sends over the socket.
type InboundMessage struct {
	Type string `json:"type"` // "message", "ping"
	Text string `json:"text"`
}

// OutboundMessage is a frame sent to the widget.
type OutboundMessage struct {
	Type      string      `json:"type"` // "message", "typing", "session", "pong", "error"
	SessionID string      `json:"session_id,omitempty"`
	Seq       int64       `json:"seq,omitempty"`
	Role      string      `json:"role,omitempty"`
	Kind      string      `json:"kind,omitempty"`
	Text      string      `json:"text,omitempty"`
	Images    []WireImage `json:"images,omitempty"`
}

// WireImage is one photo reference in a frame.
type WireImage struct {
	URL  string `json:"url"`
	Name string `json:"name"`
}

func toFrame(m intake.Message) OutboundMessage {
	out := OutboundMessage{
		Type: "message",
		Seq:  m.Seq,
		Role: m.Speaker.String(),
		Text: m.Text,
	}
	switch m.Kind {
	case intake.KindImageSet:
		out.Kind = "images"
		out.Images = make([]WireImage, 0, len(m.Images))
		for _, img := range m.Images {
			out.Images = append(out.Images, WireImage{URL: img.URL, Name: img.Name})
		}
	case intake.KindLeadSummary:
		out.Kind = "summary"
		if m.Lead != nil {
			out.Text = m.Lead.Summary()
		}
	default:
		out.Kind = "text"
	}
	return out
}

// HandleWebSocket upgrades to WebSocket and runs the dialogue in real time.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	websocket.Handler(func(conn *websocket.Conn) {
		h.serveWS(conn, r)
	}).ServeHTTP(w, r)
}

func (h *Handler) serveWS(conn *websocket.Conn, r *http.Request) {
	session := h.sessions.GetOrCreate(r.URL.Query().Get("session"))

	_ = websocket.JSON.Send(conn, OutboundMessage{Type: "session", SessionID: session.ID})

	// Replay the transcript so reconnects resume mid-dialogue.
	for _, m := range session.Engine.Messages() {
		_ = websocket.JSON.Send(conn, toFrame(m))
	}

	h.logger.Info("webchat: connection opened", "session_id", session.ID)

	for {
		var msg InboundMessage
		if err := websocket.JSON.Receive(conn, &msg); err != nil {
			h.logger.Debug("webchat: connection closed", "session_id", session.ID, "error", err)
			return
		}
		session.touch()

		if msg.Type == "ping" {
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "pong"})
			continue
		}
		if msg.Type != "message" {
			continue
		}

		_ = websocket.JSON.Send(conn, OutboundMessage{Type: "typing"})

		produced, err := session.Engine.ProcessTurn(r.Context(), msg.Text)
		if err != nil {
			if errors.Is(err, intake.ErrBusy) {
				_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: busyText})
				continue
			}
			h.logger.Error("webchat: turn failed", "error", err, "session_id", session.ID)
			_ = websocket.JSON.Send(conn, OutboundMessage{Type: "error", Text: "Sorry, something went wrong. Please try again."})
			continue
		}
		for _, m := range produced {
			_ = websocket.JSON.Send(conn, toFrame(m))
		}
	}
}

// MessageRequest is the HTTP fallback body.
type MessageRequest struct {
	SessionID string `json:"session_id"`
	Text      string `json:"text"`
}

// MessageResponse returns the frames a turn produced.
type MessageResponse struct {
	SessionID string            `json:"session_id"`
	Messages  []OutboundMessage `json:"messages"`
}

// HandleMessage is the HTTP fallback for sending one turn.
func (h *Handler) HandleMessage(w http.ResponseWriter, r *http.Request) {
	var req MessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}

	session := h.sessions.GetOrCreate(req.SessionID)
	produced, err := session.Engine.ProcessTurn(r.Context(), req.Text)
	if err != nil {
		if errors.Is(err, intake.ErrBusy) {
			http.Error(w, busyText, http.StatusConflict)
			return
		}
		h.logger.Error("webchat: turn failed", "error", err, "session_id", session.ID)
		http.Error(w, "turn failed", http.StatusInternalServerError)
		return
	}

	frames := make([]OutboundMessage, 0, len(produced))
	for _, m := range produced {
		frames = append(frames, toFrame(m))
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(MessageResponse{SessionID: session.ID, Messages: frames})
}

// AttachedFile describes one staged attachment in responses.
type AttachedFile struct {
	ID         string `json:"id"`
	Name       string `json:"name"`
	PreviewURL string `json:"previewUrl,omitempty"`
}

// AttachResponse lists what the engine accepted, plus the current staging
// state so the widget can re-render its tray.
type AttachResponse struct {
	SessionID string         `json:"session_id"`
	Accepted  []AttachedFile `json:"accepted"`
	Staged    []AttachedFile `json:"staged"`
}

// HandleAttach stages photos for a session: POST multipart with a
// "session_id" field and "files" parts.
func (h *Handler) HandleAttach(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)
	if err := r.ParseMultipartForm(h.maxBytes); err != nil {
		http.Error(w, "invalid multipart request", http.StatusBadRequest)
		return
	}
	defer func() { _ = r.MultipartForm.RemoveAll() }()

	session := h.sessions.GetOrCreate(r.FormValue("session_id"))

	var files []intake.File
	for _, part := range r.MultipartForm.File["files"] {
		f, err := part.Open()
		if err != nil {
			http.Error(w, "failed to read upload", http.StatusBadRequest)
			return
		}
		data, err := io.ReadAll(f)
		_ = f.Close()
		if err != nil {
			http.Error(w, "failed to read upload", http.StatusBadRequest)
			return
		}
		files = append(files, intake.File{
			Name:        part.Filename,
			ContentType: part.Header.Get("Content-Type"),
			Data:        data,
		})
	}
	if len(files) == 0 {
		http.Error(w, "no files provided", http.StatusBadRequest)
		return
	}

	accepted, err := session.Engine.Attach(files)
	if err != nil {
		if errors.Is(err, intake.ErrBusy) {
			http.Error(w, busyText, http.StatusConflict)
			return
		}
		http.Error(w, "attach failed", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(AttachResponse{
		SessionID: session.ID,
		Accepted:  toAttachedFiles(accepted),
		Staged:    toAttachedFiles(session.Engine.Staged()),
	})
}

func toAttachedFiles(list []*intake.Attachment) []AttachedFile {
	out := make([]AttachedFile, 0, len(list))
	for _, a := range list {
		out = append(out, AttachedFile{ID: a.ID, Name: a.Name, PreviewURL: a.PreviewURL()})
	}
	return out
}

// RemoveRequest unstages one attachment.
type RemoveRequest struct {
	SessionID string `json:"session_id"`
	ID        string `json:"id"`
}

// HandleRemove handles POST /webchat/remove.
func (h *Handler) HandleRemove(w http.ResponseWriter, r *http.Request) {
	var req RemoveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.SessionID) == "" || strings.TrimSpace(req.ID) == "" {
		http.Error(w, "session_id and id are required", http.StatusBadRequest)
		return
	}

	session := h.sessions.Get(req.SessionID)
	if session == nil {
		http.Error(w, "unknown session", http.StatusNotFound)
		return
	}
	session.touch()

	removed := session.Engine.Remove(req.ID)
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]bool{"removed": removed})
}

// HandlePreview serves staged photo bytes for thumbnail rendering.
func (h *Handler) HandlePreview(w http.ResponseWriter, r *http.Request) {
	h.previews.ServePreview(w, r)
}
