package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/handyfix/lead-intake/internal/ai"
	httpmiddleware "github.com/handyfix/lead-intake/internal/http/middleware"
	"github.com/handyfix/lead-intake/internal/leads"
	"github.com/handyfix/lead-intake/internal/uploads"
	"github.com/handyfix/lead-intake/internal/webchat"
	"github.com/handyfix/lead-intake/pkg/logging"
)

// Config holds router configuration
type Config struct {
	Logger         *logging.Logger
	LeadsHandler   *leads.Handler
	UploadsHandler *uploads.Handler
	AIHandler      *ai.Handler
	WebchatHandler *webchat.Handler
	MetricsHandler http.Handler

	CORSAllowedOrigins []string
	RateLimitPerSecond float64
	RateLimitBurst     int
}

// New creates a new Chi router with all routes configured
func New(cfg *Config) http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(middleware.Compress(5))
	if len(cfg.CORSAllowedOrigins) > 0 {
		r.Use(httpmiddleware.CORS(cfg.CORSAllowedOrigins))
	}
	if cfg.RateLimitPerSecond > 0 {
		r.Use(httpmiddleware.RateLimit(cfg.RateLimitPerSecond, cfg.RateLimitBurst))
	}
	if cfg.Logger != nil {
		r.Use(httpmiddleware.RequestLogger(cfg.Logger))
	}

	r.Get("/health", healthCheck)
	if cfg.MetricsHandler != nil {
		r.Handle("/metrics", cfg.MetricsHandler)
	}

	r.Route("/api", func(api chi.Router) {
		if cfg.LeadsHandler != nil {
			api.Post("/leads", cfg.LeadsHandler.CreateLead)
			api.Get("/leads/{id}", cfg.LeadsHandler.GetLead)
		}
		if cfg.UploadsHandler != nil {
			api.Post("/leads/upload", cfg.UploadsHandler.UploadPhotos)
		}
		if cfg.AIHandler != nil {
			api.Post("/ai/chat", cfg.AIHandler.Chat)
		}
	})

	if cfg.WebchatHandler != nil {
		r.Route("/webchat", func(wc chi.Router) {
			wc.Get("/ws", cfg.WebchatHandler.HandleWebSocket)
			wc.Post("/message", cfg.WebchatHandler.HandleMessage)
			wc.Post("/attach", cfg.WebchatHandler.HandleAttach)
			wc.Post("/remove", cfg.WebchatHandler.HandleRemove)
			wc.Get("/preview/{id}", cfg.WebchatHandler.HandlePreview)
		})
	}

	return r
}

func healthCheck(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
}
