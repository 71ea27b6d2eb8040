package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/sesv2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/handyfix/lead-intake/cmd/mainconfig"
	"github.com/handyfix/lead-intake/internal/ai"
	"github.com/handyfix/lead-intake/internal/api/router"
	appconfig "github.com/handyfix/lead-intake/internal/config"
	"github.com/handyfix/lead-intake/internal/intake"
	"github.com/handyfix/lead-intake/internal/leads"
	"github.com/handyfix/lead-intake/internal/notify"
	"github.com/handyfix/lead-intake/internal/observability/metrics"
	"github.com/handyfix/lead-intake/internal/uploads"
	"github.com/handyfix/lead-intake/internal/webchat"
	"github.com/handyfix/lead-intake/pkg/logging"
)

func main() {
	_ = godotenv.Load()

	cfg := appconfig.Load()
	logger := logging.New(cfg.LogLevel)
	logger.Info("starting lead-intake API server",
		"env", cfg.Env,
		"port", cfg.Port,
	)

	ctx := context.Background()

	awsCfg, err := mainconfig.LoadAWSConfig(ctx, cfg)
	if err != nil {
		logger.Error("failed to load AWS config", "error", err)
		os.Exit(1)
	}

	// Lead storage: Postgres when configured, in-memory otherwise.
	var leadsRepo leads.Repository
	var pool *pgxpool.Pool
	if cfg.DatabaseURL != "" {
		pool, err = pgxpool.New(ctx, cfg.DatabaseURL)
		if err != nil {
			logger.Error("failed to create pgx pool", "error", err)
			os.Exit(1)
		}
		defer pool.Close()
		leadsRepo = leads.NewPostgresRepository(pool)
		logger.Info("using postgres lead repository")
	} else {
		leadsRepo = leads.NewInMemoryRepository()
		logger.Warn("DATABASE_URL not set, using in-memory lead repository")
	}

	// Operator notifications over SES.
	var notifier leads.Notifier
	if cfg.SESFromEmail != "" && cfg.LeadNotifyEmail != "" {
		sender := notify.NewSESSender(sesv2.NewFromConfig(awsCfg), notify.SESConfig{
			FromEmail: cfg.SESFromEmail,
			FromName:  cfg.SESFromName,
		}, logger)
		notifier = notify.NewService(sender, cfg.LeadNotifyEmail, logger)
	} else {
		logger.Warn("SES notification not configured, lead emails disabled")
	}

	leadSvc := leads.NewService(leadsRepo, notifier, logger)
	leadsHandler := leads.NewHandler(leadSvc, logger)

	// Photo uploads to S3.
	photoStore := uploads.NewStore(s3.NewFromConfig(awsCfg), cfg.S3Bucket, cfg.S3KeyPrefix, cfg.S3PublicBaseURL, logger)
	if !photoStore.Enabled() {
		logger.Warn("LEAD_PHOTOS_BUCKET not set, photo uploads will fail")
	}
	uploadsHandler := uploads.NewHandler(photoStore, cfg.MaxUploadBytes, logger)

	// AI reply generation: remote endpoint, or Gemini with Bedrock fallback.
	replier, aiCleanup := buildReplier(ctx, cfg, awsCfg, logger)
	defer aiCleanup()
	aiHandler := ai.NewHandler(replier, logger)

	// Intake engine sessions for the hosted webchat.
	intakeMetrics := metrics.NewIntakeMetrics(prometheus.DefaultRegisterer)
	previews := webchat.NewPreviewRegistry("/webchat/preview")
	saver := leads.NewIntakeSaver(leadSvc)
	sessions := webchat.NewSessionRegistry(func() *intake.Engine {
		return intake.NewEngine(photoStore, saver, replier,
			intake.WithLogger(logger),
			intake.WithMetrics(intakeMetrics),
			intake.WithCallTimeout(cfg.CollaboratorTimeout),
			intake.WithPreviewFactory(previews.Factory()),
		)
	}, cfg.SessionIdleTTL, logger)
	defer sessions.Stop()

	webchatHandler := webchat.NewHandler(sessions, previews, cfg.MaxUploadBytes, logger)

	r := router.New(&router.Config{
		Logger:             logger,
		LeadsHandler:       leadsHandler,
		UploadsHandler:     uploadsHandler,
		AIHandler:          aiHandler,
		WebchatHandler:     webchatHandler,
		MetricsHandler:     promhttp.Handler(),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		RateLimitPerSecond: cfg.RateLimitPerSecond,
		RateLimitBurst:     cfg.RateLimitBurst,
	})

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		logger.Info("server listening", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}

	logger.Info("server stopped")
}
