package main

import (
	"context"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/bedrockruntime"

	"github.com/handyfix/lead-intake/internal/ai"
	appconfig "github.com/handyfix/lead-intake/internal/config"
	"github.com/handyfix/lead-intake/internal/intake"
	"github.com/handyfix/lead-intake/pkg/logging"
)

type cannedReplier struct{}

func (cannedReplier) Reply(_ context.Context, _ string) (string, error) {
	return "Thanks! A member of our team will reach out shortly to schedule and confirm pricing.", nil
}

// buildReplier picks the reply generator: a remote chat endpoint if one is
// configured, else Gemini with Bedrock as fallback, else a canned reply so
// the dialogue still completes in development.
func buildReplier(ctx context.Context, cfg *appconfig.Config, awsCfg aws.Config, logger *logging.Logger) (intake.ReplyGenerator, func()) {
	noop := func() {}

	if strings.TrimSpace(cfg.AIChatEndpoint) != "" {
		logger.Info("using remote AI chat endpoint", "endpoint", cfg.AIChatEndpoint)
		return ai.NewHTTPReplier(cfg.AIChatEndpoint, nil), noop
	}

	var primary, fallback ai.LLMClient
	var model string
	cleanup := noop

	if cfg.GeminiAPIKey != "" {
		gemini, err := ai.NewGeminiClient(ctx, cfg.GeminiAPIKey, cfg.GeminiModelID)
		if err != nil {
			logger.Error("failed to create gemini client", "error", err)
		} else {
			primary = gemini
			model = cfg.GeminiModelID
			cleanup = func() { _ = gemini.Close() }
		}
	}
	if cfg.BedrockModelID != "" {
		bedrock := ai.NewBedrockClient(bedrockruntime.NewFromConfig(awsCfg))
		if primary == nil {
			primary = bedrock
		} else {
			fallback = bedrock
		}
		// Gemini ignores the request model id; Bedrock requires it.
		model = cfg.BedrockModelID
	}

	if primary == nil {
		logger.Warn("no AI provider configured, using canned replies")
		return cannedReplier{}, noop
	}

	client := ai.LLMClient(primary)
	if fallback != nil {
		client = ai.NewFallbackClient(primary, fallback, logger)
	}
	return ai.NewLLMReplier(client, model, logger), cleanup
}
