package ai

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/edgard/agrobot/internal/config"
)

// New creates the vision/text gateway client selected by configuration.
func New(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (Client, error) {
	switch cfg.Provider {
	case "gemini":
		return newGeminiClient(ctx, cfg, log)
	case "openai":
		return newOpenAIClient(cfg, log), nil
	default:
		return nil, fmt.Errorf("unknown ai provider %q", cfg.Provider)
	}
}
