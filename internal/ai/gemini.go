package ai

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"google.golang.org/genai"

	"github.com/edgard/agrobot/internal/config"
	"github.com/edgard/agrobot/internal/i18n"
)

// geminiClient implements Client on the Gemini API.
type geminiClient struct {
	client      *genai.Client
	log         *slog.Logger
	model       string
	temperature float32
}

func newGeminiClient(ctx context.Context, cfg config.AIConfig, log *slog.Logger) (*geminiClient, error) {
	gc, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	logger := log.With("component", "gemini_client")
	logger.Info("Gemini client initialized", "model", cfg.Model)
	return &geminiClient{
		client:      gc,
		log:         logger,
		model:       cfg.Model,
		temperature: cfg.Temperature,
	}, nil
}

// generate performs one GenerateContent call with an optional system
// instruction. Gateway calls are never retried: a failure surfaces to the
// user for that single request.
func (c *geminiClient) generate(ctx context.Context, system string, parts []*genai.Part) (string, error) {
	genCfg := &genai.GenerateContentConfig{
		Temperature: &c.temperature,
	}
	if system != "" {
		genCfg.SystemInstruction = &genai.Content{Parts: []*genai.Part{{Text: system}}}
	}

	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := c.client.Models.GenerateContent(ctx, c.model, contents, genCfg)
	if err != nil {
		c.log.ErrorContext(ctx, "Gemini API call failed", "error", err)
		return "", fmt.Errorf("gemini API call failed: %w", err)
	}

	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != genai.BlockedReasonUnspecified {
		reason := resp.PromptFeedback.BlockReasonMessage
		if reason == "" {
			reason = fmt.Sprintf("%v", resp.PromptFeedback.BlockReason)
		}
		c.log.ErrorContext(ctx, "Gemini request blocked", "reason", reason)
		return "", fmt.Errorf("gemini request blocked: %s", reason)
	}

	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned empty response")
	}
	return text, nil
}

func (c *geminiClient) LeafCheck(ctx context.Context, image []byte) (bool, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, http.DetectContentType(image)),
		{Text: leafCheckPrompt},
	}
	answer, err := c.generate(ctx, "", parts)
	if err != nil {
		return false, err
	}
	return parseYesNo(answer), nil
}

func (c *geminiClient) TopicAllowed(ctx context.Context, text string) (bool, error) {
	answer, err := c.generate(ctx, "", []*genai.Part{{Text: fmt.Sprintf(topicGuardPrompt, text)}})
	if err != nil {
		return false, err
	}
	return parseYesNo(answer), nil
}

func (c *geminiClient) NormalizeCrop(ctx context.Context, raw string, allowed []string) (string, error) {
	answer, err := c.generate(ctx, cropMatchPrompt(allowed), []*genai.Part{{Text: raw}})
	if err != nil {
		return "", err
	}
	return matchAllowed(answer, allowed), nil
}

func (c *geminiClient) DiagnoseImage(ctx context.Context, image []byte, crop string, lang i18n.Lang) (string, error) {
	parts := []*genai.Part{
		genai.NewPartFromBytes(image, http.DetectContentType(image)),
		{Text: "Crop type: " + crop},
	}
	return c.generate(ctx, diagnoseSystem(lang), parts)
}

func (c *geminiClient) ExplainDiagnosis(ctx context.Context, crop, disease string, confidence float64, lang i18n.Lang) (string, error) {
	system, user := explainPrompt(crop, disease, confidence, lang)
	return c.generate(ctx, system, []*genai.Part{{Text: user}})
}

func (c *geminiClient) Rewrite(ctx context.Context, text string, lang i18n.Lang) (string, error) {
	return c.generate(ctx, fmt.Sprintf(rewriteSystem, i18n.Name(lang)), []*genai.Part{{Text: text}})
}
