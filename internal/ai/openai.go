package ai

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/edgard/agrobot/internal/config"
	"github.com/edgard/agrobot/internal/i18n"
)

// openaiClient implements Client on the OpenAI chat completions API.
type openaiClient struct {
	client      openai.Client
	log         *slog.Logger
	model       string
	temperature float64
}

func newOpenAIClient(cfg config.AIConfig, log *slog.Logger) *openaiClient {
	opts := []option.RequestOption{option.WithAPIKey(cfg.APIKey)}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}

	logger := log.With("component", "openai_client")
	logger.Info("OpenAI client initialized", "model", cfg.Model)
	return &openaiClient{
		client:      openai.NewClient(opts...),
		log:         logger,
		model:       cfg.Model,
		temperature: float64(cfg.Temperature),
	}
}

// complete performs one chat completion. Gateway calls are never retried.
func (c *openaiClient) complete(ctx context.Context, messages []openai.ChatCompletionMessageParamUnion) (string, error) {
	resp, err := c.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:       openai.ChatModel(c.model),
		Messages:    messages,
		Temperature: openai.Float(c.temperature),
	})
	if err != nil {
		c.log.ErrorContext(ctx, "OpenAI API call failed", "error", err)
		return "", fmt.Errorf("openai API call failed: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("openai returned no choices")
	}

	text := strings.TrimSpace(resp.Choices[0].Message.Content)
	if text == "" {
		return "", fmt.Errorf("openai returned empty response")
	}
	return text, nil
}

// imageMessage builds a user message carrying the image as a data URL
// plus an accompanying text part.
func imageMessage(image []byte, text string) openai.ChatCompletionMessageParamUnion {
	dataURL := fmt.Sprintf("data:%s;base64,%s", http.DetectContentType(image), base64.StdEncoding.EncodeToString(image))
	return openai.UserMessage([]openai.ChatCompletionContentPartUnionParam{
		openai.ImageContentPart(openai.ChatCompletionContentPartImageImageURLParam{URL: dataURL}),
		openai.TextContentPart(text),
	})
}

func (c *openaiClient) LeafCheck(ctx context.Context, image []byte) (bool, error) {
	answer, err := c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		imageMessage(image, leafCheckPrompt),
	})
	if err != nil {
		return false, err
	}
	return parseYesNo(answer), nil
}

func (c *openaiClient) TopicAllowed(ctx context.Context, text string) (bool, error) {
	answer, err := c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.UserMessage(fmt.Sprintf(topicGuardPrompt, text)),
	})
	if err != nil {
		return false, err
	}
	return parseYesNo(answer), nil
}

func (c *openaiClient) NormalizeCrop(ctx context.Context, raw string, allowed []string) (string, error) {
	answer, err := c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(cropMatchPrompt(allowed)),
		openai.UserMessage(raw),
	})
	if err != nil {
		return "", err
	}
	return matchAllowed(answer, allowed), nil
}

func (c *openaiClient) DiagnoseImage(ctx context.Context, image []byte, crop string, lang i18n.Lang) (string, error) {
	return c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(diagnoseSystem(lang)),
		imageMessage(image, "Crop type: "+crop),
	})
}

func (c *openaiClient) ExplainDiagnosis(ctx context.Context, crop, disease string, confidence float64, lang i18n.Lang) (string, error) {
	system, user := explainPrompt(crop, disease, confidence, lang)
	return c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(system),
		openai.UserMessage(user),
	})
}

func (c *openaiClient) Rewrite(ctx context.Context, text string, lang i18n.Lang) (string, error) {
	return c.complete(ctx, []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(fmt.Sprintf(rewriteSystem, i18n.Name(lang))),
		openai.UserMessage(text),
	})
}
