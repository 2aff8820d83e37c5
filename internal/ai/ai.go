// Package ai defines the vision/text gateway used by the dialogue router
// and its provider implementations. All calls return plain trimmed text;
// the router never parses structured fields out of gateway output.
package ai

import (
	"context"
	"strings"

	"github.com/edgard/agrobot/internal/i18n"
)

// Client is the vision/text gateway interface. Implementations must be
// safe for concurrent use; callers bound every call with a context
// timeout and never retry automatically.
type Client interface {
	// LeafCheck reports whether the image contains a plant, leaf, crop,
	// or tree.
	LeafCheck(ctx context.Context, image []byte) (bool, error)

	// TopicAllowed reports whether free text is about agriculture.
	TopicAllowed(ctx context.Context, text string) (bool, error)

	// NormalizeCrop matches free-text crop input against the allowed
	// vocabulary, fixing spelling and language. Returns "" when nothing
	// matches.
	NormalizeCrop(ctx context.Context, raw string, allowed []string) (string, error)

	// DiagnoseImage performs an end-to-end diagnosis of a leaf photo for
	// crops the local model does not cover.
	DiagnoseImage(ctx context.Context, image []byte, crop string, lang i18n.Lang) (string, error)

	// ExplainDiagnosis expands a local-model classification into a
	// localized explanation with symptoms, treatment, and prevention.
	ExplainDiagnosis(ctx context.Context, crop, disease string, confidence float64, lang i18n.Lang) (string, error)

	// Rewrite answers or rewrites free text cleanly in the target
	// language, keeping the agricultural context.
	Rewrite(ctx context.Context, text string, lang i18n.Lang) (string, error)
}

// yesWords covers affirmative answers across the supported languages so a
// provider replying in the prompt's language still parses.
var yesWords = []string{"YES", "ДА", "HA", "ҲА", "TRUE"}

// parseYesNo interprets a model's answer to a binary question.
func parseYesNo(answer string) bool {
	up := strings.ToUpper(strings.TrimSpace(answer))
	for _, w := range yesWords {
		if strings.Contains(up, w) {
			return true
		}
	}
	return false
}

// matchAllowed returns the entry of allowed equal to the model's answer
// after trimming and lower-casing, or "" when there is no exact match.
func matchAllowed(answer string, allowed []string) string {
	got := strings.ToLower(strings.TrimSpace(answer))
	for _, a := range allowed {
		if got == strings.ToLower(a) {
			return a
		}
	}
	return ""
}
