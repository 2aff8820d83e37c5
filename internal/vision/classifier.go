package vision

import (
	"fmt"

	"github.com/edgard/agrobot/internal/labels"
)

// Result is one classification of a leaf photo.
type Result struct {
	RawLabel   string
	Crop       string
	Disease    string
	Confidence float64 // percent, two decimal places
}

// Classifier ties the frozen model to the fixed label set.
type Classifier struct {
	model *Model
}

// NewClassifier validates that the model output dimension matches the
// label set and returns a ready classifier.
func NewClassifier(model *Model) (*Classifier, error) {
	if model.Classes() != len(labels.Set) {
		return nil, fmt.Errorf("model outputs %d classes, label set has %d", model.Classes(), len(labels.Set))
	}
	return &Classifier{model: model}, nil
}

// Classify preprocesses raw image bytes and runs one forward pass,
// returning the parsed top-1 label with its confidence.
func (c *Classifier) Classify(data []byte) (Result, error) {
	tensor, err := Preprocess(data)
	if err != nil {
		return Result{}, err
	}

	idx, prob, err := c.model.Predict(tensor)
	if err != nil {
		return Result{}, err
	}

	raw := labels.Set[idx]
	parsed, err := labels.Parse(raw)
	if err != nil {
		// Unreachable after the startup self-test, kept as a guard.
		return Result{}, err
	}

	return Result{
		RawLabel:   raw,
		Crop:       parsed.CropKey,
		Disease:    parsed.Disease,
		Confidence: ConfidencePercent(prob),
	}, nil
}
