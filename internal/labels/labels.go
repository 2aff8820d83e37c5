// Package labels defines the fixed classification label set and the parser
// that turns a compound "Crop___Disease" label into display values. The set
// is index-aligned with the classifier output and never changes at runtime.
package labels

import (
	"errors"
	"fmt"
	"strings"
)

// ErrMalformedLabel is returned when a label does not contain the
// "___" separator. Over the fixed label set this is a programming error
// and SelfTest turns it into a startup failure.
var ErrMalformedLabel = errors.New("malformed label")

// separator splits the crop segment from the disease segment.
const separator = "___"

// Set is the ordered label list the classifier was trained on. The index of
// an entry is the classifier output index for that class.
var Set = []string{
	"Apple___Apple_scab",
	"Apple___Black_rot",
	"Apple___Cedar_apple_rust",
	"Apple___healthy",
	"Potato___Early_blight",
	"Potato___Late_blight",
	"Potato___healthy",
	"Tomato___Bacterial_spot",
	"Tomato___Early_blight",
	"Tomato___Late_blight",
	"Tomato___Leaf_Mold",
	"Tomato___Septoria_leaf_spot",
	"Tomato___Spider_mites Two-spotted_spider_mite",
	"Tomato___Target_Spot",
	"Tomato___Tomato_Yellow_Leaf_Curl_Virus",
	"Tomato___Tomato_mosaic_virus",
	"Tomato___healthy",
}

// Crops is the crop vocabulary covered by the local model, lower-cased.
var Crops = []string{"apple", "potato", "tomato"}

// SupportedCrop reports whether the normalized crop name is covered by the
// local model.
func SupportedCrop(name string) bool {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, c := range Crops {
		if c == name {
			return true
		}
	}
	return false
}

// Parsed is the human-readable decomposition of one raw label.
type Parsed struct {
	Crop    string // original casing, for display
	CropKey string // lower-cased, for comparisons
	Disease string // underscores replaced, title-cased
}

// Parse splits a raw label on the "___" separator exactly once and
// humanizes the disease segment.
func Parse(raw string) (Parsed, error) {
	crop, disease, ok := strings.Cut(raw, separator)
	if !ok || crop == "" || disease == "" {
		return Parsed{}, fmt.Errorf("%w: %q", ErrMalformedLabel, raw)
	}

	return Parsed{
		Crop:    crop,
		CropKey: strings.ToLower(crop),
		Disease: titleCase(strings.ReplaceAll(disease, "_", " ")),
	}, nil
}

// SelfTest parses every label in the fixed set. It runs once at startup so
// a malformed entry fails the process instead of a user request.
func SelfTest() error {
	for i, raw := range Set {
		if _, err := Parse(raw); err != nil {
			return fmt.Errorf("label set entry %d: %w", i, err)
		}
	}
	return nil
}

// titleCase upper-cases the first letter of every space-separated word.
// strings.Title is deprecated and cases.Title changes hyphenated words in
// ways that do not round-trip with the raw labels.
func titleCase(s string) string {
	words := strings.Split(s, " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		r := []rune(w)
		if r[0] >= 'a' && r[0] <= 'z' {
			r[0] = r[0] - 'a' + 'A'
		}
		words[i] = string(r)
	}
	return strings.Join(words, " ")
}
