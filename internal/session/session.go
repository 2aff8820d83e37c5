// Package session implements the per-user dialogue session store. Sessions
// are persisted as one JSON file per user; a missing, unreadable, or
// corrupt file is treated as an absent session and replaced with defaults,
// so reads never fail.
package session

import (
	"github.com/edgard/agrobot/internal/i18n"
)

// Step is the pending dialogue step of a session. It is the FSM state the
// router switches on; StepNone is both the initial and the between-flows
// state.
type Step string

const (
	StepNone                Step = ""
	StepAwaitingCrop        Step = "awaiting_crop"
	StepAwaitingReport      Step = "awaiting_report"
	StepAwaitingWeatherDays Step = "awaiting_weather_days"
)

// Location is a saved user location for weather requests.
type Location struct {
	Lat float64 `json:"lat"`
	Lon float64 `json:"lon"`
}

// Diagnosis is the last classification result kept on the session.
type Diagnosis struct {
	DiseaseLabel   string `json:"disease_label"`
	ConfidenceText string `json:"confidence_text"`
}

// Session is the per-user dialogue state. The zero value is not a valid
// session; use the store's defaults instead.
type Session struct {
	Language      i18n.Lang  `json:"lang"`
	PendingStep   Step       `json:"pending_step,omitempty"`
	CropName      string     `json:"crop_name,omitempty"`
	LastDiagnosis *Diagnosis `json:"last_diagnosis,omitempty"`
	Location      *Location  `json:"location,omitempty"`
}

// Store provides per-user session access. Get never fails; Update applies
// the mutator under a per-user lock so concurrent updates to one user
// never interleave, while different users proceed independently.
type Store interface {
	Get(userID string) Session
	Update(userID string, fn func(*Session)) Session
}
