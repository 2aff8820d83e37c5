package database

import (
	"time"
)

// Report is one user-submitted issue report. Reports are append-only:
// they are never updated or deleted by the application.
type Report struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	UserID  string `db:"user_id"`
	Content string `db:"content"`
}

// DiagnosisRecord is one classifier run, kept as an append-only audit of
// what the local model produced for a user's photo.
type DiagnosisRecord struct {
	ID        uint      `db:"id"`
	CreatedAt time.Time `db:"created_at"`

	UserID     string  `db:"user_id"`
	Crop       string  `db:"crop"`
	Disease    string  `db:"disease"`
	Confidence float64 `db:"confidence"`
}
