package database

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"time"

	"github.com/jmoiron/sqlx"
)

// Store defines the data access operations used by the bot. All methods
// accept a context for cancellation and timeouts.
type Store interface {
	// Ping checks the database connection.
	Ping(ctx context.Context) error

	// SaveReport appends a user-submitted report.
	SaveReport(ctx context.Context, report *Report) error

	// GetReportsByUser returns a user's reports, newest first.
	GetReportsByUser(ctx context.Context, userID string, limit int) ([]Report, error)

	// SaveDiagnosis appends one classifier result to the audit history.
	SaveDiagnosis(ctx context.Context, record *DiagnosisRecord) error

	// GetDiagnosesByUser returns a user's diagnosis history, newest first.
	GetDiagnosesByUser(ctx context.Context, userID string, limit int) ([]DiagnosisRecord, error)

	// RunSQLMaintenance performs periodic maintenance (VACUUM/ANALYZE).
	RunSQLMaintenance(ctx context.Context) error
}

// sqlxStore implements Store on top of sqlx.
type sqlxStore struct {
	db     *sqlx.DB
	logger *slog.Logger
}

// NewStore creates a Store backed by the given connection pool.
func NewStore(db *sqlx.DB, logger *slog.Logger) Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &sqlxStore{
		db:     db,
		logger: logger.With("component", "store"),
	}
}

func (s *sqlxStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *sqlxStore) SaveReport(ctx context.Context, report *Report) error {
	if report == nil {
		return fmt.Errorf("cannot save nil report")
	}
	if report.UserID == "" {
		return fmt.Errorf("report must have a user_id")
	}
	if report.Content == "" {
		return fmt.Errorf("report must have non-empty content")
	}

	report.CreatedAt = time.Now().UTC()

	query := `INSERT INTO reports (created_at, user_id, content) VALUES (:created_at, :user_id, :content)`
	result, err := s.db.NamedExecContext(ctx, query, report)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save report", "user_id", report.UserID, "error", err)
		return fmt.Errorf("failed to save report: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		report.ID = uint(id)
	}
	s.logger.DebugContext(ctx, "Saved report", "user_id", report.UserID, "report_id", report.ID)
	return nil
}

func (s *sqlxStore) GetReportsByUser(ctx context.Context, userID string, limit int) ([]Report, error) {
	if limit <= 0 {
		limit = 100
	}

	var reports []Report
	query := `SELECT id, created_at, user_id, content FROM reports WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`
	if err := s.db.SelectContext(ctx, &reports, query, userID, limit); err != nil {
		s.logger.ErrorContext(ctx, "Failed to query reports", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to query reports: %w", err)
	}
	return reports, nil
}

func (s *sqlxStore) SaveDiagnosis(ctx context.Context, record *DiagnosisRecord) error {
	if record == nil {
		return fmt.Errorf("cannot save nil diagnosis record")
	}
	if record.UserID == "" {
		return fmt.Errorf("diagnosis record must have a user_id")
	}

	record.CreatedAt = time.Now().UTC()

	query := `INSERT INTO diagnoses (created_at, user_id, crop, disease, confidence)
	          VALUES (:created_at, :user_id, :crop, :disease, :confidence)`
	result, err := s.db.NamedExecContext(ctx, query, record)
	if err != nil {
		s.logger.ErrorContext(ctx, "Failed to save diagnosis record", "user_id", record.UserID, "error", err)
		return fmt.Errorf("failed to save diagnosis record: %w", err)
	}

	if id, err := result.LastInsertId(); err == nil {
		record.ID = uint(id)
	}
	return nil
}

func (s *sqlxStore) GetDiagnosesByUser(ctx context.Context, userID string, limit int) ([]DiagnosisRecord, error) {
	if limit <= 0 {
		limit = 100
	}

	var records []DiagnosisRecord
	query := `SELECT id, created_at, user_id, crop, disease, confidence FROM diagnoses
	          WHERE user_id = ? ORDER BY created_at DESC, id DESC LIMIT ?`
	if err := s.db.SelectContext(ctx, &records, query, userID, limit); err != nil {
		s.logger.ErrorContext(ctx, "Failed to query diagnoses", "user_id", userID, "error", err)
		return nil, fmt.Errorf("failed to query diagnoses: %w", err)
	}
	return records, nil
}

func (s *sqlxStore) RunSQLMaintenance(ctx context.Context) error {
	startTime := time.Now()

	for _, stmt := range []string{"ANALYZE", "VACUUM"} {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			s.logger.ErrorContext(ctx, "SQL maintenance statement failed", "statement", stmt, "error", err)
			return fmt.Errorf("maintenance statement %s failed: %w", stmt, err)
		}
	}

	s.logger.InfoContext(ctx, "SQL maintenance completed", "duration", time.Since(startTime))
	return nil
}
