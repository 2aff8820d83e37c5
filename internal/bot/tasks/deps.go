// Package tasks implements the bot's scheduled background tasks: task
// definitions, dependencies, and registration.
package tasks

import (
	"log/slog"

	"github.com/edgard/agrobot/internal/config"
	"github.com/edgard/agrobot/internal/database"
)

// TaskDeps contains all dependencies required by scheduled tasks.
type TaskDeps struct {
	Logger *slog.Logger
	Store  database.Store
	Config *config.Config
}
