package handlers

import (
	"log/slog"

	"github.com/edgard/agrobot/internal/config"
	"github.com/edgard/agrobot/internal/database"
	"github.com/edgard/agrobot/internal/router"
	"github.com/edgard/agrobot/internal/session"
)

// HandlerDeps provides dependencies for Telegram update handlers.
type HandlerDeps struct {
	Logger   *slog.Logger
	Config   *config.Config
	Router   *router.Router
	Sessions session.Store
	Store    database.Store
}
