// Package main contains the entrypoint for the Telegram bot application.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbot "github.com/go-telegram/bot"

	"github.com/edgard/agrobot/internal/ai"
	"github.com/edgard/agrobot/internal/bot"
	"github.com/edgard/agrobot/internal/bot/handlers"
	"github.com/edgard/agrobot/internal/bot/tasks"
	"github.com/edgard/agrobot/internal/config"
	"github.com/edgard/agrobot/internal/database"
	"github.com/edgard/agrobot/internal/i18n"
	"github.com/edgard/agrobot/internal/labels"
	"github.com/edgard/agrobot/internal/logger"
	"github.com/edgard/agrobot/internal/router"
	"github.com/edgard/agrobot/internal/session"
	"github.com/edgard/agrobot/internal/telegram"
	"github.com/edgard/agrobot/internal/vision"
	"github.com/edgard/agrobot/internal/weather"

	_ "modernc.org/sqlite"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	exitCode := run(ctx)
	stop()
	os.Exit(exitCode)
}

// run initializes and starts all application components, handles graceful
// shutdown, and returns an exit code (0 for success, 1 for failure).
func run(ctx context.Context) int {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("Failed to load configuration", "error", err)
		return 1
	}

	log := logger.NewLogger(cfg.Log.Level, cfg.Log.JSON)
	log.Info("Logger initialized", "level", cfg.Log.Level, "json", cfg.Log.JSON)

	// The label set is a startup contract with the model; a broken set
	// must never reach a user.
	if err := labels.SelfTest(); err != nil {
		log.Error("Label set failed self-test", "error", err)
		return 1
	}

	model, err := vision.Load(cfg.Classifier.ModelPath)
	if err != nil {
		log.Error("Failed to load classifier model", "path", cfg.Classifier.ModelPath, "error", err)
		return 1
	}
	classifier, err := vision.NewClassifier(model)
	if err != nil {
		log.Error("Classifier rejected model", "path", cfg.Classifier.ModelPath, "error", err)
		return 1
	}
	log.Info("Classifier model loaded", "path", cfg.Classifier.ModelPath, "classes", model.Classes())

	db, err := database.NewDB(cfg.Database.Path)
	if err != nil {
		log.Error("Failed to connect to database", "path", cfg.Database.Path, "error", err)
		return 1
	}
	defer database.CloseDB(db)
	store := database.NewStore(db, log)

	pingCtx, cancelPing := context.WithTimeout(ctx, 5*time.Second)
	err = store.Ping(pingCtx)
	cancelPing()
	if err != nil {
		log.Error("Database ping failed", "path", cfg.Database.Path, "error", err)
		return 1
	}

	sessions := session.NewFileStore(cfg.Session.DataDir, i18n.Lang(cfg.Session.DefaultLanguage), log)

	aiClient, err := ai.New(ctx, cfg.AI, log)
	if err != nil {
		log.Error("Failed to initialize AI client", "provider", cfg.AI.Provider, "error", err)
		return 1
	}

	weatherClient := weather.NewHTTPClient(cfg.Weather.BaseURL, cfg.Weather.Timezone, cfg.Weather.Timeout, log)

	rtr := router.New(router.Deps{
		Logger:         log,
		Sessions:       sessions,
		Store:          store,
		AI:             aiClient,
		Weather:        weatherClient,
		Classifier:     classifier,
		GatewayTimeout: cfg.AI.Timeout,
	})

	hDeps := handlers.HandlerDeps{
		Logger:   log,
		Config:   cfg,
		Router:   rtr,
		Sessions: sessions,
		Store:    store,
	}
	tDeps := tasks.TaskDeps{
		Logger: log,
		Store:  store,
		Config: cfg,
	}

	botOpts := []tgbot.Option{
		tgbot.WithMiddlewares(logger.Middleware(log), handlers.AllowedUsersOnly(hDeps)),
		tgbot.WithDefaultHandler(handlers.NewUpdateHandler(hDeps)),
	}
	tg, err := telegram.NewTelegramBot(cfg.Telegram.Token, log, botOpts...)
	if err != nil {
		log.Error("Failed to create Telegram bot", "error", err)
		return 1
	}

	cmdHandlers := handlers.RegisterAllCommands(hDeps)
	if err := telegram.RegisterHandlers(tg, log, cmdHandlers); err != nil {
		log.Error("Failed to register Telegram handlers", "error", err)
		return 1
	}

	sched, err := bot.NewScheduler(log, &cfg.Scheduler, tasks.RegisterAllTasks(tDeps))
	if err != nil {
		log.Error("Failed to create scheduler", "error", err)
		return 1
	}
	app := bot.NewBot(log, cfg, db, store, tg, sched)

	log.Info("Starting bot...")
	runErr := app.Run(ctx)
	log.Info("Bot run loop finished. Initiating shutdown...")

	if runErr != nil && !errors.Is(runErr, context.Canceled) {
		log.Error("Bot stopped due to error", "error", runErr)
		time.Sleep(time.Second)
		return 1
	}

	log.Info("Bot stopped gracefully.")
	time.Sleep(time.Second)
	return 0
}
