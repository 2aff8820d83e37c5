package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/agrobot/internal/database"
)

const reportsLimit = 10

// NewReportsHandler returns a handler for the admin /reports command:
// `/reports <user_id>` lists that user's recent issue reports.
func NewReportsHandler(deps HandlerDeps) bot.HandlerFunc {
	return reportsHandler{deps}.Handle
}

type reportsHandler struct {
	deps HandlerDeps
}

func (h reportsHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "reports")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "Reports handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	send := func(text string) {
		if _, err := b.SendMessage(ctx, &bot.SendMessageParams{ChatID: chatID, Text: text}); err != nil {
			log.ErrorContext(ctx, "Failed to send reports reply", "chat_id", chatID, "error", err)
		}
	}

	args := strings.Fields(update.Message.Text)
	if len(args) != 2 {
		send("Usage: /reports <user_id>")
		return
	}
	targetUserID := args[1]

	reports, err := h.deps.Store.GetReportsByUser(ctx, targetUserID, reportsLimit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to query reports", "target_user_id", targetUserID, "error", err)
		send("Failed to fetch reports.")
		return
	}

	send(formatReports(targetUserID, reports))
}

// formatReports renders a user's issue reports, newest first. Admin-facing
// output is not localized.
func formatReports(userID string, reports []database.Report) string {
	if len(reports) == 0 {
		return fmt.Sprintf("No reports from user %s.", userID)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Reports from user %s:\n", userID)
	for _, rep := range reports {
		fmt.Fprintf(&sb, "\n[%s] %s\n", rep.CreatedAt.Format("02/01/2006 15:04"), rep.Content)
	}
	return sb.String()
}
