package handlers

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/agrobot/internal/database"
	"github.com/edgard/agrobot/internal/i18n"
	"github.com/edgard/agrobot/internal/router"
)

const historyLimit = 10

// NewHistoryHandler returns a handler for the /history command, showing
// the user their recent classifier diagnoses.
func NewHistoryHandler(deps HandlerDeps) bot.HandlerFunc {
	return historyHandler{deps}.Handle
}

type historyHandler struct {
	deps HandlerDeps
}

func (h historyHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	log := h.deps.Logger.With("handler", "history")

	if update.Message == nil || update.Message.From == nil {
		log.WarnContext(ctx, "History handler received update with nil message or sender", "update_id", update.ID)
		return
	}

	chatID := update.Message.Chat.ID
	userID := strconv.FormatInt(update.Message.From.ID, 10)
	lang := h.deps.Sessions.Get(userID).Language

	records, err := h.deps.Store.GetDiagnosesByUser(ctx, userID, historyLimit)
	if err != nil {
		log.ErrorContext(ctx, "Failed to query diagnosis history", "user_id", userID, "error", err)
		sendReplies(ctx, b, h.deps, chatID, lang, []router.Reply{
			{Text: i18n.T(lang, "general_error")},
		})
		return
	}

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:    chatID,
		Text:      formatHistory(lang, records),
		ParseMode: models.ParseModeHTML,
	})
	if err != nil {
		log.ErrorContext(ctx, "Failed to send history", "chat_id", chatID, "error", err)
	}
}

// formatHistory renders a user's diagnosis records, newest first, using
// the same localized field labels as the diagnosis prompts.
func formatHistory(lang i18n.Lang, records []database.DiagnosisRecord) string {
	if len(records) == 0 {
		return i18n.T(lang, "history_empty")
	}

	var sb strings.Builder
	sb.WriteString("<b>" + i18n.T(lang, "history_title") + "</b>\n")
	for _, rec := range records {
		fmt.Fprintf(&sb, "\n📅 <b>%s</b>\n", rec.CreatedAt.Format("02/01/2006"))
		fmt.Fprintf(&sb, "%s: %s\n", i18n.T(lang, "diagnosis_crop"), rec.Crop)
		fmt.Fprintf(&sb, "%s: %s\n", i18n.T(lang, "diagnosis_disease"), rec.Disease)
		fmt.Fprintf(&sb, "%s: %.2f%%\n", i18n.T(lang, "diagnosis_confidence"), rec.Confidence)
	}
	return sb.String()
}
