package handlers

import (
	"context"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/agrobot/internal/i18n"
	"github.com/edgard/agrobot/internal/router"
)

// NewUpdateHandler returns the default handler that routes every
// non-command message: free-form text, photos, and locations.
func NewUpdateHandler(deps HandlerDeps) bot.HandlerFunc {
	return updateHandler{deps}.Handle
}

type updateHandler struct {
	deps HandlerDeps
}

func (h updateHandler) Handle(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	if msg == nil || msg.From == nil {
		return
	}

	chatID := msg.Chat.ID
	userID := strconv.FormatInt(msg.From.ID, 10)

	switch {
	case len(msg.Photo) > 0:
		h.handlePhoto(ctx, b, chatID, userID, msg)

	case msg.Location != nil:
		replies := h.deps.Router.HandleLocation(ctx, userID, msg.Location.Latitude, msg.Location.Longitude)
		lang := h.deps.Sessions.Get(userID).Language
		sendReplies(ctx, b, h.deps, chatID, lang, replies)

	case msg.Text != "" && !strings.HasPrefix(msg.Text, "/"):
		replies := h.deps.Router.HandleText(ctx, userID, msg.Text)
		lang := h.deps.Sessions.Get(userID).Language
		sendReplies(ctx, b, h.deps, chatID, lang, replies)
	}
}

func (h updateHandler) handlePhoto(ctx context.Context, b *bot.Bot, chatID int64, userID string, msg *models.Message) {
	log := h.deps.Logger.With("handler", "photo")

	sess := h.deps.Sessions.Get(userID)
	if sess.CropName != "" {
		// Analysis takes several gateway round trips; acknowledge first.
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: chatID,
			Text:   i18n.T(sess.Language, "photo_analyzing"),
		})
		if err != nil {
			log.ErrorContext(ctx, "Failed to send analyzing message", "chat_id", chatID, "error", err)
		}
	}

	// Telegram orders photo sizes small to large; take the largest.
	fileID := msg.Photo[len(msg.Photo)-1].FileID
	data, err := downloadPhoto(ctx, b, fileID, h.deps.Config.Telegram.Token)
	if err != nil {
		log.ErrorContext(ctx, "Failed to download photo", "chat_id", chatID, "error", err)
		sendReplies(ctx, b, h.deps, chatID, sess.Language, []router.Reply{
			{Text: i18n.T(sess.Language, "general_error")},
		})
		return
	}

	replies := h.deps.Router.HandlePhoto(ctx, userID, data)
	lang := h.deps.Sessions.Get(userID).Language
	sendReplies(ctx, b, h.deps, chatID, lang, replies)
}
