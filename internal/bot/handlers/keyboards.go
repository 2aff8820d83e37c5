package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"

	"github.com/edgard/agrobot/internal/i18n"
	"github.com/edgard/agrobot/internal/router"
)

// mainMenuKeyboard builds the localized persistent menu. Button captions
// carry a leading icon; intent matching on the router side is suffix-based
// for exactly this reason.
func mainMenuKeyboard(lang i18n.Lang) *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		ResizeKeyboard: true,
		Keyboard: [][]models.KeyboardButton{
			{
				{Text: "❓ " + i18n.T(lang, "ask_question")},
				{Text: "📸 " + i18n.T(lang, "send_photo")},
			},
			{
				{Text: "🌦 " + i18n.T(lang, "weather")},
				{Text: "📍 " + i18n.T(lang, "send_location_btn"), RequestLocation: true},
			},
			{
				{Text: "🛠 " + i18n.T(lang, "report")},
				{Text: "🌐 " + i18n.T(lang, "change_language")},
			},
		},
	}
}

// languageKeyboard lists the language-selection buttons, one per row, in
// the order of i18n.Supported.
func languageKeyboard() *models.ReplyKeyboardMarkup {
	rows := make([][]models.KeyboardButton, 0, len(i18n.Supported))
	for _, lang := range i18n.Supported {
		for caption, l := range i18n.LanguageButtons {
			if l == lang {
				rows = append(rows, []models.KeyboardButton{{Text: caption}})
				break
			}
		}
	}
	return &models.ReplyKeyboardMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
		Keyboard:        rows,
	}
}

func weatherDaysKeyboard(lang i18n.Lang) *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		ResizeKeyboard:  true,
		OneTimeKeyboard: true,
		Keyboard: [][]models.KeyboardButton{
			{
				{Text: "5️⃣ " + i18n.T(lang, "weather_5")},
				{Text: "🔟 " + i18n.T(lang, "weather_10")},
				{Text: "1️⃣5️⃣ " + i18n.T(lang, "weather_15")},
			},
		},
	}
}

func replyMarkup(kind router.Keyboard, lang i18n.Lang) models.ReplyMarkup {
	switch kind {
	case router.KeyboardMainMenu:
		return mainMenuKeyboard(lang)
	case router.KeyboardLanguage:
		return languageKeyboard()
	case router.KeyboardWeatherDays:
		return weatherDaysKeyboard(lang)
	default:
		return nil
	}
}

// sendReplies delivers the router's replies in order. The language is read
// after routing so a language switch applies to its own confirmation.
func sendReplies(ctx context.Context, b *bot.Bot, deps HandlerDeps, chatID int64, lang i18n.Lang, replies []router.Reply) {
	for _, rep := range replies {
		params := &bot.SendMessageParams{
			ChatID:    chatID,
			Text:      rep.Text,
			ParseMode: models.ParseModeHTML,
		}
		if markup := replyMarkup(rep.Keyboard, lang); markup != nil {
			params.ReplyMarkup = markup
		}
		if _, err := b.SendMessage(ctx, params); err != nil {
			deps.Logger.ErrorContext(ctx, "Failed to send message", "chat_id", chatID, "error", err)
		}
	}
}
