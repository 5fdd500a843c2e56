package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/rs/zerolog/log"
)

var languageNames = map[string]string{
	"en": "English",
	"de": "Deutsch",
}

var unitSymbols = map[string]string{
	"c": "°C",
	"f": "°F",
}

func (b *Bot) sendTemperatureChoice(chatID int64, userID string) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.translate(userID, "external_temp", nil), "temp_external"),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(b.translate(userID, "internal_temp", nil), "temp_internal"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, b.translate(userID, "choose_temperature_sensor", nil))
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send sensor choice")
	}
}

func (b *Bot) sendLanguageChoice(chatID int64, userID string) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🇺🇸 English", "lang_en"),
			tgbotapi.NewInlineKeyboardButtonData("🇩🇪 Deutsch", "lang_de"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, b.translate(userID, "choose_language", nil))
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send language choice")
	}
}

func (b *Bot) sendUnitChoice(chatID int64, userID string) {
	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("°C", "tempunit_c"),
			tgbotapi.NewInlineKeyboardButtonData("°F", "tempunit_f"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, b.translate(userID, "choose_temp_unit", nil))
	msg.ReplyMarkup = keyboard
	if _, err := b.api.Send(msg); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send unit choice")
	}
}

func (b *Bot) editMessage(chatID int64, messageID int, text string) {
	if _, err := b.api.Send(tgbotapi.NewEditMessageText(chatID, messageID, text)); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to edit message")
	}
}
