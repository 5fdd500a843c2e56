package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jrsteele09/go-sensor-bot/settings"
	"github.com/rs/zerolog/log"
)

// Notifier implements the dispatcher's liveness signal on top of the
// Telegram API: chat actions for pulses, plain messages for the
// escalation notices. For private chats the chat ID equals the user ID.
type Notifier struct {
	api      *tgbotapi.BotAPI
	settings *settings.Settings
}

func NewNotifier(api *tgbotapi.BotAPI, userSettings *settings.Settings) *Notifier {
	return &Notifier{api: api, settings: userSettings}
}

func (n *Notifier) Typing(_ context.Context, userID string) {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return
	}
	if _, err := n.api.Request(tgbotapi.NewChatAction(chatID, tgbotapi.ChatTyping)); err != nil {
		log.Debug().Err(err).Str("user_id", userID).Msg("typing action failed")
	}
}

func (n *Notifier) StillWorking(ctx context.Context, userID string) {
	n.notice(ctx, userID, "loading")
}

func (n *Notifier) TakingLonger(ctx context.Context, userID string) {
	n.notice(ctx, userID, "extended_loading")
}

func (n *Notifier) notice(_ context.Context, userID, key string) {
	chatID, err := strconv.ParseInt(userID, 10, 64)
	if err != nil {
		return
	}
	text := n.settings.Translate(n.settings.UserLanguage(userID), key, nil)
	if _, err := n.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Debug().Err(err).Str("user_id", userID).Msg("liveness notice failed")
	}
}
