// Package telegram adapts the Telegram chat transport onto the bot's
// core: auth-guarded commands, inline-keyboard choices and free-text
// dispatch.
package telegram

import (
	"context"
	"strconv"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jrsteele09/go-sensor-bot/actions"
	"github.com/jrsteele09/go-sensor-bot/auth"
	"github.com/jrsteele09/go-sensor-bot/dispatch"
	"github.com/jrsteele09/go-sensor-bot/internal/config"
	apperrors "github.com/jrsteele09/go-sensor-bot/internal/errors"
	"github.com/jrsteele09/go-sensor-bot/settings"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// NewAPI connects to the Telegram Bot API with the configured token.
func NewAPI(cfg config.EnvConfig) (*tgbotapi.BotAPI, error) {
	token := cfg.GetBotToken()
	if token == "" {
		return nil, apperrors.ErrMissingBotToken
	}
	api, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, errors.Wrap(err, "[telegram.NewAPI] connect")
	}
	return api, nil
}

// Bot routes Telegram updates to the session store, the action registry
// and the dispatch orchestrator.
type Bot struct {
	api          *tgbotapi.BotAPI
	store        *auth.Store
	orchestrator *dispatch.Orchestrator
	registry     *actions.Registry
	settings     *settings.Settings
}

func NewBot(
	api *tgbotapi.BotAPI,
	store *auth.Store,
	orchestrator *dispatch.Orchestrator,
	registry *actions.Registry,
	userSettings *settings.Settings,
) (*Bot, error) {
	if api == nil {
		return nil, errors.New("[NewBot] api is required")
	}
	if store == nil {
		return nil, errors.New("[NewBot] session store is required")
	}
	if orchestrator == nil {
		return nil, errors.New("[NewBot] orchestrator is required")
	}
	if registry == nil {
		return nil, errors.New("[NewBot] registry is required")
	}
	if userSettings == nil {
		return nil, errors.New("[NewBot] settings are required")
	}

	return &Bot{
		api:          api,
		store:        store,
		orchestrator: orchestrator,
		registry:     registry,
		settings:     userSettings,
	}, nil
}

// Run polls for updates until ctx is cancelled. Each update is handled
// in its own goroutine; there is no serialization across users.
func (b *Bot) Run(ctx context.Context) {
	updateConfig := tgbotapi.NewUpdate(0)
	updateConfig.Timeout = 60
	updates := b.api.GetUpdatesChan(updateConfig)

	log.Info().Str("username", b.api.Self.UserName).Msg("bot polling for updates")

	for {
		select {
		case <-ctx.Done():
			b.api.StopReceivingUpdates()
			return
		case update, ok := <-updates:
			if !ok {
				return
			}
			go b.handleUpdate(ctx, update)
		}
	}
}

func (b *Bot) handleUpdate(ctx context.Context, update tgbotapi.Update) {
	defer func() {
		if r := recover(); r != nil {
			log.Error().Interface("panic", r).Msg("recovered from update handler panic")
		}
	}()

	switch {
	case update.CallbackQuery != nil:
		b.handleCallback(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.IsCommand():
		b.handleCommand(ctx, update.Message)
	case update.Message != nil && update.Message.Text != "":
		b.handleText(ctx, update.Message)
	}
}

func (b *Bot) reply(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		log.Error().Err(err).Int64("chat_id", chatID).Msg("failed to send message")
	}
}

func (b *Bot) translate(userID, key string, args map[string]string) string {
	return b.settings.Translate(b.settings.UserLanguage(userID), key, args)
}

func userIDOf(from *tgbotapi.User) string {
	return strconv.FormatInt(from.ID, 10)
}
