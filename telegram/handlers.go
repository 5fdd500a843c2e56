package telegram

import (
	"context"
	"strconv"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/jrsteele09/go-sensor-bot/actions"
	"github.com/jrsteele09/go-sensor-bot/auth"
	"github.com/jrsteele09/go-sensor-bot/dispatch"
	apperrors "github.com/jrsteele09/go-sensor-bot/internal/errors"
	"github.com/rs/zerolog/log"
)

// requireAuth replies with the localized rejection when the user has no
// live session. Every operation except login answers this way.
func (b *Bot) requireAuth(userID string, chatID int64) bool {
	if b.store.IsAuthorized(userID) {
		return true
	}
	b.reply(chatID, b.translate(userID, "not_authenticated", nil))
	return false
}

func (b *Bot) handleCommand(ctx context.Context, msg *tgbotapi.Message) {
	userID := userIDOf(msg.From)
	chatID := msg.Chat.ID

	switch msg.Command() {
	case "login":
		b.handleLogin(msg)
	case "logout":
		if b.store.Logout(userID) {
			b.reply(chatID, b.translate(userID, "logged_out", nil))
			return
		}
		b.reply(chatID, b.translate(userID, "not_authenticated", nil))
	case "start":
		if !b.requireAuth(userID, chatID) {
			return
		}
		b.reply(chatID, b.translate(userID, "greeting", nil))
	case "help":
		if !b.requireAuth(userID, chatID) {
			return
		}
		text, err := b.registry.Invoke(ctx, userID, actions.Request{Action: actions.ActionHelp})
		if err != nil {
			b.reply(chatID, b.failureText(userID, err))
			return
		}
		b.reply(chatID, text)
	case "temp":
		if !b.requireAuth(userID, chatID) {
			return
		}
		b.sendTemperatureChoice(chatID, userID)
	case "lang":
		if !b.requireAuth(userID, chatID) {
			return
		}
		b.sendLanguageChoice(chatID, userID)
	case "tempunit":
		if !b.requireAuth(userID, chatID) {
			return
		}
		b.sendUnitChoice(chatID, userID)
	case "internal_temp":
		if !b.requireAuth(userID, chatID) {
			return
		}
		b.runSensorAction(ctx, chatID, userID, actions.ActionGetInternalTemp)
	case "external_temp":
		if !b.requireAuth(userID, chatID) {
			return
		}
		b.runSensorAction(ctx, chatID, userID, actions.ActionGetExternalTemp)
	case "humidity":
		if !b.requireAuth(userID, chatID) {
			return
		}
		b.runSensorAction(ctx, chatID, userID, actions.ActionGetHumidity)
	default:
		log.Debug().Str("command", msg.Command()).Msg("ignoring unregistered command")
	}
}

func (b *Bot) handleLogin(msg *tgbotapi.Message) {
	userID := userIDOf(msg.From)
	chatID := msg.Chat.ID

	// The password travels in the command text; remove it from the chat
	// history before doing anything else.
	if _, err := b.api.Request(tgbotapi.NewDeleteMessage(chatID, msg.MessageID)); err != nil {
		log.Debug().Err(err).Msg("could not delete login message")
	}

	args := strings.Fields(msg.CommandArguments())
	if len(args) != 1 {
		b.reply(chatID, b.translate(userID, "login_explanation", nil))
		return
	}

	result := b.store.AttemptLogin(userID, args[0])
	switch result.Status {
	case auth.LoginAlreadyAuthenticated:
		b.reply(chatID, b.translate(userID, "already_authenticated", nil))
	case auth.LoginLockedOut, auth.LoginLockedOutNow:
		b.reply(chatID, b.translate(userID, "locked_out", nil))
	case auth.LoginSuccess:
		b.reply(chatID, b.translate(userID, "login_success", nil))
	case auth.LoginFailure:
		b.reply(chatID, b.translate(userID, "login_failure", map[string]string{
			"remaining": strconv.Itoa(result.AttemptsRemaining),
		}))
	}
}

// handleText feeds free-form messages through the dispatch pipeline.
func (b *Bot) handleText(ctx context.Context, msg *tgbotapi.Message) {
	userID := userIDOf(msg.From)
	chatID := msg.Chat.ID

	if !b.requireAuth(userID, chatID) {
		return
	}

	outcome := b.orchestrator.Dispatch(ctx, userID, msg.Text)
	switch outcome.Kind {
	case dispatch.OutcomeSuccess:
		b.reply(chatID, outcome.Text)
	case dispatch.OutcomeChoice:
		b.sendTemperatureChoice(chatID, userID)
	case dispatch.OutcomeTimeout:
		b.reply(chatID, b.translate(userID, "timeout_error", nil))
		b.sendTimeoutSticker(chatID)
	case dispatch.OutcomeFailure:
		b.reply(chatID, b.failureText(userID, outcome.Err))
	}
}

func (b *Bot) handleCallback(ctx context.Context, query *tgbotapi.CallbackQuery) {
	if _, err := b.api.Request(tgbotapi.NewCallback(query.ID, "")); err != nil {
		log.Debug().Err(err).Msg("could not answer callback query")
	}
	if query.Message == nil {
		return
	}

	userID := userIDOf(query.From)
	chatID := query.Message.Chat.ID
	if !b.requireAuth(userID, chatID) {
		return
	}

	parts := strings.SplitN(query.Data, "_", 2)
	if len(parts) != 2 {
		log.Debug().Str("data", query.Data).Msg("ignoring malformed callback data")
		return
	}
	category, value := parts[0], parts[1]

	switch category {
	case "lang":
		language, ok := languageNames[value]
		if !ok {
			language = languageNames["en"]
		}
		if err := b.settings.SetUserLanguage(userID, value); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("failed to store language")
		}
		b.editMessage(chatID, query.Message.MessageID,
			b.translate(userID, "language_set", map[string]string{"language": language}))
	case "tempunit":
		unit, ok := unitSymbols[value]
		if !ok {
			unit = unitSymbols["c"]
		}
		if err := b.settings.SetUserTempUnit(userID, value); err != nil {
			log.Error().Err(err).Str("user_id", userID).Msg("failed to store temperature unit")
		}
		b.editMessage(chatID, query.Message.MessageID,
			b.translate(userID, "tempunit_set", map[string]string{"unit": unit}))
	case "temp":
		switch value {
		case "internal":
			b.editMessage(chatID, query.Message.MessageID, b.translate(userID, "internal_temp_requested", nil))
			b.runSensorAction(ctx, chatID, userID, actions.ActionGetInternalTemp)
		case "external":
			b.editMessage(chatID, query.Message.MessageID, b.translate(userID, "external_temp_requested", nil))
			b.runSensorAction(ctx, chatID, userID, actions.ActionGetExternalTemp)
		}
	}
}

// timeoutStickerID accompanies the timeout message.
const timeoutStickerID = "CAACAgIAAxkBAAExH49nlOhu-7i3UqCcXRmVkKTsGxBNFgAC8wADVp29Cmob68TH-pb-NgQ"

func (b *Bot) sendTimeoutSticker(chatID int64) {
	sticker := tgbotapi.NewSticker(chatID, tgbotapi.FileID(timeoutStickerID))
	if _, err := b.api.Send(sticker); err != nil {
		log.Debug().Err(err).Int64("chat_id", chatID).Msg("failed to send sticker")
	}
}

func (b *Bot) runSensorAction(ctx context.Context, chatID int64, userID, action string) {
	text, err := b.registry.Invoke(ctx, userID, actions.Request{Action: action})
	if err != nil {
		b.reply(chatID, b.failureText(userID, err))
		return
	}
	b.reply(chatID, text)
}

// FailureKey maps a typed error onto its translation key. The
// unknown_error key carries an {error} placeholder for the raw detail.
func FailureKey(err error) string {
	switch {
	case apperrors.Is(err, apperrors.ErrNoData):
		return "no_data"
	case apperrors.Is(err, apperrors.ErrBadPayload):
		return "network_error"
	case apperrors.Is(err, apperrors.ErrConnectivity), apperrors.Is(err, apperrors.ErrTimeout):
		return "connection_failed"
	default:
		return "unknown_error"
	}
}

func (b *Bot) failureText(userID string, err error) string {
	key := FailureKey(err)
	if key == "unknown_error" {
		return b.translate(userID, key, map[string]string{"error": err.Error()})
	}
	return b.translate(userID, key, nil)
}
