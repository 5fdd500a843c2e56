package sensor

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	apperrors "github.com/jrsteele09/go-sensor-bot/internal/errors"
	"github.com/jrsteele09/go-sensor-bot/internal/metrics"
	"github.com/jrsteele09/go-sensor-bot/settings"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Executor turns raw sensor payloads into user-facing reading text:
// humidity verbatim with a percent suffix, temperatures parsed and
// converted to the user's preferred unit with one decimal place.
type Executor struct {
	client   Client
	settings *settings.Settings
}

func NewExecutor(client Client, userSettings *settings.Settings) (*Executor, error) {
	if client == nil {
		return nil, errors.New("[NewExecutor] sensor client is required")
	}
	if userSettings == nil {
		return nil, errors.New("[NewExecutor] settings are required")
	}
	return &Executor{client: client, settings: userSettings}, nil
}

// Read fetches a resource and formats it for the given user. A payload
// that is present but non-numeric reports ErrBadPayload, which callers
// must keep distinct from connectivity failures.
func (e *Executor) Read(ctx context.Context, resource, userID string) (string, error) {
	raw, err := e.client.Fetch(ctx, resource)
	if err != nil {
		metrics.SensorFetchErrorsTotal.WithLabelValues(categoryLabel(err)).Inc()
		return "", errors.Wrapf(err, "[Executor.Read] fetch %q", resource)
	}

	raw = strings.TrimSpace(raw)
	if raw == "" {
		metrics.SensorFetchErrorsTotal.WithLabelValues("no_data").Inc()
		return "", apperrors.ErrNoData
	}

	if resource == ResourceHumidity {
		return raw + " %", nil
	}

	celsius, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		log.Warn().Str("resource", resource).Str("payload", raw).Msg("sensor payload is not numeric")
		metrics.SensorFetchErrorsTotal.WithLabelValues("bad_payload").Inc()
		return "", errors.Wrapf(apperrors.ErrBadPayload, "[Executor.Read] payload %q", raw)
	}

	unit := e.settings.UserTempUnit(userID)
	value := celsius
	if strings.EqualFold(unit, "f") {
		value = celsius*9/5 + 32
	}
	return fmt.Sprintf("%.1f °%s", value, strings.ToUpper(unit)), nil
}

func categoryLabel(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrCredentials):
		return "credentials"
	case errors.Is(err, apperrors.ErrTimeout):
		return "timeout"
	default:
		return "connectivity"
	}
}
