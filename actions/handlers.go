package actions

import (
	"context"

	apperrors "github.com/jrsteele09/go-sensor-bot/internal/errors"
	"github.com/jrsteele09/go-sensor-bot/sensor"
	"github.com/jrsteele09/go-sensor-bot/settings"
	"github.com/pkg/errors"
)

// NewDefaultRegistry builds the registry with every supported action
// wired to the sensor executor and the translation catalog.
func NewDefaultRegistry(executor *sensor.Executor, userSettings *settings.Settings) (*Registry, error) {
	if executor == nil {
		return nil, errors.New("[NewDefaultRegistry] executor is required")
	}
	if userSettings == nil {
		return nil, errors.New("[NewDefaultRegistry] settings are required")
	}

	registry := NewRegistry()

	staticHandler := func(key string) HandlerFunc {
		return func(_ context.Context, userID string, _ map[string]string) (string, error) {
			return userSettings.Translate(userSettings.UserLanguage(userID), key, nil), nil
		}
	}

	sensorHandler := func(resource string) HandlerFunc {
		return func(ctx context.Context, userID string, _ map[string]string) (string, error) {
			text, err := executor.Read(ctx, resource, userID)
			if apperrors.Is(err, apperrors.ErrCredentials) {
				// Misconfigured trust material gets its own message, not
				// the generic connection failure.
				return userSettings.Translate(userSettings.UserLanguage(userID), "coap_credentials_error", nil), nil
			}
			return text, err
		}
	}

	chooseSensor := func(_ context.Context, _ string, _ map[string]string) (string, error) {
		return ChooseTemperatureSensor, nil
	}

	registry.Register(ActionUnknown, staticHandler("unknown_command"))
	registry.Register(ActionHelp, staticHandler("help"))
	registry.Register(ActionUnavailable, staticHandler("llm_unavailable"))
	registry.Register(ActionHumidity, sensorHandler(sensor.ResourceHumidity))
	registry.Register(ActionGetHumidity, sensorHandler(sensor.ResourceHumidity))
	registry.Register(ActionGetInternalTemp, sensorHandler(sensor.ResourceInternalTemp))
	registry.Register(ActionGetExternalTemp, sensorHandler(sensor.ResourceExternalTemp))
	registry.Register(ActionTemperature, chooseSensor)
	registry.Register(ActionGetTemperature, chooseSensor)

	return registry, nil
}
