// Package actions holds the closed set of user intents, the registry
// that maps them to handlers, and the resolver that turns raw text into
// an action request.
package actions

import (
	"context"

	"github.com/rs/zerolog/log"
)

// The closed action-name set. Extending the bot means adding a name
// here and registering a handler for it.
const (
	ActionUnknown         = "unknown"
	ActionHelp            = "help"
	ActionUnavailable     = "unavailable"
	ActionHumidity        = "humidity"
	ActionGetHumidity     = "get_humidity"
	ActionGetInternalTemp = "get_internal_temp"
	ActionGetExternalTemp = "get_external_temp"
	ActionTemperature     = "temperature"
	ActionGetTemperature  = "get_temperature"
)

// ChooseTemperatureSensor is the sentinel result of the ambiguous
// temperature actions; the transport layer turns it into a choice prompt.
const ChooseTemperatureSensor = "choose_temperature_sensor"

// Request is a resolved action invocation.
type Request struct {
	Action     string            `json:"action"`
	Parameters map[string]string `json:"parameters"`
}

// HandlerFunc executes one action for a user. Blocking handlers honor ctx.
type HandlerFunc func(ctx context.Context, userID string, params map[string]string) (string, error)

type registration struct {
	handler HandlerFunc
	params  map[string]struct{} // nil accepts any parameter keys
}

// Registry is the closed mapping from action names to handlers.
type Registry struct {
	handlers map[string]registration
}

func NewRegistry() *Registry {
	return &Registry{handlers: make(map[string]registration)}
}

// Register adds a handler. Without paramNames the handler tolerates
// any parameter keys the classifier chooses to attach. Listing
// paramNames restricts the handler to exactly those keys; a request
// carrying any other key falls back to the unknown handler instead of
// reaching it.
func (r *Registry) Register(name string, handler HandlerFunc, paramNames ...string) {
	var accepted map[string]struct{}
	if len(paramNames) > 0 {
		accepted = make(map[string]struct{}, len(paramNames))
		for _, p := range paramNames {
			accepted[p] = struct{}{}
		}
	}
	r.handlers[name] = registration{handler: handler, params: accepted}
}

// Has reports whether name is a member of the action set.
func (r *Registry) Has(name string) bool {
	_, ok := r.handlers[name]
	return ok
}

// Invoke runs the handler for the request. Unregistered actions and
// parameter-shape mismatches degrade to the unknown handler's result;
// they never propagate as errors.
func (r *Registry) Invoke(ctx context.Context, userID string, req Request) (string, error) {
	reg, ok := r.handlers[req.Action]
	if !ok {
		log.Debug().Str("action", req.Action).Msg("unregistered action")
		return r.invokeUnknown(ctx, userID)
	}

	if reg.params != nil {
		for key := range req.Parameters {
			if _, accepted := reg.params[key]; !accepted {
				log.Debug().Str("action", req.Action).Str("parameter", key).Msg("unexpected parameter")
				return r.invokeUnknown(ctx, userID)
			}
		}
	}

	return reg.handler(ctx, userID, req.Parameters)
}

func (r *Registry) invokeUnknown(ctx context.Context, userID string) (string, error) {
	unknown, ok := r.handlers[ActionUnknown]
	if !ok {
		return "", nil
	}
	return unknown.handler(ctx, userID, nil)
}
