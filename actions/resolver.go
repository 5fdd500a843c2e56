package actions

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Classifier maps free text to a candidate action. The response is raw
// model output and must be treated as untrusted.
type Classifier interface {
	Classify(ctx context.Context, text string) (string, error)
}

// Resolver turns raw user text into an action request: a direct registry
// match first, the classifier otherwise. Resolve is total - malformed
// classifier output degrades to the unknown action and an unreachable
// classifier degrades to the unavailable action.
type Resolver struct {
	registry   *Registry
	classifier Classifier
}

func NewResolver(registry *Registry, classifier Classifier) (*Resolver, error) {
	if registry == nil {
		return nil, errors.New("[NewResolver] registry is required")
	}
	if classifier == nil {
		return nil, errors.New("[NewResolver] classifier is required")
	}
	return &Resolver{registry: registry, classifier: classifier}, nil
}

func (r *Resolver) Resolve(ctx context.Context, userID, text string) Request {
	normalized := strings.ToLower(strings.TrimSpace(text))

	// Exact action names never touch the classifier.
	if r.registry.Has(normalized) {
		return Request{Action: normalized, Parameters: map[string]string{}}
	}

	raw, err := r.classifier.Classify(ctx, normalized)
	if err != nil {
		log.Warn().Err(err).Str("user_id", userID).Msg("classifier unreachable")
		return Request{Action: ActionUnavailable, Parameters: map[string]string{}}
	}

	return parseRequest(raw)
}

// parseRequest parses untrusted classifier output. Anything that is not
// a JSON object with a string "action" falls back to the unknown action;
// a missing or malformed "parameters" object falls back to empty.
func parseRequest(raw string) Request {
	request := Request{Action: ActionUnknown, Parameters: map[string]string{}}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal([]byte(raw), &payload); err != nil {
		log.Debug().Str("output", raw).Msg("classifier output is not a JSON object")
		return request
	}

	if rawAction, ok := payload["action"]; ok {
		var action string
		if err := json.Unmarshal(rawAction, &action); err == nil && action != "" {
			request.Action = action
		}
	}

	if rawParams, ok := payload["parameters"]; ok {
		var params map[string]string
		if err := json.Unmarshal(rawParams, &params); err == nil && params != nil {
			request.Parameters = params
		}
	}

	return request
}
