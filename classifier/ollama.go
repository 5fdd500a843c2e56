// Package classifier maps free text onto the closed action set using a
// local Ollama model.
package classifier

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/jrsteele09/go-sensor-bot/internal/config"
	apperrors "github.com/jrsteele09/go-sensor-bot/internal/errors"
	"github.com/ollama/ollama/api"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// systemInstruction pins the model to the closed action set and to
// strict JSON output. The resolver still treats the response as
// untrusted.
const systemInstruction = `You are a helpful assistant that processes user requests and responds strictly in JSON format. Analyze the input and select the MOST SPECIFIC action from the allowed list below: ` +
	`1. **unknown**: Use if the request is unclear, ambiguous, or unrelated to defined actions. ` +
	`2. **help**: Use if the user asks for help, instructions, or support. ` +
	`3. **humidity**: Use if the request explicitly or contextually refers to **humidity** (e.g., wet, dry, moisture). ` +
	`4. **get_internal_temp**: Use if the request explicitly or contextually refers to **indoor temperature** (e.g., inside a room, building, or device). ` +
	`5. **get_external_temp**: Use if the request explicitly or contextually refers to **outdoor temperature** (e.g., outside, weather, environment). ` +
	`6. **temperature**: Use if the request explicitly or contextually refers to **temperature** (e.g., hot, cold, warm). ` +
	`Always respond in JSON format with the chosen action and empty parameters: ` +
	"```json " +
	`{"action": "action_name"} `

// Ollama is the actions.Classifier implementation backed by the Ollama
// HTTP API.
type Ollama struct {
	client *api.Client
	model  string
}

func NewOllama(cfg config.ClassifierConfig) (*Ollama, error) {
	base, err := url.Parse(cfg.GetOllamaHost())
	if err != nil {
		return nil, errors.Wrap(err, "[NewOllama] parse Ollama host")
	}
	return &Ollama{
		client: api.NewClient(base, http.DefaultClient),
		model:  cfg.GetClassifierModel(),
	}, nil
}

// Classify sends the text to the model and returns its raw response.
// Defensive parsing of the response belongs to the resolver, not here.
func (o *Ollama) Classify(ctx context.Context, text string) (string, error) {
	stream := false
	request := &api.GenerateRequest{
		Model:  o.model,
		Prompt: text,
		System: systemInstruction,
		Format: json.RawMessage(`"json"`),
		Stream: &stream,
	}

	var response strings.Builder
	err := o.client.Generate(ctx, request, func(part api.GenerateResponse) error {
		response.WriteString(part.Response)
		return nil
	})
	if err != nil {
		log.Warn().Err(err).Str("model", o.model).Msg("ollama generate failed")
		return "", errors.Wrapf(apperrors.ErrClassifierUnavailable, "[Ollama.Classify] %v", err)
	}

	return response.String(), nil
}
