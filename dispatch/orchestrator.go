// Package dispatch runs action resolution and execution under a hard
// deadline while driving a cancellable keep-alive signal to the
// transport layer.
package dispatch

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/go-sensor-bot/actions"
	"github.com/jrsteele09/go-sensor-bot/internal/config"
	"github.com/jrsteele09/go-sensor-bot/internal/metrics"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Keep-alive schedule: an immediate typing pulse, a short notice after
// firstNoticeDelay, a longer-running notice after secondNoticeDelay
// more, then a pulse every pulseInterval.
const (
	firstNoticeDelay  = 3 * time.Second
	secondNoticeDelay = 5 * time.Second
	pulseInterval     = 5 * time.Second
)

// Notifier delivers liveness signals to the transport layer while a
// dispatch is in flight.
type Notifier interface {
	Typing(ctx context.Context, userID string)
	StillWorking(ctx context.Context, userID string)
	TakingLonger(ctx context.Context, userID string)
}

// Orchestrator races resolve+execute against the dispatch deadline. The
// keep-alive goroutine is cancelled and its exit confirmed before
// Dispatch returns, in every terminal case.
type Orchestrator struct {
	resolver *actions.Resolver
	registry *actions.Registry
	notifier Notifier
	clock    clockwork.Clock
	deadline time.Duration
}

// OrchestratorOption defines a function type to modify the Orchestrator instance.
type OrchestratorOption func(*Orchestrator)

// WithClock sets the clock (primarily for testing)
func WithClock(clock clockwork.Clock) OrchestratorOption {
	return func(o *Orchestrator) {
		o.clock = clock
	}
}

func NewOrchestrator(
	resolver *actions.Resolver,
	registry *actions.Registry,
	notifier Notifier,
	cfg config.SecurityConfig,
	options ...OrchestratorOption,
) (*Orchestrator, error) {
	if resolver == nil {
		return nil, errors.New("[NewOrchestrator] resolver is required")
	}
	if registry == nil {
		return nil, errors.New("[NewOrchestrator] registry is required")
	}
	if notifier == nil {
		return nil, errors.New("[NewOrchestrator] notifier is required")
	}

	orchestrator := &Orchestrator{
		resolver: resolver,
		registry: registry,
		notifier: notifier,
		clock:    clockwork.NewRealClock(),
		deadline: cfg.GetDispatchTimeout(),
	}

	for _, opt := range options {
		opt(orchestrator)
	}

	return orchestrator, nil
}

type executionResult struct {
	action string
	text   string
	err    error
}

// Dispatch resolves and executes one inbound message for a user and
// returns exactly one terminal outcome.
func (o *Orchestrator) Dispatch(ctx context.Context, userID, text string) Outcome {
	start := o.clock.Now()
	logger := log.With().
		Str("dispatch_id", uuid.NewString()).
		Str("user_id", userID).
		Logger()

	keepAliveCtx, cancelKeepAlive := context.WithCancel(ctx)
	keepAliveDone := make(chan struct{})
	go o.keepAlive(keepAliveCtx, userID, keepAliveDone)
	defer func() {
		// Cancellation is idempotent; the done channel confirms no
		// pulse can fire after the outcome is delivered.
		cancelKeepAlive()
		<-keepAliveDone
	}()

	execCtx, cancelExec := context.WithCancel(ctx)
	defer cancelExec()

	// Buffered so an abandoned unit of work can finish late without
	// blocking or crashing.
	results := make(chan executionResult, 1)
	go func() {
		request := o.resolver.Resolve(execCtx, userID, text)
		resultText, err := o.registry.Invoke(execCtx, userID, request)
		results <- executionResult{action: request.Action, text: resultText, err: err}
	}()

	var outcome Outcome
	select {
	case result := <-results:
		outcome = outcomeOf(result)
		logger.Info().
			Str("action", result.action).
			Str("outcome", outcome.Kind.String()).
			Msg("dispatch finished")
	case <-o.clock.After(o.deadline):
		cancelExec()
		outcome = Outcome{Kind: OutcomeTimeout}
		logger.Warn().Dur("deadline", o.deadline).Msg("dispatch deadline exceeded, abandoning work")
	case <-ctx.Done():
		cancelExec()
		outcome = Outcome{Kind: OutcomeFailure, Err: ctx.Err()}
	}

	metrics.DispatchesTotal.WithLabelValues(outcome.Kind.String()).Inc()
	metrics.DispatchDuration.Observe(o.clock.Since(start).Seconds())
	return outcome
}

func outcomeOf(result executionResult) Outcome {
	if result.err != nil {
		return Outcome{Kind: OutcomeFailure, Err: result.err}
	}
	if result.text == actions.ChooseTemperatureSensor {
		return Outcome{Kind: OutcomeChoice}
	}
	return Outcome{Kind: OutcomeSuccess, Text: result.text}
}

// keepAlive drives the liveness signal until ctx is cancelled. The
// expected cancellation is swallowed here; done is always closed.
func (o *Orchestrator) keepAlive(ctx context.Context, userID string, done chan<- struct{}) {
	defer close(done)

	o.notifier.Typing(ctx, userID)

	select {
	case <-ctx.Done():
		return
	case <-o.clock.After(firstNoticeDelay):
	}
	o.notifier.StillWorking(ctx, userID)
	o.notifier.Typing(ctx, userID)

	select {
	case <-ctx.Done():
		return
	case <-o.clock.After(secondNoticeDelay):
	}
	o.notifier.TakingLonger(ctx, userID)

	for {
		select {
		case <-ctx.Done():
			return
		case <-o.clock.After(pulseInterval):
			o.notifier.Typing(ctx, userID)
		}
	}
}
