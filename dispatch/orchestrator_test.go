package dispatch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/go-sensor-bot/actions"
	"github.com/jrsteele09/go-sensor-bot/dispatch"
	apperrors "github.com/jrsteele09/go-sensor-bot/internal/errors"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testUserID   = "42"
	testDeadline = 25 * time.Second
)

type testSecurityConfig struct{}

func (testSecurityConfig) GetAuthSecret() string             { return "secret" }
func (testSecurityConfig) GetSessionTimeout() time.Duration  { return time.Hour }
func (testSecurityConfig) GetMaxLoginAttempts() int          { return 3 }
func (testSecurityConfig) GetLockoutTime() time.Duration     { return 30 * time.Minute }
func (testSecurityConfig) GetDispatchTimeout() time.Duration { return testDeadline }

type recordingNotifier struct {
	mu     sync.Mutex
	events []string
}

func (n *recordingNotifier) Typing(context.Context, string)       { n.record("typing") }
func (n *recordingNotifier) StillWorking(context.Context, string) { n.record("still_working") }
func (n *recordingNotifier) TakingLonger(context.Context, string) { n.record("taking_longer") }

func (n *recordingNotifier) record(event string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

func (n *recordingNotifier) snapshot() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.events...)
}

type stubClassifier struct{}

func (stubClassifier) Classify(context.Context, string) (string, error) {
	return `{"action": "unknown"}`, nil
}

type orchestratorFixture struct {
	clock        *clockwork.FakeClock
	notifier     *recordingNotifier
	orchestrator *dispatch.Orchestrator
}

// setupOrchestrator wires an orchestrator over a registry with
// deliberately simple handlers: "ping" answers immediately, "slow"
// blocks until the execution context is cancelled, "broken" fails with
// a connectivity error and "temperature" asks for disambiguation.
func setupOrchestrator(t *testing.T) *orchestratorFixture {
	t.Helper()

	registry := actions.NewRegistry()
	registry.Register(actions.ActionUnknown, func(context.Context, string, map[string]string) (string, error) {
		return "unknown", nil
	})
	registry.Register("ping", func(context.Context, string, map[string]string) (string, error) {
		return "pong", nil
	})
	registry.Register("slow", func(ctx context.Context, _ string, _ map[string]string) (string, error) {
		<-ctx.Done()
		return "", ctx.Err()
	})
	registry.Register("broken", func(context.Context, string, map[string]string) (string, error) {
		return "", errors.Wrap(apperrors.ErrConnectivity, "fetch failed")
	})
	registry.Register(actions.ActionTemperature, func(context.Context, string, map[string]string) (string, error) {
		return actions.ChooseTemperatureSensor, nil
	})

	resolver, err := actions.NewResolver(registry, stubClassifier{})
	require.NoError(t, err)

	clock := clockwork.NewFakeClock()
	notifier := &recordingNotifier{}

	orchestrator, err := dispatch.NewOrchestrator(resolver, registry, notifier, testSecurityConfig{}, dispatch.WithClock(clock))
	require.NoError(t, err)

	return &orchestratorFixture{clock: clock, notifier: notifier, orchestrator: orchestrator}
}

// assertNoPulsesAfterReturn advances time well past every keep-alive
// interval and verifies no further notifier activity.
func (f *orchestratorFixture) assertNoPulsesAfterReturn(t *testing.T) {
	t.Helper()
	before := len(f.notifier.snapshot())
	f.clock.Advance(time.Minute)
	time.Sleep(20 * time.Millisecond)
	assert.Len(t, f.notifier.snapshot(), before, "keep-alive pulsed after dispatch returned")
}

func TestDispatchSuccess(t *testing.T) {
	f := setupOrchestrator(t)

	outcome := f.orchestrator.Dispatch(context.Background(), testUserID, "ping")
	require.Equal(t, dispatch.OutcomeSuccess, outcome.Kind)
	assert.Equal(t, "pong", outcome.Text)

	events := f.notifier.snapshot()
	require.NotEmpty(t, events, "typing pulse must fire before the keep-alive stops")
	assert.Equal(t, "typing", events[0])

	f.assertNoPulsesAfterReturn(t)
}

func TestDispatchChoice(t *testing.T) {
	f := setupOrchestrator(t)

	outcome := f.orchestrator.Dispatch(context.Background(), testUserID, "temperature")
	assert.Equal(t, dispatch.OutcomeChoice, outcome.Kind)
	assert.Empty(t, outcome.Text)

	f.assertNoPulsesAfterReturn(t)
}

func TestDispatchFailureKeepsErrorCategory(t *testing.T) {
	f := setupOrchestrator(t)

	outcome := f.orchestrator.Dispatch(context.Background(), testUserID, "broken")
	require.Equal(t, dispatch.OutcomeFailure, outcome.Kind)
	assert.True(t, apperrors.Is(outcome.Err, apperrors.ErrConnectivity))

	f.assertNoPulsesAfterReturn(t)
}

func TestDispatchTimeout(t *testing.T) {
	f := setupOrchestrator(t)

	outcomes := make(chan dispatch.Outcome, 1)
	go func() {
		outcomes <- f.orchestrator.Dispatch(context.Background(), testUserID, "slow")
	}()

	// Two clock waiters: the keep-alive's first delay and the deadline.
	f.clock.BlockUntil(2)
	f.clock.Advance(testDeadline + time.Second)

	select {
	case outcome := <-outcomes:
		assert.Equal(t, dispatch.OutcomeTimeout, outcome.Kind)
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch did not return after the deadline elapsed")
	}

	f.assertNoPulsesAfterReturn(t)
}

func TestKeepAliveEscalation(t *testing.T) {
	f := setupOrchestrator(t)

	outcomes := make(chan dispatch.Outcome, 1)
	go func() {
		outcomes <- f.orchestrator.Dispatch(context.Background(), testUserID, "slow")
	}()

	f.clock.BlockUntil(2)
	f.clock.Advance(3 * time.Second) // first notice

	f.clock.BlockUntil(2)
	f.clock.Advance(5 * time.Second) // second notice

	f.clock.BlockUntil(2)
	f.clock.Advance(5 * time.Second) // periodic pulse

	f.clock.BlockUntil(2)
	f.clock.Advance(testDeadline) // push past the deadline

	select {
	case outcome := <-outcomes:
		assert.Equal(t, dispatch.OutcomeTimeout, outcome.Kind)
	case <-time.After(5 * time.Second):
		t.Fatal("dispatch did not return after the deadline elapsed")
	}

	events := f.notifier.snapshot()
	require.GreaterOrEqual(t, len(events), 5)
	assert.Equal(t, []string{"typing", "still_working", "typing", "taking_longer", "typing"}, events[:5])

	f.assertNoPulsesAfterReturn(t)
}

func TestDispatchCancelledContext(t *testing.T) {
	f := setupOrchestrator(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	outcome := f.orchestrator.Dispatch(ctx, testUserID, "slow")
	assert.Equal(t, dispatch.OutcomeFailure, outcome.Kind)
	assert.Error(t, outcome.Err)

	f.assertNoPulsesAfterReturn(t)
}
