package auth

import (
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/jrsteele09/go-sensor-bot/internal/config"
	"github.com/jrsteele09/go-sensor-bot/internal/metrics"
	"github.com/jrsteele09/go-sensor-bot/internal/utils"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

// Store is the authentication state machine. It exclusively owns the
// per-user session map; every read-modify-write of a user's session goes
// through its mutex, and every mutation is flushed to the repo.
type Store struct {
	mu       sync.Mutex
	sessions map[string]Session
	repo     Repo
	clock    clockwork.Clock

	secret           string
	sessionTimeout   time.Duration
	maxLoginAttempts int
	lockoutTime      time.Duration
}

// StoreOption defines a function type to modify the Store instance.
type StoreOption func(*Store)

// WithClock sets the clock (primarily for testing)
func WithClock(clock clockwork.Clock) StoreOption {
	return func(s *Store) {
		s.clock = clock
	}
}

// NewStore loads persisted sessions and initializes the state machine.
// Unreadable storage degrades to an empty session map.
func NewStore(repo Repo, cfg config.SecurityConfig, options ...StoreOption) (*Store, error) {
	if repo == nil {
		return nil, errors.New("[NewStore] session repo is required")
	}
	if cfg.GetAuthSecret() == "" {
		return nil, errors.New("[NewStore] auth secret is required")
	}

	sessions, err := repo.Load()
	if err != nil {
		log.Warn().Err(err).Msg("session storage unreadable, starting with no sessions")
		sessions = nil
	}
	if sessions == nil {
		sessions = make(map[string]Session)
	}

	store := &Store{
		sessions:         sessions,
		repo:             repo,
		clock:            clockwork.NewRealClock(),
		secret:           cfg.GetAuthSecret(),
		sessionTimeout:   cfg.GetSessionTimeout(),
		maxLoginAttempts: cfg.GetMaxLoginAttempts(),
		lockoutTime:      cfg.GetLockoutTime(),
	}

	for _, opt := range options {
		opt(store)
	}

	return store, nil
}

// IsAuthorized reports whether the user holds an unexpired session. A
// positive answer slides the expiry forward to now + session timeout.
// Every call first sweeps expired sessions for all users.
func (s *Store) IsAuthorized(userID string) bool {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.sweepExpired(now)

	session, ok := s.sessions[userID]
	if !ok || !session.Authenticated(now) {
		return false
	}

	session.ExpiresAt = utils.Ptr(now.Add(s.sessionTimeout))
	s.sessions[userID] = session
	s.persist(userID, session)
	return true
}

// AttemptLogin evaluates a supplied secret against the configured one and
// advances the user's session state accordingly.
func (s *Store) AttemptLogin(userID, secret string) LoginResult {
	result := s.attemptLogin(userID, secret)
	metrics.LoginAttemptsTotal.WithLabelValues(result.Status.String()).Inc()
	if result.Status == LoginLockedOutNow {
		log.Warn().Str("user_id", userID).Time("locked_until", result.LockedUntil).Msg("user locked out")
	}
	return result
}

func (s *Store) attemptLogin(userID, secret string) LoginResult {
	now := s.clock.Now()

	s.mu.Lock()
	defer s.mu.Unlock()

	session := s.sessions[userID]

	if session.Authenticated(now) {
		return LoginResult{Status: LoginAlreadyAuthenticated}
	}

	if session.LockedUntil != nil {
		if session.LockedUntil.After(now) {
			return LoginResult{Status: LoginLockedOut, LockedUntil: *session.LockedUntil}
		}
		// Lock expired naturally, attempts start over.
		session = Session{}
	}

	if VerifySecret(s.secret, secret) {
		session = Session{ExpiresAt: utils.Ptr(now.Add(s.sessionTimeout))}
		s.sessions[userID] = session
		s.persist(userID, session)
		return LoginResult{Status: LoginSuccess}
	}

	session.Attempts++
	if session.Attempts >= s.maxLoginAttempts {
		session.ExpiresAt = nil
		session.LockedUntil = utils.Ptr(now.Add(s.lockoutTime))
		s.sessions[userID] = session
		s.persist(userID, session)
		return LoginResult{Status: LoginLockedOutNow, LockedUntil: *session.LockedUntil}
	}

	s.sessions[userID] = session
	s.persist(userID, session)
	return LoginResult{Status: LoginFailure, AttemptsRemaining: s.maxLoginAttempts - session.Attempts}
}

// Logout removes the user's session. It reports whether one existed so
// the caller can answer "logged out" vs "not authenticated".
func (s *Store) Logout(userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[userID]; !ok {
		return false
	}
	delete(s.sessions, userID)
	if err := s.repo.Delete(userID); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to delete persisted session")
	}
	return true
}

// sweepExpired purges every session whose expiry has passed, for all
// users. Caller must hold the mutex.
func (s *Store) sweepExpired(now time.Time) {
	for userID, session := range s.sessions {
		if session.ExpiresAt != nil && !session.ExpiresAt.After(now) {
			delete(s.sessions, userID)
			if err := s.repo.Delete(userID); err != nil {
				log.Error().Err(err).Str("user_id", userID).Msg("failed to delete expired session")
			}
		}
	}
}

// persist flushes one session to storage. Persistence failures are logged
// but never change the authentication decision already taken in memory.
func (s *Store) persist(userID string, session Session) {
	if err := s.repo.Put(userID, session); err != nil {
		log.Error().Err(err).Str("user_id", userID).Msg("failed to persist session")
	}
}
