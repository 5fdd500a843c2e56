package fakesessionrepo

import (
	"sync"

	"github.com/jrsteele09/go-sensor-bot/auth"
	"github.com/pkg/errors"
)

var _ auth.Repo = (*FakeSessionRepo)(nil)

// FakeSessionRepo is an in-memory auth.Repo for tests.
type FakeSessionRepo struct {
	sessions map[string]auth.Session
	lock     sync.RWMutex

	// FailWrites makes Put and Delete return an error, for exercising
	// the store's persistence-failure path.
	FailWrites bool
}

func NewFakeSessionRepo() *FakeSessionRepo {
	return &FakeSessionRepo{
		sessions: make(map[string]auth.Session),
	}
}

func (sr *FakeSessionRepo) Load() (map[string]auth.Session, error) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()

	sessions := make(map[string]auth.Session, len(sr.sessions))
	for userID, session := range sr.sessions {
		sessions[userID] = session
	}
	return sessions, nil
}

func (sr *FakeSessionRepo) Put(userID string, session auth.Session) error {
	if sr.FailWrites {
		return errors.New("write failed")
	}

	sr.lock.Lock()
	defer sr.lock.Unlock()
	sr.sessions[userID] = session
	return nil
}

func (sr *FakeSessionRepo) Delete(userID string) error {
	if sr.FailWrites {
		return errors.New("delete failed")
	}

	sr.lock.Lock()
	defer sr.lock.Unlock()
	delete(sr.sessions, userID)
	return nil
}

// Stored returns the persisted session for a user, for assertions.
func (sr *FakeSessionRepo) Stored(userID string) (auth.Session, bool) {
	sr.lock.RLock()
	defer sr.lock.RUnlock()
	session, ok := sr.sessions[userID]
	return session, ok
}
