// Package filerepo persists sessions as a single JSON document on disk,
// rewritten after every mutation. A missing or corrupt file loads as an
// empty session map rather than a startup error.
package filerepo

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/jrsteele09/go-sensor-bot/auth"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

var _ auth.Repo = (*Repo)(nil)

type Repo struct {
	mu       sync.Mutex
	path     string
	sessions map[string]auth.Session
}

func New(path string) *Repo {
	return &Repo{
		path:     path,
		sessions: make(map[string]auth.Session),
	}
}

func (r *Repo) Load() (map[string]auth.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	data, err := os.ReadFile(r.path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]auth.Session{}, nil
		}
		return nil, errors.Wrap(err, "[Repo.Load] read session file")
	}

	var sessions map[string]auth.Session
	if err := json.Unmarshal(data, &sessions); err != nil {
		log.Warn().Err(err).Str("path", r.path).Msg("session file corrupt, starting empty")
		r.sessions = make(map[string]auth.Session)
		return map[string]auth.Session{}, nil
	}
	if sessions == nil {
		sessions = make(map[string]auth.Session)
	}

	r.sessions = sessions

	loaded := make(map[string]auth.Session, len(sessions))
	for userID, session := range sessions {
		loaded[userID] = session
	}
	return loaded, nil
}

func (r *Repo) Put(userID string, session auth.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[userID] = session
	return r.flush()
}

func (r *Repo) Delete(userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.sessions[userID]; !ok {
		return nil
	}
	delete(r.sessions, userID)
	return r.flush()
}

// flush rewrites the whole document. Caller must hold the mutex.
func (r *Repo) flush() error {
	data, err := json.Marshal(r.sessions)
	if err != nil {
		return errors.Wrap(err, "[Repo.flush] marshal sessions")
	}
	if err := os.WriteFile(r.path, data, 0o600); err != nil {
		return errors.Wrap(err, "[Repo.flush] write session file")
	}
	return nil
}
