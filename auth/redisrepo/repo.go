// Package redisrepo persists sessions as one Redis key per user, for
// deployments where the bot runs somewhere without a stable disk.
package redisrepo

import (
	"context"
	"encoding/json"
	"time"

	"github.com/jrsteele09/go-sensor-bot/auth"
	"github.com/pkg/errors"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "sensorbot:session:"

var _ auth.Repo = (*Repo)(nil)

type Repo struct {
	client  redis.UniversalClient
	timeout time.Duration
}

func New(client redis.UniversalClient) *Repo {
	return &Repo{
		client:  client,
		timeout: 5 * time.Second,
	}
}

func (r *Repo) Load() (map[string]auth.Session, error) {
	ctx, cancel := r.opContext()
	defer cancel()

	sessions := make(map[string]auth.Session)
	iter := r.client.Scan(ctx, 0, keyPrefix+"*", 0).Iterator()
	for iter.Next(ctx) {
		key := iter.Val()
		data, err := r.client.Get(ctx, key).Bytes()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, errors.Wrap(err, "[Repo.Load] get session")
		}
		var session auth.Session
		if err := json.Unmarshal(data, &session); err != nil {
			// A corrupt entry is skipped, not fatal.
			continue
		}
		sessions[key[len(keyPrefix):]] = session
	}
	if err := iter.Err(); err != nil {
		return nil, errors.Wrap(err, "[Repo.Load] scan sessions")
	}
	return sessions, nil
}

func (r *Repo) Put(userID string, session auth.Session) error {
	ctx, cancel := r.opContext()
	defer cancel()

	data, err := json.Marshal(session)
	if err != nil {
		return errors.Wrap(err, "[Repo.Put] marshal session")
	}
	if err := r.client.Set(ctx, keyPrefix+userID, data, 0).Err(); err != nil {
		return errors.Wrap(err, "[Repo.Put] set session")
	}
	return nil
}

func (r *Repo) Delete(userID string) error {
	ctx, cancel := r.opContext()
	defer cancel()

	if err := r.client.Del(ctx, keyPrefix+userID).Err(); err != nil {
		return errors.Wrap(err, "[Repo.Delete] del session")
	}
	return nil
}

func (r *Repo) opContext() (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.Background(), r.timeout)
}
