package redisrepo_test

import (
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/jrsteele09/go-sensor-bot/auth"
	"github.com/jrsteele09/go-sensor-bot/auth/redisrepo"
	"github.com/jrsteele09/go-sensor-bot/internal/utils"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupRepo(t *testing.T) *redisrepo.Repo {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return redisrepo.New(client)
}

func TestRoundTrip(t *testing.T) {
	repo := setupRepo(t)

	expires := time.Date(2025, 3, 1, 13, 30, 45, 0, time.UTC)
	require.NoError(t, repo.Put("1001", auth.Session{ExpiresAt: &expires, Attempts: 1}))

	sessions, err := repo.Load()
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, expires.Equal(utils.Value(sessions["1001"].ExpiresAt)))
	assert.Equal(t, 1, sessions["1001"].Attempts)
}

func TestDelete(t *testing.T) {
	repo := setupRepo(t)

	expires := time.Now().Add(time.Hour)
	require.NoError(t, repo.Put("1001", auth.Session{ExpiresAt: &expires}))
	require.NoError(t, repo.Delete("1001"))
	require.NoError(t, repo.Delete("never-existed"))

	sessions, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestLoadEmpty(t *testing.T) {
	repo := setupRepo(t)

	sessions, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, sessions)
}
