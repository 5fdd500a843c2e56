package filerepo_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/jrsteele09/go-sensor-bot/auth"
	"github.com/jrsteele09/go-sensor-bot/auth/filerepo"
	"github.com/jrsteele09/go-sensor-bot/internal/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")

	expires := time.Date(2025, 3, 1, 13, 30, 45, 0, time.UTC)
	locked := time.Date(2025, 3, 1, 14, 0, 0, 0, time.UTC)

	repo := filerepo.New(path)
	_, err := repo.Load()
	require.NoError(t, err)

	require.NoError(t, repo.Put("1001", auth.Session{ExpiresAt: &expires, Attempts: 0}))
	require.NoError(t, repo.Put("1002", auth.Session{Attempts: 3, LockedUntil: &locked}))

	// A fresh repo instance reads back identical state.
	reloaded, err := filerepo.New(path).Load()
	require.NoError(t, err)
	require.Len(t, reloaded, 2)

	assert.True(t, expires.Equal(utils.Value(reloaded["1001"].ExpiresAt)))
	assert.Zero(t, reloaded["1001"].Attempts)
	assert.Nil(t, reloaded["1001"].LockedUntil)

	assert.Equal(t, 3, reloaded["1002"].Attempts)
	assert.True(t, locked.Equal(utils.Value(reloaded["1002"].LockedUntil)))
	assert.Nil(t, reloaded["1002"].ExpiresAt)
}

func TestDelete(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	repo := filerepo.New(path)
	_, err := repo.Load()
	require.NoError(t, err)

	expires := time.Now().Add(time.Hour)
	require.NoError(t, repo.Put("1001", auth.Session{ExpiresAt: &expires}))
	require.NoError(t, repo.Delete("1001"))
	require.NoError(t, repo.Delete("never-existed"))

	reloaded, err := filerepo.New(path).Load()
	require.NoError(t, err)
	assert.Empty(t, reloaded)
}

func TestMissingFileLoadsEmpty(t *testing.T) {
	repo := filerepo.New(filepath.Join(t.TempDir(), "does-not-exist.json"))
	sessions, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestCorruptFileLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sessions.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"1001": {"expires": truncat`), 0o600))

	repo := filerepo.New(path)
	sessions, err := repo.Load()
	require.NoError(t, err)
	assert.Empty(t, sessions)

	// The repo is still usable after a corrupt load.
	expires := time.Now().Add(time.Hour)
	require.NoError(t, repo.Put("1001", auth.Session{ExpiresAt: &expires}))
}
