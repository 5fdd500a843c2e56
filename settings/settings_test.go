package settings_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-sensor-bot/settings"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSettings(t *testing.T) *settings.Settings {
	t.Helper()
	s, err := settings.New(filepath.Join(t.TempDir(), "user_settings.json"), "")
	require.NoError(t, err)
	return s
}

func TestDefaults(t *testing.T) {
	s := newSettings(t)

	assert.Equal(t, "en", s.UserLanguage("42"))
	assert.Equal(t, "C", s.UserTempUnit("42"))
}

func TestPreferencesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_settings.json")

	s, err := settings.New(path, "")
	require.NoError(t, err)
	require.NoError(t, s.SetUserLanguage("42", "de"))
	require.NoError(t, s.SetUserTempUnit("42", "f"))

	reloaded, err := settings.New(path, "")
	require.NoError(t, err)
	assert.Equal(t, "de", reloaded.UserLanguage("42"))
	assert.Equal(t, "f", reloaded.UserTempUnit("42"))

	// Setting one preference leaves the other untouched.
	assert.Equal(t, "de", s.UserLanguage("42"))
}

func TestCorruptPreferencesFileLoadsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "user_settings.json")
	require.NoError(t, os.WriteFile(path, []byte("{nope"), 0o600))

	s, err := settings.New(path, "")
	require.NoError(t, err)
	assert.Equal(t, "en", s.UserLanguage("42"))
}

func TestTranslate(t *testing.T) {
	s := newSettings(t)

	assert.Equal(t, "You are already logged in.", s.Translate("en", "already_authenticated", nil))
	assert.Equal(t, "Du bist bereits angemeldet.", s.Translate("de", "already_authenticated", nil))
	assert.Equal(t, "Translation file missing!", s.Translate("en", "no_such_key", nil))
	assert.Equal(t, "Translation file missing!", s.Translate("xx", "help", nil))
}

func TestTranslatePlaceholders(t *testing.T) {
	s := newSettings(t)

	got := s.Translate("en", "language_set", map[string]string{"language": "English"})
	assert.Equal(t, "Language set to English.", got)

	// A supplied map that misses the placeholder degrades to the
	// visible marker instead of silently shipping "{language}".
	got = s.Translate("en", "language_set", map[string]string{"tongue": "English"})
	assert.Contains(t, got, "Missing placeholder in translation")
}

func TestTranslationsFileOverride(t *testing.T) {
	catalog := filepath.Join(t.TempDir(), "translations.json")
	require.NoError(t, os.WriteFile(catalog, []byte(`{"en": {"help": "custom help"}}`), 0o600))

	s, err := settings.New(filepath.Join(t.TempDir(), "user_settings.json"), catalog)
	require.NoError(t, err)
	assert.Equal(t, "custom help", s.Translate("en", "help", nil))
}
