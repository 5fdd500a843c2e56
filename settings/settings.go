// Package settings holds per-user preferences (language, temperature
// unit) and the translation catalog.
package settings

import (
	"encoding/json"
	"os"
	"sync"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
)

const (
	DefaultLanguage = "en"
	DefaultTempUnit = "C"
)

// UserSettings are one user's stored preferences.
type UserSettings struct {
	LangCode string `json:"lang_code,omitempty"`
	TempUnit string `json:"temp_unit,omitempty"`
}

// Settings combines the preference store with the translation catalog.
type Settings struct {
	mu           sync.Mutex
	path         string
	users        map[string]UserSettings
	translations map[string]map[string]string
}

// New loads user preferences from path (a missing or corrupt file loads
// empty) and the translation catalog. translationsPath may be empty, in
// which case the embedded default catalog is used.
func New(path, translationsPath string) (*Settings, error) {
	s := &Settings{
		path:  path,
		users: make(map[string]UserSettings),
	}

	if data, err := os.ReadFile(path); err == nil {
		if err := json.Unmarshal(data, &s.users); err != nil {
			log.Warn().Err(err).Str("path", path).Msg("user settings file corrupt, starting empty")
			s.users = make(map[string]UserSettings)
		}
	} else if !os.IsNotExist(err) {
		return nil, errors.Wrap(err, "[settings.New] read user settings")
	}

	catalog, err := loadCatalog(translationsPath)
	if err != nil {
		return nil, err
	}
	s.translations = catalog

	return s, nil
}

// UserLanguage returns the user's language code, defaulting to English.
func (s *Settings) UserLanguage(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if lang := s.users[userID].LangCode; lang != "" {
		return lang
	}
	return DefaultLanguage
}

// SetUserLanguage stores the user's language preference.
func (s *Settings) SetUserLanguage(userID, langCode string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.users[userID]
	user.LangCode = langCode
	s.users[userID] = user
	return s.flush()
}

// UserTempUnit returns the user's temperature unit ("C" or "F"),
// defaulting to Celsius.
func (s *Settings) UserTempUnit(userID string) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if unit := s.users[userID].TempUnit; unit != "" {
		return unit
	}
	return DefaultTempUnit
}

// SetUserTempUnit stores the user's temperature unit preference.
func (s *Settings) SetUserTempUnit(userID, unit string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	user := s.users[userID]
	user.TempUnit = unit
	s.users[userID] = user
	return s.flush()
}

// flush rewrites the preferences file. Caller must hold the mutex.
func (s *Settings) flush() error {
	data, err := json.Marshal(s.users)
	if err != nil {
		return errors.Wrap(err, "[Settings.flush] marshal user settings")
	}
	if err := os.WriteFile(s.path, data, 0o600); err != nil {
		return errors.Wrap(err, "[Settings.flush] write user settings")
	}
	return nil
}
