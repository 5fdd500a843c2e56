package settings

import (
	_ "embed"
	"encoding/json"
	"os"
	"regexp"
	"strings"

	"github.com/pkg/errors"
)

// missingTranslation is returned when a language/key pair has no entry.
const missingTranslation = "Translation file missing!"

//go:embed translations.json
var defaultCatalog []byte

var placeholderPattern = regexp.MustCompile(`\{[a-zA-Z_]+\}`)

func loadCatalog(path string) (map[string]map[string]string, error) {
	data := defaultCatalog
	if path != "" {
		fileData, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrap(err, "[settings.loadCatalog] read translations")
		}
		data = fileData
	}

	var catalog map[string]map[string]string
	if err := json.Unmarshal(data, &catalog); err != nil {
		return nil, errors.Wrap(err, "[settings.loadCatalog] parse translations")
	}
	return catalog, nil
}

// Translate looks up a message for the given language and substitutes
// {name} placeholders from args. A placeholder left unresolved degrades
// to a visible marker instead of failing.
func (s *Settings) Translate(lang, key string, args map[string]string) string {
	message, ok := s.translations[lang][key]
	if !ok {
		return missingTranslation
	}
	if len(args) == 0 {
		return message
	}

	for name, value := range args {
		message = strings.ReplaceAll(message, "{"+name+"}", value)
	}
	if placeholderPattern.MatchString(message) {
		return "⚠️ Missing placeholder in translation: " + message
	}
	return message
}
