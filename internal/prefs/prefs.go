// ABOUTME: User preferences (theme and language) kept in the blob store.
// ABOUTME: Values are stored as plain strings under their own keys.
package prefs

import (
	"errors"
	"fmt"
	"strings"

	"github.com/harperreed/habits/internal/logger"
	"github.com/harperreed/habits/internal/storage"
)

// Blob keys.
const (
	ThemeKey    = "theme"
	LanguageKey = "language"
)

// ErrInvalidPreference is returned for values outside a preference's domain.
var ErrInvalidPreference = errors.New("invalid preference")

// Theme is the display theme.
type Theme string

const (
	ThemeLight Theme = "light"
	ThemeDark  Theme = "dark"
)

// ParseTheme validates a theme name.
func ParseTheme(s string) (Theme, error) {
	switch t := Theme(strings.ToLower(strings.TrimSpace(s))); t {
	case ThemeLight, ThemeDark:
		return t, nil
	}
	return "", fmt.Errorf("%w: theme %q (want light or dark)", ErrInvalidPreference, s)
}

// Language selects the translation table.
type Language string

const (
	LangRussian Language = "ru"
	LangEnglish Language = "en"
)

// ParseLanguage validates a language code.
func ParseLanguage(s string) (Language, error) {
	switch l := Language(strings.ToLower(strings.TrimSpace(s))); l {
	case LangRussian, LangEnglish:
		return l, nil
	}
	return "", fmt.Errorf("%w: language %q (want ru or en)", ErrInvalidPreference, s)
}

// Prefs is a snapshot of the user's preferences.
type Prefs struct {
	Theme    Theme    `json:"theme"`
	Language Language `json:"language"`
}

// Defaults returns the preferences used when nothing is stored.
func Defaults() Prefs {
	return Prefs{Theme: ThemeLight, Language: LangRussian}
}

// Load reads preferences from blob. Missing or unrecognized values fall
// back to the defaults.
func Load(blob storage.BlobStore) Prefs {
	p := Defaults()
	if raw, ok := read(blob, ThemeKey); ok {
		if t, err := ParseTheme(raw); err == nil {
			p.Theme = t
		} else {
			logger.Warn("ignoring stored theme", "value", raw)
		}
	}
	if raw, ok := read(blob, LanguageKey); ok {
		if l, err := ParseLanguage(raw); err == nil {
			p.Language = l
		} else {
			logger.Warn("ignoring stored language", "value", raw)
		}
	}
	return p
}

func read(blob storage.BlobStore, key string) (string, bool) {
	data, err := blob.Get(key)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			logger.Warn("read preference failed", "key", key, "error", err)
		}
		return "", false
	}
	return string(data), true
}

// SetTheme validates and stores the theme.
func SetTheme(blob storage.BlobStore, value string) (Theme, error) {
	t, err := ParseTheme(value)
	if err != nil {
		return "", err
	}
	if err := blob.Set(ThemeKey, []byte(t)); err != nil {
		return "", fmt.Errorf("save theme: %w", err)
	}
	return t, nil
}

// ToggleTheme flips between light and dark and stores the result.
func ToggleTheme(blob storage.BlobStore) (Theme, error) {
	next := ThemeDark
	if Load(blob).Theme == ThemeDark {
		next = ThemeLight
	}
	return SetTheme(blob, string(next))
}

// SetLanguage validates and stores the language.
func SetLanguage(blob storage.BlobStore, value string) (Language, error) {
	l, err := ParseLanguage(value)
	if err != nil {
		return "", err
	}
	if err := blob.Set(LanguageKey, []byte(l)); err != nil {
		return "", fmt.Errorf("save language: %w", err)
	}
	return l, nil
}
