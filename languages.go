package chattr

import (
	"errors"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

// NormalizeLocale converts a locale identifier to the dictionary key form used
// by game clients (e.g., "en-US" → "en_us").
func NormalizeLocale(locale string) string {
	return strings.ToLower(strings.ReplaceAll(locale, "-", "_"))
}

// BaseLanguage extracts the language part of a locale (e.g., "pt" from "pt_BR").
func BaseLanguage(locale string) string {
	base, _, _ := strings.Cut(NormalizeLocale(locale), "_")
	return base
}

// ParseLocale parses a locale identifier such as "en_US" or "en-us" into a
// language tag. An empty identifier yields language.Und.
//
// Identifiers that are well-formed but name unknown subtags are accepted;
// syntactically malformed identifiers return a *LocaleError.
func ParseLocale(locale string) (language.Tag, error) {
	if locale == "" {
		return language.Und, nil
	}

	tag, err := language.Parse(strings.ReplaceAll(locale, "_", "-"))
	if err != nil {
		var valueErr language.ValueError
		if errors.As(err, &valueErr) {
			return tag, nil
		}
		return language.Und, &LocaleError{Locale: locale, Cause: err}
	}
	return tag, nil
}

// LanguageName returns the English display name for a locale, falling back to
// the identifier itself when it cannot be parsed or named.
func LanguageName(locale string) string {
	tag, err := ParseLocale(locale)
	if err != nil || tag == language.Und {
		return locale
	}
	if name := display.English.Tags().Name(tag); name != "" {
		return name
	}
	return locale
}
