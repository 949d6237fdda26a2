// Package cache provides string caches for locale dictionary entries.
package cache

import "github.com/ZaguanLabs/chattr"

// StringCache is the interface for caching locale strings.
type StringCache interface {
	// Get retrieves a cached string. Returns empty string and false if not found or expired.
	Get(key string) (string, bool)

	// Set stores a string in the cache.
	Set(key string, value string) error
}

// Key builds the cache key of a dictionary entry. The locale is normalized,
// so "en-US" and "en_us" share entries.
func Key(locale, key string) string {
	return chattr.NormalizeLocale(locale) + ":" + key
}
