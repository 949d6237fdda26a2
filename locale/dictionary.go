package locale

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/ZaguanLabs/chattr"
	"github.com/ZaguanLabs/chattr/cache"
)

// missSentinel is cached for keys the wrapped dictionary does not have.
const missSentinel = "\x00"

// CacheDictionary serves translations straight from a cache populated by
// Publish. Proxy instances sharing a Redis cache see the same dictionary.
type CacheDictionary struct {
	cache         cache.StringCache
	defaultLocale string
}

// NewCacheDictionary creates a dictionary over c. A non-empty defaultLocale
// is consulted when the requested locale has no entry.
func NewCacheDictionary(c cache.StringCache, defaultLocale string) *CacheDictionary {
	return &CacheDictionary{
		cache:         c,
		defaultLocale: chattr.NormalizeLocale(defaultLocale),
	}
}

// Lookup implements chattr.Dictionary.
func (d *CacheDictionary) Lookup(key, locale string) (string, bool) {
	if v, ok := d.cache.Get(cache.Key(locale, key)); ok {
		return v, true
	}
	if d.defaultLocale == "" || d.defaultLocale == chattr.NormalizeLocale(locale) {
		return "", false
	}
	return d.cache.Get(cache.Key(d.defaultLocale, key))
}

// batchSetter is implemented by caches that can write many entries at once.
type batchSetter interface {
	SetMany(ctx context.Context, entries map[string]string) error
}

// Publish writes every entry of every locale in store to c and returns the
// number of entries written.
func Publish(ctx context.Context, store *Store, c cache.StringCache) (int, error) {
	entries := make(map[string]string)
	for _, locale := range store.Locales() {
		for k, v := range store.Entries(locale) {
			entries[cache.Key(locale, k)] = v
		}
	}

	if bs, ok := c.(batchSetter); ok {
		if err := bs.SetMany(ctx, entries); err != nil {
			return 0, err
		}
		return len(entries), nil
	}

	for k, v := range entries {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if err := c.Set(k, v); err != nil {
			return 0, err
		}
	}
	return len(entries), nil
}

// CachedDictionary memoizes lookups of another dictionary, including misses.
// A failed cache write is logged at warn level and the looked up value is
// still returned.
type CachedDictionary struct {
	inner  chattr.Dictionary
	cache  cache.StringCache
	logger zerolog.Logger
}

// CachedDictionaryOption configures a CachedDictionary.
type CachedDictionaryOption func(*CachedDictionary)

// WithCacheLogger sets the logger for cache write failures.
func WithCacheLogger(logger zerolog.Logger) CachedDictionaryOption {
	return func(d *CachedDictionary) {
		d.logger = logger
	}
}

// NewCachedDictionary wraps inner with c.
func NewCachedDictionary(inner chattr.Dictionary, c cache.StringCache, opts ...CachedDictionaryOption) *CachedDictionary {
	d := &CachedDictionary{inner: inner, cache: c, logger: zerolog.Nop()}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Lookup implements chattr.Dictionary.
func (d *CachedDictionary) Lookup(key, locale string) (string, bool) {
	ck := cache.Key(locale, key)
	if v, ok := d.cache.Get(ck); ok {
		if v == missSentinel {
			return "", false
		}
		return v, true
	}

	v, ok := d.inner.Lookup(key, locale)
	stored := v
	if !ok {
		stored = missSentinel
	}
	if err := d.cache.Set(ck, stored); err != nil {
		d.logger.Warn().
			Err(err).
			Str("locale", locale).
			Str("key", key).
			Msg("Failed to cache dictionary lookup")
	}
	return v, ok
}

var (
	_ chattr.Dictionary = (*CacheDictionary)(nil)
	_ chattr.Dictionary = (*CachedDictionary)(nil)
)
