// Package locale loads and serves the per-locale string tables that back
// chattr.Dictionary.
package locale

import (
	"sort"
	"sync"

	"github.com/ZaguanLabs/chattr"
)

// Table is a read-only set of translations for one locale.
type Table interface {
	Get(key string) (string, bool)
	Keys() []string
}

// MapTable is a Table backed by a plain map.
type MapTable map[string]string

// Get returns the value for key.
func (m MapTable) Get(key string) (string, bool) {
	v, ok := m[key]
	return v, ok
}

// Keys returns the keys in sorted order.
func (m MapTable) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Store holds the tables of every loaded locale and implements
// chattr.Dictionary.
//
// A lookup tries the exact locale, then its base language ("pt" for "pt_br"),
// then the default locale. Within a locale, tables added later win.
type Store struct {
	mu            sync.RWMutex
	defaultLocale string
	tables        map[string][]Table
}

// NewStore creates an empty store. An empty defaultLocale disables the
// default-locale fallback.
func NewStore(defaultLocale string) *Store {
	return &Store{
		defaultLocale: chattr.NormalizeLocale(defaultLocale),
		tables:        make(map[string][]Table),
	}
}

// DefaultLocale returns the normalized default locale.
func (s *Store) DefaultLocale() string {
	return s.defaultLocale
}

// Add appends t to the tables of locale.
func (s *Store) Add(locale string, t Table) {
	locale = chattr.NormalizeLocale(locale)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.tables[locale] = append(s.tables[locale], t)
}

// Lookup implements chattr.Dictionary.
func (s *Store) Lookup(key, locale string) (string, bool) {
	locale = chattr.NormalizeLocale(locale)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, candidate := range s.candidates(locale) {
		if v, ok := s.get(candidate, key); ok {
			return v, true
		}
	}
	return "", false
}

// candidates returns the locales searched for locale, without duplicates.
func (s *Store) candidates(locale string) []string {
	out := []string{locale}
	if base := chattr.BaseLanguage(locale); base != locale && base != "" {
		out = append(out, base)
	}
	if s.defaultLocale != "" && s.defaultLocale != locale {
		out = append(out, s.defaultLocale)
	}
	return out
}

// get must be called with the read lock held.
func (s *Store) get(locale, key string) (string, bool) {
	tables := s.tables[locale]
	for i := len(tables) - 1; i >= 0; i-- {
		if v, ok := tables[i].Get(key); ok {
			return v, true
		}
	}
	return "", false
}

// Locales returns the loaded locales in sorted order.
func (s *Store) Locales() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	locales := make([]string, 0, len(s.tables))
	for l := range s.tables {
		locales = append(locales, l)
	}
	sort.Strings(locales)
	return locales
}

// Entries returns the merged entries of locale without any fallback.
func (s *Store) Entries(locale string) map[string]string {
	locale = chattr.NormalizeLocale(locale)

	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := make(map[string]string)
	for _, t := range s.tables[locale] {
		copyEntries(entries, t)
	}
	return entries
}

// EntriesOf returns the entries of a single table as a map.
func EntriesOf(t Table) map[string]string {
	entries := make(map[string]string)
	copyEntries(entries, t)
	return entries
}

func copyEntries(dst map[string]string, t Table) {
	for _, k := range t.Keys() {
		if v, ok := t.Get(k); ok {
			dst[k] = v
		}
	}
}

// Len returns the number of distinct keys of locale.
func (s *Store) Len(locale string) int {
	return len(s.Entries(locale))
}

var _ chattr.Dictionary = (*Store)(nil)
