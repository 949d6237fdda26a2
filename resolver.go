package chattr

import (
	"sync"

	"github.com/rs/zerolog"
)

// Marker wraps the text of a key that could not be resolved so that clients
// can flag it visually.
type Marker struct {
	Prefix string
	Suffix string
}

// DefaultMarker is a leading percent sign and a trailing zero-width space.
var DefaultMarker = Marker{Prefix: "%", Suffix: "\u200b"}

// Resolver turns translation keys into templates for a render context.
//
// Lookup order: global translator, locale dictionary, fallback string, and
// finally the key itself. Apart from the global translator hit, the chosen
// string is escaped and its %s / %k$s placeholders are rewritten to slots.
//
// A Resolver is safe for concurrent use as long as its dictionary and
// translator are.
type Resolver struct {
	global Translator
	dict   Dictionary
	marker Marker
	logger zerolog.Logger

	// missing deduplicates debug logs for unresolved keys.
	// The key is locale+"\x00"+key.
	missing sync.Map
}

// Option is a functional option for configuring the Resolver.
type Option func(*Resolver)

// WithGlobalTranslator sets the override translator (usually a *Chain).
func WithGlobalTranslator(t Translator) Option {
	return func(r *Resolver) {
		r.global = t
	}
}

// WithUnresolvedMarker sets the marker wrapped around unresolved keys.
// The marker is template text: quotes and braces in it are interpreted.
func WithUnresolvedMarker(m Marker) Option {
	return func(r *Resolver) {
		r.marker = m
	}
}

// WithLogger sets the logger used to report unresolved keys.
func WithLogger(logger zerolog.Logger) Option {
	return func(r *Resolver) {
		r.logger = logger
	}
}

// NewResolver creates a Resolver backed by dict. dict may be nil.
func NewResolver(dict Dictionary, opts ...Option) *Resolver {
	r := &Resolver{
		dict:   dict,
		marker: DefaultMarker,
		logger: zerolog.Nop(),
	}

	for _, opt := range opts {
		opt(r)
	}

	return r
}

// Translate resolves key without a fallback string.
func (r *Resolver) Translate(key string, rc *RenderContext) (*Template, error) {
	return r.Resolve(key, nil, rc)
}

// Resolve resolves key for rc's locale. fallback, when non-nil, is used as the
// source string if no dictionary entry exists.
//
// If neither dictionary nor fallback provide a string and the key itself has
// no placeholders, rc is marked unresolved and the returned template renders
// the key wrapped in the resolver's Marker.
//
// Errors come from locale parsing and from positional placeholders whose
// index is zero or overflows. The locale is parsed on every call, with or
// without a global translator.
func (r *Resolver) Resolve(key string, fallback *string, rc *RenderContext) (*Template, error) {
	tag, err := ParseLocale(rc.Locale())
	if err != nil {
		return nil, err
	}

	if r.global != nil {
		if tmpl, ok := r.global.Translate(key, tag); ok && tmpl != nil {
			return tmpl, nil
		}
	}

	source, fromKey := r.source(key, fallback, rc)

	escaped := EscapeTemplate(source)
	rewritten, args, err := RewritePlaceholders(escaped)
	if err != nil {
		return nil, err
	}

	if fromKey && args == 0 {
		rc.MarkUnresolved()
		r.logMissingOnce(rc.Locale(), key)
		return NewTemplate(r.marker.Prefix + escaped + r.marker.Suffix)
	}

	return NewTemplate(rewritten)
}

// source picks the string to template. fromKey reports that the key itself
// was used.
func (r *Resolver) source(key string, fallback *string, rc *RenderContext) (string, bool) {
	if r.dict != nil {
		if s, ok := r.dict.Lookup(key, rc.Locale()); ok {
			return s, false
		}
	}
	if fallback != nil {
		return *fallback, false
	}
	return key, true
}

// logMissingOnce logs an unresolved key once per (locale, key) pair.
// Nothing is recorded unless debug logging is enabled.
func (r *Resolver) logMissingOnce(locale, key string) {
	if r.logger.GetLevel() > zerolog.DebugLevel || zerolog.GlobalLevel() > zerolog.DebugLevel {
		return
	}

	id := locale + "\x00" + key
	if _, loaded := r.missing.LoadOrStore(id, struct{}{}); !loaded {
		r.logger.Debug().
			Str("locale", locale).
			Str("key", key).
			Msg("Unresolved translation key")
	}
}
