package chattr

import (
	"sync"

	"golang.org/x/text/language"
)

// Translator is an override source consulted before the locale dictionary.
// A hit is returned as-is: it must already be in template syntax.
type Translator interface {
	Translate(key string, tag language.Tag) (*Template, bool)
}

// TranslatorFunc adapts a function to the Translator interface.
type TranslatorFunc func(key string, tag language.Tag) (*Template, bool)

// Translate calls f.
func (f TranslatorFunc) Translate(key string, tag language.Tag) (*Template, bool) {
	return f(key, tag)
}

// Dictionary is a per-locale string store. Lookup returns the raw locale
// string for key, applying whatever locale fallback the store defines.
type Dictionary interface {
	Lookup(key, locale string) (string, bool)
}

// DictionaryFunc adapts a function to the Dictionary interface.
type DictionaryFunc func(key, locale string) (string, bool)

// Lookup calls f.
func (f DictionaryFunc) Lookup(key, locale string) (string, bool) {
	return f(key, locale)
}

// Chain is an ordered set of named translators. The first translator that
// yields a template wins. Chain is safe for concurrent use.
type Chain struct {
	mu      sync.RWMutex
	sources []namedTranslator
}

type namedTranslator struct {
	name string
	t    Translator
}

// NewChain creates an empty translator chain.
func NewChain() *Chain {
	return &Chain{}
}

// Add appends a translator under name. It returns false if name is already
// registered.
func (c *Chain) Add(name string, t Translator) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, s := range c.sources {
		if s.name == name {
			return false
		}
	}
	c.sources = append(c.sources, namedTranslator{name: name, t: t})
	return true
}

// Remove unregisters the translator with the given name.
func (c *Chain) Remove(name string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, s := range c.sources {
		if s.name == name {
			c.sources = append(c.sources[:i:i], c.sources[i+1:]...)
			return true
		}
	}
	return false
}

// Names returns the registered translator names in lookup order.
func (c *Chain) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	names := make([]string, len(c.sources))
	for i, s := range c.sources {
		names[i] = s.name
	}
	return names
}

// Translate implements Translator.
func (c *Chain) Translate(key string, tag language.Tag) (*Template, bool) {
	c.mu.RLock()
	sources := c.sources
	c.mu.RUnlock()

	for _, s := range sources {
		if tmpl, ok := s.t.Translate(key, tag); ok && tmpl != nil {
			return tmpl, true
		}
	}
	return nil, false
}

// Verify Chain implements Translator
var _ Translator = (*Chain)(nil)
