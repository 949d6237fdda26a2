// Package provider defines machine translation backends used to fill
// missing dictionary entries.
package provider

import "context"

// Provider translates a batch of raw locale strings.
//
// Implementations must return exactly one result per input text, in order,
// and must leave %s and %k$s placeholders untouched.
type Provider interface {
	Translate(ctx context.Context, req Request) ([]string, error)
}

// Request is a batch of strings to translate.
type Request struct {
	Texts      []string // Raw locale strings
	Keys       []string // Translation keys matching Texts, used as hints (optional)
	TargetLang string   // Target locale (e.g., "de_de")
	SourceLang string   // Source locale (default: "en_us")

	// Context describes where the strings are shown (e.g., "Minecraft server plugin").
	Context string

	// Glossary holds preferred translations for specific terms.
	Glossary map[string]string
}
