package locale

import (
	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/pelletier/go-toml/v2"
	"golang.org/x/text/language"

	"github.com/ZaguanLabs/chattr"
)

// BundleTranslator is a chattr.Translator over a go-i18n message bundle.
//
// Bundle messages are trusted templates: they are parsed in brace syntax
// ({0}, '' for a quote) and are not escaped or placeholder-rewritten.
type BundleTranslator struct {
	bundle *i18n.Bundle
}

// NewBundleTranslator creates an empty bundle with the given default
// language. TOML message files are supported.
func NewBundleTranslator(defaultLanguage language.Tag) *BundleTranslator {
	bundle := i18n.NewBundle(defaultLanguage)
	bundle.RegisterUnmarshalFunc("toml", toml.Unmarshal)
	return &BundleTranslator{bundle: bundle}
}

// LoadMessageFile loads a message file such as "active.de.toml".
func (b *BundleTranslator) LoadMessageFile(path string) error {
	if _, err := b.bundle.LoadMessageFile(path); err != nil {
		return &LoadError{Path: path, Cause: err}
	}
	return nil
}

// AddMessages registers key to template mappings for tag.
func (b *BundleTranslator) AddMessages(tag language.Tag, messages map[string]string) error {
	msgs := make([]*i18n.Message, 0, len(messages))
	for id, other := range messages {
		msgs = append(msgs, &i18n.Message{ID: id, Other: other})
	}
	return b.bundle.AddMessages(tag, msgs...)
}

// Translate implements chattr.Translator. Messages that do not parse as
// templates are treated as absent.
func (b *BundleTranslator) Translate(key string, tag language.Tag) (*chattr.Template, bool) {
	localizer := i18n.NewLocalizer(b.bundle, tag.String())
	msg, err := localizer.Localize(&i18n.LocalizeConfig{MessageID: key})
	if err != nil {
		return nil, false
	}

	tmpl, err := chattr.NewTemplate(msg)
	if err != nil {
		return nil, false
	}
	return tmpl, true
}

var _ chattr.Translator = (*BundleTranslator)(nil)
