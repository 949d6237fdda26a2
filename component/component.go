// Package component models game chat components: styled text, translatable
// messages with arguments, and keybind references, each with child
// components appended after it.
package component

// Style holds the formatting attributes of a component. Nil flags and empty
// strings are unset and inherited from the parent.
type Style struct {
	Color         string
	Bold          *bool
	Italic        *bool
	Underlined    *bool
	Strikethrough *bool
	Obfuscated    *bool
	Font          string
	Insertion     string
}

// Base holds what every component has: a style and child components.
type Base struct {
	Style Style
	Extra []Component
}

// Common returns the shared part of the component.
func (b Base) Common() Base {
	return b
}

// Component is a node of a chat component tree: *Text, *Translatable or
// *Keybind.
type Component interface {
	Common() Base
}

// Text is literal text.
type Text struct {
	Base
	Content string
}

// Translatable is a message identified by a translation key. With holds the
// arguments substituted into the translated template.
type Translatable struct {
	Base
	Key      string
	Fallback *string
	With     []Component
}

// Keybind shows the key bound to a client action, e.g. "key.jump".
type Keybind struct {
	Base
	Keybind string
}

// NewText creates a text component.
func NewText(content string, extra ...Component) *Text {
	return &Text{Base: Base{Extra: extra}, Content: content}
}

// NewTranslatable creates a translatable component with arguments.
func NewTranslatable(key string, with ...Component) *Translatable {
	return &Translatable{Key: key, With: with}
}

// NewKeybind creates a keybind component.
func NewKeybind(keybind string) *Keybind {
	return &Keybind{Keybind: keybind}
}

// withExtra returns a copy of c with extra appended to its children.
func withExtra(c Component, extra []Component) Component {
	if len(extra) == 0 {
		return c
	}
	switch c := c.(type) {
	case *Text:
		cp := *c
		cp.Extra = append(append([]Component(nil), c.Extra...), extra...)
		return &cp
	case *Translatable:
		cp := *c
		cp.Extra = append(append([]Component(nil), c.Extra...), extra...)
		return &cp
	case *Keybind:
		cp := *c
		cp.Extra = append(append([]Component(nil), c.Extra...), extra...)
		return &cp
	}
	return c
}
