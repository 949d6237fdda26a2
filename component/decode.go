package component

import (
	"errors"
	"fmt"

	"github.com/tidwall/gjson"
)

// ErrInvalidJSON is returned by Decode for input that is not valid JSON.
var ErrInvalidJSON = errors.New("invalid chat component JSON")

// Decode parses a chat component from its JSON form.
//
// A JSON string is a text component. An array is its first element with the
// remaining elements appended as children. An object carries one of the
// content fields "text", "translate" (with "with" and "fallback") or
// "keybind", the style fields and "extra". Objects with any other content
// (score, selector, nbt) decode as empty text so their style and children
// still render.
func Decode(data []byte) (Component, error) {
	if !gjson.ValidBytes(data) {
		return nil, ErrInvalidJSON
	}
	return decodeValue(gjson.ParseBytes(data))
}

func decodeValue(v gjson.Result) (Component, error) {
	switch {
	case v.IsArray():
		elems := v.Array()
		if len(elems) == 0 {
			return nil, fmt.Errorf("decoding component: empty array")
		}
		first, err := decodeValue(elems[0])
		if err != nil {
			return nil, err
		}
		rest, err := decodeList(elems[1:])
		if err != nil {
			return nil, err
		}
		return withExtra(first, rest), nil
	case v.IsObject():
		return decodeObject(v)
	case v.Type == gjson.String, v.Type == gjson.Number, v.Type == gjson.True, v.Type == gjson.False:
		return NewText(v.String()), nil
	default:
		return nil, fmt.Errorf("decoding component: unexpected %s value", v.Type)
	}
}

func decodeList(values []gjson.Result) ([]Component, error) {
	if len(values) == 0 {
		return nil, nil
	}
	out := make([]Component, 0, len(values))
	for _, v := range values {
		c, err := decodeValue(v)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, nil
}

func decodeObject(v gjson.Result) (Component, error) {
	extra, err := decodeList(v.Get("extra").Array())
	if err != nil {
		return nil, fmt.Errorf("decoding extra: %w", err)
	}
	base := Base{Style: decodeStyle(v), Extra: extra}

	if text := v.Get("text"); text.Exists() {
		return &Text{Base: base, Content: text.String()}, nil
	}

	if key := v.Get("translate"); key.Exists() {
		with, err := decodeList(v.Get("with").Array())
		if err != nil {
			return nil, fmt.Errorf("decoding arguments of %q: %w", key.String(), err)
		}
		t := &Translatable{Base: base, Key: key.String(), With: with}
		if fb := v.Get("fallback"); fb.Exists() {
			s := fb.String()
			t.Fallback = &s
		}
		return t, nil
	}

	if kb := v.Get("keybind"); kb.Exists() {
		return &Keybind{Base: base, Keybind: kb.String()}, nil
	}

	return &Text{Base: base}, nil
}

func decodeStyle(v gjson.Result) Style {
	return Style{
		Color:         v.Get("color").String(),
		Bold:          decodeFlag(v, "bold"),
		Italic:        decodeFlag(v, "italic"),
		Underlined:    decodeFlag(v, "underlined"),
		Strikethrough: decodeFlag(v, "strikethrough"),
		Obfuscated:    decodeFlag(v, "obfuscated"),
		Font:          v.Get("font").String(),
		Insertion:     v.Get("insertion").String(),
	}
}

func decodeFlag(v gjson.Result, name string) *bool {
	r := v.Get(name)
	if !r.Exists() {
		return nil
	}
	b := r.Bool()
	return &b
}
