package component

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecode_String(t *testing.T) {
	c, err := Decode([]byte(`"hello"`))
	require.NoError(t, err)

	text, ok := c.(*Text)
	require.True(t, ok, "expected *Text, got %T", c)
	assert.Equal(t, "hello", text.Content)
}

func TestDecode_Translatable(t *testing.T) {
	c, err := Decode([]byte(`{
		"translate": "chat.type.text",
		"with": ["Steve", {"text": "hi", "bold": true}],
		"color": "yellow"
	}`))
	require.NoError(t, err)

	tr, ok := c.(*Translatable)
	require.True(t, ok, "expected *Translatable, got %T", c)
	assert.Equal(t, "chat.type.text", tr.Key)
	assert.Nil(t, tr.Fallback)
	assert.Equal(t, "yellow", tr.Style.Color)
	require.Len(t, tr.With, 2)
	assert.Equal(t, "Steve", tr.With[0].(*Text).Content)

	arg := tr.With[1].(*Text)
	assert.Equal(t, "hi", arg.Content)
	require.NotNil(t, arg.Style.Bold)
	assert.True(t, *arg.Style.Bold)
	assert.Nil(t, arg.Style.Italic)
}

func TestDecode_Fallback(t *testing.T) {
	c, err := Decode([]byte(`{"translate": "custom.key", "fallback": "Custom %s"}`))
	require.NoError(t, err)

	tr := c.(*Translatable)
	require.NotNil(t, tr.Fallback)
	assert.Equal(t, "Custom %s", *tr.Fallback)
}

func TestDecode_Keybind(t *testing.T) {
	c, err := Decode([]byte(`{"keybind": "key.jump", "italic": false}`))
	require.NoError(t, err)

	kb, ok := c.(*Keybind)
	require.True(t, ok, "expected *Keybind, got %T", c)
	assert.Equal(t, "key.jump", kb.Keybind)
	require.NotNil(t, kb.Style.Italic)
	assert.False(t, *kb.Style.Italic)
}

func TestDecode_ArrayAppendsToFirst(t *testing.T) {
	c, err := Decode([]byte(`[{"text": "a", "extra": ["b"]}, "c", {"keybind": "key.use"}]`))
	require.NoError(t, err)

	text := c.(*Text)
	assert.Equal(t, "a", text.Content)
	require.Len(t, text.Extra, 3)
	assert.Equal(t, "b", text.Extra[0].(*Text).Content)
	assert.Equal(t, "c", text.Extra[1].(*Text).Content)
	assert.Equal(t, "key.use", text.Extra[2].(*Keybind).Keybind)
}

func TestDecode_UnsupportedContent(t *testing.T) {
	c, err := Decode([]byte(`{"score": {"name": "x", "objective": "y"}, "extra": ["tail"]}`))
	require.NoError(t, err)

	assert.Equal(t, "tail", PlainText(c))
}

func TestDecode_Errors(t *testing.T) {
	_, err := Decode([]byte(`{"text": `))
	assert.ErrorIs(t, err, ErrInvalidJSON)

	_, err = Decode([]byte(`[]`))
	assert.Error(t, err)

	_, err = Decode([]byte(`null`))
	assert.Error(t, err)

	_, err = Decode([]byte(`{"translate": "k", "with": [null]}`))
	assert.Error(t, err)
}
