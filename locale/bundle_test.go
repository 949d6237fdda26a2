package locale

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"

	"github.com/ZaguanLabs/chattr"
)

func TestBundleTranslator_AddMessages(t *testing.T) {
	b := NewBundleTranslator(language.English)
	require.NoError(t, b.AddMessages(language.German, map[string]string{
		"chat.type.text": "<{0}> {1}",
		"gui.done":       "Fertig",
	}))

	tmpl, ok := b.Translate("chat.type.text", language.German)
	require.True(t, ok)
	assert.Equal(t, 2, tmpl.Slots())
	assert.Equal(t, "<Steve> hi", tmpl.Format("Steve", "hi"))

	tmpl, ok = b.Translate("gui.done", language.German)
	require.True(t, ok)
	assert.Equal(t, "Fertig", tmpl.Format())

	_, ok = b.Translate("missing", language.German)
	assert.False(t, ok)
}

func TestBundleTranslator_MalformedTemplate(t *testing.T) {
	b := NewBundleTranslator(language.English)
	require.NoError(t, b.AddMessages(language.English, map[string]string{
		"broken": "{0",
	}))

	_, ok := b.Translate("broken", language.English)
	assert.False(t, ok)
}

func TestBundleTranslator_LoadMessageFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "active.de.toml")
	require.NoError(t, os.WriteFile(path, []byte(`"key.jump" = "Springen"`+"\n"), 0o644))

	b := NewBundleTranslator(language.English)
	require.NoError(t, b.LoadMessageFile(path))

	tmpl, ok := b.Translate("key.jump", language.German)
	require.True(t, ok)
	assert.Equal(t, "Springen", tmpl.Format())

	var loadErr *LoadError
	assert.ErrorAs(t, b.LoadMessageFile(filepath.Join(dir, "active.fr.toml")), &loadErr)
}

func TestBundleTranslator_InChain(t *testing.T) {
	b := NewBundleTranslator(language.English)
	require.NoError(t, b.AddMessages(language.German, map[string]string{
		"gui.done": "Erledigt",
	}))

	chain := chattr.NewChain()
	chain.Add("overrides", b)

	store := NewStore("en_us")
	store.Add("de_de", MapTable{"gui.done": "Fertig"})

	r := chattr.NewResolver(store, chattr.WithGlobalTranslator(chain))
	tmpl, err := r.Translate("gui.done", chattr.NewRenderContext("de_de"))
	require.NoError(t, err)
	assert.Equal(t, "Erledigt", tmpl.Format())
}
