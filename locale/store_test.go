package locale

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestStore_Lookup(t *testing.T) {
	s := NewStore("en_us")
	s.Add("en_us", MapTable{"gui.done": "Done", "key.jump": "Jump"})
	s.Add("de_DE", MapTable{"gui.done": "Fertig"})

	v, ok := s.Lookup("gui.done", "de_de")
	assert.True(t, ok)
	assert.Equal(t, "Fertig", v)

	v, ok = s.Lookup("gui.done", "DE-de")
	assert.True(t, ok)
	assert.Equal(t, "Fertig", v, "locale should be normalized")

	v, ok = s.Lookup("key.jump", "de_de")
	assert.True(t, ok)
	assert.Equal(t, "Jump", v, "missing key should fall back to the default locale")

	_, ok = s.Lookup("missing", "de_de")
	assert.False(t, ok)
}

func TestStore_BaseLanguageFallback(t *testing.T) {
	s := NewStore("en_us")
	s.Add("en_us", MapTable{"gui.done": "Done"})
	s.Add("pt", MapTable{"gui.done": "Concluído"})
	s.Add("pt_br", MapTable{"key.jump": "Pular"})

	v, ok := s.Lookup("gui.done", "pt_br")
	assert.True(t, ok)
	assert.Equal(t, "Concluído", v)

	v, _ = s.Lookup("key.jump", "pt_br")
	assert.Equal(t, "Pular", v)
}

func TestStore_NoDefault(t *testing.T) {
	s := NewStore("")
	s.Add("en_us", MapTable{"gui.done": "Done"})

	_, ok := s.Lookup("gui.done", "de_de")
	assert.False(t, ok)
}

func TestStore_LaterTableWins(t *testing.T) {
	s := NewStore("en_us")
	s.Add("en_us", MapTable{"gui.done": "Done", "gui.cancel": "Cancel"})
	s.Add("en_us", MapTable{"gui.done": "Finished"})

	v, _ := s.Lookup("gui.done", "en_us")
	assert.Equal(t, "Finished", v)

	assert.Equal(t, map[string]string{
		"gui.done":   "Finished",
		"gui.cancel": "Cancel",
	}, s.Entries("en_us"))
	assert.Equal(t, 2, s.Len("en_us"))
}

func TestStore_Locales(t *testing.T) {
	s := NewStore("en_us")
	s.Add("fr_fr", MapTable{})
	s.Add("de_de", MapTable{})
	s.Add("en_us", MapTable{})

	assert.Equal(t, []string{"de_de", "en_us", "fr_fr"}, s.Locales())
	assert.Equal(t, "en_us", s.DefaultLocale())
}

func TestStore_Concurrent(t *testing.T) {
	s := NewStore("en_us")
	s.Add("en_us", MapTable{"gui.done": "Done"})

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			s.Add("de_de", MapTable{"gui.done": "Fertig"})
		}()
		go func() {
			defer wg.Done()
			_, ok := s.Lookup("gui.done", "de_de")
			assert.True(t, ok)
		}()
	}
	wg.Wait()
}

func TestMapTable_Keys(t *testing.T) {
	m := MapTable{"b": "2", "a": "1"}
	assert.Equal(t, []string{"a", "b"}, m.Keys())
}

func TestEntriesOf(t *testing.T) {
	table := ParsePo([]byte("msgid \"gui.done\"\nmsgstr \"Fertig\"\n"))
	assert.Equal(t, map[string]string{"gui.done": "Fertig"}, EntriesOf(table))
}
