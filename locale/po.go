package locale

import (
	"sort"

	"github.com/leonelquinteros/gotext"
)

// PoTable serves the translated entries of a gettext catalog. The msgid is
// the translation key. Untranslated entries are treated as missing.
type PoTable struct {
	po   *gotext.Po
	keys []string
}

// ParsePo parses a .po catalog.
func ParsePo(data []byte) *PoTable {
	po := gotext.NewPo()
	po.Parse(data)

	t := &PoTable{po: po}
	for id := range po.GetDomain().GetTranslations() {
		if id != "" && po.IsTranslated(id) {
			t.keys = append(t.keys, id)
		}
	}
	sort.Strings(t.keys)
	return t
}

// Get returns the translation of key.
func (t *PoTable) Get(key string) (string, bool) {
	if key == "" || !t.po.IsTranslated(key) {
		return "", false
	}
	return t.po.Get(key), true
}

// Keys returns the translated msgids in sorted order.
func (t *PoTable) Keys() []string {
	return t.keys
}
