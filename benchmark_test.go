package chattr_test

import (
	"testing"

	"github.com/ZaguanLabs/chattr"
	"github.com/ZaguanLabs/chattr/component"
	"github.com/ZaguanLabs/chattr/locale"
)

func benchStore() *locale.Store {
	store := locale.NewStore("en_us")
	store.Add("en_us", locale.MapTable{
		"chat.type.text":     "<%s> %s",
		"death.attack.arrow": "%1$s was shot by %2$s",
		"gui.done":           "Done",
	})
	store.Add("de_de", locale.MapTable{
		"death.attack.arrow": "%2$s erschoss %1$s",
	})
	return store
}

func BenchmarkEscapeTemplate(b *testing.B) {
	s := "It's {a} test with 'quotes' and {braces}"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chattr.EscapeTemplate(s)
	}
}

func BenchmarkRewritePlaceholders(b *testing.B) {
	s := "%s took %2$s from %1$s and %s"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		chattr.RewritePlaceholders(s)
	}
}

func BenchmarkNewTemplate(b *testing.B) {
	for i := 0; i < b.N; i++ {
		chattr.NewTemplate("<{0}> {1} ''quoted'' '{'literal'}'")
	}
}

func BenchmarkResolver_Resolve(b *testing.B) {
	r := chattr.NewResolver(benchStore())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Translate("death.attack.arrow", chattr.NewRenderContext("de_de"))
	}
}

func BenchmarkResolver_Unresolved(b *testing.B) {
	r := chattr.NewResolver(benchStore())
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		r.Translate("gui.missing", chattr.NewRenderContext("de_de"))
	}
}

func BenchmarkRenderer_RenderString(b *testing.B) {
	msg, err := component.Decode([]byte(`{"translate":"chat.type.text","with":["Steve",{"translate":"gui.done"}]}`))
	if err != nil {
		b.Fatal(err)
	}
	renderer := component.NewRenderer(chattr.NewResolver(benchStore()))
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		renderer.RenderString(msg, "en_us")
	}
}

func BenchmarkLanguageName(b *testing.B) {
	for i := 0; i < b.N; i++ {
		chattr.LanguageName("de_de")
	}
}
