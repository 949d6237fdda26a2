// Package chattr resolves translatable chat components into localized
// message templates.
//
// A translation key is looked up in an optional global translator chain, then
// in a locale dictionary, then in a caller supplied fallback string, and
// finally the key itself is used. Dictionary strings use printf-style
// placeholders (%s, %1$s) which are rewritten into positional template slots
// ({0}, {1}), with the template's own quote and brace syntax escaped first.
//
// Basic usage:
//
//	import (
//	    "github.com/ZaguanLabs/chattr"
//	    "github.com/ZaguanLabs/chattr/component"
//	    "github.com/ZaguanLabs/chattr/locale"
//	)
//
//	func main() {
//	    store := locale.NewStore("en_us")
//	    if _, err := locale.LoadDir(context.Background(), store, "./lang"); err != nil {
//	        log.Fatal(err)
//	    }
//
//	    r := chattr.NewResolver(store)
//	    msg, _ := component.Decode([]byte(`{"translate":"chat.type.text","with":["Steve","hi"]}`))
//
//	    text, unresolved, err := component.NewRenderer(r).RenderString(msg, "de_de")
//	    if err != nil {
//	        log.Fatal(err)
//	    }
//	    fmt.Println(text, unresolved) // <Steve> hi false
//	}
package chattr
