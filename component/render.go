package component

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/ZaguanLabs/chattr"
)

// Resolver resolves translation keys into templates. *chattr.Resolver
// implements it.
type Resolver interface {
	Resolve(key string, fallback *string, rc *chattr.RenderContext) (*chattr.Template, error)
}

// Renderer replaces translatable and keybind components with text, resolving
// each key for the context's locale.
type Renderer struct {
	resolver Resolver
}

// NewRenderer creates a Renderer backed by r.
func NewRenderer(r Resolver) *Renderer {
	return &Renderer{resolver: r}
}

// Render returns a copy of c in which every translatable and keybind node is
// replaced by rendered text. rc collects the unresolved state of the whole
// tree.
func (r *Renderer) Render(c Component, rc *chattr.RenderContext) (Component, error) {
	switch c := c.(type) {
	case *Translatable:
		return r.RenderTranslatable(c, rc)
	case *Keybind:
		return r.RenderKeybind(c, rc)
	case *Text:
		extra, err := r.renderAll(c.Extra, rc)
		if err != nil {
			return nil, err
		}
		return &Text{Base: Base{Style: c.Style, Extra: extra}, Content: c.Content}, nil
	case nil:
		return nil, fmt.Errorf("rendering component: nil component")
	default:
		return nil, fmt.Errorf("rendering component: unsupported type %T", c)
	}
}

// RenderTranslatable resolves t and expands the template: literal runs become
// text children and slots are replaced by the rendered arguments. A slot
// without an argument renders as {n}. Arguments are rendered only when a slot
// references them, once each.
func (r *Renderer) RenderTranslatable(t *Translatable, rc *chattr.RenderContext) (Component, error) {
	tmpl, err := r.resolver.Resolve(t.Key, t.Fallback, rc)
	if err != nil {
		return nil, fmt.Errorf("rendering %q: %w", t.Key, err)
	}

	extra, err := r.renderAll(t.Extra, rc)
	if err != nil {
		return nil, err
	}

	if tmpl.Slots() == 0 {
		return &Text{Base: Base{Style: t.Style, Extra: extra}, Content: tmpl.Format()}, nil
	}

	var (
		parts  []Component
		args   = make(map[int]Component, len(t.With))
		argErr error
	)
	tmpl.Walk(
		func(s string) {
			parts = append(parts, NewText(s))
		},
		func(i int) {
			if argErr != nil {
				return
			}
			if i >= len(t.With) {
				parts = append(parts, NewText("{"+strconv.Itoa(i)+"}"))
				return
			}
			arg, ok := args[i]
			if !ok {
				arg, argErr = r.Render(t.With[i], rc)
				if argErr != nil {
					return
				}
				args[i] = arg
			}
			parts = append(parts, arg)
		},
	)
	if argErr != nil {
		return nil, argErr
	}

	return &Text{Base: Base{Style: t.Style, Extra: append(parts, extra...)}}, nil
}

// RenderKeybind renders k as a translatable whose key is the keybind action,
// keeping k's style and children.
func (r *Renderer) RenderKeybind(k *Keybind, rc *chattr.RenderContext) (Component, error) {
	t := &Translatable{
		Base: Base{Style: k.Style, Extra: k.Extra},
		Key:  k.Keybind,
	}
	return r.RenderTranslatable(t, rc)
}

// RenderText renders c and stores its plain text as rc's result.
func (r *Renderer) RenderText(c Component, rc *chattr.RenderContext) (string, error) {
	out, err := r.Render(c, rc)
	if err != nil {
		return "", err
	}
	text := PlainText(out)
	rc.SetResult(text)
	return text, nil
}

// RenderString renders c for locale and returns its plain text together with
// whether any key in the tree was unresolved.
func (r *Renderer) RenderString(c Component, locale string) (string, bool, error) {
	rc := chattr.NewRenderContext(locale)
	text, err := r.RenderText(c, rc)
	if err != nil {
		return "", false, err
	}
	return text, rc.Unresolved(), nil
}

func (r *Renderer) renderAll(cs []Component, rc *chattr.RenderContext) ([]Component, error) {
	if len(cs) == 0 {
		return nil, nil
	}
	out := make([]Component, len(cs))
	for i, c := range cs {
		rendered, err := r.Render(c, rc)
		if err != nil {
			return nil, err
		}
		out[i] = rendered
	}
	return out, nil
}

// PlainText flattens c into unstyled text. Unrendered translatable and keybind
// nodes contribute their key.
func PlainText(c Component) string {
	var sb strings.Builder
	writePlain(&sb, c)
	return sb.String()
}

func writePlain(sb *strings.Builder, c Component) {
	switch c := c.(type) {
	case *Text:
		sb.WriteString(c.Content)
	case *Translatable:
		sb.WriteString(c.Key)
	case *Keybind:
		sb.WriteString(c.Keybind)
	case nil:
		return
	}
	for _, child := range c.Common().Extra {
		writePlain(sb, child)
	}
}
