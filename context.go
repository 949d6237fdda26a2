package chattr

// RenderContext carries the state of a single render call: the target locale,
// a result slot owned by the caller, and whether any node failed to resolve.
//
// A RenderContext must not be shared between concurrent render calls.
type RenderContext struct {
	locale     string
	result     string
	unresolved bool
}

// NewRenderContext creates a context rendering for locale (e.g., "en_us").
func NewRenderContext(locale string) *RenderContext {
	return &RenderContext{locale: locale}
}

// Locale returns the target locale.
func (c *RenderContext) Locale() string {
	return c.locale
}

// Unresolved reports whether any translation rendered with this context fell
// back to its raw key.
func (c *RenderContext) Unresolved() bool {
	return c.unresolved
}

// MarkUnresolved flags the context as unresolved. The flag is never cleared.
func (c *RenderContext) MarkUnresolved() {
	c.unresolved = true
}

// Result returns the value stored by SetResult.
func (c *RenderContext) Result() string {
	return c.result
}

// SetResult stores the rendered output.
func (c *RenderContext) SetResult(result string) {
	c.result = result
}
