package chattr

import "fmt"

// LocaleError indicates a locale identifier that could not be parsed.
type LocaleError struct {
	Locale string
	Cause  error
}

func (e *LocaleError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("invalid locale %q: %v", e.Locale, e.Cause)
	}
	return fmt.Sprintf("invalid locale %q", e.Locale)
}

func (e *LocaleError) Unwrap() error {
	return e.Cause
}

// PlaceholderError indicates a positional placeholder whose index cannot be
// mapped to a template slot (zero, or too large to parse).
type PlaceholderError struct {
	Placeholder string
	Cause       error
}

func (e *PlaceholderError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("placeholder error: %s: %v", e.Placeholder, e.Cause)
	}
	return fmt.Sprintf("placeholder error: %s", e.Placeholder)
}

func (e *PlaceholderError) Unwrap() error {
	return e.Cause
}

// TemplateError indicates a malformed template pattern.
type TemplateError struct {
	Pattern string
	Pos     int // Byte offset of the offending element
	Message string
}

func (e *TemplateError) Error() string {
	return fmt.Sprintf("template error at %d: %s", e.Pos, e.Message)
}
