package chattr

import (
	"fmt"
	"strconv"
	"strings"
)

// Template is a parsed message pattern with positional slots ({0}, {1}, ...).
//
// The pattern syntax follows the quoting rules of java.text.MessageFormat so
// that patterns produced for, and by, existing clients render identically:
//
//   - '' is a literal single quote
//   - a lone ' toggles a quoted section in which braces are literal; an
//     unterminated quote runs to the end of the pattern
//   - {n} outside quotes is an argument slot, n a non-negative decimal index
//   - a } outside quotes and outside an element is literal
//
// Format types such as {0,number} are not supported; substitution never
// applies locale-sensitive formatting.
type Template struct {
	pattern  string
	segments []segment
	slots    int
}

// segment is either literal text or an argument slot (arg >= 0).
type segment struct {
	text string
	arg  int
}

// NewTemplate parses pattern.
func NewTemplate(pattern string) (*Template, error) {
	t := &Template{pattern: pattern}

	var lit strings.Builder
	inQuote := false

	flush := func() {
		if lit.Len() > 0 {
			t.segments = append(t.segments, segment{text: lit.String(), arg: -1})
			lit.Reset()
		}
	}

	for i := 0; i < len(pattern); i++ {
		c := pattern[i]
		switch {
		case c == '\'':
			if i+1 < len(pattern) && pattern[i+1] == '\'' {
				lit.WriteByte('\'')
				i++
			} else {
				inQuote = !inQuote
			}
		case c == '{' && !inQuote:
			end := strings.IndexByte(pattern[i+1:], '}')
			if end < 0 {
				return nil, &TemplateError{Pattern: pattern, Pos: i, Message: "unmatched braces"}
			}
			body := pattern[i+1 : i+1+end]
			idx, err := parseArgIndex(body)
			if err != nil {
				return nil, &TemplateError{Pattern: pattern, Pos: i, Message: err.Error()}
			}
			flush()
			t.segments = append(t.segments, segment{arg: idx})
			t.slots++
			i += end + 1
		default:
			lit.WriteByte(c)
		}
	}
	flush()

	return t, nil
}

// MustTemplate is like NewTemplate but panics on a malformed pattern.
// It is intended for patterns known at compile time.
func MustTemplate(pattern string) *Template {
	t, err := NewTemplate(pattern)
	if err != nil {
		panic(err)
	}
	return t
}

func parseArgIndex(body string) (int, error) {
	if strings.ContainsAny(body, ",{") {
		return 0, fmt.Errorf("unsupported format element {%s}", body)
	}
	if body == "" {
		return 0, fmt.Errorf("empty argument index")
	}
	for i := 0; i < len(body); i++ {
		if body[i] < '0' || body[i] > '9' {
			return 0, fmt.Errorf("can't parse argument number %q", body)
		}
	}
	idx, err := strconv.Atoi(body)
	if err != nil {
		return 0, fmt.Errorf("can't parse argument number %q: %w", body, err)
	}
	return idx, nil
}

// Pattern returns the source pattern.
func (t *Template) Pattern() string {
	return t.pattern
}

// Slots returns the number of argument slots in the template.
func (t *Template) Slots() int {
	return t.slots
}

// Args returns the slot indices in the order they appear.
func (t *Template) Args() []int {
	args := make([]int, 0, t.slots)
	for _, s := range t.segments {
		if s.arg >= 0 {
			args = append(args, s.arg)
		}
	}
	return args
}

// Walk calls literal for every run of literal text and arg for every slot,
// in pattern order.
func (t *Template) Walk(literal func(string), arg func(int)) {
	for _, s := range t.segments {
		if s.arg < 0 {
			literal(s.text)
		} else {
			arg(s.arg)
		}
	}
}

// Format substitutes args into the template. A slot without a matching
// argument is written back as {n}.
func (t *Template) Format(args ...any) string {
	var sb strings.Builder
	t.Walk(
		func(text string) { sb.WriteString(text) },
		func(i int) {
			if i >= len(args) {
				sb.WriteString("{" + strconv.Itoa(i) + "}")
				return
			}
			sb.WriteString(fmt.Sprint(args[i]))
		},
	)
	return sb.String()
}

// String returns the pattern.
func (t *Template) String() string {
	return t.pattern
}
