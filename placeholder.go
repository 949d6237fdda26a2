package chattr

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

var (
	stringPlaceholder     = regexp.MustCompile(`%s`)
	positionalPlaceholder = regexp.MustCompile(`%([0-9]+)\$s`)

	templateEscaper = strings.NewReplacer("{", "'{", "}", "'}")
)

// EscapeTemplate protects template syntax in a raw locale string: every
// single quote is doubled, then every brace gets a leading quote.
func EscapeTemplate(s string) string {
	s = strings.ReplaceAll(s, "'", "''")
	return templateEscaper.Replace(s)
}

// RewritePlaceholders converts printf-style placeholders into template slots
// and returns the rewritten string with the number of placeholders replaced.
//
// The n-th %s (left to right) becomes {n}; afterwards every %k$s becomes
// {k-1}. Both styles share one index space and may be mixed.
func RewritePlaceholders(s string) (string, int, error) {
	args := 0

	n := 0
	s = stringPlaceholder.ReplaceAllStringFunc(s, func(string) string {
		slot := "{" + strconv.Itoa(n) + "}"
		n++
		args++
		return slot
	})

	var rewriteErr error
	s = positionalPlaceholder.ReplaceAllStringFunc(s, func(m string) string {
		if rewriteErr != nil {
			return m
		}
		idx, err := positionalIndex(m)
		if err != nil {
			rewriteErr = err
			return m
		}
		args++
		return "{" + strconv.Itoa(idx) + "}"
	})
	if rewriteErr != nil {
		return "", 0, rewriteErr
	}

	return s, args, nil
}

// positionalIndex returns the 0-based slot for a %k$s match.
func positionalIndex(m string) (int, error) {
	digits := positionalPlaceholder.FindStringSubmatch(m)[1]
	k, err := strconv.Atoi(digits)
	if err != nil {
		return 0, &PlaceholderError{Placeholder: m, Cause: err}
	}
	if k == 0 {
		return 0, &PlaceholderError{Placeholder: m, Cause: fmt.Errorf("positional index must be at least 1")}
	}
	return k - 1, nil
}

// PlaceholderSignature describes the placeholders of a raw locale string:
// the number of %s occurrences and the sorted positional indices.
type PlaceholderSignature struct {
	Sequential int
	Positional []int
}

// Slots returns the sorted template slot indices the placeholders map to:
// 0..Sequential-1 followed by k-1 for every %k$s.
func (p PlaceholderSignature) Slots() []int {
	slots := make([]int, 0, p.Total())
	for i := 0; i < p.Sequential; i++ {
		slots = append(slots, i)
	}
	for _, k := range p.Positional {
		slots = append(slots, k-1)
	}
	sort.Ints(slots)
	return slots
}

// Equal reports whether two signatures fill the same template slots, so
// that "%s by %s" and "%2$s by %1$s" are equal.
func (p PlaceholderSignature) Equal(other PlaceholderSignature) bool {
	a, b := p.Slots(), other.Slots()
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Total returns the number of placeholders.
func (p PlaceholderSignature) Total() int {
	return p.Sequential + len(p.Positional)
}

// CountPlaceholders returns the placeholder signature of a raw locale string.
// Positional indices that do not parse are reported as 0.
func CountPlaceholders(s string) PlaceholderSignature {
	sig := PlaceholderSignature{
		Sequential: len(stringPlaceholder.FindAllStringIndex(s, -1)),
	}
	for _, m := range positionalPlaceholder.FindAllStringSubmatch(s, -1) {
		k, err := strconv.Atoi(m[1])
		if err != nil {
			k = 0
		}
		sig.Positional = append(sig.Positional, k)
	}
	sort.Ints(sig.Positional)
	return sig
}
