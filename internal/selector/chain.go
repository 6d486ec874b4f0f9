package selector

import (
	"fmt"
	"strings"
)

// Chain is an ordered list of alternative selectors for one element.
// Candidates are tried in order: a stable data-testid attribute first, then
// semantic HTML or ARIA, then a plain class name.
type Chain []string

// New creates a chain from candidates, dropping empty entries
func New(candidates ...string) Chain {
	c := make(Chain, 0, len(candidates))
	for _, cand := range candidates {
		if cand = strings.TrimSpace(cand); cand != "" {
			c = append(c, cand)
		}
	}
	return c
}

// Of wraps a single selector
func Of(sel string) Chain {
	return New(sel)
}

// TestID returns a chain starting with the data-testid attribute selector
// for id followed by the given fallbacks.
func TestID(id string, fallbacks ...string) Chain {
	return New(append([]string{fmt.Sprintf(`[data-testid="%s"]`, id)}, fallbacks...)...)
}

// ContainsText returns a single-candidate chain matching any element whose
// text matches one of the alternatives, case-insensitively.
func ContainsText(alternatives ...string) Chain {
	quoted := make([]string, len(alternatives))
	for i, a := range alternatives {
		quoted[i] = escapeRegexp(a)
	}
	return Of("text=/" + strings.Join(quoted, "|") + "/i")
}

// Candidates returns a copy of the candidates in precedence order
func (c Chain) Candidates() []string {
	return append([]string(nil), c...)
}

// Preferred returns the highest-precedence candidate
func (c Chain) Preferred() string {
	if len(c) == 0 {
		return ""
	}
	return c[0]
}

// Len returns the number of candidates
func (c Chain) Len() int {
	return len(c)
}

// IsZero reports whether the chain has no candidates
func (c Chain) IsZero() bool {
	return len(c) == 0
}

// Append returns a new chain with more fallbacks after the existing ones
func (c Chain) Append(more ...string) Chain {
	out := append(c.Candidates(), more...)
	return New(out...)
}

// String joins candidates into a CSS selector list
func (c Chain) String() string {
	return strings.Join(c, ", ")
}

func escapeRegexp(s string) string {
	var b strings.Builder
	for _, r := range s {
		if strings.ContainsRune(`\/.+*?()[]{}|^$`, r) {
			b.WriteRune('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
