package browser

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/adyen/shopsuite/internal/selector"
)

// Target addresses elements: a selector chain, optionally scoped beneath
// another target, filtered by text and narrowed to one index.
type Target struct {
	chain selector.Chain
	scope *Target
	text  *regexp.Regexp
	index int
	nth   bool
}

// Find targets elements matching chain anywhere in the document
func Find(chain selector.Chain) Target {
	return Target{chain: chain}
}

// Find targets elements matching chain beneath t
func (t Target) Find(chain selector.Chain) Target {
	scope := t
	return Target{chain: chain, scope: &scope}
}

// HasText keeps only elements whose text matches re
func (t Target) HasText(re *regexp.Regexp) Target {
	t.text = re
	return t
}

// HasExactText keeps only elements whose trimmed text equals s
func (t Target) HasExactText(s string) Target {
	return t.HasText(regexp.MustCompile(`^\s*` + regexp.QuoteMeta(s) + `\s*$`))
}

// ContainingText keeps only elements whose text contains s, ignoring case
func (t Target) ContainingText(s string) Target {
	return t.HasText(regexp.MustCompile(`(?i)` + regexp.QuoteMeta(s)))
}

// Nth narrows the target to the element at index i (zero based)
func (t Target) Nth(i int) Target {
	t.index = i
	t.nth = true
	return t
}

// Chain returns the target's own selector chain
func (t Target) Chain() selector.Chain {
	return t.chain
}

// Scope returns the enclosing target, if any
func (t Target) Scope() (Target, bool) {
	if t.scope == nil {
		return Target{}, false
	}
	return *t.scope, true
}

// TextPattern returns the text filter, or nil
func (t Target) TextPattern() *regexp.Regexp {
	return t.text
}

// Index returns the narrowed index, if any
func (t Target) Index() (int, bool) {
	return t.index, t.nth
}

// WithChain returns a copy of t using chain instead of its own
func (t Target) WithChain(chain selector.Chain) Target {
	t.chain = chain
	return t
}

// WithScope returns a copy of t under a different scope
func (t Target) WithScope(scope Target) Target {
	t.scope = &scope
	return t
}

// withoutIndex drops the index narrowing
func (t Target) withoutIndex() Target {
	t.index = 0
	t.nth = false
	return t
}

// String renders the target in playwright's chained selector notation
func (t Target) String() string {
	var b strings.Builder
	if t.scope != nil {
		b.WriteString(t.scope.String())
		b.WriteString(" >> ")
	}
	b.WriteString(t.chain.String())
	if t.text != nil {
		fmt.Fprintf(&b, " :has-text(/%s/)", t.text.String())
	}
	if t.nth {
		fmt.Fprintf(&b, " >> nth=%d", t.index)
	}
	return b.String()
}
