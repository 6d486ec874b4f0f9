package storefront

import (
	"fmt"
	"html"
	"html/template"
	"strings"
)

// Markup selects which selector alternative the storefront renders, so the
// suite's fallback chains can be exercised against each of them.
type Markup string

const (
	// MarkupTestID renders data-testid attributes alongside everything else
	MarkupTestID Markup = "testid"
	// MarkupSemantic drops data-testid but keeps ids, roles and aria labels
	MarkupSemantic Markup = "semantic"
	// MarkupClass renders class names only
	MarkupClass Markup = "class"
)

// Markups lists the variants in order of selector precedence
var Markups = []Markup{MarkupTestID, MarkupSemantic, MarkupClass}

// ParseMarkup validates a markup name
func ParseMarkup(s string) (Markup, error) {
	for _, m := range Markups {
		if string(m) == strings.ToLower(s) {
			return m, nil
		}
	}
	return "", fmt.Errorf("unknown markup %q: want testid, semantic or class", s)
}

// attrs renders the attributes of one element. extra holds semantic
// attributes such as `id="cookie-consent"` or `aria-label="Search"`.
func (m Markup) attrs(testID, class string, extra ...string) template.HTMLAttr {
	var b strings.Builder
	if m == MarkupTestID && testID != "" {
		fmt.Fprintf(&b, `data-testid="%s" `, html.EscapeString(testID))
	}
	if m != MarkupClass {
		for _, e := range extra {
			b.WriteString(e)
			b.WriteByte(' ')
		}
	}
	if class != "" {
		fmt.Fprintf(&b, `class="%s"`, html.EscapeString(class))
	}
	return template.HTMLAttr(strings.TrimSpace(b.String()))
}
