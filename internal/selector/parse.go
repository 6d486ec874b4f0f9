package selector

import (
	"errors"
	"fmt"
)

// ErrUnbalanced is returned when a selector list has unclosed quotes or brackets
var ErrUnbalanced = errors.New("unbalanced selector list")

// Parse splits a comma-joined selector list into a chain. Commas inside
// quotes, brackets or parentheses do not split.
func Parse(list string) (Chain, error) {
	var (
		parts []string
		depth int
		quote rune
		start int
	)

	for i, r := range list {
		switch {
		case quote != 0:
			if r == quote && (i == 0 || list[i-1] != '\\') {
				quote = 0
			}
		case r == '"' || r == '\'':
			quote = r
		case r == '[' || r == '(':
			depth++
		case r == ']' || r == ')':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("%w: unexpected %q at %d", ErrUnbalanced, r, i)
			}
		case r == ',' && depth == 0:
			parts = append(parts, list[start:i])
			start = i + 1
		}
	}

	if quote != 0 || depth != 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnbalanced, list)
	}
	parts = append(parts, list[start:])

	return New(parts...), nil
}

// MustParse is like Parse but panics on malformed input.
// It is meant for package-level selector tables.
func MustParse(list string) Chain {
	c, err := Parse(list)
	if err != nil {
		panic(err)
	}
	return c
}
