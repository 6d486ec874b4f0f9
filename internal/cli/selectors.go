package cli

import (
	"fmt"
	"io"

	"github.com/tidwall/sjson"

	"github.com/adyen/shopsuite/internal/selector"
)

// NamedChain is a selector chain with the name it is listed under
type NamedChain struct {
	Name  string
	Chain selector.Chain
}

// CommonChains lists the site chrome chains
func CommonChains() []NamedChain {
	out := make([]NamedChain, 0, len(selector.Common))
	for _, c := range selector.Common {
		out = append(out, NamedChain{Name: c.Name, Chain: c.Chain})
	}
	return out
}

// PrintSelectors writes each chain with its candidates numbered in the order
// they are tried
func PrintSelectors(w io.Writer, chains []NamedChain) error {
	for _, c := range chains {
		if _, err := fmt.Fprintf(w, "%s\n", c.Name); err != nil {
			return err
		}
		for i, candidate := range c.Chain.Candidates() {
			if _, err := fmt.Fprintf(w, "  %d. %s\n", i+1, candidate); err != nil {
				return err
			}
		}
	}
	return nil
}

// SelectorsJSON renders chains as {"<name>":["<first tried>", ...], ...}
func SelectorsJSON(chains []NamedChain) ([]byte, error) {
	out := []byte(`{}`)
	var err error
	for _, c := range chains {
		out, err = sjson.SetBytes(out, escapeKey(c.Name), c.Chain.Candidates())
		if err != nil {
			return nil, fmt.Errorf("encode %s: %w", c.Name, err)
		}
	}
	return out, nil
}

// escapeKey stops sjson reading path syntax in a chain name
func escapeKey(name string) string {
	var b []byte
	for i := 0; i < len(name); i++ {
		switch name[i] {
		case '.', '*', '?', '|', '#', '@', '\\', ':':
			b = append(b, '\\')
		}
		b = append(b, name[i])
	}
	return string(b)
}
