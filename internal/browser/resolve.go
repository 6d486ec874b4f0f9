package browser

import (
	"context"

	"github.com/adyen/shopsuite/internal/selector"
)

// Resolve narrows every chain in t, scopes first, to its highest-precedence
// candidate that currently matches. A chain with no matching candidate keeps
// all its candidates so the following wait polls for any of them.
func Resolve(ctx context.Context, d Driver, t Target) (Target, error) {
	if scope, ok := t.Scope(); ok {
		resolved, err := Resolve(ctx, d, scope)
		if err != nil {
			return t, err
		}
		t = t.WithScope(resolved)
	}

	if t.Chain().Len() < 2 {
		return t, nil
	}

	need := 1
	if i, ok := t.Index(); ok {
		need = i + 1
	}

	for _, cand := range t.Chain() {
		probe := t.WithChain(selector.Of(cand)).withoutIndex()
		n, err := d.Count(ctx, probe)
		if err != nil {
			return t, err
		}
		if n >= need {
			return t.WithChain(selector.Of(cand)), nil
		}
	}

	return t, nil
}
