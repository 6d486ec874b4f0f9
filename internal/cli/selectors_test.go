package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/adyen/shopsuite/internal/selector"
)

func TestPrintSelectors(t *testing.T) {
	var buf bytes.Buffer
	chains := []NamedChain{
		{Name: "cart-icon", Chain: selector.TestID("cart-icon", ".cart-icon")},
		{Name: "body", Chain: selector.Of("body")},
	}

	require.NoError(t, PrintSelectors(&buf, chains))

	assert.Equal(t, "cart-icon\n"+
		"  1. [data-testid=\"cart-icon\"]\n"+
		"  2. .cart-icon\n"+
		"body\n"+
		"  1. body\n", buf.String())
}

func TestSelectorsJSON(t *testing.T) {
	out, err := SelectorsJSON(append(CommonChains(), NamedChain{
		Name:  "odd.name",
		Chain: selector.Of("#odd"),
	}))

	require.NoError(t, err)
	require.True(t, gjson.ValidBytes(out))
	assert.Equal(t, `[data-testid="cookie-banner"]`, gjson.GetBytes(out, "cookie-banner.0").String())
	assert.Equal(t, int64(len(selector.CookieBanner.Candidates())), gjson.GetBytes(out, "cookie-banner.#").Int())
	assert.Equal(t, "#odd", gjson.GetBytes(out, `odd\.name.0`).String())
}

func TestCommonChains_ListsEveryChromeChain(t *testing.T) {
	chains := CommonChains()

	require.Len(t, chains, len(selector.Common))
	for _, c := range chains {
		assert.NotEmpty(t, c.Name)
		assert.False(t, c.Chain.IsZero(), c.Name)
	}
}
