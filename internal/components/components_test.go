package components_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/browser/browsertest"
	"github.com/adyen/shopsuite/internal/components"
)

func newRun(t *testing.T, doc *browsertest.Node) (*browser.Runner, *browsertest.Driver) {
	t.Helper()
	d := browsertest.New(doc)
	return browser.NewRunner(context.Background(), d, browser.WithLogger(zaptest.NewLogger(t))), d
}

func node(sel, text string, children ...*browsertest.Node) *browsertest.Node {
	return browsertest.El([]string{sel}, text, children...)
}

func header(children ...*browsertest.Node) *browsertest.Node {
	return node("body", "", node("header", "", children...))
}

func TestHeader_GetCartItemCount(t *testing.T) {
	tests := []struct {
		name    string
		badge   *browsertest.Node
		want    int
		wantErr string
	}{
		{name: "no badge", badge: nil, want: 0},
		{name: "badge with count", badge: node(".cart-count", " 3 "), want: 3},
		{name: "capped badge", badge: node(".cart-badge", "9+"), want: 9},
		{name: "badge without number", badge: node(".cart-badge", "Bag"), wantErr: `cart badge "Bag" shows no count`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var children []*browsertest.Node
			if tt.badge != nil {
				children = append(children, tt.badge)
			}
			run, _ := newRun(t, header(children...))

			n, err := components.NewHeader(run).GetCartItemCount()

			if tt.wantErr != "" {
				require.EqualError(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, n)
		})
	}
}

func TestHeader_VerifyCartBadge(t *testing.T) {
	run, _ := newRun(t, header(node(`[data-testid="cart-badge"]`, "2")))
	h := components.NewHeader(run)

	assert.NoError(t, h.VerifyCartBadge(2).Err())

	h.VerifyCartBadge(0)
	assert.ErrorIs(t, h.Err(), browser.ErrTimeout)
}

func TestHeader_NavigateToCategoryMatchesExactLabel(t *testing.T) {
	clicked := ""
	link := func(label string) *browsertest.Node {
		n := node("a", label)
		n.OnClick = func(*browsertest.Driver) { clicked = label }
		return n
	}
	run, _ := newRun(t, header(node(".nav-menu", "", link("Women"), link("Men"), link("Children"))))

	h := components.NewHeader(run).NavigateToCategory("Men")

	require.NoError(t, h.Err())
	assert.Equal(t, "Men", clicked)
}

func TestHeader_ScopedToContainer(t *testing.T) {
	run, d := newRun(t, node("body", "",
		node("header", "", node(".logo", "Shop")),
		node(".drawer", "", node(".logo", "Shop")),
	))

	components.NewHeader(run, browser.Find([]string{".drawer"})).ClickLogo()

	require.NoError(t, run.Err())
	clicks := d.CallsOf("click")
	require.Len(t, clicks, 1)
	assert.Equal(t, ".drawer >> .logo", clicks[0].Target)
}

func productCard(title, price, alt string) *browsertest.Node {
	img := &browsertest.Node{Selectors: []string{"img"}, Attrs: map[string]string{"alt": alt}}
	return node(".product-card", "", img, node("h3", title), node(".price", price))
}

func TestProductCard_Queries(t *testing.T) {
	run, _ := newRun(t, node("body", "",
		productCard("Trench Coat", "£120.00", "Beige trench coat"),
		productCard("Silk Scarf", "£45.00", "Printed silk scarf"),
	))

	card := components.NewProductCard(run).Nth(1)

	title, err := card.GetTitle()
	require.NoError(t, err)
	assert.Equal(t, "Silk Scarf", title)

	price, err := card.GetPrice()
	require.NoError(t, err)
	assert.Equal(t, "£45.00", price)

	alt, err := card.GetImageAlt()
	require.NoError(t, err)
	assert.Equal(t, "Printed silk scarf", alt)
}

func TestProductCard_MissingCardFails(t *testing.T) {
	run, _ := newRun(t, node("body", "", productCard("Trench Coat", "£120.00", "")))

	card := components.NewProductCard(run).Nth(3).Click().Hover()

	assert.ErrorIs(t, card.Err(), browser.ErrNotFound)
}
