package components

import (
	"strings"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/selector"
)

var (
	// ProductCardContainer is the default container of a product card
	ProductCardContainer = selector.TestID("product-card", ".product-card", ".product-item")

	cardImage        = selector.New("img", ".product-image")
	cardTitle        = selector.New(".product-title", "h3", ".title")
	cardPrice        = selector.New(".product-price", ".price")
	cardQuickView    = selector.New(".quick-view", `button:has-text("Quick View")`)
	cardWishlistIcon = selector.New(".wishlist-btn", `button:has-text("Wishlist")`)
)

// ProductCard is one product tile
type ProductCard struct {
	run       *browser.Runner
	container browser.Target
}

// NewProductCard creates a card scoped to container, or to the first card on
// the page when no container is given
func NewProductCard(run *browser.Runner, container ...browser.Target) *ProductCard {
	c := browser.Find(ProductCardContainer)
	if len(container) > 0 {
		c = container[0]
	}
	return &ProductCard{run: run, container: c}
}

// Nth returns the card at index i (zero based) of the same container
func (c *ProductCard) Nth(i int) *ProductCard {
	return &ProductCard{run: c.run, container: c.container.Nth(i)}
}

// Err returns the first failed step of the scenario
func (c *ProductCard) Err() error {
	return c.run.Err()
}

func (c *ProductCard) Click() *ProductCard {
	c.run.Click(c.container)
	return c
}

func (c *ProductCard) GetTitle() (string, error) {
	text, err := c.run.Text(c.container.Find(cardTitle))
	return strings.TrimSpace(text), err
}

func (c *ProductCard) GetPrice() (string, error) {
	text, err := c.run.Text(c.container.Find(cardPrice))
	return strings.TrimSpace(text), err
}

// GetImageAlt returns the alt text of the card image
func (c *ProductCard) GetImageAlt() (string, error) {
	return c.run.Attribute(c.container.Find(cardImage), "alt")
}

func (c *ProductCard) QuickView() *ProductCard {
	c.run.Click(c.container.Find(cardQuickView))
	return c
}

func (c *ProductCard) AddToWishlist() *ProductCard {
	c.run.Click(c.container.Find(cardWishlistIcon))
	return c
}

func (c *ProductCard) VerifyVisible() *ProductCard {
	c.run.Expect(c.container, browser.BeVisible())
	return c
}

func (c *ProductCard) Hover() *ProductCard {
	c.run.Hover(c.container)
	return c
}
