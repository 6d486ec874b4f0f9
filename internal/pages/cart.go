package pages

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/selector"
	"github.com/adyen/shopsuite/internal/site"
)

var (
	cartItems              = selector.TestID("cart-item", ".cart-item", ".bag-item")
	cartTotal              = selector.TestID("cart-total", ".cart-total", ".total-price")
	checkoutButton         = selector.TestID("checkout-button", ".checkout-button", `button:has-text("Checkout")`)
	continueShoppingButton = selector.TestID("continue-shopping", ".continue-shopping", `button:has-text("Continue Shopping")`)
	emptyCartMessage       = selector.TestID("empty-cart", ".empty-cart", ".empty-bag-message")
	cartQuantitySelect     = selector.TestID("quantity-select", ".quantity-select", `select[name*="quantity"]`)
	removeItemButton       = selector.TestID("remove-item", ".remove-item", `button:has-text("Remove")`)
	subtotal               = selector.TestID("subtotal", ".subtotal", ".sub-total")

	cartHeading = regexp.MustCompile(`Cart|Bag`)
)

// CartPage is the shopping bag
type CartPage struct {
	*Chrome[*CartPage]
}

// NewCartPage creates the cart page object
func NewCartPage(run *browser.Runner) *CartPage {
	p := &CartPage{}
	p.Chrome = newChrome(run, p, site.Cart)
	return p
}

// VerifyCartLoaded asserts the page talks about a cart or a bag
func (p *CartPage) VerifyCartLoaded() *CartPage {
	p.run.Expect(browser.Find(selector.Body), browser.MatchText(cartHeading))
	return p
}

func (p *CartPage) VerifyCartEmpty() *CartPage {
	p.run.Expect(browser.Find(emptyCartMessage), browser.BeVisible())
	return p
}

func (p *CartPage) VerifyCartHasItems() *CartPage {
	p.run.Expect(browser.Find(cartItems), browser.HaveCountAtLeast(1))
	return p
}

// GetCartItemCount returns the number of lines in the bag
func (p *CartPage) GetCartItemCount() (int, error) {
	return p.run.Count(browser.Find(cartItems))
}

// UpdateQuantity sets the quantity of line i (zero based)
func (p *CartPage) UpdateQuantity(i, quantity int) *CartPage {
	p.run.Select(browser.Find(cartItems).Nth(i).Find(cartQuantitySelect), strconv.Itoa(quantity))
	return p.WaitForPageLoad()
}

// RemoveItem removes line i (zero based)
func (p *CartPage) RemoveItem(i int) *CartPage {
	p.run.Click(browser.Find(cartItems).Nth(i).Find(removeItemButton))
	return p.WaitForPageLoad()
}

// RemoveItemByName removes the first line mentioning name
func (p *CartPage) RemoveItemByName(name string) *CartPage {
	p.run.Click(browser.Find(cartItems).ContainingText(name).Find(removeItemButton))
	return p.WaitForPageLoad()
}

func (p *CartPage) ProceedToCheckout() *CartPage {
	p.run.Click(browser.Find(checkoutButton))
	return p
}

func (p *CartPage) ContinueShopping() *CartPage {
	p.run.Click(browser.Find(continueShoppingButton))
	return p
}

// GetCartTotal returns the displayed total, e.g. "£120.00"
func (p *CartPage) GetCartTotal() (string, error) {
	text, err := p.run.Text(browser.Find(cartTotal))
	return strings.TrimSpace(text), err
}

// GetSubtotal returns the displayed subtotal
func (p *CartPage) GetSubtotal() (string, error) {
	text, err := p.run.Text(browser.Find(subtotal))
	return strings.TrimSpace(text), err
}

// VerifyProductInCart asserts a line mentions name
func (p *CartPage) VerifyProductInCart(name string) *CartPage {
	p.run.Expect(browser.Find(cartItems).ContainingText(name), browser.Exist())
	return p
}
