package pages

import (
	"strings"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/selector"
	"github.com/adyen/shopsuite/internal/site"
)

var (
	shippingForm      = selector.TestID("shipping-form", ".shipping-form", ".address-form")
	billingForm       = selector.TestID("billing-form", ".billing-form")
	paymentForm       = selector.TestID("payment-form", ".payment-form", ".card-form")
	placeOrderButton  = selector.TestID("place-order", ".place-order", `button:has-text("Place Order")`)
	orderSummary      = selector.TestID("order-summary", ".order-summary", ".checkout-summary")
	orderTotal        = selector.New(".total", ".order-total")
	orderConfirmation = selector.TestID("order-confirmation", ".order-confirmation", ".confirmation")
	orderReference    = selector.TestID("order-reference", ".order-reference", ".order-number")

	firstNameInput  = selector.TestID("first-name", `input[name*="firstName"]`, "#firstName")
	lastNameInput   = selector.TestID("last-name", `input[name*="lastName"]`, "#lastName")
	emailInput      = selector.TestID("email", `input[name*="email"]`, "#email")
	phoneInput      = selector.TestID("phone", `input[name*="phone"]`, "#phone")
	addressInput    = selector.TestID("address", `input[name*="address"]`, "#address")
	cityInput       = selector.TestID("city", `input[name*="city"]`, "#city")
	postcodeInput   = selector.TestID("postcode", `input[name*="postcode"]`, "#postcode")
	countrySelect   = selector.TestID("country", `select[name*="country"]`, "#country")
	cardNumberInput = selector.TestID("card-number", `input[name*="cardNumber"]`, "#cardNumber")
	expiryInput     = selector.TestID("expiry", `input[name*="expiry"]`, "#expiry")
	cvvInput        = selector.TestID("cvv", `input[name*="cvv"]`, "#cvv")
)

// CheckoutPage collects the address and payment and places the order
type CheckoutPage struct {
	*Chrome[*CheckoutPage]
}

// NewCheckoutPage creates the checkout page object
func NewCheckoutPage(run *browser.Runner) *CheckoutPage {
	p := &CheckoutPage{}
	p.Chrome = newChrome(run, p, site.Checkout)
	return p
}

// FillShippingInfo fills the eight address fields of the shipping form in a
// fixed order. Fields outside the shipping form are not touched.
func (p *CheckoutPage) FillShippingInfo(a models.ShippingAddress) *CheckoutPage {
	return p.fillAddress(browser.Find(shippingForm), a)
}

// FillBillingInfo fills the billing form with a separate address
func (p *CheckoutPage) FillBillingInfo(a models.ShippingAddress) *CheckoutPage {
	return p.fillAddress(browser.Find(billingForm), a)
}

func (p *CheckoutPage) fillAddress(form browser.Target, a models.ShippingAddress) *CheckoutPage {
	p.run.Fill(form.Find(firstNameInput), a.FirstName)
	p.run.Fill(form.Find(lastNameInput), a.LastName)
	p.run.Fill(form.Find(emailInput), a.Email)
	p.run.Fill(form.Find(phoneInput), a.Phone)
	p.run.Fill(form.Find(addressInput), a.Address)
	p.run.Fill(form.Find(cityInput), a.City)
	p.run.Fill(form.Find(postcodeInput), a.Postcode)
	p.run.Select(form.Find(countrySelect), a.Country)
	return p
}

// FillPaymentInfo fills the card form
func (p *CheckoutPage) FillPaymentInfo(cardNumber, expiry, cvv string) *CheckoutPage {
	form := browser.Find(paymentForm)
	p.run.Fill(form.Find(cardNumberInput), cardNumber)
	p.run.Fill(form.Find(expiryInput), expiry)
	p.run.Fill(form.Find(cvvInput), cvv)
	return p
}

func (p *CheckoutPage) VerifyOrderSummary() *CheckoutPage {
	p.run.Expect(browser.Find(orderSummary), browser.BeVisible())
	return p
}

func (p *CheckoutPage) PlaceOrder() *CheckoutPage {
	p.run.Click(browser.Find(placeOrderButton))
	return p
}

// VerifyCheckoutLoaded waits for the shipping form and the summary
func (p *CheckoutPage) VerifyCheckoutLoaded() *CheckoutPage {
	p.run.Expect(browser.Find(shippingForm), browser.BeVisible())
	p.run.Expect(browser.Find(orderSummary), browser.BeVisible())
	return p
}

// GetOrderTotal returns the total shown in the summary
func (p *CheckoutPage) GetOrderTotal() (string, error) {
	text, err := p.run.Text(browser.Find(orderSummary).Find(orderTotal))
	return strings.TrimSpace(text), err
}

// VerifyOrderConfirmed waits for the confirmation page after PlaceOrder
func (p *CheckoutPage) VerifyOrderConfirmed() *CheckoutPage {
	p.run.ExpectURL(browser.URLContains(site.Confirmation), site.LongTimeout)
	p.run.Expect(browser.Find(orderConfirmation), browser.BeVisible())
	return p
}

// GetOrderReference returns the reference on the confirmation page
func (p *CheckoutPage) GetOrderReference() (string, error) {
	text, err := p.run.Text(browser.Find(orderConfirmation).Find(orderReference))
	return strings.TrimSpace(text), err
}
