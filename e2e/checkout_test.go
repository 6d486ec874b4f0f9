//go:build e2e

package e2e

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/components"
	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/pages"
	"github.com/adyen/shopsuite/internal/selector"
	"github.com/adyen/shopsuite/internal/services"
	"github.com/adyen/shopsuite/internal/site"
)

const testCardNumber = "4111 1111 1111 1111"

// fillBag adds one Classic Trench Coat in M, Beige to the bag
func fillBag(s *scenario) {
	pages.NewProductDetailPage(s.run, "classic-trench-coat").
		Visit().
		VerifyProductLoaded().
		SelectSize("M").
		SelectColor("Beige").
		AddToBag().
		VerifyAddToBagSuccess()
}

// TestCheckout_PlacesOrder
// Feature: Checkout
//
//	Scenario: Buying a coat
//	  Given I have added the Classic Trench Coat to my bag
//	  When I check out with a UK address and a valid card
//	  Then I see the order confirmation with a reference
//	  And the order is stored as placed for £120.00
func TestCheckout_PlacesOrder(t *testing.T) {
	s := newScenario(t)

	// Given I have added the Classic Trench Coat to my bag
	fillBag(s)
	components.NewHeader(s.run).VerifyCartBadge(1)

	cart := pages.NewCartPage(s.run).
		Visit().
		VerifyCartHasItems().
		VerifyProductInCart("Classic Trench Coat")
	total, err := cart.GetCartTotal()
	s.check(t)
	require.NoError(t, err)
	assert.Equal(t, "£120.00", total)

	// When I check out with a UK address and a valid card
	cart.ProceedToCheckout()
	address := s.gen.UKShippingAddress()
	checkout := pages.NewCheckoutPage(s.run).
		VerifyURL(site.Checkout).
		VerifyCheckoutLoaded().
		VerifyOrderSummary().
		FillShippingInfo(address).
		FillPaymentInfo(testCardNumber, "12/30", "123").
		PlaceOrder()

	// Then I see the order confirmation with a reference
	checkout.VerifyOrderConfirmed()
	reference, err := checkout.GetOrderReference()
	s.check(t)
	require.NoError(t, err)
	require.NotEmpty(t, reference)

	// And the order is stored as placed
	order, err := store.GetOrderByReference(context.Background(), reference)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPlaced, order.Status)
	assert.Equal(t, int64(12000), order.Total())
	assert.Equal(t, "1111", order.CardLast4)
	assert.Equal(t, address.Email, order.Email)
}

// TestCheckout_DeclinedCard
// Feature: Checkout
//
//	Scenario: Paying with a card that is refused
//	  Given I have added the Classic Trench Coat to my bag
//	  When I check out with the declined test card
//	  Then I am sent to the failure page with the reason "Refused"
func TestCheckout_DeclinedCard(t *testing.T) {
	s := newScenario(t)
	fillBag(s)

	pages.NewCheckoutPage(s.run).
		Visit().
		VerifyCheckoutLoaded().
		FillShippingInfo(s.gen.UKShippingAddress()).
		FillPaymentInfo(services.DeclinedCardNumber, "12/30", "123").
		PlaceOrder()

	s.run.ExpectURL(browser.URLContains("/checkout/failed"), site.LongTimeout)
	s.run.Expect(browser.Find(selector.Of(".failure-reason")), browser.ContainText("Refused"))
	s.check(t)
}

// TestCheckout_InvalidAddressStaysOnForm
// Feature: Checkout
//
//	Scenario: Leaving the shipping address blank
//	  Given I have an item in my bag
//	  When I place the order without a shipping address
//	  Then the checkout form shows the errors
func TestCheckout_InvalidAddressStaysOnForm(t *testing.T) {
	s := newScenario(t)
	fillBag(s)

	pages.NewCheckoutPage(s.run).
		Visit().
		VerifyCheckoutLoaded().
		FillPaymentInfo(testCardNumber, "12/30", "123").
		PlaceOrder().
		VerifyURL(site.Checkout)
	s.run.Expect(browser.Find(selector.Of(".error-message")), browser.BeVisible())
	s.check(t)
}

// TestCart_RemoveLastItemEmptiesBag
// Feature: Bag
//
//	Scenario: Removing the only item
//	  Given I have added the Classic Trench Coat to my bag
//	  When I remove it
//	  Then the bag is empty
func TestCart_RemoveLastItemEmptiesBag(t *testing.T) {
	s := newScenario(t)
	fillBag(s)

	pages.NewCartPage(s.run).
		Visit().
		RemoveItemByName("Classic Trench Coat").
		VerifyCartEmpty()
	s.check(t)
}
