//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/components"
	"github.com/adyen/shopsuite/internal/pages"
	"github.com/adyen/shopsuite/internal/selector"
	"github.com/adyen/shopsuite/internal/site"
)

// TestHomePage_AcceptsCookiesOnFirstVisit
// Feature: Home page
//
//	Scenario: First visit shows and dismisses the cookie banner
//	  Given I have never visited the shop
//	  When I open the home page
//	  Then the cookie banner is accepted
//	  And the header, hero and featured products are shown
func TestHomePage_AcceptsCookiesOnFirstVisit(t *testing.T) {
	s := newScenario(t)
	before := shop.ConsentAccepts()

	// When I open the home page
	home := pages.NewHomePage(s.run).Visit()

	// Then the cookie banner is accepted
	home.VerifyVisible(selector.Header).
		VerifyHeroSectionVisible().
		VerifyFeaturedProductsVisible()
	s.check(t)

	present, err := s.run.Exists(browser.Find(selector.CookieBanner))
	require.NoError(t, err)
	assert.False(t, present, "cookie banner still showing")
	assert.Equal(t, before+1, shop.ConsentAccepts())

	// Visiting again finds no banner to accept
	home.Visit()
	s.check(t)
	assert.Equal(t, before+1, shop.ConsentAccepts())
}

// TestHomePage_CategoryNavigation
// Feature: Home page
//
//	Scenario Outline: Navigating to a category from the menu
//	  Given I am on the home page
//	  When I click <category> in the main navigation
//	  Then I land on the <category> listing with products
func TestHomePage_CategoryNavigation(t *testing.T) {
	for _, c := range site.Categories {
		t.Run(c.Name, func(t *testing.T) {
			s := newScenario(t)

			pages.NewHomePage(s.run).Visit().NavigateToCategory(c.Name)
			pages.NewProductListingPage(s.run, c.Path).
				VerifyURL(c.Path).
				VerifyProductsLoaded()
			s.check(t)
		})
	}
}

// TestHomePage_CategoryLinksInMenuOrder checks the menu lists every category
func TestHomePage_CategoryLinksInMenuOrder(t *testing.T) {
	s := newScenario(t)

	links, err := pages.NewHomePage(s.run).Visit().GetCategoryLinks()
	require.NoError(t, err)

	var want []string
	for _, c := range site.Categories {
		want = append(want, c.Name)
	}
	assert.Equal(t, want, links)
}

// TestHomePage_NewsletterSignup
// Feature: Newsletter
//
//	Scenario: Subscribing from the footer
//	  Given I am on the home page
//	  When I subscribe with a new email address
//	  Then the shop records the subscription
func TestHomePage_NewsletterSignup(t *testing.T) {
	s := newScenario(t)
	email := s.gen.User().Email

	pages.NewHomePage(s.run).Visit().SubscribeToNewsletter(email)
	s.run.ExpectURL(browser.URLContains("subscribed=1"))
	s.check(t)

	assert.Contains(t, shop.Subscribers(), email)
}

// TestHeader_CartBadgeStartsEmpty checks a new visitor's bag badge
func TestHeader_CartBadgeStartsEmpty(t *testing.T) {
	s := newScenario(t)

	pages.NewHomePage(s.run).Visit()
	count, err := components.NewHeader(s.run).VerifyHeaderVisible().GetCartItemCount()
	s.check(t)
	require.NoError(t, err)
	assert.Zero(t, count)
}
