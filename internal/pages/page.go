// Package pages holds one page object per area of the shop. Every page embeds
// *Chrome[P] for the behaviour all pages share, so chained calls keep the
// concrete page type:
//
//	home := pages.NewHomePage(run)
//	home.Visit().AcceptCookies().OpenCart()
//	if err := home.Err(); err != nil { ... }
//
// Pages of one scenario share a browser.Runner. Steps run in order; the first
// failure is kept and reported by Err, and later steps are skipped.
package pages

import (
	"errors"
	"fmt"
	"time"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/selector"
	"github.com/adyen/shopsuite/internal/site"
)

// ErrUnknown is reported for names the site does not know, such as a
// category or a viewport
var ErrUnknown = errors.New("unknown")

func errUnknown(kind, name string) error {
	return fmt.Errorf("%w %s %q", ErrUnknown, kind, name)
}

// PageObject is the contract every page satisfies
type PageObject[P any] interface {
	Visit(opts ...models.NavigationOptions) P
	WaitForPageLoad(opts ...models.WaitOptions) P
	IsLoaded() (bool, error)
	Path() string
	Err() error
}

// Chrome implements the behaviour shared by all pages: navigation, load
// waits, cookie consent and the site header.
type Chrome[P any] struct {
	run  *browser.Runner
	self P
	path string
	// acceptCookies is what Visit does when NavigationOptions leave it unset
	acceptCookies bool
}

func newChrome[P any](run *browser.Runner, self P, path string) *Chrome[P] {
	return &Chrome[P]{run: run, self: self, path: path}
}

// Runner returns the runner the page drives
func (c *Chrome[P]) Runner() *browser.Runner {
	return c.run
}

// Path returns the route Visit navigates to
func (c *Chrome[P]) Path() string {
	return c.path
}

// Err returns the first failed step of the scenario
func (c *Chrome[P]) Err() error {
	return c.run.Err()
}

// Visit navigates to the page. By default it waits for the page to load and
// accepts cookies only where the page says so.
func (c *Chrome[P]) Visit(opts ...models.NavigationOptions) P {
	var o models.NavigationOptions
	if len(opts) > 0 {
		o = opts[0]
	}

	c.run.Visit(c.path)
	if models.BoolValue(o.WaitForLoad, true) {
		c.WaitForPageLoad()
	}
	if models.BoolValue(o.AcceptCookies, c.acceptCookies) {
		c.AcceptCookies()
	}
	return c.self
}

// WaitForPageLoad waits for the body to be visible and any loading indicator
// to be gone.
func (c *Chrome[P]) WaitForPageLoad(opts ...models.WaitOptions) P {
	timeout := c.run.Timeouts().PageLoad
	if len(opts) > 0 && opts[0].Timeout > 0 {
		timeout = opts[0].Timeout
	}

	c.run.Expect(browser.Find(selector.Body), browser.BeVisible(), timeout)
	c.run.Expect(browser.Find(selector.Loading), browser.NotExist(), timeout)
	return c.self
}

// IsLoaded reports whether the body is visible right now. It does not wait.
func (c *Chrome[P]) IsLoaded() (bool, error) {
	return c.run.IsVisible(browser.Find(selector.Body))
}

// AcceptCookies dismisses the cookie banner when one is showing. A missing
// banner is not an error, so calling it twice is safe.
func (c *Chrome[P]) AcceptCookies() P {
	banner := browser.Find(selector.CookieBanner)
	present, err := c.run.Exists(banner)
	if err != nil || !present {
		return c.self
	}

	c.run.Click(banner.Find(selector.CookieAccept))
	c.run.Expect(banner, browser.NotExist())
	return c.self
}

// ClickLogo returns to the home page through the logo
func (c *Chrome[P]) ClickLogo() P {
	c.run.Click(browser.Find(selector.Logo))
	return c.self
}

// OpenCart clicks the bag icon
func (c *Chrome[P]) OpenCart() P {
	c.run.Click(browser.Find(selector.CartIcon))
	return c.self
}

// OpenAccount clicks the account icon
func (c *Chrome[P]) OpenAccount() P {
	c.run.Click(browser.Find(selector.AccountIcon))
	return c.self
}

// OpenSearch clicks the search icon
func (c *Chrome[P]) OpenSearch() P {
	c.run.Click(browser.Find(selector.SearchIcon))
	return c.self
}

// GetCurrentURL returns the page URL
func (c *Chrome[P]) GetCurrentURL() (string, error) {
	return c.run.CurrentURL()
}

// VerifyURL waits for the URL to include path
func (c *Chrome[P]) VerifyURL(path string) P {
	c.run.ExpectURL(browser.URLContains(path))
	return c.self
}

// ScrollToElement scrolls the first element chain matches into view
func (c *Chrome[P]) ScrollToElement(chain selector.Chain) P {
	c.run.ScrollIntoView(browser.Find(chain))
	return c.self
}

// WaitForElement waits for chain to be visible
func (c *Chrome[P]) WaitForElement(chain selector.Chain, timeout ...time.Duration) P {
	c.run.Expect(browser.Find(chain), browser.BeVisible(), timeout...)
	return c.self
}

// VerifyVisible asserts chain is visible within the default timeout
func (c *Chrome[P]) VerifyVisible(chain selector.Chain) P {
	c.run.Expect(browser.Find(chain), browser.BeVisible())
	return c.self
}

// UseViewport resizes the window to one of site.Viewports
func (c *Chrome[P]) UseViewport(name string) P {
	vp, ok := site.Viewports[name]
	if !ok {
		c.run.Fail("viewport "+name, errUnknown("viewport", name))
		return c.self
	}
	c.run.SetViewport(vp.Width, vp.Height)
	return c.self
}
