// Package commands holds reusable multi-step flows that are not tied to one
// page: signing in, consent handling, category navigation and test data
// hooks. Commands share the scenario's browser.Runner, so a failed command
// stops the scenario the same way a failed page step does.
package commands

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"regexp"
	"time"

	"github.com/tidwall/gjson"
	"go.uber.org/zap"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/pages"
	"github.com/adyen/shopsuite/internal/selector"
	"github.com/adyen/shopsuite/internal/site"
)

var (
	// ErrLoginRejected is reported when the login API does not hand out a token
	ErrLoginRejected = errors.New("login rejected")
	// ErrNoUserStore is reported by the seeding hooks when no store is configured
	ErrNoUserStore = errors.New("no user store configured")
)

// UserStore creates and removes shopper accounts outside the browser
type UserStore interface {
	CreateAccount(ctx context.Context, a models.Account) (models.Account, error)
	DeleteAccount(ctx context.Context, email string) error
}

var (
	registerFirstName = selector.TestID("first-name", `input[name="firstName"]`, "#firstName")
	registerLastName  = selector.TestID("last-name", `input[name="lastName"]`, "#lastName")
	registerEmail     = selector.TestID("email", `input[name="email"]`, "#email")
	registerPassword  = selector.TestID("password", `input[name="password"]`, "#password")
	registerButton    = selector.TestID("register-button", ".register-button", `button[type="submit"]`)

	mainNavLink = selector.Of("a")
)

// Consent heuristics, tried in order
var (
	consentContainers = []string{
		`[data-testid="cookie-banner"]`,
		`[data-testid="cookies-banner"]`,
		`[id*="cookie"]`,
		`[class*="cookie"]`,
		`[class*="consent"]`,
		`[aria-label*="cookie"]`,
		`[aria-label*="consent"]`,
		".cookie-banner",
		".cookies-banner",
		".consent-banner",
		"#cookie-banner",
		"#cookies-banner",
		`[role="dialog"]`,
		".modal",
	}
	consentButtons = []string{
		`button[data-testid*="accept"]`,
		`button[class*="accept"]`,
		`button[id*="accept"]`,
		`[data-testid*="accept-cookies"]`,
		".accept-button",
		".btn-accept",
	}
	consentButtonTexts = []string{"Accept", "Accept All", "OK", "Agree", "Continue", "Allow All"}
)

// Commands runs shared flows against a runner
type Commands struct {
	run   *browser.Runner
	store UserStore

	consentDelay time.Duration
	settleDelay  time.Duration
}

// Option configures Commands
type Option func(*Commands)

// WithUserStore enables SeedUser and RemoveUser
func WithUserStore(s UserStore) Option {
	return func(c *Commands) {
		c.store = s
	}
}

// WithConsentDelays overrides how long HandleCookieConsent waits for the
// banner to appear and then to go away
func WithConsentDelays(appear, settle time.Duration) Option {
	return func(c *Commands) {
		c.consentDelay = appear
		c.settleDelay = settle
	}
}

// New creates Commands bound to run
func New(run *browser.Runner, opts ...Option) *Commands {
	c := &Commands{
		run:          run,
		consentDelay: 2 * time.Second,
		settleDelay:  time.Second,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Err returns the first failed step of the scenario
func (c *Commands) Err() error {
	return c.run.Err()
}

// LoginViaUI signs in through the login form and waits to leave it
func (c *Commands) LoginViaUI(user models.TestUser) *Commands {
	pages.NewLoginPage(c.run).
		Visit().
		LoginWith(user.Email, user.Password).
		VerifyLoginSuccess()
	return c
}

// LoginViaAPI signs in through the login endpoint and stores the returned
// token in localStorage under "authToken". The request shares the browser's
// cookies. The page must already be on the shop's origin.
func (c *Commands) LoginViaAPI(user models.TestUser) *Commands {
	status, body, err := c.run.Post(site.APILogin, map[string]string{
		"email":    user.Email,
		"password": user.Password,
	})
	if err != nil {
		return c
	}
	if status != http.StatusOK {
		c.run.Fail("login via api", fmt.Errorf("%w: status %d", ErrLoginRejected, status))
		return c
	}
	token := gjson.GetBytes(body, "token").String()
	if token == "" {
		c.run.Fail("login via api", fmt.Errorf("%w: response has no token", ErrLoginRejected))
		return c
	}
	c.run.Evaluate(`token => window.localStorage.setItem("authToken", token)`, token)
	return c
}

// Logout opens the account menu and clicks the logout link
func (c *Commands) Logout() *Commands {
	c.run.Click(browser.Find(selector.AccountMenu))
	c.run.Click(browser.Find(selector.LogoutLink))
	return c.WaitForPageLoad()
}

// CreateAccount registers user through the registration form
func (c *Commands) CreateAccount(user models.TestUser) *Commands {
	c.run.Visit(site.Register)
	c.WaitForPageLoad()
	c.run.Fill(browser.Find(registerFirstName), user.FirstName)
	c.run.Fill(browser.Find(registerLastName), user.LastName)
	c.run.Fill(browser.Find(registerEmail), user.Email)
	c.run.Fill(browser.Find(registerPassword), user.Password)
	c.run.Click(browser.Find(registerButton))
	return c.WaitForPageLoad()
}

// NavigateToCategory clicks the main navigation link labelled category
func (c *Commands) NavigateToCategory(category string) *Commands {
	c.run.Click(browser.Find(selector.MainNav).Find(mainNavLink).HasExactText(category))
	return c.WaitForPageLoad()
}

// AcceptCookies clicks accept inside the cookie banner when one is showing
func (c *Commands) AcceptCookies() *Commands {
	banner := browser.Find(selector.CookieBanner)
	present, err := c.run.Exists(banner)
	if err != nil || !present {
		return c
	}
	c.run.Click(banner.Find(selector.CookieAccept))
	return c
}

// HandleCookieConsent dismisses whatever consent dialog the page shows. It
// waits for the dialog, picks the first container that matches, and clicks
// the first accept button it finds by selector, then by label. Finding
// nothing is logged, not failed.
func (c *Commands) HandleCookieConsent() *Commands {
	log := c.run.Logger()
	c.run.Pause(c.consentDelay)

	container, ok := c.firstPresent(nil, consentContainers)
	if !ok {
		log.Info("no cookie consent modal detected")
		return c.settle()
	}
	log.Info("found cookie consent modal", zap.String("selector", container.String()))

	if button, ok := c.firstPresent(&container, consentButtons); ok {
		c.run.Click(button.Nth(0))
		return c.settle()
	}
	for _, text := range consentButtonTexts {
		// labels match case-sensitively: "OK" must not hit "Cookie preferences"
		button := container.Find(selector.Of("button")).HasText(regexp.MustCompile(regexp.QuoteMeta(text)))
		n, err := c.run.Count(button)
		if err != nil {
			return c
		}
		if n > 0 {
			c.run.Click(button.Nth(0))
			return c.settle()
		}
	}
	log.Info("cookie consent modal has no accept button", zap.String("selector", container.String()))
	return c.settle()
}

func (c *Commands) settle() *Commands {
	c.run.Pause(c.settleDelay)
	return c
}

// firstPresent returns the first selector of candidates that matches,
// beneath scope when given
func (c *Commands) firstPresent(scope *browser.Target, candidates []string) (browser.Target, bool) {
	for _, sel := range candidates {
		t := browser.Find(selector.Of(sel))
		if scope != nil {
			t = scope.Find(selector.Of(sel))
		}
		n, err := c.run.Count(t)
		if err != nil {
			return browser.Target{}, false
		}
		if n > 0 {
			return t.Nth(0), true
		}
	}
	return browser.Target{}, false
}

// WaitForPageLoad waits for the loading indicator to go and the body to show
func (c *Commands) WaitForPageLoad() *Commands {
	timeout := c.run.Timeouts().PageLoad
	c.run.Expect(browser.Find(selector.Loading), browser.NotExist(), timeout)
	c.run.Expect(browser.Find(selector.Body), browser.BeVisible(), timeout)
	return c
}

// SeedUser creates user in the configured store
func (c *Commands) SeedUser(user models.TestUser) *Commands {
	c.run.Do("seed user "+user.Email, func(ctx context.Context) error {
		if c.store == nil {
			return ErrNoUserStore
		}
		_, err := c.store.CreateAccount(ctx, models.Account{
			Email:     user.Email,
			Password:  user.Password,
			FirstName: user.FirstName,
			LastName:  user.LastName,
		})
		return err
	})
	return c
}

// RemoveUser deletes the account with user's email from the configured store
func (c *Commands) RemoveUser(user models.TestUser) *Commands {
	c.run.Do("remove user "+user.Email, func(ctx context.Context) error {
		if c.store == nil {
			return ErrNoUserStore
		}
		return c.store.DeleteAccount(ctx, user.Email)
	})
	return c
}
