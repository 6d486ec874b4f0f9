//go:build e2e

package e2e

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/pages"
	"github.com/adyen/shopsuite/internal/selector"
	"github.com/adyen/shopsuite/internal/site"
)

var (
	demoUser = models.TestUser{
		Email:     site.ValidEmail,
		Password:  site.TestPassword,
		FirstName: "Test",
	}
	accountWelcome = selector.Of(".account-welcome")
)

// TestLogin_ViaFormAndLogout
// Feature: Sign in
//
//	Scenario: Signing in and out with the demo account
//	  Given I am on the login page
//	  When I sign in as the demo shopper
//	  Then my account page welcomes me by name
//	  When I log out
//	  Then the account page asks me to sign in again
func TestLogin_ViaFormAndLogout(t *testing.T) {
	s := newScenario(t)

	s.cmd.LoginViaUI(demoUser)
	pages.NewHomePage(s.run).VerifyURL(site.Account)
	s.run.Expect(browser.Find(accountWelcome), browser.ContainText("Welcome back, Test"))

	s.cmd.Logout()
	s.run.Visit(site.Account)
	pages.NewLoginPage(s.run).VerifyOnLoginPage()
	s.check(t)
}

// TestLogin_WrongPassword
// Feature: Sign in
//
//	Scenario: Signing in with the wrong password
//	  When I sign in as the demo shopper with a wrong password
//	  Then I stay on the login page with an error
func TestLogin_WrongPassword(t *testing.T) {
	s := newScenario(t)

	pages.NewLoginPage(s.run).
		Visit().
		LoginWith(site.ValidEmail, "not-the-password").
		VerifyOnLoginPage().
		VerifyLoginError()
	s.check(t)
}

// TestLogin_PasswordToggle checks the show password button unmasks the field
func TestLogin_PasswordToggle(t *testing.T) {
	s := newScenario(t)

	login := pages.NewLoginPage(s.run).Visit().EnterPassword(site.TestPassword)
	masked, err := login.IsPasswordMasked()
	require.NoError(t, err)
	assert.True(t, masked)

	masked, err = login.TogglePasswordVisibility().IsPasswordMasked()
	s.check(t)
	require.NoError(t, err)
	assert.False(t, masked)
}

// TestLogin_SeededUserViaAPI
// Feature: Sign in
//
//	Scenario: Signing in through the API
//	  Given a shopper account exists
//	  When I sign in through the login endpoint
//	  Then my account page welcomes me
func TestLogin_SeededUserViaAPI(t *testing.T) {
	s := newScenario(t)
	user := s.gen.User()
	t.Cleanup(func() {
		s.run.Reset()
		s.cmd.RemoveUser(user)
	})

	pages.NewHomePage(s.run).Visit()
	s.cmd.SeedUser(user).LoginViaAPI(user)

	token, err := s.run.Evaluate(`() => window.localStorage.getItem("authToken")`, nil)
	s.check(t)
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	s.run.Visit(site.Account)
	s.run.Expect(browser.Find(accountWelcome), browser.ContainText(user.FirstName))
	s.check(t)
}

// TestRegister_NewAccountSignsIn
// Feature: Registration
//
//	Scenario: Creating an account
//	  Given I am a new shopper
//	  When I register through the form
//	  Then I am signed in on my account page
//	  And signing in again with the same details works
func TestRegister_NewAccountSignsIn(t *testing.T) {
	s := newScenario(t)
	user := s.gen.User()
	t.Cleanup(func() {
		s.run.Reset()
		s.cmd.RemoveUser(user)
	})

	s.cmd.CreateAccount(user)
	pages.NewHomePage(s.run).VerifyURL(site.Account)

	s.cmd.Logout().LoginViaUI(user)
	s.run.Expect(browser.Find(accountWelcome), browser.ContainText(user.FirstName))
	s.check(t)
}
