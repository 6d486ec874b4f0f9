package pages

import (
	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/selector"
	"github.com/adyen/shopsuite/internal/site"
)

// Login form chains. The commands package reuses them.
var (
	LoginEmail    = selector.TestID("login-email", `input[name="email"]`, "#email")
	LoginPassword = selector.TestID("login-password", `input[name="password"]`, "#password")
	LoginButton   = selector.TestID("login-button", ".login-button", `button[type="submit"]`)

	forgotPasswordLink = selector.TestID("forgot-password", ".forgot-password", `a:has-text("Forgot")`)
	createAccountLink  = selector.TestID("create-account", ".create-account", `a:has-text("Create")`)
	loginError         = selector.TestID("login-error", ".error-message", ".login-error")
	rememberMe         = selector.TestID("remember-me", `input[name="remember"]`, "#remember")
	passwordToggle     = selector.TestID("toggle-password", ".toggle-password", `button[aria-label*="password"]`)
)

// LoginPage is the sign-in form
type LoginPage struct {
	*Chrome[*LoginPage]
}

// NewLoginPage creates the login page object
func NewLoginPage(run *browser.Runner) *LoginPage {
	p := &LoginPage{}
	p.Chrome = newChrome(run, p, site.Login)
	return p
}

// Login signs in with user's email and password
func (p *LoginPage) Login(user models.TestUser) *LoginPage {
	return p.LoginWithCredentials(user.Credentials())
}

// LoginWith signs in with an email and password
func (p *LoginPage) LoginWith(email, password string) *LoginPage {
	return p.LoginWithCredentials(models.LoginCredentials{Email: email, Password: password})
}

// LoginWithRememberMe signs in and ticks "remember me"
func (p *LoginPage) LoginWithRememberMe(user models.TestUser) *LoginPage {
	creds := user.Credentials()
	creds.RememberMe = true
	return p.LoginWithCredentials(creds)
}

// LoginWithCredentials fills the form, submits it and waits for the next page
func (p *LoginPage) LoginWithCredentials(c models.LoginCredentials) *LoginPage {
	p.EnterEmail(c.Email)
	p.EnterPassword(c.Password)
	if c.RememberMe {
		p.run.Click(browser.Find(rememberMe))
	}
	p.ClickLoginButton()
	return p.WaitForPageLoad()
}

func (p *LoginPage) EnterEmail(email string) *LoginPage {
	p.run.Fill(browser.Find(LoginEmail), email)
	return p
}

func (p *LoginPage) EnterPassword(password string) *LoginPage {
	p.run.Fill(browser.Find(LoginPassword), password)
	return p
}

func (p *LoginPage) ClickLoginButton() *LoginPage {
	p.run.Click(browser.Find(LoginButton))
	return p
}

// TogglePasswordVisibility flips the password field between masked and plain
func (p *LoginPage) TogglePasswordVisibility() *LoginPage {
	p.run.Click(browser.Find(passwordToggle))
	return p
}

// IsPasswordMasked reports whether the password field hides its value
func (p *LoginPage) IsPasswordMasked() (bool, error) {
	typ, err := p.run.Attribute(browser.Find(LoginPassword), "type")
	return typ == "password", err
}

func (p *LoginPage) ClickForgotPassword() *LoginPage {
	p.run.Click(browser.Find(forgotPasswordLink))
	return p
}

func (p *LoginPage) ClickCreateAccount() *LoginPage {
	p.run.Click(browser.Find(createAccountLink))
	return p
}

// VerifyLoginError asserts the error is shown and, when given, mentions msg
func (p *LoginPage) VerifyLoginError(msg ...string) *LoginPage {
	errBox := browser.Find(loginError)
	p.run.Expect(errBox, browser.BeVisible())
	if len(msg) > 0 && msg[0] != "" {
		p.run.Expect(errBox, browser.ContainText(msg[0]))
	}
	return p
}

// VerifyLoginSuccess asserts the browser left the login page
func (p *LoginPage) VerifyLoginSuccess() *LoginPage {
	p.run.ExpectURL(browser.URLNotContains(site.Login))
	return p
}

// VerifyOnLoginPage asserts the login form is showing
func (p *LoginPage) VerifyOnLoginPage() *LoginPage {
	p.run.ExpectURL(browser.URLContains(site.Login))
	p.run.Expect(browser.Find(LoginEmail), browser.BeVisible())
	return p
}
