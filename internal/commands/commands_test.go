package commands_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/browser/browsertest"
	"github.com/adyen/shopsuite/internal/commands"
	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/site"
)

var shopper = models.TestUser{
	Email:     "ada@example.com",
	Password:  site.TestPassword,
	FirstName: "Ada",
	LastName:  "Lovelace",
}

func newCommands(t *testing.T, doc *browsertest.Node, opts ...commands.Option) (*commands.Commands, *browser.Runner, *browsertest.Driver) {
	t.Helper()
	d := browsertest.New(doc)
	run := browser.NewRunner(context.Background(), d,
		browser.WithLogger(zaptest.NewLogger(t)),
		browser.WithBaseURL("http://shop.test"),
	)
	opts = append([]commands.Option{commands.WithConsentDelays(0, 0)}, opts...)
	return commands.New(run, opts...), run, d
}

func node(sel, text string, children ...*browsertest.Node) *browsertest.Node {
	return browsertest.El([]string{sel}, text, children...)
}

func body(children ...*browsertest.Node) *browsertest.Node {
	return node("body", "", children...)
}

func TestLoginViaAPI(t *testing.T) {
	tests := []struct {
		name      string
		status    int
		response  string
		wantErr   error
		wantToken string
	}{
		{"token stored", 200, `{"token":"abc123"}`, nil, "abc123"},
		{"rejected", 401, `{"error":"invalid credentials"}`, commands.ErrLoginRejected, ""},
		{"no token", 200, `{}`, commands.ErrLoginRejected, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, run, d := newCommands(t, body())
			var gotPayload any
			d.PostFunc = func(url string, payload any) (int, []byte, error) {
				assert.Equal(t, "http://shop.test"+site.APILogin, url)
				gotPayload = payload
				return tt.status, []byte(tt.response), nil
			}
			var stored any
			d.EvalFunc = func(script string, arg any) (any, error) {
				assert.Contains(t, script, "authToken")
				stored = arg
				return nil, nil
			}

			c.LoginViaAPI(shopper)

			assert.Equal(t, map[string]string{"email": shopper.Email, "password": shopper.Password}, gotPayload)
			if tt.wantErr != nil {
				assert.ErrorIs(t, run.Err(), tt.wantErr)
				assert.Nil(t, stored)
				return
			}
			require.NoError(t, run.Err())
			assert.Equal(t, tt.wantToken, stored)
		})
	}
}

func TestLoginViaUI(t *testing.T) {
	c, run, d := newCommands(t, nil)
	d.Routes[site.Login] = func() *browsertest.Node {
		button := node(`[data-testid="login-button"]`, "Sign in")
		button.OnClick = func(d *browsertest.Driver) { d.SetURL("http://shop.test/account") }
		return body(
			node(`input[name="email"]`, ""),
			node(`input[name="password"]`, ""),
			button,
		)
	}

	c.LoginViaUI(shopper)

	require.NoError(t, run.Err())
	fills := d.CallsOf("fill")
	require.Len(t, fills, 2)
	assert.Equal(t, shopper.Email, fills[0].Value)
	assert.Equal(t, shopper.Password, fills[1].Value)
}

func TestLoginViaUI_StayingOnLoginFails(t *testing.T) {
	c, run, d := newCommands(t, nil)
	d.Routes[site.Login] = func() *browsertest.Node {
		return body(
			node(`[data-testid="login-email"]`, ""),
			node(`[data-testid="login-password"]`, ""),
			node(`button[type="submit"]`, "Sign in"),
		)
	}

	c.LoginViaUI(shopper)

	assert.ErrorIs(t, run.Err(), browser.ErrTimeout)
}

func TestHandleCookieConsent(t *testing.T) {
	tests := []struct {
		name      string
		modal     *browsertest.Node
		wantClick string
	}{
		{
			name: "accept button by selector",
			modal: node(`[class*="consent"]`, "We value your privacy",
				node("button", "Settings"),
				node(".btn-accept", "Yes please"),
			),
			wantClick: `[class*="consent"] >> nth=0 >> .btn-accept >> nth=0`,
		},
		{
			name: "accept button by label",
			modal: node(`[role="dialog"]`, "Cookies",
				node("button", "Manage"),
				node("button", "Allow All"),
			),
			wantClick: `[role="dialog"] >> nth=0 >> button :has-text(/Allow All/) >> nth=0`,
		},
		{
			name: "label match is case sensitive",
			modal: node(`[role="dialog"]`, "Cookies",
				node("button", "Cookie preferences"),
				node("button", "Continue"),
			),
			wantClick: `[role="dialog"] >> nth=0 >> button :has-text(/Continue/) >> nth=0`,
		},
		{
			name:  "no modal",
			modal: nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc := body()
			if tt.modal != nil {
				doc.Children = append(doc.Children, tt.modal)
			}
			c, run, d := newCommands(t, doc)

			c.HandleCookieConsent()

			require.NoError(t, run.Err())
			clicks := d.CallsOf("click")
			if tt.wantClick == "" {
				assert.Empty(t, clicks)
				return
			}
			require.Len(t, clicks, 1)
			assert.Equal(t, tt.wantClick, clicks[0].Target)
		})
	}
}

func TestAcceptCookies_NoBannerIsNoop(t *testing.T) {
	c, run, d := newCommands(t, body())

	c.AcceptCookies().AcceptCookies()

	require.NoError(t, run.Err())
	assert.Empty(t, d.CallsOf("click"))
}

func TestNavigateToCategory_ExactLabel(t *testing.T) {
	clicked := ""
	link := func(label string) *browsertest.Node {
		n := node("a", label)
		n.OnClick = func(*browsertest.Driver) { clicked = label }
		return n
	}
	c, run, _ := newCommands(t, body(node(".main-navigation", "", link("Women"), link("Men"))))

	c.NavigateToCategory("Men")

	require.NoError(t, run.Err())
	assert.Equal(t, "Men", clicked)
}

func TestCreateAccount(t *testing.T) {
	c, run, d := newCommands(t, nil)
	d.Routes[site.Register] = func() *browsertest.Node {
		return body(
			node(`[data-testid="first-name"]`, ""),
			node(`[data-testid="last-name"]`, ""),
			node(`[data-testid="email"]`, ""),
			node(`[data-testid="password"]`, ""),
			node(`[data-testid="register-button"]`, "Create account"),
		)
	}

	c.CreateAccount(shopper)

	require.NoError(t, run.Err())
	var values []string
	for _, f := range d.CallsOf("fill") {
		values = append(values, f.Value)
	}
	assert.Equal(t, []string{"Ada", "Lovelace", shopper.Email, shopper.Password}, values)
	assert.Len(t, d.CallsOf("click"), 1)
}

func TestLogout(t *testing.T) {
	c, run, d := newCommands(t, body(
		node(".account-menu", "Account"),
		node(`a:has-text("Logout")`, "Logout"),
	))

	c.Logout()

	require.NoError(t, run.Err())
	assert.Len(t, d.CallsOf("click"), 2)
}

type fakeStore struct {
	created []models.Account
	deleted []string
	err     error
}

func (s *fakeStore) CreateAccount(_ context.Context, a models.Account) (models.Account, error) {
	if s.err != nil {
		return models.Account{}, s.err
	}
	s.created = append(s.created, a)
	return a, nil
}

func (s *fakeStore) DeleteAccount(_ context.Context, email string) error {
	s.deleted = append(s.deleted, email)
	return s.err
}

func TestSeedAndRemoveUser(t *testing.T) {
	store := &fakeStore{}
	c, run, _ := newCommands(t, body(), commands.WithUserStore(store))

	c.SeedUser(shopper).RemoveUser(shopper)

	require.NoError(t, run.Err())
	require.Len(t, store.created, 1)
	assert.Equal(t, shopper.Email, store.created[0].Email)
	assert.Equal(t, "Ada", store.created[0].FirstName)
	assert.Equal(t, []string{shopper.Email}, store.deleted)
}

func TestSeedUser_Errors(t *testing.T) {
	boom := errors.New("duplicate email")
	tests := []struct {
		name    string
		opts    []commands.Option
		wantErr error
	}{
		{"no store", nil, commands.ErrNoUserStore},
		{"store fails", []commands.Option{commands.WithUserStore(&fakeStore{err: boom})}, boom},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, run, _ := newCommands(t, body(), tt.opts...)

			c.SeedUser(shopper)

			assert.ErrorIs(t, run.Err(), tt.wantErr)
		})
	}
}
