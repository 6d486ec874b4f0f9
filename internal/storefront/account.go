package storefront

import (
	"errors"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
	"go.uber.org/zap"

	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/site"
	"github.com/adyen/shopsuite/internal/textutil"
)

const rememberFor = 30 * 24 * time.Hour

type loginPage struct {
	Email string
	Error string
}

func (s *Server) handleLoginPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	s.render(w, r, sess, http.StatusOK, "login.html", "Sign in", loginPage{})
}

// authenticate checks email and password against the store
func (s *Server) authenticate(r *http.Request, email, password string) (models.Account, bool) {
	account, err := s.store.GetAccountByEmail(r.Context(), email)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			s.log.Error("failed to get account", zap.Error(err))
		}
		return models.Account{}, false
	}
	return account, account.Password == password
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	email := strings.TrimSpace(r.FormValue("email"))

	account, ok := s.authenticate(r, email, r.FormValue("password"))
	if !ok {
		s.render(w, r, sess, http.StatusUnauthorized, "login.html", "Sign in", loginPage{
			Email: email,
			Error: "Invalid email or password",
		})
		return
	}

	s.sessions.update(func() {
		sess.Email = account.Email
	})
	if r.FormValue("remember") != "" {
		// keep the session cookie past the browser session
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			MaxAge:   int(rememberFor.Seconds()),
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
	}
	http.Redirect(w, r, safeNext(r.FormValue("next"), site.Account), http.StatusSeeOther)
}

// handleAPILogin signs in from a JSON body {"email":"...","password":"..."}
// and answers {"token":"...","email":"..."}. The session cookie is signed in
// as well, so a browser calling it is logged in for page requests.
func (s *Server) handleAPILogin(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	w.Header().Set("Content-Type", "application/json")

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil || !gjson.ValidBytes(body) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error":"invalid json"}`))
		return
	}

	creds := gjson.GetManyBytes(body, "email", "password")
	account, ok := s.authenticate(r, creds[0].String(), creds[1].String())
	if !ok {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"error":"invalid credentials"}`))
		return
	}

	token := uuid.NewString()
	s.sessions.update(func() {
		sess.Email = account.Email
		sess.Token = token
	})

	out, _ := sjson.SetBytes([]byte(`{}`), "token", token)
	out, _ = sjson.SetBytes(out, "email", account.Email)
	_, _ = w.Write(out)
}

type registerPage struct {
	Account models.Account
	Error   string
}

func (s *Server) handleRegisterPage(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	s.render(w, r, sess, http.StatusOK, "register.html", "Create account", registerPage{})
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	account := models.Account{
		FirstName: strings.TrimSpace(r.FormValue("firstName")),
		LastName:  strings.TrimSpace(r.FormValue("lastName")),
		Email:     strings.TrimSpace(r.FormValue("email")),
		Password:  r.FormValue("password"),
	}

	fail := func(status int, msg string) {
		account.Password = ""
		s.render(w, r, sess, status, "register.html", "Create account", registerPage{Account: account, Error: msg})
	}
	switch {
	case account.FirstName == "" || account.LastName == "":
		fail(http.StatusUnprocessableEntity, "Please enter your name")
		return
	case !textutil.IsValidEmail(account.Email):
		fail(http.StatusUnprocessableEntity, "Please enter a valid email address")
		return
	case len(account.Password) < 8:
		fail(http.StatusUnprocessableEntity, "Password must be at least 8 characters")
		return
	}

	created, err := s.store.CreateAccount(r.Context(), account)
	if errors.Is(err, ErrDuplicate) {
		fail(http.StatusConflict, "An account with this email already exists")
		return
	}
	if err != nil {
		s.serverError(w, "create account", err)
		return
	}

	s.log.Info("account created", zap.String("email", created.Email))
	s.sessions.update(func() {
		sess.Email = created.Email
	})
	http.Redirect(w, r, site.Account, http.StatusSeeOther)
}

type accountPage struct {
	Account models.Account
}

func (s *Server) handleAccount(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)

	var email string
	s.sessions.update(func() {
		email = sess.Email
	})
	if email == "" {
		http.Redirect(w, r, site.Login, http.StatusSeeOther)
		return
	}

	account, err := s.store.GetAccountByEmail(r.Context(), email)
	if err != nil {
		s.serverError(w, "get account", err)
		return
	}
	s.render(w, r, sess, http.StatusOK, "account.html", "My account", accountPage{Account: account})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	sess := s.sessions.get(w, r)
	s.sessions.update(func() {
		sess.Email = ""
		sess.Token = ""
	})
	http.Redirect(w, r, site.Home, http.StatusSeeOther)
}
