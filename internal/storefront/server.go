// Package storefront is a small local shop the browser suite runs its own
// scenarios against. Its markup follows the selector chains of the page
// objects and can be rendered in each selector variant (see Markup).
package storefront

import (
	"embed"
	"fmt"
	"html/template"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/services"
	"github.com/adyen/shopsuite/internal/site"
	"github.com/adyen/shopsuite/internal/textutil"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageNames = []string{
	"home.html",
	"listing.html",
	"product.html",
	"search.html",
	"cart.html",
	"checkout.html",
	"confirmation.html",
	"failure.html",
	"login.html",
	"register.html",
	"account.html",
}

// Server serves the storefront
type Server struct {
	store    Store
	orders   services.OrderService
	log      *zap.Logger
	markup   Markup
	pages    map[Markup]map[string]*template.Template
	sessions *sessionStore

	consentAccepts atomic.Int64

	mu          sync.Mutex
	subscribers []string
}

// Option configures a Server
type Option func(*Server)

// WithLogger sets the request logger
func WithLogger(log *zap.Logger) Option {
	return func(s *Server) {
		s.log = log
	}
}

// WithMarkup sets the variant served to visitors that do not ask for one
func WithMarkup(m Markup) Option {
	return func(s *Server) {
		s.markup = m
	}
}

// New creates a storefront backed by store
func New(store Store, opts ...Option) (*Server, error) {
	s := &Server{
		store:    store,
		orders:   services.NewOrderService(store),
		log:      zap.NewNop(),
		markup:   MarkupTestID,
		pages:    map[Markup]map[string]*template.Template{},
		sessions: newSessionStore(),
	}
	for _, opt := range opts {
		opt(s)
	}

	for _, m := range Markups {
		set, err := parsePages(m)
		if err != nil {
			return nil, err
		}
		s.pages[m] = set
	}
	return s, nil
}

func parsePages(m Markup) (map[string]*template.Template, error) {
	funcs := template.FuncMap{
		"attrs": m.attrs,
		"price": func(amount int64) string { return textutil.FormatMinor(amount) },
		"seq": func(n int) []int {
			out := make([]int, n)
			for i := range out {
				out[i] = i + 1
			}
			return out
		},
		"fieldset": func(prefix string, a models.ShippingAddress, countries []string) addressFieldset {
			return addressFieldset{Prefix: prefix, Address: a, Countries: countries}
		},
	}

	layout, err := template.New("layout.html").Funcs(funcs).ParseFS(templateFS, "templates/layout.html", "templates/partials.html")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	set := map[string]*template.Template{}
	for _, name := range pageNames {
		base, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		tmpl, err := base.ParseFS(templateFS, "templates/"+name)
		if err != nil {
			return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
		}
		set[name] = tmpl
	}
	return set, nil
}

// Handler returns the storefront routes wrapped in request logging
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /{$}", s.handleHome)
	for _, c := range site.Categories {
		mux.HandleFunc("GET "+c.Path, s.handleListing(strings.ToLower(c.Name), c.Name))
	}
	mux.HandleFunc("GET /product/{slug}", s.handleProduct)
	mux.HandleFunc("GET /images/{file}", s.handleImage)
	mux.HandleFunc("GET "+site.Search, s.handleSearch)
	mux.HandleFunc("GET /api/search/suggest", s.handleSuggest)

	mux.HandleFunc("GET "+site.Cart, s.handleCart)
	mux.HandleFunc("POST /cart/add", s.handleCartAdd)
	mux.HandleFunc("POST /cart/update", s.handleCartUpdate)
	mux.HandleFunc("POST /cart/remove", s.handleCartRemove)

	mux.HandleFunc("GET "+site.Checkout, s.handleCheckout)
	mux.HandleFunc("POST "+site.Checkout, s.handlePlaceOrder)
	mux.HandleFunc("GET "+site.Confirmation, s.handleConfirmation)
	mux.HandleFunc("GET /checkout/failed", s.handleFailure)

	mux.HandleFunc("GET "+site.Login, s.handleLoginPage)
	mux.HandleFunc("POST "+site.Login, s.handleLogin)
	mux.HandleFunc("GET "+site.Register, s.handleRegisterPage)
	mux.HandleFunc("POST "+site.Register, s.handleRegister)
	mux.HandleFunc("GET "+site.Account, s.handleAccount)
	mux.HandleFunc("GET "+site.Logout, s.handleLogout)
	mux.HandleFunc("POST "+site.APILogin, s.handleAPILogin)

	mux.HandleFunc("POST /cookies/accept", s.handleAcceptCookies)
	mux.HandleFunc("POST /newsletter", s.handleNewsletter)

	return s.logRequests(mux)
}

// ConsentAccepts returns how often a visitor accepted the cookie banner
func (s *Server) ConsentAccepts() int {
	return int(s.consentAccepts.Load())
}

// Subscribers returns the newsletter signups in order
func (s *Server) Subscribers() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string(nil), s.subscribers...)
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", rec.status),
			zap.Duration("elapsed", time.Since(start)),
		)
	})
}

// markupFor picks the variant from ?markup=, then the cookie it persists
// in, then the server default
func (s *Server) markupFor(w http.ResponseWriter, r *http.Request) Markup {
	if q := r.URL.Query().Get("markup"); q != "" {
		if m, err := ParseMarkup(q); err == nil {
			http.SetCookie(w, &http.Cookie{Name: markupCookie, Value: string(m), Path: "/"})
			return m
		}
	}
	if c, err := r.Cookie(markupCookie); err == nil {
		if m, err := ParseMarkup(c.Value); err == nil {
			return m
		}
	}
	return s.markup
}

// pageData is what every template sees. Page holds the page's own data.
type pageData struct {
	Title      string
	Path       string
	Email      string
	CartCount  int
	ShowBanner bool
	Categories []category
	Page       any
}

type category struct {
	Name string
	Path string
	Slug string
}

func categories() []category {
	out := make([]category, 0, len(site.Categories))
	for _, c := range site.Categories {
		out = append(out, category{Name: c.Name, Path: c.Path, Slug: strings.ToLower(c.Name)})
	}
	return out
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, sess *session, status int, name, title string, page any) {
	markup := s.markupFor(w, r)
	_, noConsent := r.Cookie(consentCookie)

	var data pageData
	s.sessions.update(func() {
		data = pageData{
			Title:      title,
			Path:       r.URL.RequestURI(),
			Email:      sess.Email,
			CartCount:  sess.CartCount(),
			ShowBanner: noConsent != nil,
			Categories: categories(),
			Page:       page,
		}
	})

	tmpl, ok := s.pages[markup][name]
	if !ok {
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	if err := tmpl.ExecuteTemplate(w, "layout.html", data); err != nil {
		s.log.Error("failed to render page", zap.String("template", name), zap.Error(err))
	}
}

// safeNext returns next when it is a local path, else fallback
func safeNext(next, fallback string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") {
		return next
	}
	return fallback
}

func (s *Server) handleAcceptCookies(w http.ResponseWriter, r *http.Request) {
	if _, err := r.Cookie(consentCookie); err != nil {
		s.consentAccepts.Add(1)
	}
	http.SetCookie(w, &http.Cookie{
		Name:   consentCookie,
		Value:  "accepted",
		Path:   "/",
		MaxAge: int((365 * 24 * time.Hour).Seconds()),
	})
	http.Redirect(w, r, safeNext(r.FormValue("next"), site.Home), http.StatusSeeOther)
}

func (s *Server) handleNewsletter(w http.ResponseWriter, r *http.Request) {
	email := strings.TrimSpace(r.FormValue("email"))
	if !textutil.IsValidEmail(email) {
		http.Redirect(w, r, "/?subscribed=invalid", http.StatusSeeOther)
		return
	}

	s.mu.Lock()
	s.subscribers = append(s.subscribers, email)
	s.mu.Unlock()

	s.log.Info("newsletter signup", zap.String("email", email))
	http.Redirect(w, r, "/?subscribed=1", http.StatusSeeOther)
}
