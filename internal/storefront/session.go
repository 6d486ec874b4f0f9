package storefront

import (
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/adyen/shopsuite/internal/models"
)

const (
	sessionCookie = "shop_session"
	consentCookie = "cookie_consent"
	markupCookie  = "markup"
)

// session is one visitor: who is signed in and what is in the bag
type session struct {
	ID    string
	Email string
	Token string
	Cart  []models.OrderLine
}

// CartCount is the number of items in the bag
func (s *session) CartCount() int {
	n := 0
	for _, l := range s.Cart {
		n += l.Quantity
	}
	return n
}

// CartTotal is the bag total in minor units
func (s *session) CartTotal() int64 {
	var total int64
	for _, l := range s.Cart {
		total += l.Subtotal()
	}
	return total
}

// addLine merges line into an existing line with the same product, size and
// color
func (s *session) addLine(line models.OrderLine) {
	for i, l := range s.Cart {
		if l.ProductSlug == line.ProductSlug && l.Size == line.Size && l.Color == line.Color {
			s.Cart[i].Quantity += line.Quantity
			return
		}
	}
	s.Cart = append(s.Cart, line)
}

type sessionStore struct {
	mu       sync.Mutex
	sessions map[string]*session
}

func newSessionStore() *sessionStore {
	return &sessionStore{sessions: map[string]*session{}}
}

// get returns the visitor's session, starting one and setting its cookie
// when the request has none
func (s *sessionStore) get(w http.ResponseWriter, r *http.Request) *session {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, err := r.Cookie(sessionCookie); err == nil {
		if sess, ok := s.sessions[c.Value]; ok {
			return sess
		}
	}

	sess := &session{ID: uuid.NewString()}
	s.sessions[sess.ID] = sess
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    sess.ID,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return sess
}

// update runs fn with the store locked, since handlers of one visitor may
// run concurrently
func (s *sessionStore) update(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// reset drops every session
func (s *sessionStore) reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions = map[string]*session{}
}
