package storefront

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/adyen/shopsuite/internal/models"
)

// MemoryStore is a Store kept in process. It is safe for concurrent use.
type MemoryStore struct {
	mu       sync.RWMutex
	products map[string]models.Product
	accounts map[string]models.Account
	orders   map[string]*models.Order
}

// NewMemoryStore creates a store holding products
func NewMemoryStore(products ...models.Product) *MemoryStore {
	s := &MemoryStore{
		products: map[string]models.Product{},
		accounts: map[string]models.Account{},
		orders:   map[string]*models.Order{},
	}
	for _, p := range products {
		s.products[p.Slug] = p
	}
	return s
}

// sorted returns products in name order
func sorted(products []models.Product) []models.Product {
	sort.Slice(products, func(i, j int) bool { return products[i].Name < products[j].Name })
	return products
}

func (s *MemoryStore) ListProducts(_ context.Context, category string) ([]models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Product
	for _, p := range s.products {
		if category == "" || p.Category == category {
			out = append(out, p)
		}
	}
	return sorted(out), nil
}

func (s *MemoryStore) GetProduct(_ context.Context, slug string) (models.Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	p, ok := s.products[slug]
	if !ok {
		return models.Product{}, fmt.Errorf("product %q: %w", slug, ErrNotFound)
	}
	return p, nil
}

// SearchProducts matches query against name, description and category,
// ignoring case
func (s *MemoryStore) SearchProducts(_ context.Context, query string) ([]models.Product, error) {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return nil, nil
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var out []models.Product
	for _, p := range s.products {
		text := strings.ToLower(p.Name + " " + p.Description + " " + p.Category)
		if strings.Contains(text, q) {
			out = append(out, p)
		}
	}
	return sorted(out), nil
}

func (s *MemoryStore) CreateProduct(_ context.Context, p models.Product) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	s.products[p.Slug] = p
	return nil
}

func (s *MemoryStore) CreateAccount(_ context.Context, a models.Account) (models.Account, error) {
	key := strings.ToLower(a.Email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[key]; ok {
		return models.Account{}, fmt.Errorf("account %q: %w", a.Email, ErrDuplicate)
	}
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}
	s.accounts[key] = a
	return a, nil
}

func (s *MemoryStore) GetAccountByEmail(_ context.Context, email string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	a, ok := s.accounts[strings.ToLower(email)]
	if !ok {
		return models.Account{}, fmt.Errorf("account %q: %w", email, ErrNotFound)
	}
	return a, nil
}

func (s *MemoryStore) DeleteAccount(_ context.Context, email string) error {
	key := strings.ToLower(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.accounts[key]; !ok {
		return fmt.Errorf("account %q: %w", email, ErrNotFound)
	}
	delete(s.accounts, key)
	return nil
}

func (s *MemoryStore) CreateOrder(_ context.Context, o *models.Order) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.orders[o.Reference]; ok {
		return fmt.Errorf("order %q: %w", o.Reference, ErrDuplicate)
	}
	stored := *o
	s.orders[o.Reference] = &stored
	return nil
}

func (s *MemoryStore) GetOrderByReference(_ context.Context, reference string) (*models.Order, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	o, ok := s.orders[reference]
	if !ok {
		return nil, fmt.Errorf("order %q: %w", reference, ErrNotFound)
	}
	out := *o
	return &out, nil
}

func (s *MemoryStore) UpdateOrderStatus(_ context.Context, reference string, status models.OrderStatus, cardLast4 string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	o, ok := s.orders[reference]
	if !ok {
		return fmt.Errorf("order %q: %w", reference, ErrNotFound)
	}
	o.Status = status
	o.CardLast4 = cardLast4
	o.UpdatedAt = time.Now()
	return nil
}

func (s *MemoryStore) Reset(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.products = map[string]models.Product{}
	s.accounts = map[string]models.Account{}
	s.orders = map[string]*models.Order{}
	return nil
}

var _ Store = (*MemoryStore)(nil)
