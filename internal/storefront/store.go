package storefront

import (
	"context"
	"errors"

	"github.com/adyen/shopsuite/internal/models"
)

var (
	// ErrNotFound is returned when a product, account or order does not exist
	ErrNotFound = errors.New("not found")
	// ErrDuplicate is returned when an account email is already registered
	ErrDuplicate = errors.New("already exists")
)

// Store persists what the storefront serves. MemoryStore keeps it in process;
// repository.FixtureRepository keeps it in postgres.
type Store interface {
	ListProducts(ctx context.Context, category string) ([]models.Product, error)
	GetProduct(ctx context.Context, slug string) (models.Product, error)
	SearchProducts(ctx context.Context, query string) ([]models.Product, error)
	CreateProduct(ctx context.Context, p models.Product) error

	CreateAccount(ctx context.Context, a models.Account) (models.Account, error)
	GetAccountByEmail(ctx context.Context, email string) (models.Account, error)
	DeleteAccount(ctx context.Context, email string) error

	CreateOrder(ctx context.Context, o *models.Order) error
	GetOrderByReference(ctx context.Context, reference string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, reference string, status models.OrderStatus, cardLast4 string) error

	// Reset removes everything
	Reset(ctx context.Context) error
}
