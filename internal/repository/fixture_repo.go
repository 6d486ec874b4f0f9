package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"github.com/adyen/shopsuite/internal/database"
	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/storefront"
)

// uniqueViolation is the postgres error code for a unique index conflict
const uniqueViolation = "23505"

// FixtureRepository stores the storefront's products, accounts and orders in
// postgres. It satisfies storefront.Store.
type FixtureRepository struct {
	db *sql.DB
}

// NewFixtureRepository creates a repository on db
func NewFixtureRepository(db *sql.DB) *FixtureRepository {
	return &FixtureRepository{
		db: db,
	}
}

const productColumns = `id, slug, name, description, category, price, currency, sizes, colors, in_stock, sku`

func scanProduct(row interface{ Scan(...any) error }) (models.Product, error) {
	var p models.Product
	err := row.Scan(
		&p.ID,
		&p.Slug,
		&p.Name,
		&p.Description,
		&p.Category,
		&p.Price,
		&p.Currency,
		pq.Array(&p.Sizes),
		pq.Array(&p.Colors),
		&p.InStock,
		&p.SKU,
	)
	return p, err
}

func (r *FixtureRepository) queryProducts(ctx context.Context, query string, args ...any) ([]models.Product, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query products: %w", err)
	}
	defer rows.Close()

	var out []models.Product
	for rows.Next() {
		p, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan product: %w", err)
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

// ListProducts returns the products of a category in name order, or every
// product when category is empty
func (r *FixtureRepository) ListProducts(ctx context.Context, category string) ([]models.Product, error) {
	return r.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE $1 = '' OR category = $1
		ORDER BY name COLLATE "C"
	`, category)
}

// GetProduct retrieves a product by its slug
func (r *FixtureRepository) GetProduct(ctx context.Context, slug string) (models.Product, error) {
	p, err := scanProduct(r.db.QueryRowContext(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE slug = $1
	`, slug))
	if errors.Is(err, sql.ErrNoRows) {
		return models.Product{}, fmt.Errorf("product %q: %w", slug, storefront.ErrNotFound)
	}
	if err != nil {
		return models.Product{}, fmt.Errorf("failed to get product: %w", err)
	}
	return p, nil
}

// SearchProducts matches query against name, description and category,
// ignoring case
func (r *FixtureRepository) SearchProducts(ctx context.Context, query string) ([]models.Product, error) {
	q := strings.TrimSpace(query)
	if q == "" {
		return nil, nil
	}
	return r.queryProducts(ctx, `
		SELECT `+productColumns+`
		FROM products
		WHERE strpos(lower(name || ' ' || description || ' ' || category), lower($1)) > 0
		ORDER BY name COLLATE "C"
	`, q)
}

// CreateProduct inserts p, replacing any product with the same slug
func (r *FixtureRepository) CreateProduct(ctx context.Context, p models.Product) error {
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO products (`+productColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		ON CONFLICT (slug) DO UPDATE SET
			name = EXCLUDED.name,
			description = EXCLUDED.description,
			category = EXCLUDED.category,
			price = EXCLUDED.price,
			currency = EXCLUDED.currency,
			sizes = EXCLUDED.sizes,
			colors = EXCLUDED.colors,
			in_stock = EXCLUDED.in_stock,
			sku = EXCLUDED.sku
	`,
		p.ID,
		p.Slug,
		p.Name,
		p.Description,
		p.Category,
		p.Price,
		p.Currency,
		pq.Array(orEmpty(p.Sizes)),
		pq.Array(orEmpty(p.Colors)),
		p.InStock,
		p.SKU,
	)
	if err != nil {
		return fmt.Errorf("failed to create product: %w", err)
	}
	return nil
}

// CreateAccount registers a. Emails are unique regardless of case.
func (r *FixtureRepository) CreateAccount(ctx context.Context, a models.Account) (models.Account, error) {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now()
	}

	_, err := r.db.ExecContext(ctx, `
		INSERT INTO accounts (id, email, password, first_name, last_name, username, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`, a.ID, a.Email, a.Password, a.FirstName, a.LastName, a.Username, a.CreatedAt)

	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return models.Account{}, fmt.Errorf("account %q: %w", a.Email, storefront.ErrDuplicate)
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to create account: %w", err)
	}
	return a, nil
}

// GetAccountByEmail retrieves an account, ignoring the email's case
func (r *FixtureRepository) GetAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	var a models.Account
	err := r.db.QueryRowContext(ctx, `
		SELECT id, email, password, first_name, last_name, username, created_at
		FROM accounts
		WHERE lower(email) = lower($1)
	`, email).Scan(
		&a.ID,
		&a.Email,
		&a.Password,
		&a.FirstName,
		&a.LastName,
		&a.Username,
		&a.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return models.Account{}, fmt.Errorf("account %q: %w", email, storefront.ErrNotFound)
	}
	if err != nil {
		return models.Account{}, fmt.Errorf("failed to get account: %w", err)
	}
	return a, nil
}

// DeleteAccount removes an account
func (r *FixtureRepository) DeleteAccount(ctx context.Context, email string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM accounts WHERE lower(email) = lower($1)`, email)
	if err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}
	return expectRow(result, fmt.Sprintf("account %q", email))
}

// CreateOrder stores an order and its lines in one transaction
func (r *FixtureRepository) CreateOrder(ctx context.Context, order *models.Order) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	now := time.Now()
	s := order.Shipping
	_, err = tx.ExecContext(ctx, `
		INSERT INTO orders (id, reference, email, currency, status, card_last4,
			ship_first_name, ship_last_name, ship_phone, ship_address, ship_city, ship_postcode, ship_country,
			created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7, $8, $9, $10, $11, $12, $13, $14, $15)
	`,
		order.ID,
		order.Reference,
		order.Email,
		order.Currency,
		order.Status,
		order.CardLast4,
		s.FirstName,
		s.LastName,
		s.Phone,
		s.Address,
		s.City,
		s.Postcode,
		s.Country,
		now,
		now,
	)
	if err != nil {
		return fmt.Errorf("failed to create order: %w", err)
	}

	for i, l := range order.Lines {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_lines (order_id, position, product_slug, product_name, size, color, quantity, unit_price)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		`, order.ID, i, l.ProductSlug, l.ProductName, l.Size, l.Color, l.Quantity, l.UnitPrice)
		if err != nil {
			return fmt.Errorf("failed to create order line %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit order: %w", err)
	}

	order.CreatedAt = now
	order.UpdatedAt = now
	return nil
}

// GetOrderByReference retrieves an order with its lines
func (r *FixtureRepository) GetOrderByReference(ctx context.Context, reference string) (*models.Order, error) {
	order := &models.Order{}
	s := &order.Shipping
	err := r.db.QueryRowContext(ctx, `
		SELECT id, reference, email, currency, status, COALESCE(card_last4, ''),
			ship_first_name, ship_last_name, ship_phone, ship_address, ship_city, ship_postcode, ship_country,
			created_at, updated_at
		FROM orders
		WHERE reference = $1
	`, reference).Scan(
		&order.ID,
		&order.Reference,
		&order.Email,
		&order.Currency,
		&order.Status,
		&order.CardLast4,
		&s.FirstName,
		&s.LastName,
		&s.Phone,
		&s.Address,
		&s.City,
		&s.Postcode,
		&s.Country,
		&order.CreatedAt,
		&order.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("order %q: %w", reference, storefront.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	s.Email = order.Email

	rows, err := r.db.QueryContext(ctx, `
		SELECT product_slug, product_name, size, color, quantity, unit_price
		FROM order_lines
		WHERE order_id = $1
		ORDER BY position
	`, order.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to get order lines: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var l models.OrderLine
		if err := rows.Scan(&l.ProductSlug, &l.ProductName, &l.Size, &l.Color, &l.Quantity, &l.UnitPrice); err != nil {
			return nil, fmt.Errorf("failed to scan order line: %w", err)
		}
		order.Lines = append(order.Lines, l)
	}
	return order, rows.Err()
}

// UpdateOrderStatus updates the status and card reference of an order
func (r *FixtureRepository) UpdateOrderStatus(ctx context.Context, reference string, status models.OrderStatus, cardLast4 string) error {
	result, err := r.db.ExecContext(ctx, `
		UPDATE orders
		SET status = $1, card_last4 = NULLIF($2, ''), updated_at = $3
		WHERE reference = $4
	`, status, cardLast4, time.Now(), reference)
	if err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return expectRow(result, fmt.Sprintf("order %q", reference))
}

// Reset empties every fixture table
func (r *FixtureRepository) Reset(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "TRUNCATE "+strings.Join(database.Tables, ", ")); err != nil {
		return fmt.Errorf("failed to reset fixtures: %w", err)
	}
	return nil
}

// orEmpty keeps nil slices out of the NOT NULL array columns
func orEmpty(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

func expectRow(result sql.Result, what string) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return fmt.Errorf("%s: %w", what, storefront.ErrNotFound)
	}
	return nil
}

var _ storefront.Store = (*FixtureRepository)(nil)
