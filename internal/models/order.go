package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents valid order states
type OrderStatus string

// Order statuses
const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPlaced    OrderStatus = "placed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// OrderLine is one product in an order
type OrderLine struct {
	ProductSlug string
	ProductName string
	Size        string
	Color       string
	Quantity    int
	UnitPrice   int64
}

// Subtotal returns the line total in minor units
func (l OrderLine) Subtotal() int64 {
	return l.UnitPrice * int64(l.Quantity)
}

// Order is a checkout placed against the fixture storefront
type Order struct {
	ID        string
	Reference string
	Email     string
	Lines     []OrderLine
	Shipping  ShippingAddress
	Currency  string
	Status    OrderStatus
	CardLast4 string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Domain errors
var (
	ErrEmptyOrder              = errors.New("order must have at least one line")
	ErrInvalidQuantity         = errors.New("line quantity must be positive")
	ErrInvalidAmount           = errors.New("line price must be positive")
	ErrInvalidCurrency         = errors.New("currency code must be 3 characters")
	ErrInvalidProductName      = errors.New("product name cannot be empty")
	ErrIncompleteAddress       = errors.New("shipping address is incomplete")
	ErrInvalidStatusTransition = errors.New("invalid order status transition")
)

// NewOrder creates a pending order with validation
func NewOrder(lines []OrderLine, shipping ShippingAddress, currency string) (*Order, error) {
	if err := validateOrderInput(lines, shipping, currency); err != nil {
		return nil, err
	}

	now := time.Now()
	id := uuid.New()

	return &Order{
		ID:        id.String(),
		Reference: "ORDER-" + strings.ToUpper(strings.ReplaceAll(id.String(), "-", "")[:10]),
		Email:     shipping.Email,
		Lines:     append([]OrderLine(nil), lines...),
		Shipping:  shipping,
		Currency:  currency,
		Status:    OrderStatusPending,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

// validateOrderInput validates order creation parameters
func validateOrderInput(lines []OrderLine, shipping ShippingAddress, currency string) error {
	if len(lines) == 0 {
		return ErrEmptyOrder
	}
	for _, l := range lines {
		if l.ProductName == "" {
			return ErrInvalidProductName
		}
		if l.Quantity <= 0 {
			return ErrInvalidQuantity
		}
		if l.UnitPrice <= 0 {
			return ErrInvalidAmount
		}
	}
	if len(currency) != 3 {
		return ErrInvalidCurrency
	}
	if missing := MissingAddressFields(shipping); len(missing) > 0 {
		return fmt.Errorf("%w: missing %s", ErrIncompleteAddress, strings.Join(missing, ", "))
	}
	return nil
}

// MissingAddressFields lists the empty fields of a shipping address
func MissingAddressFields(a ShippingAddress) []string {
	var missing []string
	for _, f := range []struct {
		name  string
		value string
	}{
		{"firstName", a.FirstName},
		{"lastName", a.LastName},
		{"email", a.Email},
		{"phone", a.Phone},
		{"address", a.Address},
		{"city", a.City},
		{"postcode", a.Postcode},
		{"country", a.Country},
	} {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}
	return missing
}

// Place marks the order as paid with the last four card digits
func (o *Order) Place(cardLast4 string) error {
	if o.Status != OrderStatusPending {
		return fmt.Errorf("%w: cannot place order with status %s", ErrInvalidStatusTransition, o.Status)
	}
	if len(cardLast4) != 4 {
		return errors.New("card reference must be the last four digits")
	}

	o.Status = OrderStatusPlaced
	o.CardLast4 = cardLast4
	o.UpdatedAt = time.Now()
	return nil
}

// Cancel marks the order as cancelled
func (o *Order) Cancel() error {
	if o.Status == OrderStatusPlaced {
		return fmt.Errorf("%w: cannot cancel a placed order", ErrInvalidStatusTransition)
	}

	o.Status = OrderStatusCancelled
	o.UpdatedAt = time.Now()
	return nil
}

// IsPlaced returns true once payment went through
func (o *Order) IsPlaced() bool {
	return o.Status == OrderStatusPlaced
}

// ItemCount returns the number of units across all lines
func (o *Order) ItemCount() int {
	n := 0
	for _, l := range o.Lines {
		n += l.Quantity
	}
	return n
}

// Total returns the order total in minor units
func (o *Order) Total() int64 {
	var total int64
	for _, l := range o.Lines {
		total += l.Subtotal()
	}
	return total
}
