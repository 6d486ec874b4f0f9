package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/adyen/shopsuite/internal/models"
)

// DeclinedCardNumber is refused by PlaceOrder, so scenarios can exercise
// the failure page
const DeclinedCardNumber = "4000000000000002"

var (
	// ErrCardDeclined is returned when the card is refused. The order is
	// persisted as cancelled.
	ErrCardDeclined = errors.New("card declined")
	// ErrInvalidCard is returned for card numbers that are not 12 to 19 digits
	ErrInvalidCard = errors.New("invalid card number")
)

// OrderRepository defines the interface for order persistence
type OrderRepository interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByReference(ctx context.Context, reference string) (*models.Order, error)
	UpdateOrderStatus(ctx context.Context, reference string, status models.OrderStatus, cardLast4 string) error
}

// OrderService handles order business logic
type OrderService interface {
	PlaceOrder(ctx context.Context, lines []models.OrderLine, shipping models.ShippingAddress, cardNumber string) (*models.Order, error)
	GetOrderByReference(ctx context.Context, reference string) (*models.Order, error)
	CancelOrder(ctx context.Context, reference string) error
}

// OrderServiceImpl implements OrderService
type OrderServiceImpl struct {
	orderRepo OrderRepository
}

// NewOrderService creates a new order service
func NewOrderService(orderRepo OrderRepository) OrderService {
	return &OrderServiceImpl{
		orderRepo: orderRepo,
	}
}

// PlaceOrder validates and stores the order, then charges the card. A
// declined card leaves a cancelled order behind and returns it together with
// ErrCardDeclined.
func (s *OrderServiceImpl) PlaceOrder(ctx context.Context, lines []models.OrderLine, shipping models.ShippingAddress, cardNumber string) (*models.Order, error) {
	digits := strings.NewReplacer(" ", "", "-", "").Replace(cardNumber)
	if !validCardNumber(digits) {
		return nil, ErrInvalidCard
	}

	order, err := models.NewOrder(lines, shipping, "GBP")
	if err != nil {
		return nil, fmt.Errorf("invalid order: %w", err)
	}

	if err := s.orderRepo.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	if digits == DeclinedCardNumber {
		if err := order.Cancel(); err != nil {
			return nil, err
		}
		if err := s.orderRepo.UpdateOrderStatus(ctx, order.Reference, order.Status, ""); err != nil {
			return nil, fmt.Errorf("failed to update order status: %w", err)
		}
		return order, ErrCardDeclined
	}

	if err := order.Place(digits[len(digits)-4:]); err != nil {
		return nil, err
	}
	if err := s.orderRepo.UpdateOrderStatus(ctx, order.Reference, order.Status, order.CardLast4); err != nil {
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}
	return order, nil
}

func validCardNumber(digits string) bool {
	if len(digits) < 12 || len(digits) > 19 {
		return false
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// GetOrderByReference retrieves an order by its reference
func (s *OrderServiceImpl) GetOrderByReference(ctx context.Context, reference string) (*models.Order, error) {
	order, err := s.orderRepo.GetOrderByReference(ctx, reference)
	if err != nil {
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// CancelOrder cancels an order that has not been placed
func (s *OrderServiceImpl) CancelOrder(ctx context.Context, reference string) error {
	order, err := s.orderRepo.GetOrderByReference(ctx, reference)
	if err != nil {
		return fmt.Errorf("failed to get order: %w", err)
	}

	if err := order.Cancel(); err != nil {
		return err
	}

	if err := s.orderRepo.UpdateOrderStatus(ctx, reference, order.Status, order.CardLast4); err != nil {
		return fmt.Errorf("failed to update order status: %w", err)
	}
	return nil
}
