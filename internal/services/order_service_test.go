package services

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/adyen/shopsuite/internal/models"
)

// MockOrderRepository is a mock implementation of OrderRepository for testing
type MockOrderRepository struct {
	CreateOrderFunc         func(*models.Order) error
	GetOrderByReferenceFunc func(string) (*models.Order, error)
	UpdateOrderStatusFunc   func(string, models.OrderStatus, string) error
}

func (m *MockOrderRepository) CreateOrder(_ context.Context, order *models.Order) error {
	if m.CreateOrderFunc != nil {
		return m.CreateOrderFunc(order)
	}
	return nil
}

func (m *MockOrderRepository) GetOrderByReference(_ context.Context, reference string) (*models.Order, error) {
	if m.GetOrderByReferenceFunc != nil {
		return m.GetOrderByReferenceFunc(reference)
	}
	return &models.Order{Reference: reference, Status: models.OrderStatusPending}, nil
}

func (m *MockOrderRepository) UpdateOrderStatus(_ context.Context, reference string, status models.OrderStatus, cardLast4 string) error {
	if m.UpdateOrderStatusFunc != nil {
		return m.UpdateOrderStatusFunc(reference, status, cardLast4)
	}
	return nil
}

var (
	validLines = []models.OrderLine{{
		ProductSlug: "classic-trench-coat",
		ProductName: "Classic Trench Coat",
		Size:        "M",
		Color:       "Beige",
		Quantity:    1,
		UnitPrice:   12000,
	}}
	validAddress = models.ShippingAddress{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "07123 456789",
		Address:   "1 Analytical Row",
		City:      "London",
		Postcode:  "SW1A 1AA",
		Country:   "United Kingdom",
	}
)

func TestOrderService_PlaceOrder(t *testing.T) {
	dbErr := errors.New("database error")
	tests := []struct {
		name       string
		lines      []models.OrderLine
		card       string
		createErr  error
		wantErr    error
		wantStatus models.OrderStatus
		wantLast4  string
	}{
		{
			name:       "successful order",
			lines:      validLines,
			card:       "4111 1111 1111 1111",
			wantStatus: models.OrderStatusPlaced,
			wantLast4:  "1111",
		},
		{
			name:       "declined card cancels the order",
			lines:      validLines,
			card:       DeclinedCardNumber,
			wantErr:    ErrCardDeclined,
			wantStatus: models.OrderStatusCancelled,
		},
		{
			name:    "invalid card",
			lines:   validLines,
			card:    "1234",
			wantErr: ErrInvalidCard,
		},
		{
			name:    "empty bag",
			lines:   nil,
			card:    "4111111111111111",
			wantErr: models.ErrEmptyOrder,
		},
		{
			name:      "repository error",
			lines:     validLines,
			card:      "4111111111111111",
			createErr: dbErr,
			wantErr:   dbErr,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var created *models.Order
			var updatedStatus models.OrderStatus
			var updatedLast4 string
			mockRepo := &MockOrderRepository{
				CreateOrderFunc: func(order *models.Order) error {
					created = order
					return tt.createErr
				},
				UpdateOrderStatusFunc: func(reference string, status models.OrderStatus, last4 string) error {
					assert.Equal(t, created.Reference, reference)
					updatedStatus = status
					updatedLast4 = last4
					return nil
				},
			}

			service := NewOrderService(mockRepo)
			order, err := service.PlaceOrder(context.Background(), tt.lines, validAddress, tt.card)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			if tt.wantStatus == "" {
				return
			}
			require.NotNil(t, order)
			assert.Equal(t, tt.wantStatus, order.Status)
			assert.Equal(t, tt.wantStatus, updatedStatus)
			assert.Equal(t, tt.wantLast4, updatedLast4)
			assert.Equal(t, validAddress.Email, order.Email)
			assert.NotEmpty(t, order.Reference)
		})
	}
}

func TestOrderService_GetOrderByReference(t *testing.T) {
	tests := []struct {
		name      string
		reference string
		mockOrder *models.Order
		mockError error
		wantErr   bool
	}{
		{
			name:      "successful retrieval",
			reference: "ORDER-123",
			mockOrder: &models.Order{Reference: "ORDER-123"},
		},
		{
			name:      "order not found",
			reference: "ORDER-999",
			mockError: errors.New("order not found"),
			wantErr:   true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockRepo := &MockOrderRepository{
				GetOrderByReferenceFunc: func(string) (*models.Order, error) {
					return tt.mockOrder, tt.mockError
				},
			}

			order, err := NewOrderService(mockRepo).GetOrderByReference(context.Background(), tt.reference)

			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.reference, order.Reference)
		})
	}
}

func TestOrderService_CancelOrder(t *testing.T) {
	tests := []struct {
		name    string
		status  models.OrderStatus
		wantErr error
	}{
		{"pending order", models.OrderStatusPending, nil},
		{"placed order", models.OrderStatusPlaced, models.ErrInvalidStatusTransition},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			updated := false
			mockRepo := &MockOrderRepository{
				GetOrderByReferenceFunc: func(ref string) (*models.Order, error) {
					return &models.Order{Reference: ref, Status: tt.status}, nil
				},
				UpdateOrderStatusFunc: func(_ string, status models.OrderStatus, _ string) error {
					updated = true
					assert.Equal(t, models.OrderStatusCancelled, status)
					return nil
				},
			}

			err := NewOrderService(mockRepo).CancelOrder(context.Background(), "ORDER-1")

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.False(t, updated)
				return
			}
			require.NoError(t, err)
			assert.True(t, updated)
		})
	}
}
