package models

import (
	"errors"
	"strings"
	"testing"
)

func validAddress() ShippingAddress {
	return ShippingAddress{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Phone:     "07123 456789",
		Address:   "1 Analytical Row",
		City:      "London",
		Postcode:  "SW1A 1AA",
		Country:   "United Kingdom",
	}
}

func validLine() OrderLine {
	return OrderLine{ProductSlug: "trench-coat", ProductName: "Trench Coat", Size: "M", Quantity: 1, UnitPrice: 12000}
}

func TestNewOrder(t *testing.T) {
	tests := []struct {
		name     string
		lines    []OrderLine
		address  ShippingAddress
		currency string
		wantErr  error
	}{
		{
			name:     "valid order",
			lines:    []OrderLine{validLine()},
			address:  validAddress(),
			currency: "GBP",
		},
		{
			name:     "no lines",
			lines:    nil,
			address:  validAddress(),
			currency: "GBP",
			wantErr:  ErrEmptyOrder,
		},
		{
			name:     "invalid quantity - zero",
			lines:    []OrderLine{{ProductName: "Scarf", Quantity: 0, UnitPrice: 100}},
			address:  validAddress(),
			currency: "GBP",
			wantErr:  ErrInvalidQuantity,
		},
		{
			name:     "invalid price - negative",
			lines:    []OrderLine{{ProductName: "Scarf", Quantity: 1, UnitPrice: -100}},
			address:  validAddress(),
			currency: "GBP",
			wantErr:  ErrInvalidAmount,
		},
		{
			name:     "empty product name",
			lines:    []OrderLine{{Quantity: 1, UnitPrice: 100}},
			address:  validAddress(),
			currency: "GBP",
			wantErr:  ErrInvalidProductName,
		},
		{
			name:     "invalid currency - too long",
			lines:    []OrderLine{validLine()},
			address:  validAddress(),
			currency: "EURO",
			wantErr:  ErrInvalidCurrency,
		},
		{
			name:     "incomplete address",
			lines:    []OrderLine{validLine()},
			address:  ShippingAddress{FirstName: "Ada"},
			currency: "GBP",
			wantErr:  ErrIncompleteAddress,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order, err := NewOrder(tt.lines, tt.address, tt.currency)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("NewOrder() error = %v, wantErr %v", err, tt.wantErr)
				}
				if order != nil {
					t.Error("Expected order to be nil when error occurs")
				}
				return
			}

			if err != nil {
				t.Fatalf("NewOrder() unexpected error = %v", err)
			}
			if order.ID == "" {
				t.Error("Order ID should not be empty")
			}
			if !strings.HasPrefix(order.Reference, "ORDER-") {
				t.Errorf("Expected reference to start with ORDER-, got %s", order.Reference)
			}
			if order.Status != OrderStatusPending {
				t.Errorf("Expected status %s, got %s", OrderStatusPending, order.Status)
			}
			if order.Email != tt.address.Email {
				t.Errorf("Expected email %s, got %s", tt.address.Email, order.Email)
			}
		})
	}
}

func TestNewOrder_UniqueReferences(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 50; i++ {
		order, err := NewOrder([]OrderLine{validLine()}, validAddress(), "GBP")
		if err != nil {
			t.Fatalf("NewOrder() unexpected error = %v", err)
		}
		if seen[order.Reference] {
			t.Fatalf("duplicate reference %s", order.Reference)
		}
		seen[order.Reference] = true
	}
}

func TestMissingAddressFields(t *testing.T) {
	missing := MissingAddressFields(ShippingAddress{FirstName: "Ada", City: "  "})

	want := []string{"lastName", "email", "phone", "address", "city", "postcode", "country"}
	if strings.Join(missing, ",") != strings.Join(want, ",") {
		t.Errorf("MissingAddressFields() = %v, want %v", missing, want)
	}
}

func TestOrder_Place(t *testing.T) {
	tests := []struct {
		name         string
		initialState OrderStatus
		cardLast4    string
		wantErr      bool
	}{
		{
			name:         "place pending order",
			initialState: OrderStatusPending,
			cardLast4:    "1111",
		},
		{
			name:         "cannot place already placed order",
			initialState: OrderStatusPlaced,
			cardLast4:    "1111",
			wantErr:      true,
		},
		{
			name:         "cannot place cancelled order",
			initialState: OrderStatusCancelled,
			cardLast4:    "1111",
			wantErr:      true,
		},
		{
			name:         "card reference too short",
			initialState: OrderStatusPending,
			cardLast4:    "11",
			wantErr:      true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{ID: "test-id", Status: tt.initialState, Currency: "GBP"}

			err := order.Place(tt.cardLast4)

			if (err != nil) != tt.wantErr {
				t.Errorf("Place() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr {
				if !order.IsPlaced() {
					t.Errorf("Expected status %s, got %s", OrderStatusPlaced, order.Status)
				}
				if order.CardLast4 != tt.cardLast4 {
					t.Errorf("Expected CardLast4 %s, got %s", tt.cardLast4, order.CardLast4)
				}
			}
		})
	}
}

func TestOrder_Cancel(t *testing.T) {
	tests := []struct {
		name         string
		initialState OrderStatus
		wantErr      bool
	}{
		{
			name:         "cancel pending order",
			initialState: OrderStatusPending,
		},
		{
			name:         "cannot cancel placed order",
			initialState: OrderStatusPlaced,
			wantErr:      true,
		},
		{
			name:         "can cancel already cancelled order (idempotent)",
			initialState: OrderStatusCancelled,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			order := &Order{ID: "test-id", Status: tt.initialState}

			err := order.Cancel()

			if (err != nil) != tt.wantErr {
				t.Errorf("Cancel() error = %v, wantErr %v", err, tt.wantErr)
				return
			}
			if !tt.wantErr && order.Status != OrderStatusCancelled {
				t.Errorf("Expected status %s, got %s", OrderStatusCancelled, order.Status)
			}
		})
	}
}

func TestOrder_Totals(t *testing.T) {
	order := &Order{Lines: []OrderLine{
		{ProductName: "Coat", Quantity: 2, UnitPrice: 1500},
		{ProductName: "Scarf", Quantity: 1, UnitPrice: 999},
	}}

	if got := order.Total(); got != 3999 {
		t.Errorf("Total() = %d, want 3999", got)
	}
	if got := order.ItemCount(); got != 3 {
		t.Errorf("ItemCount() = %d, want 3", got)
	}
}

func TestProductFilter_HasPriceRange(t *testing.T) {
	if (ProductFilter{}).HasPriceRange() {
		t.Error("empty filter should have no price range")
	}
	if !(ProductFilter{MaxPrice: 200}).HasPriceRange() {
		t.Error("max price alone should count as a price range")
	}
}

func TestBoolValue(t *testing.T) {
	if !BoolValue(nil, true) {
		t.Error("nil should fall back to the default")
	}
	if BoolValue(Bool(false), true) {
		t.Error("explicit false should win over the default")
	}
}
