package models

// ShippingAddress is the eight-field address the checkout form takes
type ShippingAddress struct {
	FirstName string
	LastName  string
	Email     string
	Phone     string
	Address   string
	City      string
	Postcode  string
	Country   string
}

// TestUser describes a shopper account used by a test
type TestUser struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// LoginCredentials is what the login form needs
type LoginCredentials struct {
	Email      string
	Password   string
	RememberMe bool
}

// Credentials returns the user's login credentials
func (u TestUser) Credentials() LoginCredentials {
	return LoginCredentials{Email: u.Email, Password: u.Password}
}

// TestProduct is a product line a test puts in the bag
type TestProduct struct {
	Name     string
	Price    string
	Size     string
	Color    string
	Quantity int
}

// PaymentMethod accepted at checkout
type PaymentMethod string

const (
	PaymentCard   PaymentMethod = "card"
	PaymentPayPal PaymentMethod = "paypal"
	PaymentKlarna PaymentMethod = "klarna"
)

// TestOrder bundles everything a checkout scenario needs
type TestOrder struct {
	Products        []TestProduct
	ShippingAddress ShippingAddress
	PaymentMethod   PaymentMethod
	TotalAmount     float64
}

// ProductDetails is what the detail page exposes about a product
type ProductDetails struct {
	Title           string
	Price           string
	Description     string
	AvailableSizes  []string
	AvailableColors []string
	InStock         bool
	SKU             string
}
