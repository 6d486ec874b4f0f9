// Package fixtures generates randomised test records. A Generator built with
// a non-zero seed always produces the same sequence, so a failing scenario
// can be replayed with FIXTURE_SEED.
package fixtures

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/site"
)

// ErrUnknownTable is returned by Fixture for a table it has no generator for
var ErrUnknownTable = errors.New("no generator for table")

// TestCardNumber is accepted by the fixture storefront's checkout
const TestCardNumber = "4111111111111111"

var (
	colors        = []string{"Black", "Beige", "Navy", "Camel", "White", "Burgundy"}
	nonSlugChars  = regexp.MustCompile(`[^a-z0-9]+`)
	paymentMethod = []models.PaymentMethod{models.PaymentCard, models.PaymentPayPal, models.PaymentKlarna}
)

// Admin is a shopper with elevated permissions
type Admin struct {
	models.TestUser
	Role        string
	Permissions []string
}

// CreditCard holds test card details in the shape the payment form takes
type CreditCard struct {
	Number     string
	Expiry     string
	CVV        string
	HolderName string
}

// RegistrationForm is what the registration page asks for
type RegistrationForm struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
	Phone           string
	AgreeToTerms    bool
	Newsletter      bool
}

// Generator produces fixture records
type Generator struct {
	f    *gofakeit.Faker
	seed int64
}

// New creates a generator. Seed 0 picks a random seed.
func New(seed int64) *Generator {
	return &Generator{f: gofakeit.New(seed), seed: seed}
}

// Seed returns the seed the generator was created with
func (g *Generator) Seed() int64 {
	return g.seed
}

// User returns a shopper with the suite's standard password
func (g *Generator) User() models.TestUser {
	return models.TestUser{
		Email:     g.email(),
		Password:  site.TestPassword,
		FirstName: g.f.FirstName(),
		LastName:  g.f.LastName(),
	}
}

// email is unique enough for one run: fake addresses collide
func (g *Generator) email() string {
	return strings.ToLower(g.f.Username()) + "." + g.f.DigitN(6) + "@example.com"
}

// Admin returns a user with the admin role
func (g *Generator) Admin() Admin {
	return Admin{
		TestUser:    g.User(),
		Role:        "admin",
		Permissions: []string{"read", "write", "delete", "admin"},
	}
}

// Account returns a user as the storefront stores it
func (g *Generator) Account() models.Account {
	u := g.User()
	return models.Account{
		Email:     u.Email,
		Password:  u.Password,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Username:  strings.ToLower(g.f.Username()),
	}
}

// Credentials returns login credentials for a fresh user
func (g *Generator) Credentials() models.LoginCredentials {
	return g.User().Credentials()
}

// UKShippingAddress returns an address the checkout's UK validation accepts
func (g *Generator) UKShippingAddress() models.ShippingAddress {
	return models.ShippingAddress{
		FirstName: g.f.FirstName(),
		LastName:  g.f.LastName(),
		Email:     g.email(),
		Phone:     g.f.Numerify("07### ######"),
		Address:   g.f.Street(),
		City:      g.f.City(),
		Postcode:  strings.ToUpper(g.f.Lexify("??")) + g.f.Numerify("# #") + strings.ToUpper(g.f.Lexify("??")),
		Country:   "United Kingdom",
	}
}

// ShippingAddress returns an address in country
func (g *Generator) ShippingAddress(country string) models.ShippingAddress {
	return models.ShippingAddress{
		FirstName: g.f.FirstName(),
		LastName:  g.f.LastName(),
		Email:     g.email(),
		Phone:     g.f.Phone(),
		Address:   g.f.Street(),
		City:      g.f.City(),
		Postcode:  g.f.Zip(),
		Country:   country,
	}
}

// Product returns a catalog entry in one of the navigation categories
func (g *Generator) Product() models.Product {
	name := g.f.ProductName()
	category := Pick(g, site.Categories).Name
	return models.Product{
		ID:          g.f.UUID(),
		Slug:        Slug(name) + "-" + strings.ToLower(g.f.LetterN(4)),
		Name:        name,
		Description: g.f.ProductDescription(),
		Category:    strings.ToLower(category),
		Price:       int64(g.f.Number(10, 500)) * 100,
		Currency:    "GBP",
		Sizes:       g.subset(site.ProductSizes),
		Colors:      g.subset(colors),
		InStock:     g.f.Number(0, 9) > 0,
		SKU:         strings.ToUpper(g.f.LetterN(3)) + g.f.DigitN(5),
	}
}

// subset returns a non-empty ordered subset of values
func (g *Generator) subset(values []string) []string {
	var out []string
	for _, v := range values {
		if g.f.Bool() {
			out = append(out, v)
		}
	}
	if len(out) == 0 {
		out = append(out, Pick(g, values))
	}
	return out
}

// Order returns a pending order for a UK address with one line per product.
// Without products it generates one.
func (g *Generator) Order(products ...models.Product) (*models.Order, error) {
	if len(products) == 0 {
		products = []models.Product{g.Product()}
	}
	lines := make([]models.OrderLine, 0, len(products))
	for _, p := range products {
		lines = append(lines, models.OrderLine{
			ProductSlug: p.Slug,
			ProductName: p.Name,
			Size:        Pick(g, p.Sizes),
			Color:       Pick(g, p.Colors),
			Quantity:    g.f.Number(1, 3),
			UnitPrice:   p.Price,
		})
	}
	return models.NewOrder(lines, g.UKShippingAddress(), "GBP")
}

// TestOrder returns the checkout inputs of a scenario
func (g *Generator) TestOrder() models.TestOrder {
	p := g.Product()
	qty := g.f.Number(1, 3)
	return models.TestOrder{
		Products: []models.TestProduct{{
			Name:     p.Name,
			Price:    fmt.Sprintf("£%.2f", float64(p.Price)/100),
			Size:     Pick(g, p.Sizes),
			Color:    Pick(g, p.Colors),
			Quantity: qty,
		}},
		ShippingAddress: g.UKShippingAddress(),
		PaymentMethod:   Pick(g, paymentMethod),
		TotalAmount:     float64(p.Price*int64(qty)) / 100,
	}
}

// CreditCard returns details of the test card
func (g *Generator) CreditCard() CreditCard {
	return CreditCard{
		Number:     TestCardNumber,
		Expiry:     fmt.Sprintf("%02d/%02d", g.f.Number(1, 12), g.f.Number(27, 32)),
		CVV:        g.f.Numerify("###"),
		HolderName: g.f.Name(),
	}
}

// RegistrationForm returns a filled registration form
func (g *Generator) RegistrationForm() RegistrationForm {
	u := g.User()
	return RegistrationForm{
		FirstName:       u.FirstName,
		LastName:        u.LastName,
		Email:           u.Email,
		Password:        u.Password,
		ConfirmPassword: u.Password,
		Phone:           g.f.Phone(),
		AgreeToTerms:    true,
		Newsletter:      g.f.Bool(),
	}
}

// ID returns a random UUID drawn from the generator's seed
func (g *Generator) ID() string {
	return g.f.UUID()
}

// Fixture returns n records for a storage table: "users", "products" or
// "orders"
func (g *Generator) Fixture(table string, n int) ([]any, error) {
	var gen func() (any, error)
	switch table {
	case "users":
		gen = func() (any, error) { return g.Account(), nil }
	case "products":
		gen = func() (any, error) { return g.Product(), nil }
	case "orders":
		gen = func() (any, error) { return g.Order() }
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTable, table)
	}

	out := make([]any, 0, n)
	for i := 0; i < n; i++ {
		rec, err := gen()
		if err != nil {
			return nil, fmt.Errorf("generate %s: %w", table, err)
		}
		out = append(out, rec)
	}
	return out, nil
}

// Many calls gen n times
func Many[T any](n int, gen func() T) []T {
	out := make([]T, n)
	for i := range out {
		out[i] = gen()
	}
	return out
}

// Pick returns one of choices, or the zero value when there are none
func Pick[T any](g *Generator, choices []T) T {
	if len(choices) == 0 {
		var zero T
		return zero
	}
	return choices[g.f.Number(0, len(choices)-1)]
}

// Slug lowercases text and joins its words with dashes
func Slug(text string) string {
	return strings.Trim(nonSlugChars.ReplaceAllString(strings.ToLower(text), "-"), "-")
}
