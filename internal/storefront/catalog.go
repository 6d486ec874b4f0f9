package storefront

import (
	"context"
	"errors"
	"fmt"

	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/site"
)

var (
	clothingSizes = []string{"XS", "S", "M", "L", "XL"}
	shoeSizes     = []string{"36", "37", "38", "39", "40", "41", "42"}
	oneSize       = []string{"One Size"}
)

func product(category, slug, name string, price int64, sizes, colors []string, description string) models.Product {
	return models.Product{
		ID:          "prod-" + slug,
		Slug:        slug,
		Name:        name,
		Description: description,
		Category:    category,
		Price:       price,
		Currency:    "GBP",
		Sizes:       sizes,
		Colors:      colors,
		InStock:     true,
		SKU:         fmt.Sprintf("SKU-%s", slug),
	}
}

// DefaultCatalog is the product range the storefront starts with
func DefaultCatalog() []models.Product {
	soldOut := product("women", "pleated-midi-skirt", "Pleated Midi Skirt", 8900, clothingSizes, []string{"Navy"},
		"Knife pleats in a fluid satin.")
	soldOut.InStock = false

	return []models.Product{
		product("women", "classic-trench-coat", "Classic Trench Coat", 12000, clothingSizes, []string{"Beige", "Black"},
			"Double-breasted trench coat in water-resistant cotton gabardine."),
		product("women", "silk-scarf", "Silk Scarf", 4500, oneSize, []string{"Beige", "Burgundy"},
			"Printed silk twill scarf."),
		product("women", "wool-wrap-coat", "Wool Wrap Coat", 18000, clothingSizes, []string{"Camel", "Black"},
			"Belted wrap coat in brushed wool."),
		soldOut,
		product("men", "quilted-jacket", "Quilted Jacket", 15000, clothingSizes, []string{"Navy", "Black"},
			"Diamond-quilted jacket with corduroy collar."),
		product("men", "cashmere-jumper", "Cashmere Jumper", 9500, clothingSizes, []string{"Camel", "Navy"},
			"Crew-neck jumper knitted from pure cashmere."),
		product("men", "check-shirt", "Check Shirt", 6500, clothingSizes, []string{"Beige"},
			"Cotton poplin shirt in the house check."),
		product("men", "chino-trousers", "Chino Trousers", 7000, clothingSizes, []string{"Beige", "Navy"},
			"Straight-leg chinos in stretch cotton twill."),
		product("children", "kids-duffle-coat", "Kids Duffle Coat", 8000, []string{"4Y", "6Y", "8Y", "10Y"}, []string{"Navy"},
			"Wool duffle coat with toggle fastening."),
		product("children", "kids-check-dress", "Kids Check Dress", 5500, []string{"4Y", "6Y", "8Y"}, []string{"Beige"},
			"Smocked cotton dress in the house check."),
		product("children", "baby-gift-set", "Baby Gift Set", 6000, oneSize, []string{"White"},
			"Cotton romper, hat and bib."),
		product("bags", "leather-tote-bag", "Leather Tote Bag", 22000, oneSize, []string{"Black", "Camel"},
			"Grained leather tote with a zipped inner pocket."),
		product("bags", "crossbody-bag", "Crossbody Bag", 14000, oneSize, []string{"Black", "Burgundy"},
			"Compact crossbody bag with an adjustable strap."),
		product("bags", "canvas-backpack", "Canvas Backpack", 9000, oneSize, []string{"Beige"},
			"Waxed canvas backpack with leather trims."),
		product("shoes", "leather-loafers", "Leather Loafers", 11000, shoeSizes, []string{"Black", "Burgundy"},
			"Polished leather penny loafers."),
		product("shoes", "white-sneakers", "White Sneakers", 8500, shoeSizes, []string{"White"},
			"Low-top leather sneakers."),
		product("shoes", "suede-chelsea-boots", "Suede Chelsea Boots", 16000, shoeSizes, []string{"Camel", "Black"},
			"Chelsea boots in soft suede."),
	}
}

// DemoAccount is the shopper the login scenarios sign in as
func DemoAccount() models.Account {
	return models.Account{
		ID:        "acct-demo",
		Email:     site.ValidEmail,
		Password:  site.TestPassword,
		FirstName: "Test",
		LastName:  "Shopper",
		Username:  "testshopper",
	}
}

// Seed loads the default catalog and the demo account into store. Existing
// entries are kept.
func Seed(ctx context.Context, store Store) error {
	for _, p := range DefaultCatalog() {
		if err := store.CreateProduct(ctx, p); err != nil {
			return fmt.Errorf("seed product %s: %w", p.Slug, err)
		}
	}
	if _, err := store.CreateAccount(ctx, DemoAccount()); err != nil && !errors.Is(err, ErrDuplicate) {
		return fmt.Errorf("seed demo account: %w", err)
	}
	return nil
}
