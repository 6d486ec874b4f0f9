package models

import "time"

// Product is a catalog entry served by the fixture storefront
type Product struct {
	ID          string
	Slug        string
	Name        string
	Description string
	Category    string
	Price       int64 // minor units
	Currency    string
	Sizes       []string
	Colors      []string
	InStock     bool
	SKU         string
}

// HasSize reports whether the product comes in size
func (p Product) HasSize(size string) bool {
	return contains(p.Sizes, size)
}

// HasColor reports whether the product comes in color
func (p Product) HasColor(color string) bool {
	return contains(p.Colors, color)
}

// Account is a registered shopper
type Account struct {
	ID        string
	Email     string
	Password  string
	FirstName string
	LastName  string
	Username  string
	CreatedAt time.Time
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
