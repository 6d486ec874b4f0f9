package models

import "time"

// NavigationOptions configures a page visit. Nil fields take the page default:
// WaitForLoad defaults to true, AcceptCookies to the page's own default.
type NavigationOptions struct {
	WaitForLoad   *bool
	AcceptCookies *bool
}

// WaitOptions overrides the default wait behaviour for one call
type WaitOptions struct {
	Timeout  time.Duration
	Interval time.Duration
}

// ProductFilter holds optional listing criteria. Zero prices mean "no bound".
type ProductFilter struct {
	MinPrice   float64
	MaxPrice   float64
	Sizes      []string
	Colors     []string
	Categories []string
}

// HasPriceRange reports whether either price bound is set
func (f ProductFilter) HasPriceRange() bool {
	return f.MinPrice != 0 || f.MaxPrice != 0
}

// Bool returns a pointer to v
func Bool(v bool) *bool {
	return &v
}

// BoolValue dereferences p, falling back to def when p is nil
func BoolValue(p *bool, def bool) bool {
	if p == nil {
		return def
	}
	return *p
}
