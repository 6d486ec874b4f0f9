// Package site holds the static sitemap, timeouts and test data constants
// the page objects are written against.
package site

import "time"

// Routes relative to the configured base URL
const (
	Home     = "/"
	Cart     = "/cart"
	Checkout = "/checkout"
	Login    = "/login"
	Register = "/register"
	Account  = "/account"
	Search   = "/search"
	Women    = "/women"
	Men      = "/men"
	Children = "/children"
	Bags     = "/bags"
	Shoes    = "/shoes"
	Logout   = "/logout"

	Confirmation = "/checkout/confirmation"
	APILogin     = "/api/auth/login"
)

// ProductPath returns the detail route for a product slug
func ProductPath(slug string) string {
	return "/product/" + slug
}

// DefaultBaseURL is used when BASE_URL is not set
const DefaultBaseURL = "http://localhost:8080"

// Categories maps navigation labels to their listing routes, in menu order
var Categories = []struct {
	Name string
	Path string
}{
	{"Women", Women},
	{"Men", Men},
	{"Children", Children},
	{"Bags", Bags},
	{"Shoes", Shoes},
}

// CategoryPath returns the listing route for a navigation label
func CategoryPath(name string) (string, bool) {
	for _, c := range Categories {
		if c.Name == name {
			return c.Path, true
		}
	}
	return "", false
}

// Timeouts
const (
	ShortTimeout    = 5 * time.Second
	DefaultTimeout  = 10 * time.Second
	PageLoadTimeout = 30 * time.Second
	LongTimeout     = 60 * time.Second
	PollInterval    = 100 * time.Millisecond
)

// Viewport is a named browser window size
type Viewport struct {
	Width  int
	Height int
}

// Viewports known to the suite
var Viewports = map[string]Viewport{
	"desktop":  {1920, 1080},
	"laptop":   {1366, 768},
	"ipad-2":   {768, 1024},
	"iphone-x": {375, 812},
	"iphone-6": {375, 667},
}
