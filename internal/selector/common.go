package selector

// Site chrome shared by every page.
var (
	Header        = TestID("header", "header", ".header")
	Navigation    = TestID("navigation", "nav", ".navigation")
	Footer        = TestID("footer", "footer", ".footer")
	CookieBanner  = TestID("cookie-banner", "#cookie-consent", ".cookie-banner")
	SearchIcon    = TestID("search-icon", `[aria-label="Search"]`, ".search-icon")
	CartIcon      = TestID("cart-icon", `[aria-label*="Cart"]`, `[aria-label*="Bag"]`, ".cart-icon")
	AccountIcon   = TestID("account-icon", `[aria-label*="Account"]`, ".account-icon")
	Logo          = TestID("logo", `a[href="/"]`, ".logo")
	Loading       = TestID("loading", ".loading", ".spinner")
	Body          = Of("body")
	MainNav       = TestID("main-nav", `nav[aria-label="Main"]`, ".main-navigation", ".primary-nav")
	NavMenu       = TestID("nav-menu", `nav[aria-label="Main"]`, ".nav-menu", ".main-nav")
	CartBadge     = TestID("cart-badge", ".cart-badge", ".cart-count")
	AccountMenu   = TestID("account-menu", ".account-menu")
	LogoutLink    = TestID("logout", `a:has-text("Logout")`, `a:has-text("Sign out")`)
	CookieAccept  = TestID("accept-cookies", ".btn-accept", ".accept-button").Append(ContainsText("accept", "agree")...)
	AddedToBagMsg = ContainsText("added to bag", "added to cart")
)

// Common groups the chrome chains by name, in the order the selectors
// command prints them.
var Common = []struct {
	Name  string
	Chain Chain
}{
	{"header", Header},
	{"navigation", Navigation},
	{"footer", Footer},
	{"cookie-banner", CookieBanner},
	{"cookie-accept", CookieAccept},
	{"search-icon", SearchIcon},
	{"cart-icon", CartIcon},
	{"account-icon", AccountIcon},
	{"logo", Logo},
	{"loading", Loading},
	{"main-nav", MainNav},
	{"cart-badge", CartBadge},
	{"account-menu", AccountMenu},
	{"logout", LogoutLink},
}
