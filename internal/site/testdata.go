package site

// Fixed test data
const (
	ValidEmail   = "test@example.com"
	InvalidEmail = "invalid-email"
	TestPassword = "TestPassword123!"
)

var (
	ValidSearchTerms   = []string{"coat", "bag", "shoes", "scarf"}
	InvalidSearchTerms = []string{"xyz123nonexistent", "qwerty999"}
	PopularSearchTerms = []string{"trench coat", "handbag", "sneakers"}

	ProductSizes = []string{"XS", "S", "M", "L", "XL", "XXL"}
	Countries    = []string{"United Kingdom", "United States", "Canada", "Australia"}
	Currencies   = []string{"GBP", "USD", "EUR", "CAD"}
)
