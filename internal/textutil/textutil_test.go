package textutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractPrice(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"£120.00", 120},
		{"Total: £1,234.50", 1234.5},
		{"From 45 GBP", 45},
		{"Free", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.InDelta(t, tt.want, ExtractPrice(tt.in), 0.001)
		})
	}
}

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "£120.00", FormatPrice(120))
	assert.Equal(t, "$9.50", FormatPrice(9.5, "$"))
	assert.Equal(t, "£45.99", FormatMinor(4599))
}

func TestNormalizeText(t *testing.T) {
	assert.Equal(t, "classic trench coat", NormalizeText("  Classic \n Trench\tCOAT "))
}

func TestRandomString(t *testing.T) {
	s := RandomString(12)

	assert.Len(t, s, 12)
	assert.Regexp(t, `^[A-Za-z0-9]+$`, s)
	assert.Len(t, RandomString(0), 8)
	assert.NotEqual(t, RandomString(16), RandomString(16))
}

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		check func(string) bool
		in    string
		want  bool
	}{
		{"email", IsValidEmail, "ada@example.com", true},
		{"email without domain dot", IsValidEmail, "ada@example", false},
		{"email with space", IsValidEmail, "ada @example.com", false},
		{"postcode", IsValidUKPostcode, "SW1A 1AA", true},
		{"postcode lower case", IsValidUKPostcode, " ec1a1bb ", true},
		{"postcode us zip", IsValidUKPostcode, "90210", false},
		{"phone", IsValidPhoneNumber, "+44 (0)20 7946 0958", true},
		{"phone too short", IsValidPhoneNumber, "12345", false},
		{"phone letters", IsValidPhoneNumber, "0712345678a", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.check(tt.in))
		})
	}
}

func TestIsValidPriceRange(t *testing.T) {
	assert.True(t, IsValidPriceRange(0, 100))
	assert.True(t, IsValidPriceRange(50, 50))
	assert.False(t, IsValidPriceRange(-1, 10))
	assert.False(t, IsValidPriceRange(100, 50))
}
