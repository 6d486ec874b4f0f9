package pages

import (
	"strconv"
	"strings"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/components"
	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/selector"
)

var (
	productGrid        = selector.TestID("product-grid", ".product-grid", ".products-container")
	productTiles       = selector.TestID("product-tile", ".product-tile", ".product-item")
	filterButton       = selector.TestID("filter-button", ".filter-button", `button:has-text("Filter")`)
	sortDropdown       = selector.TestID("sort-dropdown", ".sort-dropdown", `select[name*="sort"]`)
	loadMoreButton     = selector.TestID("load-more", ".load-more", `button:has-text("Load More")`)
	resultsCount       = selector.TestID("results-count", ".results-count", ".product-count")
	breadcrumbs        = selector.TestID("breadcrumbs", ".breadcrumbs", ".breadcrumb")
	filterPanel        = selector.TestID("filter-panel", ".filter-panel", ".filters")
	priceFilter        = selector.TestID("price-filter", ".price-filter")
	sizeFilter         = selector.TestID("size-filter", ".size-filter")
	colorFilter        = selector.TestID("color-filter", ".color-filter")
	categoryFilter     = selector.TestID("category-filter", ".category-filter")
	clearFiltersButton = selector.TestID("clear-filters", ".clear-filters", `button:has-text("Clear")`)
	minPriceInput      = selector.New(`input[name*="min"]`, `input[placeholder*="min"]`)
	maxPriceInput      = selector.New(`input[name*="max"]`, `input[placeholder*="max"]`)
	// filterOption is one clickable value inside a filter group
	filterOption = selector.Of("a, button, label")
)

// ProductListingPage is a category or collection listing. Its route depends
// on the category, so it is given at construction.
type ProductListingPage struct {
	*Chrome[*ProductListingPage]
}

// NewProductListingPage creates a listing page object for path
func NewProductListingPage(run *browser.Runner, path string) *ProductListingPage {
	p := &ProductListingPage{}
	p.Chrome = newChrome(run, p, path)
	return p
}

// VerifyProductsLoaded waits for the grid and at least one tile
func (p *ProductListingPage) VerifyProductsLoaded() *ProductListingPage {
	p.run.Expect(browser.Find(productGrid), browser.BeVisible())
	p.run.Expect(browser.Find(productTiles), browser.HaveCountAtLeast(1))
	return p
}

// GetProductCount returns the number of tiles shown
func (p *ProductListingPage) GetProductCount() (int, error) {
	return p.run.Count(browser.Find(productTiles))
}

// Card returns the product card component for tile i
func (p *ProductListingPage) Card(i int) *components.ProductCard {
	return components.NewProductCard(p.run, browser.Find(productTiles).Nth(i))
}

// ClickProduct opens the product at index i (zero based)
func (p *ProductListingPage) ClickProduct(i int) *ProductListingPage {
	p.run.Click(browser.Find(productTiles).Nth(i))
	return p.WaitForPageLoad()
}

// ClickProductByTitle opens the first product whose tile mentions title
func (p *ProductListingPage) ClickProductByTitle(title string) *ProductListingPage {
	p.run.Click(browser.Find(productTiles).ContainingText(title))
	return p.WaitForPageLoad()
}

// OpenFilters opens the filter panel and waits for it
func (p *ProductListingPage) OpenFilters() *ProductListingPage {
	p.run.Click(browser.Find(filterButton))
	p.run.Expect(browser.Find(filterPanel), browser.BeVisible())
	return p
}

// ApplyFilters opens the panel once, then applies the price range (when
// either bound is set), each size and each color, in that order. Every
// filter waits for the listing to reload. A failure part way leaves the
// listing partially filtered.
func (p *ProductListingPage) ApplyFilters(f models.ProductFilter) *ProductListingPage {
	p.OpenFilters()

	if f.HasPriceRange() {
		p.FilterByPriceRange(f.MinPrice, f.MaxPrice)
	}
	for _, size := range f.Sizes {
		p.FilterBySize(size)
	}
	for _, color := range f.Colors {
		p.FilterByColor(color)
	}
	return p
}

// FilterByPriceRange types the bounds into the price filter. A zero bound
// is left alone; both zero is a no-op.
func (p *ProductListingPage) FilterByPriceRange(minPrice, maxPrice float64) *ProductListingPage {
	if minPrice == 0 && maxPrice == 0 {
		return p
	}

	group := browser.Find(priceFilter)
	var last browser.Target
	if minPrice != 0 {
		last = group.Find(minPriceInput)
		p.run.Fill(last, formatAmount(minPrice))
	}
	if maxPrice != 0 {
		last = group.Find(maxPriceInput)
		p.run.Fill(last, formatAmount(maxPrice))
	}
	p.run.Press(last, "Enter")
	return p.WaitForPageLoad()
}

// FilterBySize clicks the size option labelled size
func (p *ProductListingPage) FilterBySize(size string) *ProductListingPage {
	p.run.Click(browser.Find(sizeFilter).Find(filterOption).HasExactText(size))
	return p.WaitForPageLoad()
}

// FilterByColor clicks the color option labelled color
func (p *ProductListingPage) FilterByColor(color string) *ProductListingPage {
	p.run.Click(browser.Find(colorFilter).Find(filterOption).HasExactText(color))
	return p.WaitForPageLoad()
}

// FilterByCategory clicks the category option labelled category
func (p *ProductListingPage) FilterByCategory(category string) *ProductListingPage {
	p.run.Click(browser.Find(categoryFilter).Find(filterOption).HasExactText(category))
	return p.WaitForPageLoad()
}

// SortBy picks a sort option by value or label
func (p *ProductListingPage) SortBy(option string) *ProductListingPage {
	p.run.Select(browser.Find(sortDropdown), option)
	return p.WaitForPageLoad()
}

func (p *ProductListingPage) ClearFilters() *ProductListingPage {
	p.run.Click(browser.Find(clearFiltersButton))
	return p.WaitForPageLoad()
}

func (p *ProductListingPage) LoadMoreProducts() *ProductListingPage {
	more := browser.Find(loadMoreButton)
	p.run.ScrollIntoView(more)
	p.run.Click(more)
	return p.WaitForPageLoad()
}

// GetResultsCount returns the results counter text, e.g. "12 products"
func (p *ProductListingPage) GetResultsCount() (string, error) {
	text, err := p.run.Text(browser.Find(resultsCount))
	return strings.TrimSpace(text), err
}

// VerifyBreadcrumbs asserts the breadcrumb trail contains path
func (p *ProductListingPage) VerifyBreadcrumbs(path string) *ProductListingPage {
	p.run.Expect(browser.Find(breadcrumbs), browser.ContainText(path))
	return p
}

func formatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
