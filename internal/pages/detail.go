package pages

import (
	"strconv"
	"strings"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/models"
	"github.com/adyen/shopsuite/internal/selector"
	"github.com/adyen/shopsuite/internal/site"
)

var (
	productImages       = selector.TestID("product-images", ".product-images", ".product-gallery")
	mainProductImage    = selector.TestID("main-product-image", ".main-image", ".product-image-main")
	thumbnailImages     = selector.TestID("thumbnail-images", ".thumbnail-images", ".product-thumbnails img")
	productTitle        = selector.TestID("product-title", ".product-title", "h1")
	productPrice        = selector.TestID("product-price", ".product-price", ".price")
	productDescription  = selector.TestID("product-description", ".product-description", ".description")
	productSKU          = selector.TestID("product-sku", ".product-sku", ".sku")
	sizeSelector        = selector.TestID("size-selector", ".size-selector", `select[name*="size"]`)
	colorSelector       = selector.TestID("color-selector", ".color-selector", ".color-options")
	quantitySelector    = selector.TestID("quantity-selector", ".quantity-selector", `select[name*="quantity"]`)
	addToBagButton      = selector.TestID("add-to-bag", ".add-to-bag", `button:has-text("Add to Bag")`)
	addToWishlistButton = selector.TestID("add-to-wishlist", ".add-to-wishlist", `button:has-text("Wishlist")`)
	sizeGuideLink       = selector.TestID("size-guide", ".size-guide", `a:has-text("Size Guide")`)
	deliveryInfo        = selector.TestID("delivery-info", ".delivery-info", ".shipping-info")
	outOfStock          = selector.TestID("out-of-stock", ".out-of-stock", ".sold-out")
	// sizeOption skips the "choose a size" placeholder
	sizeOption = selector.Of(`option:not([value=""])`)
)

// ProductDetailPage shows one product
type ProductDetailPage struct {
	*Chrome[*ProductDetailPage]
}

// NewProductDetailPage creates the detail page object for a product slug
func NewProductDetailPage(run *browser.Runner, slug string) *ProductDetailPage {
	p := &ProductDetailPage{}
	p.Chrome = newChrome(run, p, site.ProductPath(slug))
	return p
}

// VerifyProductLoaded waits for title, price and main image
func (p *ProductDetailPage) VerifyProductLoaded() *ProductDetailPage {
	p.run.Expect(browser.Find(productTitle), browser.BeVisible())
	p.run.Expect(browser.Find(productPrice), browser.BeVisible())
	p.run.Expect(browser.Find(mainProductImage), browser.BeVisible())
	return p
}

// GetProductDetails collects what the page shows about the product.
// Description and SKU are optional on the page and left empty when missing.
func (p *ProductDetailPage) GetProductDetails() (models.ProductDetails, error) {
	var d models.ProductDetails
	var err error

	if d.Title, err = p.GetProductTitle(); err != nil {
		return d, err
	}
	if d.Price, err = p.GetProductPrice(); err != nil {
		return d, err
	}
	if d.Description, err = p.optionalText(productDescription); err != nil {
		return d, err
	}
	if d.SKU, err = p.optionalText(productSKU); err != nil {
		return d, err
	}
	if d.AvailableSizes, err = p.GetAvailableSizes(); err != nil {
		return d, err
	}
	colors, err := p.run.Texts(browser.Find(colorSelector).Find(filterOption))
	if err != nil {
		return d, err
	}
	d.AvailableColors = trimAll(colors)

	soldOut, err := p.run.Exists(browser.Find(outOfStock))
	if err != nil {
		return d, err
	}
	d.InStock = !soldOut
	return d, nil
}

func (p *ProductDetailPage) optionalText(chain selector.Chain) (string, error) {
	target := browser.Find(chain)
	ok, err := p.run.Exists(target)
	if err != nil || !ok {
		return "", err
	}
	text, err := p.run.Text(target)
	return strings.TrimSpace(text), err
}

func (p *ProductDetailPage) GetProductTitle() (string, error) {
	text, err := p.run.Text(browser.Find(productTitle))
	return strings.TrimSpace(text), err
}

func (p *ProductDetailPage) GetProductPrice() (string, error) {
	text, err := p.run.Text(browser.Find(productPrice))
	return strings.TrimSpace(text), err
}

// SelectSize picks size from the size dropdown
func (p *ProductDetailPage) SelectSize(size string) *ProductDetailPage {
	p.run.Select(browser.Find(sizeSelector), size)
	return p
}

// SelectColor clicks the color swatch labelled color
func (p *ProductDetailPage) SelectColor(color string) *ProductDetailPage {
	p.run.Click(browser.Find(colorSelector).Find(filterOption).HasExactText(color))
	return p
}

func (p *ProductDetailPage) SelectQuantity(quantity int) *ProductDetailPage {
	p.run.Select(browser.Find(quantitySelector), strconv.Itoa(quantity))
	return p
}

func (p *ProductDetailPage) AddToBag() *ProductDetailPage {
	p.run.Click(browser.Find(addToBagButton))
	return p
}

func (p *ProductDetailPage) AddToWishlist() *ProductDetailPage {
	p.run.Click(browser.Find(addToWishlistButton))
	return p
}

// ClickThumbnail clicks gallery thumbnail i (zero based)
func (p *ProductDetailPage) ClickThumbnail(i int) *ProductDetailPage {
	p.run.Click(browser.Find(thumbnailImages).Nth(i))
	return p
}

func (p *ProductDetailPage) OpenSizeGuide() *ProductDetailPage {
	p.run.Click(browser.Find(sizeGuideLink))
	return p
}

// VerifyImagesVisible asserts the gallery is shown
func (p *ProductDetailPage) VerifyImagesVisible() *ProductDetailPage {
	p.run.Expect(browser.Find(productImages), browser.BeVisible())
	return p
}

// VerifyDeliveryInfo asserts the delivery block mentions text
func (p *ProductDetailPage) VerifyDeliveryInfo(text string) *ProductDetailPage {
	p.run.Expect(browser.Find(deliveryInfo), browser.ContainText(text))
	return p
}

// VerifyAddToBagSuccess waits for the "added to bag" confirmation
func (p *ProductDetailPage) VerifyAddToBagSuccess() *ProductDetailPage {
	p.run.Expect(browser.Find(selector.AddedToBagMsg), browser.BeVisible(), site.DefaultTimeout)
	return p
}

// VerifySizeAvailable asserts size is offered and not disabled
func (p *ProductDetailPage) VerifySizeAvailable(size string) *ProductDetailPage {
	option := browser.Find(sizeSelector).Find(sizeOption).HasExactText(size)
	p.run.Expect(option, browser.Exist())
	p.run.Expect(option, browser.BeEnabled())
	return p
}

// GetAvailableSizes returns the labels of the size options
func (p *ProductDetailPage) GetAvailableSizes() ([]string, error) {
	texts, err := p.run.Texts(browser.Find(sizeSelector).Find(sizeOption))
	if err != nil {
		return nil, err
	}
	return trimAll(texts), nil
}

// trimAll trims every entry and drops the empty ones
func trimAll(texts []string) []string {
	out := make([]string, 0, len(texts))
	for _, t := range texts {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
