package pages

import (
	"strings"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/selector"
	"github.com/adyen/shopsuite/internal/site"
)

var (
	heroSection      = selector.TestID("hero-section", ".hero", ".hero-banner")
	featuredProducts = selector.TestID("featured-products", ".featured-products", ".product-grid")
	categoryLinks    = selector.TestID("category-link", ".category-link", ".category-tile")
	newsletterSignup = selector.TestID("newsletter-signup", ".newsletter", ".email-signup")
	newsletterEmail  = selector.Of(`input[type="email"]`)
	submitButton     = selector.New(`button[type="submit"]`, `input[type="submit"]`)
)

// categoryLink returns the main-navigation link for a category label. The
// href is matched exactly so "/men" never hits "/women".
func categoryLink(name, path string) selector.Chain {
	return selector.TestID("nav-"+strings.ToLower(name),
		`a[href="`+path+`"]`,
		`a:text-is("`+name+`")`,
	)
}

// HomePage is the landing page. Visiting it accepts cookies by default.
type HomePage struct {
	*Chrome[*HomePage]
}

// NewHomePage creates the home page object
func NewHomePage(run *browser.Runner) *HomePage {
	p := &HomePage{}
	p.Chrome = newChrome(run, p, site.Home)
	p.acceptCookies = true
	return p
}

func (p *HomePage) navigateToCategory(name, path string) *HomePage {
	p.run.Click(browser.Find(selector.MainNav).Find(categoryLink(name, path)))
	return p.WaitForPageLoad()
}

// NavigateToCategory follows the main-navigation link for a category label
func (p *HomePage) NavigateToCategory(name string) *HomePage {
	path, ok := site.CategoryPath(name)
	if !ok {
		p.run.Fail("navigate to category", errUnknown("category", name))
		return p
	}
	return p.navigateToCategory(name, path)
}

// NavigateToWomen opens the women's listing
func (p *HomePage) NavigateToWomen() *HomePage {
	return p.navigateToCategory("Women", site.Women)
}

// NavigateToMen opens the men's listing
func (p *HomePage) NavigateToMen() *HomePage {
	return p.navigateToCategory("Men", site.Men)
}

// NavigateToChildren opens the children's listing
func (p *HomePage) NavigateToChildren() *HomePage {
	return p.navigateToCategory("Children", site.Children)
}

// NavigateToBags opens the bags listing
func (p *HomePage) NavigateToBags() *HomePage {
	return p.navigateToCategory("Bags", site.Bags)
}

// NavigateToShoes opens the shoes listing
func (p *HomePage) NavigateToShoes() *HomePage {
	return p.navigateToCategory("Shoes", site.Shoes)
}

func (p *HomePage) VerifyHeroSectionVisible() *HomePage {
	p.run.Expect(browser.Find(heroSection), browser.BeVisible())
	return p
}

func (p *HomePage) VerifyFeaturedProductsVisible() *HomePage {
	p.run.Expect(browser.Find(featuredProducts), browser.BeVisible())
	return p
}

// GetCategoryLinks returns the labels of the category tiles
func (p *HomePage) GetCategoryLinks() ([]string, error) {
	texts, err := p.run.Texts(browser.Find(categoryLinks))
	if err != nil {
		return nil, err
	}
	for i := range texts {
		texts[i] = strings.TrimSpace(texts[i])
	}
	return texts, nil
}

// SubscribeToNewsletter submits email through the signup form
func (p *HomePage) SubscribeToNewsletter(email string) *HomePage {
	form := browser.Find(newsletterSignup)
	p.run.Fill(form.Find(newsletterEmail), email)
	p.run.Click(form.Find(submitButton))
	return p
}
