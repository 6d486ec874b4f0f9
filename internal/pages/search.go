package pages

import (
	"regexp"
	"strconv"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/selector"
	"github.com/adyen/shopsuite/internal/site"
)

var (
	searchInput        = selector.TestID("search-input", ".search-input", `input[name*="search"]`, `input[name="q"]`)
	searchButton       = selector.TestID("search-button", ".search-button", `button[type="submit"]`)
	searchResults      = selector.TestID("search-results", ".search-results", ".results")
	searchSuggestions  = selector.TestID("search-suggestions", ".search-suggestions", ".suggestions")
	noResultsMessage   = selector.TestID("no-results", ".no-results", ".no-results-message")
	searchResultsCount = selector.TestID("search-count", ".search-count", ".results-count")
	suggestionOption   = selector.Of("a, button")

	firstNumber = regexp.MustCompile(`(\d+)`)
)

// SearchPage is the search form and its results
type SearchPage struct {
	*Chrome[*SearchPage]
}

// NewSearchPage creates the search page object
func NewSearchPage(run *browser.Runner) *SearchPage {
	p := &SearchPage{}
	p.Chrome = newChrome(run, p, site.Search)
	return p
}

// Search types term and submits with the search button
func (p *SearchPage) Search(term string) *SearchPage {
	p.run.Fill(browser.Find(searchInput), term)
	p.run.Click(browser.Find(searchButton))
	return p.WaitForPageLoad()
}

// SearchWithEnter types term and submits with the Enter key
func (p *SearchPage) SearchWithEnter(term string) *SearchPage {
	input := browser.Find(searchInput)
	p.run.Fill(input, term)
	p.run.Press(input, "Enter")
	return p.WaitForPageLoad()
}

// TypeQuery types into the search box without submitting, which shows
// suggestions
func (p *SearchPage) TypeQuery(term string) *SearchPage {
	p.run.Fill(browser.Find(searchInput), term)
	return p
}

// SelectSuggestion clicks the suggestion mentioning text
func (p *SearchPage) SelectSuggestion(text string) *SearchPage {
	p.run.Click(browser.Find(searchSuggestions).Find(suggestionOption).ContainingText(text))
	return p.WaitForPageLoad()
}

// VerifySearchResults asserts results are shown and, when a term is given,
// that they mention it (ignoring case)
func (p *SearchPage) VerifySearchResults(term ...string) *SearchPage {
	results := browser.Find(searchResults)
	p.run.Expect(results, browser.BeVisible())
	p.run.Expect(browser.Find(searchResultsCount), browser.ContainText("results"))
	if len(term) > 0 && term[0] != "" {
		p.run.Expect(results, browser.MatchText(regexp.MustCompile(`(?i)`+regexp.QuoteMeta(term[0]))))
	}
	return p
}

func (p *SearchPage) VerifyNoResults() *SearchPage {
	p.run.Expect(browser.Find(noResultsMessage), browser.BeVisible())
	return p
}

// GetSearchResultsCount parses the first number of the results counter; a
// counter without a number reads as zero
func (p *SearchPage) GetSearchResultsCount() (int, error) {
	text, err := p.run.Text(browser.Find(searchResultsCount))
	if err != nil {
		return 0, err
	}
	m := firstNumber.FindString(text)
	if m == "" {
		return 0, nil
	}
	return strconv.Atoi(m)
}

// WaitForSuggestions waits for the suggestion list to show
func (p *SearchPage) WaitForSuggestions() *SearchPage {
	p.run.Expect(browser.Find(searchSuggestions), browser.BeVisible(), site.DefaultTimeout)
	return p
}
