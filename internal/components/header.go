// Package components holds page fragments that appear on many pages. Each
// component scopes its queries beneath a container target, so it can be
// used on any page without a page object.
package components

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/selector"
)

var (
	navLink       = selector.Of("a")
	leadingNumber = regexp.MustCompile(`\d+`)
)

// Header is the site header: logo, icons, navigation and bag badge
type Header struct {
	run       *browser.Runner
	container browser.Target
}

// NewHeader creates a header scoped to container, or to the site header when
// no container is given
func NewHeader(run *browser.Runner, container ...browser.Target) *Header {
	c := browser.Find(selector.Header)
	if len(container) > 0 {
		c = container[0]
	}
	return &Header{run: run, container: c}
}

// Err returns the first failed step of the scenario
func (h *Header) Err() error {
	return h.run.Err()
}

func (h *Header) VerifyHeaderVisible() *Header {
	h.run.Expect(h.container, browser.BeVisible())
	return h
}

func (h *Header) ClickLogo() *Header {
	h.run.Click(h.container.Find(selector.Logo))
	return h
}

func (h *Header) OpenSearch() *Header {
	h.run.Click(h.container.Find(selector.SearchIcon))
	return h
}

func (h *Header) OpenCart() *Header {
	h.run.Click(h.container.Find(selector.CartIcon))
	return h
}

func (h *Header) OpenAccount() *Header {
	h.run.Click(h.container.Find(selector.AccountIcon))
	return h
}

// NavigateToCategory clicks the navigation link labelled name
func (h *Header) NavigateToCategory(name string) *Header {
	h.run.Click(h.container.Find(selector.NavMenu).Find(navLink).HasExactText(name))
	return h
}

// GetCartItemCount reads the bag badge. No badge reads as zero; a capped
// badge such as "9+" reads as its digits. A badge without a number is an
// error.
func (h *Header) GetCartItemCount() (int, error) {
	badge := h.container.Find(selector.CartBadge)
	ok, err := h.run.Exists(badge)
	if err != nil || !ok {
		return 0, err
	}
	text, err := h.run.Text(badge)
	if err != nil {
		return 0, err
	}
	digits := leadingNumber.FindString(text)
	if digits == "" {
		return 0, fmt.Errorf("cart badge %q shows no count", strings.TrimSpace(text))
	}
	return strconv.Atoi(digits)
}

// VerifyCartBadge asserts the badge shows n, or is not shown for zero
func (h *Header) VerifyCartBadge(n int) *Header {
	badge := h.container.Find(selector.CartBadge)
	if n == 0 {
		h.run.Expect(badge, browser.BeHidden())
		return h
	}
	h.run.Expect(badge, browser.ContainText(strconv.Itoa(n)))
	return h
}
