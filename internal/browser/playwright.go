package browser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"

	"github.com/playwright-community/playwright-go"
)

// Playwright drives a single playwright page
type Playwright struct {
	page   playwright.Page
	expect playwright.PlaywrightAssertions
}

// NewPlaywright wraps page as a Driver
func NewPlaywright(page playwright.Page) *Playwright {
	return &Playwright{
		page:   page,
		expect: playwright.NewPlaywrightAssertions(),
	}
}

// Page exposes the wrapped page for routes and other raw playwright calls
func (p *Playwright) Page() playwright.Page {
	return p.page
}

// locator builds the locator for every element t matches
func (p *Playwright) locator(t Target) playwright.Locator {
	var loc playwright.Locator
	if scope, ok := t.Scope(); ok {
		loc = p.one(scope).Locator(t.Chain().String())
	} else {
		loc = p.page.Locator(t.Chain().String())
	}
	if re := t.TextPattern(); re != nil {
		loc = loc.Filter(playwright.LocatorFilterOptions{HasText: re})
	}
	return loc
}

// one narrows the locator to the element actions operate on
func (p *Playwright) one(t Target) playwright.Locator {
	loc := p.locator(t)
	if i, ok := t.Index(); ok {
		return loc.Nth(i)
	}
	return loc.First()
}

// budget caps d by the time left on ctx and converts it to playwright millis
func budget(ctx context.Context, d time.Duration) *float64 {
	if deadline, ok := ctx.Deadline(); ok {
		if left := time.Until(deadline); left < d {
			d = left
		}
	}
	if d < time.Millisecond {
		d = time.Millisecond
	}
	return playwright.Float(float64(d.Milliseconds()))
}

// wrap maps playwright failures onto the package sentinels
func wrap(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, playwright.ErrTimeout) {
		return fmt.Errorf("%w: %v", ErrTimeout, err)
	}
	return err
}

func (p *Playwright) Navigate(ctx context.Context, url string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	_, err := p.page.Goto(url, playwright.PageGotoOptions{
		Timeout:   budget(ctx, timeout),
		WaitUntil: playwright.WaitUntilStateLoad,
	})
	return wrap(err)
}

func (p *Playwright) URL(ctx context.Context) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	return p.page.URL(), nil
}

func (p *Playwright) Count(ctx context.Context, t Target) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	n, err := p.locator(t).Count()
	return n, wrap(err)
}

func (p *Playwright) IsVisible(ctx context.Context, t Target) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	ok, err := p.one(t).IsVisible()
	return ok, wrap(err)
}

func (p *Playwright) Click(ctx context.Context, t Target, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return wrap(p.one(t).Click(playwright.LocatorClickOptions{Timeout: budget(ctx, timeout)}))
}

func (p *Playwright) Fill(ctx context.Context, t Target, value string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return wrap(p.one(t).Fill(value, playwright.LocatorFillOptions{Timeout: budget(ctx, timeout)}))
}

func (p *Playwright) Press(ctx context.Context, t Target, key string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return wrap(p.one(t).Press(key, playwright.LocatorPressOptions{Timeout: budget(ctx, timeout)}))
}

func (p *Playwright) Select(ctx context.Context, t Target, value string, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	// playwright matches Values against both option values and labels
	values := []string{value}
	_, err := p.one(t).SelectOption(
		playwright.SelectOptionValues{Values: &values},
		playwright.LocatorSelectOptionOptions{Timeout: budget(ctx, timeout)},
	)
	return wrap(err)
}

func (p *Playwright) Hover(ctx context.Context, t Target, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return wrap(p.one(t).Hover(playwright.LocatorHoverOptions{Timeout: budget(ctx, timeout)}))
}

func (p *Playwright) ScrollIntoView(ctx context.Context, t Target, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return wrap(p.one(t).ScrollIntoViewIfNeeded(playwright.LocatorScrollIntoViewIfNeededOptions{
		Timeout: budget(ctx, timeout),
	}))
}

func (p *Playwright) Text(ctx context.Context, t Target, timeout time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, err := p.one(t).TextContent(playwright.LocatorTextContentOptions{Timeout: budget(ctx, timeout)})
	return s, wrap(err)
}

func (p *Playwright) Texts(ctx context.Context, t Target) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out, err := p.locator(t).AllTextContents()
	return out, wrap(err)
}

func (p *Playwright) Value(ctx context.Context, t Target, timeout time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, err := p.one(t).InputValue(playwright.LocatorInputValueOptions{Timeout: budget(ctx, timeout)})
	return s, wrap(err)
}

func (p *Playwright) Attribute(ctx context.Context, t Target, name string, timeout time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	s, err := p.one(t).GetAttribute(name, playwright.LocatorGetAttributeOptions{Timeout: budget(ctx, timeout)})
	return s, wrap(err)
}

func (p *Playwright) Expect(ctx context.Context, t Target, c Condition, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	ms := budget(ctx, timeout)
	la := p.expect.Locator(p.one(t))

	var err error
	switch c.Kind {
	case Visible:
		err = la.ToBeVisible(playwright.LocatorAssertionsToBeVisibleOptions{Timeout: ms})
	case Hidden:
		err = la.ToBeHidden(playwright.LocatorAssertionsToBeHiddenOptions{Timeout: ms})
	case Attached:
		err = la.ToBeAttached(playwright.LocatorAssertionsToBeAttachedOptions{Timeout: ms})
	case Detached:
		err = p.expect.Locator(p.locator(t)).ToHaveCount(0, playwright.LocatorAssertionsToHaveCountOptions{Timeout: ms})
	case ContainsText:
		var expected interface{} = c.Text
		if c.Pattern != nil {
			expected = c.Pattern
		}
		err = la.ToContainText(expected, playwright.LocatorAssertionsToContainTextOptions{Timeout: ms})
	case HasValue:
		err = la.ToHaveValue(c.Text, playwright.LocatorAssertionsToHaveValueOptions{Timeout: ms})
	case HasAttribute:
		err = la.ToHaveAttribute(c.Name, c.Text, playwright.LocatorAssertionsToHaveAttributeOptions{Timeout: ms})
	case MinCount:
		if c.Count <= 0 {
			return nil
		}
		err = p.locator(t).Nth(c.Count - 1).WaitFor(playwright.LocatorWaitForOptions{
			State:   playwright.WaitForSelectorStateAttached,
			Timeout: ms,
		})
	case Enabled:
		err = la.ToBeEnabled(playwright.LocatorAssertionsToBeEnabledOptions{Timeout: ms})
	default:
		return fmt.Errorf("unsupported condition %s", c)
	}
	return wrap(err)
}

func (p *Playwright) ExpectURL(ctx context.Context, c URLCondition, timeout time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	pa := p.expect.Page(p.page)
	if c.Negate {
		pa = pa.Not()
	}
	re := regexp.MustCompile(regexp.QuoteMeta(c.Contains))
	return wrap(pa.ToHaveURL(re, playwright.PageAssertionsToHaveURLOptions{Timeout: budget(ctx, timeout)}))
}

func (p *Playwright) SetViewport(ctx context.Context, width, height int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	return wrap(p.page.SetViewportSize(width, height))
}

func (p *Playwright) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var (
		out interface{}
		err error
	)
	if arg == nil {
		out, err = p.page.Evaluate(script)
	} else {
		out, err = p.page.Evaluate(script, arg)
	}
	return out, wrap(err)
}

func (p *Playwright) Post(ctx context.Context, url string, payload any) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	resp, err := p.page.Context().Request().Post(url, playwright.APIRequestContextPostOptions{
		Data: payload,
	})
	if err != nil {
		return 0, nil, wrap(err)
	}
	defer resp.Dispose()

	body, err := resp.Body()
	if err != nil {
		return resp.Status(), nil, err
	}
	return resp.Status(), body, nil
}
