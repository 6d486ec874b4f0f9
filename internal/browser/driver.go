// Package browser is the thin automation layer the page objects drive: a
// Driver interface over the browser, selector fallback resolution, and a
// Runner that executes steps in order and remembers the first failure.
package browser

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"time"
)

var (
	// ErrNotFound is returned when no element matches a target
	ErrNotFound = errors.New("element not found")
	// ErrTimeout is returned when a wait or assertion does not hold in time
	ErrTimeout = errors.New("timed out")
)

// Driver is the browser-automation collaborator. Every call operates on
// the first element a target matches unless the target is narrowed with Nth.
// Waiting calls poll until the condition holds or timeout elapses.
type Driver interface {
	Navigate(ctx context.Context, url string, timeout time.Duration) error
	URL(ctx context.Context) (string, error)

	Count(ctx context.Context, t Target) (int, error)
	IsVisible(ctx context.Context, t Target) (bool, error)

	Click(ctx context.Context, t Target, timeout time.Duration) error
	Fill(ctx context.Context, t Target, value string, timeout time.Duration) error
	Press(ctx context.Context, t Target, key string, timeout time.Duration) error
	Select(ctx context.Context, t Target, value string, timeout time.Duration) error
	Hover(ctx context.Context, t Target, timeout time.Duration) error
	ScrollIntoView(ctx context.Context, t Target, timeout time.Duration) error

	Text(ctx context.Context, t Target, timeout time.Duration) (string, error)
	Texts(ctx context.Context, t Target) ([]string, error)
	Value(ctx context.Context, t Target, timeout time.Duration) (string, error)
	Attribute(ctx context.Context, t Target, name string, timeout time.Duration) (string, error)

	Expect(ctx context.Context, t Target, c Condition, timeout time.Duration) error
	ExpectURL(ctx context.Context, c URLCondition, timeout time.Duration) error

	SetViewport(ctx context.Context, width, height int) error
	Evaluate(ctx context.Context, script string, arg any) (any, error)
	Post(ctx context.Context, url string, payload any) (int, []byte, error)
}

// ConditionKind enumerates element assertions
type ConditionKind int

const (
	Visible ConditionKind = iota
	Hidden
	Attached
	Detached
	ContainsText
	HasValue
	HasAttribute
	MinCount
	Enabled
)

// Condition is an element assertion evaluated by the driver's matchers
type Condition struct {
	Kind    ConditionKind
	Text    string
	Pattern *regexp.Regexp
	Name    string
	Count   int
}

// BeVisible asserts the element is visible
func BeVisible() Condition { return Condition{Kind: Visible} }

// BeHidden asserts the element is hidden or absent
func BeHidden() Condition { return Condition{Kind: Hidden} }

// Exist asserts at least one element is attached
func Exist() Condition { return Condition{Kind: Attached} }

// NotExist asserts no element matches
func NotExist() Condition { return Condition{Kind: Detached} }

// ContainText asserts the element text contains s
func ContainText(s string) Condition { return Condition{Kind: ContainsText, Text: s} }

// MatchText asserts the element text matches re
func MatchText(re *regexp.Regexp) Condition { return Condition{Kind: ContainsText, Pattern: re} }

// HaveValue asserts an input's value
func HaveValue(s string) Condition { return Condition{Kind: HasValue, Text: s} }

// HaveAttribute asserts an attribute's value
func HaveAttribute(name, value string) Condition {
	return Condition{Kind: HasAttribute, Name: name, Text: value}
}

// HaveCountAtLeast asserts at least n elements match
func HaveCountAtLeast(n int) Condition { return Condition{Kind: MinCount, Count: n} }

// BeEnabled asserts the element is enabled
func BeEnabled() Condition { return Condition{Kind: Enabled} }

func (c Condition) String() string {
	switch c.Kind {
	case Visible:
		return "be visible"
	case Hidden:
		return "be hidden"
	case Attached:
		return "exist"
	case Detached:
		return "not exist"
	case ContainsText:
		if c.Pattern != nil {
			return fmt.Sprintf("match text /%s/", c.Pattern)
		}
		return fmt.Sprintf("contain text %q", c.Text)
	case HasValue:
		return fmt.Sprintf("have value %q", c.Text)
	case HasAttribute:
		return fmt.Sprintf("have %s=%q", c.Name, c.Text)
	case MinCount:
		return fmt.Sprintf("have at least %d elements", c.Count)
	case Enabled:
		return "be enabled"
	default:
		return fmt.Sprintf("condition(%d)", int(c.Kind))
	}
}

// URLCondition asserts on the current page URL
type URLCondition struct {
	Contains string
	Negate   bool
}

// URLContains asserts the URL includes s
func URLContains(s string) URLCondition { return URLCondition{Contains: s} }

// URLNotContains asserts the URL does not include s
func URLNotContains(s string) URLCondition { return URLCondition{Contains: s, Negate: true} }

func (c URLCondition) String() string {
	if c.Negate {
		return fmt.Sprintf("url not to include %q", c.Contains)
	}
	return fmt.Sprintf("url to include %q", c.Contains)
}
