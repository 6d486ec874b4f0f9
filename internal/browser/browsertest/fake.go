// Package browsertest provides an in-memory browser.Driver for testing page
// objects without a browser. The document is a tree of Nodes. A node matches
// a selector when the selector string is listed in its Selectors, when a
// "text=/re/flags" selector matches its own text, or when it matches any
// part of a comma-separated selector list.
package browsertest

import (
	"context"
	"fmt"
	"net/url"
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/selector"
)

// Node is one element of the fake document
type Node struct {
	Selectors []string
	Text      string
	Value     string
	Hidden    bool
	Disabled  bool
	Attrs     map[string]string
	// Options lists the values a select element accepts
	Options  []string
	Children []*Node
	// OnClick runs after the node is clicked
	OnClick func(d *Driver)
	// OnPress runs after a key is pressed on the node
	OnPress func(d *Driver, key string)

	parent *Node
}

// El is a convenience constructor for a node
func El(selectors []string, text string, children ...*Node) *Node {
	return &Node{Selectors: selectors, Text: text, Children: children}
}

// Call records one interaction with the fake
type Call struct {
	Op     string
	Target string
	Value  string
}

// Driver is a fake browser.Driver
type Driver struct {
	mu sync.Mutex

	root     *Node
	url      string
	calls    []Call
	viewport [2]int

	// Routes builds the document served for a path on Navigate. Paths without
	// a route keep the current document.
	Routes map[string]func() *Node
	// PostFunc answers Post; nil responds 404
	PostFunc func(url string, payload any) (int, []byte, error)
	// EvalFunc answers Evaluate; nil returns nil
	EvalFunc func(script string, arg any) (any, error)
}

// New creates a fake showing root at about:blank
func New(root *Node) *Driver {
	d := &Driver{url: "about:blank", Routes: map[string]func() *Node{}}
	d.SetDocument(root)
	return d
}

// SetDocument replaces the document. root is normally the body element.
func (d *Driver) SetDocument(root *Node) {
	if root == nil {
		root = &Node{Selectors: []string{"body"}}
	}
	doc := &Node{Children: []*Node{root}}
	link(doc, nil)
	d.root = doc
}

// SetURL changes the current URL without loading a route
func (d *Driver) SetURL(u string) {
	d.url = u
}

// Calls returns the recorded interactions
func (d *Driver) Calls() []Call {
	d.mu.Lock()
	defer d.mu.Unlock()
	return append([]Call(nil), d.calls...)
}

// CallsOf returns the recorded interactions of one kind
func (d *Driver) CallsOf(op string) []Call {
	var out []Call
	for _, c := range d.Calls() {
		if c.Op == op {
			out = append(out, c)
		}
	}
	return out
}

// Viewport returns the last size set
func (d *Driver) Viewport() (int, int) {
	return d.viewport[0], d.viewport[1]
}

// Find returns the first node matching selector anywhere in the document
func (d *Driver) Find(sel string) *Node {
	var found *Node
	walk(d.root, func(n *Node) bool {
		if found == nil && n.matches(sel) {
			found = n
		}
		return found == nil
	})
	return found
}

// Remove detaches n from the document
func (d *Driver) Remove(n *Node) {
	if n == nil || n.parent == nil {
		return
	}
	siblings := n.parent.Children
	for i, c := range siblings {
		if c == n {
			n.parent.Children = append(siblings[:i:i], siblings[i+1:]...)
			break
		}
	}
	n.parent = nil
}

func (d *Driver) record(op string, t browser.Target, value string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.calls = append(d.calls, Call{Op: op, Target: t.String(), Value: value})
}

func link(n, parent *Node) {
	n.parent = parent
	for _, c := range n.Children {
		link(c, n)
	}
}

// walk visits descendants of n in document order until fn returns false
func walk(n *Node, fn func(*Node) bool) bool {
	for _, c := range n.Children {
		if !fn(c) || !walk(c, fn) {
			return false
		}
	}
	return true
}

var textSelector = regexp.MustCompile(`^text=/(.*)/([a-z]*)$`)

func (n *Node) matches(sel string) bool {
	if list, err := selector.Parse(sel); err == nil && list.Len() > 1 {
		for _, part := range list {
			if n.matches(part) {
				return true
			}
		}
		return false
	}
	if m := textSelector.FindStringSubmatch(sel); m != nil {
		expr := m[1]
		if strings.Contains(m[2], "i") {
			expr = "(?i)" + expr
		}
		re, err := regexp.Compile(expr)
		return err == nil && n.Text != "" && re.MatchString(n.Text)
	}
	for _, s := range n.Selectors {
		if s == sel {
			return true
		}
	}
	return false
}

// FullText joins the node's text with its descendants' text
func (n *Node) FullText() string {
	parts := []string{}
	if n.Text != "" {
		parts = append(parts, n.Text)
	}
	for _, c := range n.Children {
		if t := c.FullText(); t != "" {
			parts = append(parts, t)
		}
	}
	return strings.Join(parts, " ")
}

func (n *Node) visible() bool {
	for p := n; p != nil; p = p.parent {
		if p.Hidden {
			return false
		}
	}
	return true
}

// matchAll returns every node t matches, in document order
func (d *Driver) matchAll(t browser.Target) []*Node {
	root := d.root
	if scope, ok := t.Scope(); ok {
		root = d.matchOne(scope)
		if root == nil {
			return nil
		}
	}

	var out []*Node
	walk(root, func(n *Node) bool {
		for _, sel := range t.Chain() {
			if n.matches(sel) {
				if re := t.TextPattern(); re == nil || re.MatchString(n.FullText()) {
					out = append(out, n)
				}
				break
			}
		}
		return true
	})
	return out
}

// matchOne returns the node actions on t operate on
func (d *Driver) matchOne(t browser.Target) *Node {
	all := d.matchAll(t)
	i, _ := t.Index()
	if i < len(all) {
		return all[i]
	}
	return nil
}

// actionable returns the node for t or the error the real driver would time
// out with
func (d *Driver) actionable(t browser.Target) (*Node, error) {
	n := d.matchOne(t)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", browser.ErrNotFound, t)
	}
	if !n.visible() {
		return nil, fmt.Errorf("%w: %s is not visible", browser.ErrTimeout, t)
	}
	if n.Disabled {
		return nil, fmt.Errorf("%w: %s is disabled", browser.ErrTimeout, t)
	}
	return n, nil
}

func (d *Driver) Navigate(ctx context.Context, rawURL string, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record("navigate", browser.Target{}, rawURL)
	d.url = rawURL
	u, err := url.Parse(rawURL)
	if err != nil {
		return err
	}
	if build, ok := d.Routes[u.Path]; ok {
		d.SetDocument(build())
	}
	return nil
}

func (d *Driver) URL(ctx context.Context) (string, error) {
	return d.url, ctx.Err()
}

func (d *Driver) Count(ctx context.Context, t browser.Target) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	return len(d.matchAll(t)), nil
}

func (d *Driver) IsVisible(ctx context.Context, t browser.Target) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	n := d.matchOne(t)
	return n != nil && n.visible(), nil
}

func (d *Driver) Click(ctx context.Context, t browser.Target, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := d.actionable(t)
	if err != nil {
		return err
	}
	d.record("click", t, "")
	if n.OnClick != nil {
		n.OnClick(d)
	}
	return nil
}

func (d *Driver) Fill(ctx context.Context, t browser.Target, value string, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := d.actionable(t)
	if err != nil {
		return err
	}
	d.record("fill", t, value)
	n.Value = value
	return nil
}

func (d *Driver) Press(ctx context.Context, t browser.Target, key string, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := d.actionable(t)
	if err != nil {
		return err
	}
	d.record("press", t, key)
	if n.OnPress != nil {
		n.OnPress(d, key)
	}
	return nil
}

func (d *Driver) Select(ctx context.Context, t browser.Target, value string, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	n, err := d.actionable(t)
	if err != nil {
		return err
	}
	found := len(n.Options) == 0
	for _, o := range n.Options {
		if o == value {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%w: option %q in %s", browser.ErrNotFound, value, t)
	}
	d.record("select", t, value)
	n.Value = value
	return nil
}

func (d *Driver) Hover(ctx context.Context, t browser.Target, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if _, err := d.actionable(t); err != nil {
		return err
	}
	d.record("hover", t, "")
	return nil
}

func (d *Driver) ScrollIntoView(ctx context.Context, t browser.Target, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if d.matchOne(t) == nil {
		return fmt.Errorf("%w: %s", browser.ErrNotFound, t)
	}
	d.record("scroll", t, "")
	return nil
}

func (d *Driver) Text(ctx context.Context, t browser.Target, _ time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n := d.matchOne(t)
	if n == nil {
		return "", fmt.Errorf("%w: %s", browser.ErrNotFound, t)
	}
	return n.FullText(), nil
}

func (d *Driver) Texts(ctx context.Context, t browser.Target) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []string
	for _, n := range d.matchAll(t) {
		out = append(out, n.FullText())
	}
	return out, nil
}

func (d *Driver) Value(ctx context.Context, t browser.Target, _ time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n := d.matchOne(t)
	if n == nil {
		return "", fmt.Errorf("%w: %s", browser.ErrNotFound, t)
	}
	return n.Value, nil
}

func (d *Driver) Attribute(ctx context.Context, t browser.Target, name string, _ time.Duration) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	n := d.matchOne(t)
	if n == nil {
		return "", fmt.Errorf("%w: %s", browser.ErrNotFound, t)
	}
	return n.Attrs[name], nil
}

// Expect evaluates c once against the current document; the fake never
// changes on its own, so waiting would not help.
func (d *Driver) Expect(ctx context.Context, t browser.Target, c browser.Condition, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.record("expect", t, c.String())

	n := d.matchOne(t)
	var ok bool
	switch c.Kind {
	case browser.Visible:
		ok = n != nil && n.visible()
	case browser.Hidden:
		ok = n == nil || !n.visible()
	case browser.Attached:
		ok = n != nil
	case browser.Detached:
		ok = len(d.matchAll(t)) == 0
	case browser.ContainsText:
		if n != nil {
			if c.Pattern != nil {
				ok = c.Pattern.MatchString(n.FullText())
			} else {
				ok = strings.Contains(n.FullText(), c.Text)
			}
		}
	case browser.HasValue:
		ok = n != nil && n.Value == c.Text
	case browser.HasAttribute:
		ok = n != nil && n.Attrs[c.Name] == c.Text
	case browser.MinCount:
		ok = len(d.matchAll(t)) >= c.Count
	case browser.Enabled:
		ok = n != nil && !n.Disabled
	}
	if !ok {
		return fmt.Errorf("%w: expected %s to %s", browser.ErrTimeout, t, c)
	}
	return nil
}

func (d *Driver) ExpectURL(ctx context.Context, c browser.URLCondition, _ time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.Contains(d.url, c.Contains) == c.Negate {
		return fmt.Errorf("%w: expected %s, got %s", browser.ErrTimeout, c, d.url)
	}
	return nil
}

func (d *Driver) SetViewport(ctx context.Context, width, height int) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.viewport = [2]int{width, height}
	return nil
}

func (d *Driver) Evaluate(ctx context.Context, script string, arg any) (any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	d.record("evaluate", browser.Target{}, script)
	if d.EvalFunc == nil {
		return nil, nil
	}
	return d.EvalFunc(script, arg)
}

func (d *Driver) Post(ctx context.Context, u string, payload any) (int, []byte, error) {
	if err := ctx.Err(); err != nil {
		return 0, nil, err
	}
	d.record("post", browser.Target{}, u)
	if d.PostFunc == nil {
		return 404, nil, nil
	}
	return d.PostFunc(u, payload)
}

var _ browser.Driver = (*Driver)(nil)
