package browser

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/adyen/shopsuite/internal/site"
)

// StepError reports the first step of a scenario that failed
type StepError struct {
	Step    string
	Target  string
	Elapsed time.Duration
	Err     error
}

func (e *StepError) Error() string {
	if e.Target == "" {
		return fmt.Sprintf("%s failed after %s: %v", e.Step, e.Elapsed.Round(time.Millisecond), e.Err)
	}
	return fmt.Sprintf("%s %q failed after %s: %v", e.Step, e.Target, e.Elapsed.Round(time.Millisecond), e.Err)
}

func (e *StepError) Unwrap() error {
	return e.Err
}

// Timeouts bounds the runner's waits
type Timeouts struct {
	Default  time.Duration
	PageLoad time.Duration
}

// DefaultTimeouts mirrors the site constants
func DefaultTimeouts() Timeouts {
	return Timeouts{Default: site.DefaultTimeout, PageLoad: site.PageLoadTimeout}
}

// Runner executes browser steps strictly in the order they are issued. The
// first failing step is remembered; every later step is skipped and queries
// return that failure.
type Runner struct {
	ctx      context.Context
	driver   Driver
	log      *zap.Logger
	baseURL  string
	timeouts Timeouts
	err      error
}

// Option configures a Runner
type Option func(*Runner)

// WithLogger sets the step logger
func WithLogger(log *zap.Logger) Option {
	return func(r *Runner) {
		r.log = log
	}
}

// WithBaseURL sets the address relative paths are resolved against
func WithBaseURL(baseURL string) Option {
	return func(r *Runner) {
		r.baseURL = strings.TrimRight(baseURL, "/")
	}
}

// WithTimeouts overrides the default waits
func WithTimeouts(t Timeouts) Option {
	return func(r *Runner) {
		if t.Default > 0 {
			r.timeouts.Default = t.Default
		}
		if t.PageLoad > 0 {
			r.timeouts.PageLoad = t.PageLoad
		}
	}
}

// NewRunner creates a runner bound to ctx. Cancelling ctx fails the current
// step and, through the sticky error, the rest of the scenario.
func NewRunner(ctx context.Context, driver Driver, opts ...Option) *Runner {
	r := &Runner{
		ctx:      ctx,
		driver:   driver,
		log:      zap.NewNop(),
		baseURL:  site.DefaultBaseURL,
		timeouts: DefaultTimeouts(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Err returns the first failure, or nil
func (r *Runner) Err() error {
	return r.err
}

// Failed reports whether a step has failed
func (r *Runner) Failed() bool {
	return r.err != nil
}

// Reset forgets a previous failure so the runner can be reused
func (r *Runner) Reset() {
	r.err = nil
}

// Context returns the context the runner was built with
func (r *Runner) Context() context.Context {
	return r.ctx
}

// Driver returns the underlying driver
func (r *Runner) Driver() Driver {
	return r.driver
}

// Logger returns the step logger
func (r *Runner) Logger() *zap.Logger {
	return r.log
}

// Timeouts returns the configured waits
func (r *Runner) Timeouts() Timeouts {
	return r.timeouts
}

// BaseURL returns the address relative paths are resolved against
func (r *Runner) BaseURL() string {
	return r.baseURL
}

// URL resolves path against the base URL. Absolute URLs pass through.
func (r *Runner) URL(path string) string {
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return path
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return r.baseURL + path
}

// Fail records err as a failed step unless a step already failed
func (r *Runner) Fail(step string, err error) {
	if r.err != nil || err == nil {
		return
	}
	r.fail(step, "", 0, err)
}

func (r *Runner) fail(step, target string, elapsed time.Duration, err error) {
	var se *StepError
	if errors.As(err, &se) {
		r.err = se
	} else {
		r.err = &StepError{Step: step, Target: target, Elapsed: elapsed, Err: err}
	}
	r.log.Error("step failed",
		zap.String("step", step),
		zap.String("target", target),
		zap.Duration("elapsed", elapsed),
		zap.Error(err),
	)
}

// run executes one step. It is skipped when an earlier step failed.
func (r *Runner) run(step, target string, fn func(ctx context.Context) error) error {
	if r.err != nil {
		r.log.Debug("step skipped", zap.String("step", step), zap.String("target", target))
		return r.err
	}
	if err := r.ctx.Err(); err != nil {
		r.fail(step, target, 0, err)
		return r.err
	}

	r.log.Debug("step", zap.String("step", step), zap.String("target", target))
	start := time.Now()
	if err := fn(r.ctx); err != nil {
		r.fail(step, target, time.Since(start), err)
		return r.err
	}
	return nil
}

// onTarget resolves t's selector chains and then runs fn against the result
func (r *Runner) onTarget(step string, t Target, fn func(ctx context.Context, t Target) error) error {
	return r.run(step, t.String(), func(ctx context.Context) error {
		resolved, err := Resolve(ctx, r.driver, t)
		if err != nil {
			return err
		}
		return fn(ctx, resolved)
	})
}

func (r *Runner) timeout(override []time.Duration) time.Duration {
	if len(override) > 0 && override[0] > 0 {
		return override[0]
	}
	return r.timeouts.Default
}

// Do runs fn as a named step
func (r *Runner) Do(step string, fn func(ctx context.Context) error) error {
	return r.run(step, "", fn)
}

// Visit navigates to path under the base URL
func (r *Runner) Visit(path string) error {
	url := r.URL(path)
	return r.run("visit", url, func(ctx context.Context) error {
		return r.driver.Navigate(ctx, url, r.timeouts.PageLoad)
	})
}

// Click waits for t to be actionable and clicks it
func (r *Runner) Click(t Target, timeout ...time.Duration) error {
	d := r.timeout(timeout)
	return r.onTarget("click", t, func(ctx context.Context, t Target) error {
		return r.driver.Click(ctx, t, d)
	})
}

// Fill replaces the value of the input t
func (r *Runner) Fill(t Target, value string) error {
	return r.onTarget("fill", t, func(ctx context.Context, t Target) error {
		return r.driver.Fill(ctx, t, value, r.timeouts.Default)
	})
}

// Press sends a key to t
func (r *Runner) Press(t Target, key string) error {
	return r.onTarget("press "+key, t, func(ctx context.Context, t Target) error {
		return r.driver.Press(ctx, t, key, r.timeouts.Default)
	})
}

// Select chooses an option of the select element t by value or label
func (r *Runner) Select(t Target, value string) error {
	return r.onTarget("select", t, func(ctx context.Context, t Target) error {
		return r.driver.Select(ctx, t, value, r.timeouts.Default)
	})
}

// Hover moves the pointer over t
func (r *Runner) Hover(t Target) error {
	return r.onTarget("hover", t, func(ctx context.Context, t Target) error {
		return r.driver.Hover(ctx, t, r.timeouts.Default)
	})
}

// ScrollIntoView scrolls t into the viewport
func (r *Runner) ScrollIntoView(t Target) error {
	return r.onTarget("scroll", t, func(ctx context.Context, t Target) error {
		return r.driver.ScrollIntoView(ctx, t, r.timeouts.Default)
	})
}

// Expect polls until c holds for t
func (r *Runner) Expect(t Target, c Condition, timeout ...time.Duration) error {
	d := r.timeout(timeout)
	return r.onTarget("expect "+c.String(), t, func(ctx context.Context, t Target) error {
		return r.driver.Expect(ctx, t, c, d)
	})
}

// ExpectURL polls until c holds for the current URL
func (r *Runner) ExpectURL(c URLCondition, timeout ...time.Duration) error {
	d := r.timeout(timeout)
	return r.run("expect "+c.String(), "", func(ctx context.Context) error {
		return r.driver.ExpectURL(ctx, c, d)
	})
}

// SetViewport resizes the browser window
func (r *Runner) SetViewport(width, height int) error {
	return r.run(fmt.Sprintf("viewport %dx%d", width, height), "", func(ctx context.Context) error {
		return r.driver.SetViewport(ctx, width, height)
	})
}

// Pause sleeps for d unless ctx is cancelled first
func (r *Runner) Pause(d time.Duration) error {
	return r.run("wait "+d.String(), "", func(ctx context.Context) error {
		timer := time.NewTimer(d)
		defer timer.Stop()
		select {
		case <-timer.C:
			return nil
		case <-ctx.Done():
			return ctx.Err()
		}
	})
}

// Count returns how many elements match t right now
func (r *Runner) Count(t Target) (int, error) {
	var n int
	err := r.onTarget("count", t, func(ctx context.Context, t Target) error {
		var err error
		n, err = r.driver.Count(ctx, t)
		return err
	})
	return n, err
}

// Exists reports whether any element matches t right now
func (r *Runner) Exists(t Target) (bool, error) {
	n, err := r.Count(t)
	return n > 0, err
}

// IsVisible reports whether t is visible right now
func (r *Runner) IsVisible(t Target) (bool, error) {
	var ok bool
	err := r.onTarget("is visible", t, func(ctx context.Context, t Target) error {
		var err error
		ok, err = r.driver.IsVisible(ctx, t)
		return err
	})
	return ok, err
}

// Text waits for t and returns its text content
func (r *Runner) Text(t Target) (string, error) {
	var s string
	err := r.onTarget("text", t, func(ctx context.Context, t Target) error {
		var err error
		s, err = r.driver.Text(ctx, t, r.timeouts.Default)
		return err
	})
	return s, err
}

// Texts returns the text content of every element matching t
func (r *Runner) Texts(t Target) ([]string, error) {
	var out []string
	err := r.onTarget("texts", t, func(ctx context.Context, t Target) error {
		var err error
		out, err = r.driver.Texts(ctx, t)
		return err
	})
	return out, err
}

// Value waits for the input t and returns its value
func (r *Runner) Value(t Target) (string, error) {
	var s string
	err := r.onTarget("value", t, func(ctx context.Context, t Target) error {
		var err error
		s, err = r.driver.Value(ctx, t, r.timeouts.Default)
		return err
	})
	return s, err
}

// Attribute waits for t and returns one of its attributes
func (r *Runner) Attribute(t Target, name string) (string, error) {
	var s string
	err := r.onTarget("attribute "+name, t, func(ctx context.Context, t Target) error {
		var err error
		s, err = r.driver.Attribute(ctx, t, name, r.timeouts.Default)
		return err
	})
	return s, err
}

// CurrentURL returns the page URL
func (r *Runner) CurrentURL() (string, error) {
	var s string
	err := r.run("url", "", func(ctx context.Context) error {
		var err error
		s, err = r.driver.URL(ctx)
		return err
	})
	return s, err
}

// Evaluate runs script in the page
func (r *Runner) Evaluate(script string, arg any) (any, error) {
	var out any
	err := r.run("evaluate", "", func(ctx context.Context) error {
		var err error
		out, err = r.driver.Evaluate(ctx, script, arg)
		return err
	})
	return out, err
}

// Post sends a JSON request through the browser context, sharing its cookies
func (r *Runner) Post(path string, payload any) (int, []byte, error) {
	var (
		status int
		body   []byte
	)
	url := r.URL(path)
	err := r.run("post", url, func(ctx context.Context) error {
		var err error
		status, body, err = r.driver.Post(ctx, url, payload)
		return err
	})
	return status, body, err
}
