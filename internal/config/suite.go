package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/adyen/shopsuite/internal/site"
)

// Browser engines playwright can launch
const (
	BrowserChromium = "chromium"
	BrowserFirefox  = "firefox"
	BrowserWebKit   = "webkit"
)

// SuiteConfig holds the settings the browser suite runs with
type SuiteConfig struct {
	BaseURL         string
	Browser         string
	Headless        bool
	SlowMo          time.Duration
	ViewportWidth   int
	ViewportHeight  int
	DefaultTimeout  time.Duration
	PageLoadTimeout time.Duration
	// FixtureSeed makes generated fixtures reproducible; 0 means random
	FixtureSeed int64
	LogLevel    string
	LogFormat   string
}

// LoadSuiteConfig loads suite configuration from environment variables
func LoadSuiteConfig(getenv func(string) string) (*SuiteConfig, error) {
	config := &SuiteConfig{
		BaseURL:         strings.TrimRight(getenv("BASE_URL"), "/"),
		Browser:         strings.ToLower(getenv("BROWSER")),
		Headless:        true,
		ViewportWidth:   site.Viewports["desktop"].Width,
		ViewportHeight:  site.Viewports["desktop"].Height,
		DefaultTimeout:  site.DefaultTimeout,
		PageLoadTimeout: site.PageLoadTimeout,
		LogLevel:        getenv("LOG_LEVEL"),
		LogFormat:       getenv("LOG_FORMAT"),
	}

	if config.BaseURL == "" {
		config.BaseURL = site.DefaultBaseURL
	}
	if config.LogLevel == "" {
		config.LogLevel = "info"
	}
	if config.LogFormat == "" {
		config.LogFormat = "console"
	}

	switch config.Browser {
	case "":
		config.Browser = BrowserChromium
	case BrowserChromium, BrowserFirefox, BrowserWebKit:
	default:
		return nil, fmt.Errorf("BROWSER must be one of chromium, firefox, webkit: got %q", config.Browser)
	}

	var err error
	if v := getenv("HEADLESS"); v != "" {
		if config.Headless, err = strconv.ParseBool(v); err != nil {
			return nil, fmt.Errorf("HEADLESS: %w", err)
		}
	}
	if v := getenv("SLOW_MO"); v != "" {
		if config.SlowMo, err = parseDuration(v); err != nil {
			return nil, fmt.Errorf("SLOW_MO: %w", err)
		}
	}
	if v := getenv("DEFAULT_TIMEOUT"); v != "" {
		if config.DefaultTimeout, err = parseDuration(v); err != nil {
			return nil, fmt.Errorf("DEFAULT_TIMEOUT: %w", err)
		}
	}
	if v := getenv("PAGE_LOAD_TIMEOUT"); v != "" {
		if config.PageLoadTimeout, err = parseDuration(v); err != nil {
			return nil, fmt.Errorf("PAGE_LOAD_TIMEOUT: %w", err)
		}
	}
	if v := getenv("VIEWPORT_WIDTH"); v != "" {
		if config.ViewportWidth, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("VIEWPORT_WIDTH: %w", err)
		}
	}
	if v := getenv("VIEWPORT_HEIGHT"); v != "" {
		if config.ViewportHeight, err = strconv.Atoi(v); err != nil {
			return nil, fmt.Errorf("VIEWPORT_HEIGHT: %w", err)
		}
	}
	if v := getenv("FIXTURE_SEED"); v != "" {
		if config.FixtureSeed, err = strconv.ParseInt(v, 10, 64); err != nil {
			return nil, fmt.Errorf("FIXTURE_SEED: %w", err)
		}
	}

	if config.ViewportWidth <= 0 || config.ViewportHeight <= 0 {
		return nil, fmt.Errorf("viewport must be positive: got %dx%d", config.ViewportWidth, config.ViewportHeight)
	}
	if config.PageLoadTimeout < config.DefaultTimeout {
		return nil, fmt.Errorf("PAGE_LOAD_TIMEOUT (%s) must not be shorter than DEFAULT_TIMEOUT (%s)",
			config.PageLoadTimeout, config.DefaultTimeout)
	}

	return config, nil
}

// parseDuration accepts Go durations ("1.5s") or bare milliseconds ("1500")
func parseDuration(v string) (time.Duration, error) {
	if ms, err := strconv.Atoi(v); err == nil {
		return time.Duration(ms) * time.Millisecond, nil
	}
	return time.ParseDuration(v)
}

// UseViewport applies a named viewport from site.Viewports
func (c *SuiteConfig) UseViewport(name string) error {
	vp, ok := site.Viewports[name]
	if !ok {
		return fmt.Errorf("unknown viewport %q", name)
	}
	c.ViewportWidth = vp.Width
	c.ViewportHeight = vp.Height
	return nil
}
