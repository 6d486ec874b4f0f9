package browser

import (
	"errors"
	"fmt"

	"github.com/playwright-community/playwright-go"

	"github.com/adyen/shopsuite/internal/config"
)

// Session owns a running playwright browser. Each scenario should take a
// fresh page (and with it fresh cookies and storage) from NewPage.
type Session struct {
	pw      *playwright.Playwright
	browser playwright.Browser
	config  config.SuiteConfig
}

// Launch starts playwright and the browser named by cfg
func Launch(cfg config.SuiteConfig) (*Session, error) {
	pw, err := playwright.Run()
	if err != nil {
		return nil, fmt.Errorf("start playwright: %w", err)
	}

	var bt playwright.BrowserType
	switch cfg.Browser {
	case config.BrowserFirefox:
		bt = pw.Firefox
	case config.BrowserWebKit:
		bt = pw.WebKit
	default:
		bt = pw.Chromium
	}

	b, err := bt.Launch(playwright.BrowserTypeLaunchOptions{
		Headless: playwright.Bool(cfg.Headless),
		SlowMo:   playwright.Float(float64(cfg.SlowMo.Milliseconds())),
	})
	if err != nil {
		_ = pw.Stop()
		return nil, fmt.Errorf("launch %s: %w", cfg.Browser, err)
	}

	return &Session{pw: pw, browser: b, config: cfg}, nil
}

// NewPage opens a page in its own browser context sized to the configured
// viewport
func (s *Session) NewPage() (*Playwright, error) {
	bctx, err := s.browser.NewContext(playwright.BrowserNewContextOptions{
		BaseURL: playwright.String(s.config.BaseURL),
		Viewport: &playwright.Size{
			Width:  s.config.ViewportWidth,
			Height: s.config.ViewportHeight,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("new browser context: %w", err)
	}

	page, err := bctx.NewPage()
	if err != nil {
		_ = bctx.Close()
		return nil, fmt.Errorf("new page: %w", err)
	}
	return NewPlaywright(page), nil
}

// ClosePage closes the page's browser context
func (s *Session) ClosePage(p *Playwright) error {
	return p.page.Context().Close()
}

// Close shuts down the browser and playwright
func (s *Session) Close() error {
	return errors.Join(s.browser.Close(), s.pw.Stop())
}
