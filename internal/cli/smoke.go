package cli

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/adyen/shopsuite/internal/browser"
	"github.com/adyen/shopsuite/internal/config"
	"github.com/adyen/shopsuite/internal/pages"
	"github.com/adyen/shopsuite/internal/selector"
)

// SmokeJourney visits the home page, searches for term and opens the bag.
// It returns the first failed step.
func SmokeJourney(run *browser.Runner, term string) error {
	pages.NewHomePage(run).
		Visit().
		AcceptCookies().
		VerifyVisible(selector.Header)

	pages.NewSearchPage(run).
		Visit().
		Search(term).
		VerifySearchResults(term)

	pages.NewCartPage(run).
		Visit().
		VerifyCartLoaded()

	if err := run.Err(); err != nil {
		return fmt.Errorf("smoke journey: %w", err)
	}
	run.Logger().Info("smoke journey passed", zap.String("base_url", run.BaseURL()))
	return nil
}

// RunSmoke launches the configured browser and walks SmokeJourney against
// cfg.BaseURL
func RunSmoke(ctx context.Context, cfg config.SuiteConfig, term string, log *zap.Logger) (err error) {
	session, err := browser.Launch(cfg)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, session.Close())
	}()

	page, err := session.NewPage()
	if err != nil {
		return err
	}
	defer session.ClosePage(page)

	run := browser.NewRunner(ctx, page,
		browser.WithLogger(log),
		browser.WithBaseURL(cfg.BaseURL),
		browser.WithTimeouts(browser.Timeouts{
			Default:  cfg.DefaultTimeout,
			PageLoad: cfg.PageLoadTimeout,
		}),
	)
	return SmokeJourney(run, term)
}
