package main

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	internalcli "github.com/adyen/shopsuite/internal/cli"
	"github.com/adyen/shopsuite/internal/config"
	"github.com/adyen/shopsuite/internal/database"
	"github.com/adyen/shopsuite/internal/fixtures"
	"github.com/adyen/shopsuite/internal/logging"
	"github.com/adyen/shopsuite/internal/repository"
	"github.com/adyen/shopsuite/internal/site"
	"github.com/adyen/shopsuite/internal/storefront"
)

var version = "0.1.0"

// newLogger builds the logger from the global flags
func newLogger(c *cli.Context) (*zap.Logger, error) {
	return logging.New(c.String("log-level"), c.String("log-format"))
}

// openFixtureDB connects to postgres from the POSTGRES_* variables and
// creates the fixture tables
func openFixtureDB(ctx context.Context, log *zap.Logger) (*sql.DB, error) {
	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return nil, fmt.Errorf("failed to load postgres config: %w", err)
	}

	db, err := database.Connect(ctx, pgConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	log.Info("connected to database", zap.String("host", pgConfig.Host), zap.String("db", pgConfig.Database))

	if err := database.RunMigrations(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return db, nil
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the fixture storefront",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "port", Usage: "listen port (overrides PORT)"},
			&cli.StringFlag{Name: "markup", Usage: "default selector markup: testid, semantic or class (overrides STOREFRONT_MARKUP)"},
			&cli.BoolFlag{Name: "db", Usage: "keep fixtures in postgres instead of memory"},
		},
		Action: func(c *cli.Context) error {
			log, err := newLogger(c)
			if err != nil {
				return err
			}
			defer log.Sync()

			serverConfig := config.LoadServerConfig(os.Getenv)
			if c.IsSet("port") {
				serverConfig.Port = c.String("port")
			}
			if c.IsSet("markup") {
				serverConfig.Markup = c.String("markup")
			}
			markup, err := storefront.ParseMarkup(serverConfig.Markup)
			if err != nil {
				return err
			}

			var store storefront.Store = storefront.NewMemoryStore()
			if c.Bool("db") {
				db, err := openFixtureDB(c.Context, log)
				if err != nil {
					return err
				}
				defer db.Close()
				store = repository.NewFixtureRepository(db)
			}
			if err := storefront.Seed(c.Context, store); err != nil {
				return err
			}

			shop, err := storefront.New(store,
				storefront.WithLogger(log.Named("storefront")),
				storefront.WithMarkup(markup),
			)
			if err != nil {
				return err
			}

			return internalcli.RunServe(internalcli.ServerDependencies{
				ServerConfig: serverConfig,
				Storefront:   shop.Handler(),
				Logger:       log,
			})
		},
	}
}

// SeedCommand returns the seed command
func SeedCommand() *cli.Command {
	return &cli.Command{
		Name:  "seed",
		Usage: "Write fixture users, products and orders to the fixture database",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "clean", Usage: "empty the fixture tables first"},
			&cli.BoolFlag{Name: "catalog", Value: true, Usage: "load the storefront catalog and demo account"},
			&cli.IntFlag{Name: "users", Usage: "generated users"},
			&cli.IntFlag{Name: "products", Usage: "generated products"},
			&cli.IntFlag{Name: "orders", Usage: "generated orders"},
			&cli.Int64Flag{Name: "seed", Usage: "fixture seed (overrides FIXTURE_SEED; 0 is random)"},
		},
		Action: func(c *cli.Context) error {
			log, err := newLogger(c)
			if err != nil {
				return err
			}
			defer log.Sync()

			suite, err := config.LoadSuiteConfig(os.Getenv)
			if err != nil {
				return err
			}
			seed := suite.FixtureSeed
			if c.IsSet("seed") {
				seed = c.Int64("seed")
			}

			db, err := openFixtureDB(c.Context, log)
			if err != nil {
				return err
			}
			defer db.Close()

			report, err := internalcli.RunSeed(c.Context, repository.NewFixtureRepository(db), fixtures.New(seed), internalcli.SeedOptions{
				Clean:    c.Bool("clean"),
				Catalog:  c.Bool("catalog"),
				Users:    c.Int("users"),
				Products: c.Int("products"),
				Orders:   c.Int("orders"),
			}, log)
			if err != nil {
				return err
			}
			for _, table := range []string{"users", "products", "orders"} {
				fmt.Fprintf(c.App.Writer, "%-9s %d\n", table, report[table])
			}
			return nil
		},
	}
}

// SmokeCommand returns the smoke command
func SmokeCommand() *cli.Command {
	return &cli.Command{
		Name:  "smoke",
		Usage: "Walk home, search and bag in a real browser against BASE_URL",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "base-url", Usage: "shop address (overrides BASE_URL)"},
			&cli.StringFlag{Name: "term", Value: site.ValidSearchTerms[0], Usage: "search term"},
			&cli.BoolFlag{Name: "headed", Usage: "show the browser window"},
		},
		Action: func(c *cli.Context) error {
			log, err := newLogger(c)
			if err != nil {
				return err
			}
			defer log.Sync()

			suite, err := config.LoadSuiteConfig(os.Getenv)
			if err != nil {
				return err
			}
			if c.IsSet("base-url") {
				suite.BaseURL = c.String("base-url")
			}
			if c.Bool("headed") {
				suite.Headless = false
			}

			return internalcli.RunSmoke(c.Context, *suite, c.String("term"), log)
		},
	}
}

// SelectorsCommand returns the selectors command
func SelectorsCommand() *cli.Command {
	return &cli.Command{
		Name:  "selectors",
		Usage: "Print the site chrome selector chains in the order they are tried",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "json", Usage: "print JSON"},
		},
		Action: func(c *cli.Context) error {
			chains := internalcli.CommonChains()
			if !c.Bool("json") {
				return internalcli.PrintSelectors(c.App.Writer, chains)
			}
			out, err := internalcli.SelectorsJSON(chains)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(c.App.Writer, string(out))
			return err
		},
	}
}

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	app := &cli.App{
		Name:    "shopsuite",
		Usage:   "Browser test suite tooling for the shop",
		Version: version,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "log-level", Value: "info", EnvVars: []string{"LOG_LEVEL"}},
			&cli.StringFlag{Name: "log-format", Value: "console", EnvVars: []string{"LOG_FORMAT"}},
		},
		Before: func(c *cli.Context) error {
			if envErr != nil && !os.IsNotExist(envErr) {
				return fmt.Errorf("failed to load .env: %w", envErr)
			}
			return nil
		},
		Commands: []*cli.Command{
			ServeCommand(),
			SeedCommand(),
			SmokeCommand(),
			SelectorsCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
