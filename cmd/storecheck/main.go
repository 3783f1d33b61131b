package main

import (
	"fmt"
	"log"
	"os"

	"github.com/hoffis/storecheck/internal/api"
	internalcli "github.com/hoffis/storecheck/internal/cli"
	"github.com/hoffis/storecheck/internal/config"
	"github.com/hoffis/storecheck/internal/database"
	"github.com/hoffis/storecheck/internal/repository"
	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
)

var version = "0.1.0"

// buildDependencies creates everything the commands need from the
// environment.
func buildDependencies() (internalcli.Dependencies, func(), error) {
	var deps internalcli.Dependencies
	cleanup := func() {}

	storeConfig, err := config.LoadStoreConfig(os.Getenv)
	if err != nil {
		return deps, cleanup, fmt.Errorf("missing required store configuration: %w", err)
	}
	deps.StoreConfig = storeConfig
	deps.Client = api.NewStoreClient(storeConfig)
	deps.Out = os.Stdout

	// Run history is opt-in: only wired when Postgres is configured.
	pgConfig, err := config.LoadPostgresConfig(os.Getenv)
	if err != nil {
		return deps, cleanup, fmt.Errorf("invalid postgres configuration: %w", err)
	}
	if pgConfig != nil {
		db, err := database.Connect(pgConfig)
		if err != nil {
			return deps, cleanup, fmt.Errorf("failed to connect to database: %w", err)
		}
		cleanup = func() { db.Close() }

		if err := database.RunMigrations(db); err != nil {
			db.Close()
			return deps, func() {}, fmt.Errorf("failed to run database migrations: %w", err)
		}
		deps.Runs = repository.NewRunRepository(db)
		log.Println("Connected to run-history database")
	}

	return deps, cleanup, nil
}

func withDependencies(action func(c *cli.Context, deps internalcli.Dependencies) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		deps, cleanup, err := buildDependencies()
		if err != nil {
			return err
		}
		defer cleanup()
		return action(c, deps)
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found, using environment variables")
	}

	app := &cli.App{
		Name:    "storecheck",
		Usage:   "Storefront price verification suite",
		Version: version,
		Commands: []*cli.Command{
			{
				Name:  "reconcile",
				Usage: "Cross-check API prices against the catalog listing",
				Action: withDependencies(func(c *cli.Context, deps internalcli.Dependencies) error {
					return internalcli.RunReconcile(c.Context, deps)
				}),
			},
			{
				Name:  "catalog",
				Usage: "List the products the store reports",
				Action: withDependencies(func(c *cli.Context, deps internalcli.Dependencies) error {
					return internalcli.RunCatalog(c.Context, deps)
				}),
			},
			{
				Name:  "ping",
				Usage: "Check the store listing answers within its response budget",
				Action: withDependencies(func(c *cli.Context, deps internalcli.Dependencies) error {
					return internalcli.RunPing(c.Context, deps)
				}),
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
