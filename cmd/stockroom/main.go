package main

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"github.com/phuslu/log"
	"github.com/urfave/cli/v2"

	internalcli "github.com/skulab/stockroom/internal/cli"
	"github.com/skulab/stockroom/internal/config"
	"github.com/skulab/stockroom/internal/database"
	"github.com/skulab/stockroom/internal/repository"
	"github.com/skulab/stockroom/internal/services"
	"github.com/skulab/stockroom/internal/testcases"
)

var version = "0.1.0"

// buildServerDependencies creates all dependencies needed for the server.
// Must run after database.Connect so the repositories pick up the pool.
func buildServerDependencies() (internalcli.ServerDependencies, error) {
	serverConfig := config.LoadServerConfig()

	adminConfig, err := config.LoadAdminConfig()
	if err != nil {
		return internalcli.ServerDependencies{}, fmt.Errorf("invalid admin configuration: %w", err)
	}

	catalogService := services.NewCatalogService(
		repository.NewProductRepository(),
		repository.NewBrandRepository(),
	)
	authService := services.NewAuthService(adminConfig)

	return internalcli.NewServerDependencies(serverConfig, adminConfig, catalogService, authService)
}

// ServeCommand returns the serve command
func ServeCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the stockroom admin server",
		Action: func(c *cli.Context) error {
			// Connect to database
			if err := database.Connect(); err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
			defer database.Close()
			log.Info().Msg("connected to database")

			// Run database migrations
			if err := database.RunMigrations(); err != nil {
				return fmt.Errorf("failed to run database migrations: %w", err)
			}

			// Build all server dependencies
			deps, err := buildServerDependencies()
			if err != nil {
				return err
			}

			return internalcli.RunServe(deps)
		},
	}
}

// TestdataCommand returns the testdata command. It runs the same loader
// the browser suite uses, so a broken data file is caught before a run.
func TestdataCommand() *cli.Command {
	return &cli.Command{
		Name:  "testdata",
		Usage: "Validate a browser-suite test data file",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "file",
				Value: "e2e/testdata/cases.json",
				Usage: "path to the test data JSON document",
			},
		},
		Action: func(c *cli.Context) error {
			data, err := testcases.Load(c.String("file"))
			if err != nil {
				color.Red("✗ %v", err)
				return fmt.Errorf("test data validation failed")
			}

			ids := data.IDs()
			for _, id := range ids {
				tc, err := data.Get(id)
				if err != nil {
					return err
				}
				color.Green("✓ %s: %s", id, tc.Description)
			}
			fmt.Printf("%d test cases OK in %s\n", len(ids), data.Path())
			return nil
		},
	}
}

func configureLogger() {
	level := log.InfoLevel
	if s := os.Getenv("LOG_LEVEL"); s != "" {
		level = log.ParseLevel(s)
	}
	log.DefaultLogger = log.Logger{
		Level:      level,
		TimeFormat: "15:04:05",
		Writer:     &log.ConsoleWriter{ColorOutput: true},
	}
}

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg(".env file not found, using environment variables")
	}
	configureLogger()

	app := &cli.App{
		Name:    "stockroom",
		Usage:   "Product management back office",
		Version: version,
		Commands: []*cli.Command{
			ServeCommand(),
			SeedCommand(),
			TestdataCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
