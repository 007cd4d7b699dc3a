package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/themizzi/shopcheck/internal/api"
	internalcli "github.com/themizzi/shopcheck/internal/cli"
	"github.com/themizzi/shopcheck/internal/config"
	"github.com/themizzi/shopcheck/internal/database"
	"github.com/themizzi/shopcheck/internal/handlers"
	"github.com/themizzi/shopcheck/internal/logging"
	"github.com/themizzi/shopcheck/internal/repository"
	"github.com/themizzi/shopcheck/internal/services"
	"github.com/themizzi/shopcheck/internal/session"
	"github.com/themizzi/shopcheck/internal/testdata"
)

var version = "0.1.0"

// newLogger builds the logger selected by the --debug flag
func newLogger(c *cli.Context) (*zap.Logger, error) {
	logger, err := logging.New(c.Bool("debug"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return logger, nil
}

// accountStore connects to Postgres when it is configured and falls back to
// memory otherwise. The returned func releases the store.
func accountStore(logger *zap.Logger) (services.AccountRepository, func(), error) {
	err := database.Connect(os.Getenv)
	if errors.Is(err, config.ErrPostgresNotConfigured) {
		logger.Info("postgres not configured, keeping accounts in memory")
		return repository.NewMemoryAccountRepository(), func() {}, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}
	logger.Info("connected to database")

	if err := database.RunMigrations(); err != nil {
		database.Close()
		return nil, nil, fmt.Errorf("failed to run database migrations: %w", err)
	}
	return repository.NewAccountRepository(), func() { _ = database.Close() }, nil
}

// buildServerDependencies wires the stand-in's services and handlers
func buildServerDependencies(serverConfig config.ServerConfig, accounts services.AccountRepository, logger *zap.Logger) (internalcli.ServerDependencies, error) {
	catalog := services.NewDefaultCatalogService()
	accountService := services.NewAccountService(accounts)

	storefront, err := handlers.NewStorefrontHandler(
		catalog,
		services.NewCartService(catalog),
		accountService,
		services.NewSessionService(),
		logger.Named("storefront"),
	)
	if err != nil {
		return internalcli.ServerDependencies{}, fmt.Errorf("failed to create storefront handler: %w", err)
	}

	return internalcli.ServerDependencies{
		ServerConfig:      serverConfig,
		StorefrontHandler: storefront,
		APIHandler:        handlers.NewAPIHandler(catalog, accountService, logger.Named("api")),
		Logger:            logger,
	}, nil
}

// FakestoreCommand returns the command serving the local stand-in store
func FakestoreCommand() *cli.Command {
	return &cli.Command{
		Name:  "fakestore",
		Usage: "Serve a local stand-in for the storefront and its API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "port",
				Usage: "listen port, overrides PORT",
			},
		},
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			serverConfig, err := config.LoadServerConfig(os.Getenv)
			if err != nil {
				return err
			}
			if port := c.String("port"); port != "" {
				serverConfig.Port = port
			}

			accounts, release, err := accountStore(logger)
			if err != nil {
				return err
			}
			defer release()

			deps, err := buildServerDependencies(serverConfig, accounts, logger)
			if err != nil {
				return err
			}
			return internalcli.RunServe(deps)
		},
	}
}

// ProbeCommand returns the command that calls every API endpoint once
func ProbeCommand() *cli.Command {
	return &cli.Command{
		Name:  "probe",
		Usage: "Call every API endpoint once and print the results",
		Action: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			defer logger.Sync() //nolint:errcheck

			cfg, err := config.LoadSuiteConfig(os.Getenv)
			if err != nil {
				return err
			}

			provider, err := session.Acquire(cfg, logger)
			if err != nil {
				return err
			}
			defer provider.Close()

			ctx, err := provider.OpenContext(session.ContextOptions{})
			if err != nil {
				return err
			}
			defer ctx.Close()

			client := api.NewClient(ctx.Request(), cfg.APIBaseURL, logger)
			return internalcli.RunProbe(c.App.Writer, internalcli.ProbeCalls(client, testdata.NewGenerator(nil)), logger)
		},
	}
}

// InstallCommand returns the command that installs the browser driver
func InstallCommand() *cli.Command {
	return &cli.Command{
		Name:  "install",
		Usage: "Install the playwright driver and the configured browser",
		Action: func(c *cli.Context) error {
			cfg, err := config.LoadSuiteConfig(os.Getenv)
			if err != nil {
				return err
			}
			if err := session.Install(cfg); err != nil {
				return fmt.Errorf("failed to install %s: %w", cfg.Browser, err)
			}
			fmt.Fprintf(c.App.Writer, "installed %s\n", cfg.Browser)
			return nil
		},
	}
}

// warnMissingEnv reports a failed .env load; the process still runs on the
// real environment
func warnMissingEnv(logger *zap.Logger, err error) {
	if err == nil {
		return
	}
	logger.Warn(".env file not found, using environment variables", zap.Error(err))
}

func main() {
	// Load environment variables from .env file
	envErr := godotenv.Load()

	app := &cli.App{
		Name:    "shopcheck",
		Usage:   "Storefront test automation tooling",
		Version: version,
		Before: func(c *cli.Context) error {
			logger, err := newLogger(c)
			if err != nil {
				return err
			}
			warnMissingEnv(logger, envErr)
			return nil
		},
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:    "debug",
				Usage:   "enable debug logging",
				EnvVars: []string{"LOG_DEBUG"},
			},
		},
		Commands: []*cli.Command{
			FakestoreCommand(),
			ProbeCommand(),
			InstallCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
