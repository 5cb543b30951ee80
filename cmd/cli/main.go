package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/jakechorley/clinic-roster/cmd/cli/commands"
	"github.com/jakechorley/clinic-roster/internal/config"
	"github.com/jakechorley/clinic-roster/pkg/db"
	"github.com/jakechorley/clinic-roster/pkg/mariadb"
	"github.com/jakechorley/clinic-roster/pkg/postgres"
	"github.com/jakechorley/clinic-roster/pkg/utils/logging"
)

var (
	env           string
	verbose       bool
	app           = &commands.AppContext{}
	closeLogger   func()
	closeDatabase func()
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "roster",
		Short:        "Clinic Roster CLI - Plan weekly doctor shifts across clinics",
		Long:         `A CLI tool for building, validating and submitting weekly clinic rosters.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return initApp()
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			shutdown()
		},
	}

	rootCmd.PersistentFlags().StringVarP(&env, "env", "e", "", "Environment (required: test, prod, etc.)")
	rootCmd.MarkPersistentFlagRequired("env")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output to the console")

	rootCmd.AddCommand(commands.WeekCmd(app))
	rootCmd.AddCommand(commands.ValidateCmd(app))
	rootCmd.AddCommand(commands.SubmitCmd(app))
	rootCmd.AddCommand(commands.EditCmd(app))
	rootCmd.AddCommand(commands.PublishCmd(app))
	rootCmd.AddCommand(commands.NotifyCmd(app))
	rootCmd.AddCommand(commands.ListDoctorsCmd(app))
	rootCmd.AddCommand(commands.HistoryCmd(app))
	rootCmd.AddCommand(commands.MigrateCmd(app))

	if err := rootCmd.Execute(); err != nil {
		shutdown()
		os.Exit(1)
	}
}

// initApp sets up logger, config and database. Google clients are created by the commands
// that need them.
func initApp() error {
	ctx := context.Background()

	logger, cleanup, err := logging.InitLogger(env, verbose)
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	closeLogger = cleanup

	logger.Info("Starting application", zap.String("environment", env))

	logger.Debug("Loading configuration")
	cfg, err := config.LoadWithEnv(env)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	logger.Debug("Configuration loaded successfully",
		zap.String("store", cfg.Store),
		zap.String("directory_source", cfg.ResolvedDirectorySource()))

	logger.Info("Connecting to database", zap.String("store", cfg.Store))
	database, err := openDatabase(ctx, cfg)
	if err != nil {
		return err
	}
	closeDatabase = database.Close
	logger.Debug("Database connected")

	*app = commands.AppContext{
		Env:      env,
		Cfg:      cfg,
		Database: database,
		Logger:   logger,
		Ctx:      ctx,
		Now:      time.Now,
	}

	return nil
}

func openDatabase(ctx context.Context, cfg *config.Config) (db.Database, error) {
	switch cfg.Store {
	case config.SourceMariaDB:
		database, err := mariadb.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to mariadb: %w", err)
		}
		return database, nil
	default:
		database, err := postgres.NewDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to postgres: %w", err)
		}
		return database, nil
	}
}

func shutdown() {
	if closeDatabase != nil {
		closeDatabase()
		closeDatabase = nil
	}
	if closeLogger != nil {
		closeLogger()
		closeLogger = nil
	}
}
