package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"showcase/internal/config"
	"showcase/internal/database"
	"showcase/internal/repositories"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		log.Error().Err(err).Msg("command failed")
		os.Exit(1)
	}
}

// newRootCommand builds the CLI. Running it without a subcommand serves HTTP.
func newRootCommand() *cobra.Command {
	serveCmd := newServeCommand()
	rootCmd := &cobra.Command{
		Use:           "showcase",
		Short:         "Project showcase API server and operator tooling",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          serveCmd.RunE,
	}

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newAdminCommand())
	rootCmd.AddCommand(newEventsCommand())
	return rootCmd
}

// loadConfig reads configuration and configures the global logger.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	setupLogging(cfg.LogLevel)
	return cfg, nil
}

func setupLogging(level string) {
	lvl, err := zerolog.ParseLevel(level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(lvl)
	zerolog.TimeFieldFormat = time.RFC3339
	log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
}

// openDatabase connects, migrates the schema and backfills derived columns.
func openDatabase(cfg *config.Config) (*gorm.DB, error) {
	lvl, _ := zerolog.ParseLevel(cfg.LogLevel)
	db, err := database.Open(database.Config{
		Driver:   cfg.DatabaseDriver,
		DSN:      cfg.DatabaseDSN,
		LogLevel: lvl,
	})
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		_ = database.Close(db)
		return nil, err
	}
	n, err := repositories.NewGORMProjectRepository(db).BackfillTitleSearch(context.Background())
	if err != nil {
		_ = database.Close(db)
		return nil, err
	}
	if n > 0 {
		log.Info().Int("projects", n).Msg("backfilled title search keys")
	}
	return db, nil
}
