package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"showcase/internal/config"
	"showcase/internal/database"
	"showcase/internal/handlers"
	"showcase/internal/oauth"
	"showcase/internal/repositories"
	"showcase/internal/router"
	"showcase/internal/services"
	"showcase/internal/uploads"
	"showcase/pkg/rabbitmq"
	"showcase/pkg/redisstore"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/streadway/amqp"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, cfg)
		},
	}
}

func serve(ctx context.Context, cfg *config.Config) error {
	db, err := openDatabase(cfg)
	if err != nil {
		return err
	}
	defer database.Close(db)

	// Events are optional; without a broker they are skipped.
	var events services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.EventsExchange})
		if err != nil {
			log.Warn().Err(err).Msg("RabbitMQ unavailable, catalog events disabled")
		} else {
			defer mqClient.Close()
			events = mqClient
		}
	}

	var sessionStorage fiber.Storage
	if cfg.RedisAddr != "" {
		store, err := redisstore.New(redisstore.Config{Addr: cfg.RedisAddr, Password: cfg.RedisPassword, DB: cfg.RedisDB})
		if err != nil {
			return err
		}
		defer store.Close()
		sessionStorage = store
	}

	var provider handlers.OAuthProvider
	if cfg.GithubConfigured() {
		gh, err := oauth.NewGithubProvider(oauth.GithubConfig{
			ClientID:     cfg.GithubClientID,
			ClientSecret: cfg.GithubClientSecret,
			CallbackURL:  cfg.GithubCallbackURL,
		})
		if err != nil {
			return err
		}
		provider = gh
	} else {
		log.Warn().Msg("GitHub OAuth not configured, login disabled")
	}

	uploadStore, uploadDir, err := newUploadStore(ctx, cfg)
	if err != nil {
		return err
	}

	accountRepo := repositories.NewGORMAccountRepository(db)
	gate := services.NewAdminGate(accountRepo)

	app := router.New(router.Deps{
		Auth:           services.NewAuthService(accountRepo, cfg.JWTSecret, cfg.TokenTTL),
		Projects:       services.NewProjectService(repositories.NewGORMProjectRepository(db), gate, events),
		Likes:          services.NewLikeService(repositories.NewGORMLikeRepository(db), events),
		Stats:          services.NewStatsService(repositories.NewGORMStatsRepository(db), gate),
		Sessions:       router.NewSessionStore(sessionStorage, cfg.SessionTTL, cfg.CookieSecure),
		OAuth:          provider,
		Uploads:        uploadStore,
		UploadMaxBytes: cfg.UploadMaxBytes,
		UploadDir:      uploadDir,
		AccessLog:      true,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.AppPort).Msg("starting server")
		errCh <- app.Listen(cfg.AppPort)
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error().Err(err).Msg("error during shutdown")
	}
	log.Info().Msg("server gracefully stopped")
	return nil
}

func newUploadStore(ctx context.Context, cfg *config.Config) (uploads.Store, string, error) {
	if cfg.UploadBackend == "s3" {
		store, err := uploads.NewS3Store(ctx, cfg.S3Bucket, cfg.S3Region, cfg.S3PublicBase)
		return store, "", err
	}
	store, err := uploads.NewLocalStore(cfg.UploadDir, "/uploads")
	return store, cfg.UploadDir, err
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or upgrade the database schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)
			fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")
			return nil
		},
	}
}

func newAdminCommand() *cobra.Command {
	adminCmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage the admin flag of accounts",
	}
	adminCmd.AddCommand(newSetAdminCommand("grant", "Grant admin rights to an account", true))
	adminCmd.AddCommand(newSetAdminCommand("revoke", "Revoke admin rights from an account", false))
	return adminCmd
}

func newSetAdminCommand(use, short string, isAdmin bool) *cobra.Command {
	return &cobra.Command{
		Use:   use + " <account-id>",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			db, err := openDatabase(cfg)
			if err != nil {
				return err
			}
			defer database.Close(db)

			authService := services.NewAuthService(repositories.NewGORMAccountRepository(db), cfg.JWTSecret, cfg.TokenTTL)
			if err := authService.SetAdmin(cmd.Context(), args[0], isAdmin); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "account %s admin=%t\n", args[0], isAdmin)
			return nil
		},
	}
}

func newEventsCommand() *cobra.Command {
	eventsCmd := &cobra.Command{
		Use:   "events",
		Short: "Inspect catalog events",
	}

	var binding string
	tailCmd := &cobra.Command{
		Use:   "tail",
		Short: "Print catalog events as they are published",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if cfg.RabbitMQURL == "" {
				return fmt.Errorf("RABBITMQ_URL is not set")
			}
			client, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL, Exchange: cfg.EventsExchange})
			if err != nil {
				return err
			}
			defer client.Close()

			out := cmd.OutOrStdout()
			done, err := client.Consume(binding, func(msg amqp.Delivery) error {
				_, err := fmt.Fprintf(out, "%s %s\n", msg.RoutingKey, msg.Body)
				return err
			})
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			select {
			case <-ctx.Done():
			case <-done:
				return fmt.Errorf("event stream closed by broker")
			}
			return nil
		},
	}
	tailCmd.Flags().StringVar(&binding, "binding", "project.#", "routing-key pattern to subscribe to")

	eventsCmd.AddCommand(tailCmd)
	return eventsCmd
}
