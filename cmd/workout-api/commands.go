package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"slices"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/deppfellow/workout-api/internal/config"
	"github.com/deppfellow/workout-api/internal/database"
	"github.com/deppfellow/workout-api/internal/handler"
	"github.com/deppfellow/workout-api/internal/lib/email"
	"github.com/deppfellow/workout-api/internal/logger"
	"github.com/deppfellow/workout-api/internal/repository"
	"github.com/deppfellow/workout-api/internal/router"
	"github.com/deppfellow/workout-api/internal/server"
	"github.com/deppfellow/workout-api/internal/service"
)

const (
	shutdownTimeout = 30 * time.Second
	migrateTimeout  = time.Minute
)

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "workout-api",
		Short:        "Athlete registry HTTP API",
		SilenceUsage: true,
	}

	var skipMigrations bool
	serve := &cobra.Command{
		Use:   "serve",
		Short: "Apply migrations and serve the HTTP API",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithConfig(cmd.Context(), func(ctx context.Context, cfg *config.Config, ls *logger.LoggerService, log *zerolog.Logger) error {
				if !skipMigrations {
					if err := migrate(ctx, cfg, log); err != nil {
						return err
					}
				}
				return serveHTTP(ctx, cfg, ls, log)
			})
		},
	}
	serve.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations before serving")

	migrateCmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending database migrations and exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runWithConfig(cmd.Context(), func(ctx context.Context, cfg *config.Config, _ *logger.LoggerService, log *zerolog.Logger) error {
				return migrate(ctx, cfg, log)
			})
		},
	}

	emailPreview := &cobra.Command{
		Use:       "email-preview TEMPLATE",
		Short:     "Render an email template with sample data to stdout",
		Args:      cobra.ExactArgs(1),
		ValidArgs: previewTemplates(),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := email.Template(args[0])
			data, ok := email.PreviewData[name]
			if !ok {
				return fmt.Errorf("unknown template %q (available: %v)", args[0], previewTemplates())
			}

			html, err := email.Render(name, data)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), html)
			return err
		},
	}

	root.AddCommand(serve, migrateCmd, emailPreview)
	return root
}

func previewTemplates() []string {
	names := make([]string, 0, len(email.PreviewData))
	for name := range email.PreviewData {
		names = append(names, string(name))
	}
	slices.Sort(names)
	return names
}

// runWithConfig loads configuration, builds the logger and runs fn until
// SIGINT or SIGTERM cancels its context.
func runWithConfig(parent context.Context, fn func(ctx context.Context, cfg *config.Config, ls *logger.LoggerService, log *zerolog.Logger) error) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	defer loggerService.Shutdown()

	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := fn(ctx, cfg, loggerService, &log); err != nil {
		log.Error().Err(err).Msg("command failed")
		return err
	}
	return nil
}

func migrate(ctx context.Context, cfg *config.Config, log *zerolog.Logger) error {
	ctx, cancel := context.WithTimeout(ctx, migrateTimeout)
	defer cancel()

	if err := database.Migrate(ctx, log, cfg); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

func serveHTTP(ctx context.Context, cfg *config.Config, ls *logger.LoggerService, log *zerolog.Logger) error {
	srv, err := server.New(ctx, cfg, log, ls)
	if err != nil {
		return fmt.Errorf("failed to initialize server: %w", err)
	}

	repos := repository.NewRepositories()
	services := service.NewServices(srv, repos)
	handlers := handler.NewHandlers(srv, services)

	srv.SetupHTTPServer(router.NewRouter(srv, handlers, services))

	serveErr := make(chan error, 1)
	go func() {
		serveErr <- srv.Start()
	}()

	select {
	case err = <-serveErr:
	case <-ctx.Done():
		log.Info().Msg("shutting down server")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if shutdownErr := srv.Shutdown(shutdownCtx); shutdownErr != nil {
		err = errors.Join(err, shutdownErr)
	}
	if err != nil {
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
