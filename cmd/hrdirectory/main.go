package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/deppfellow/acme-hr-directory/internal/config"
	"github.com/deppfellow/acme-hr-directory/internal/database"
	"github.com/deppfellow/acme-hr-directory/internal/handler"
	"github.com/deppfellow/acme-hr-directory/internal/logger"
	"github.com/deppfellow/acme-hr-directory/internal/repository"
	"github.com/deppfellow/acme-hr-directory/internal/router"
	"github.com/deppfellow/acme-hr-directory/internal/server"
	"github.com/deppfellow/acme-hr-directory/internal/service"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

const (
	DefaultContextTimeout = 30
	bootstrapTimeout      = 2 * time.Minute
)

// app is what every command needs before it can do anything.
type app struct {
	cfg           *config.Config
	log           zerolog.Logger
	loggerService *logger.LoggerService
}

func loadApp() (*app, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, err
	}

	loggerService := logger.NewLoggerService(cfg.Observability)
	log := logger.NewLoggerWithService(cfg.Observability, loggerService)

	return &app{cfg: cfg, log: log, loggerService: loggerService}, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "hrdirectory:", err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "hrdirectory",
		Short:         "Acme HR directory API",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newServeCmd(),
		newBootstrapCmd("migrate", "Apply pending schema migrations", database.Migrate),
		newBootstrapCmd("seed", "Insert the sample departments and employees if the directory is empty", database.SeedDatabase),
		newBootstrapCmd("reset", "Drop the directory tables, recreate them and reseed", database.Reset),
	)

	return root
}

type bootstrapFunc func(ctx context.Context, log *zerolog.Logger, cfg *config.Config) error

// runBootstrap migrates and seeds, or rebuilds everything when reset is set.
func runBootstrap(ctx context.Context, log *zerolog.Logger, cfg *config.Config, reset bool) error {
	if reset {
		return database.Reset(ctx, log, cfg)
	}
	if err := database.Migrate(ctx, log, cfg); err != nil {
		return err
	}
	return database.SeedDatabase(ctx, log, cfg)
}

func newBootstrapCmd(use, short string, fn bootstrapFunc) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.loggerService.Shutdown()

			ctx, cancel := context.WithTimeout(cmd.Context(), bootstrapTimeout)
			defer cancel()

			if err := fn(ctx, &a.log, a.cfg); err != nil {
				a.log.Error().Err(err).Str("command", use).Msg("command failed")
				return err
			}

			a.log.Info().Str("command", use).Msg("command completed")
			return nil
		},
	}
}

func newServeCmd() *cobra.Command {
	var reset bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Bootstrap the database and serve the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp()
			if err != nil {
				return err
			}
			defer a.loggerService.Shutdown()

			return serve(cmd.Context(), a, reset)
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "drop and reseed the directory before serving (destroys data)")

	return cmd
}

func serve(ctx context.Context, a *app, reset bool) error {
	log := a.log

	bootstrapCtx, cancel := context.WithTimeout(ctx, bootstrapTimeout)
	err := runBootstrap(bootstrapCtx, &log, a.cfg, reset)
	cancel()
	if err != nil {
		log.Error().Err(err).Msg("database bootstrap failed")
		return err
	}

	srv, err := server.New(a.cfg, &log, a.loggerService)
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize server")
		return err
	}

	repos := repository.NewRepositories(srv)

	services, err := service.NewServices(srv, repos)
	if err != nil {
		log.Error().Err(err).Msg("could not create services")
		return err
	}

	handlers := handler.NewHandlers(srv, services)
	r := router.NewRouter(srv, handlers)
	srv.SetupHTTPServer(r)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	serveErr := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-serveErr:
		if err != nil {
			log.Error().Err(err).Msg("failed to start server")
			_ = srv.Shutdown(context.Background())
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), DefaultContextTimeout*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited properly")
	return nil
}
