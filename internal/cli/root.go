package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/saulo-duarte/taskflow/internal/config"
	"github.com/saulo-duarte/taskflow/internal/container"
	"github.com/spf13/cobra"
)

func NewRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "taskflow",
		Short:        "TaskFlow personal to-do list server",
		SilenceUsage: true,
	}

	cmd.AddCommand(newServeCmd())
	cmd.AddCommand(newMigrateCmd())
	return cmd
}

func loadSettings(cmd *cobra.Command) (*config.Settings, error) {
	settings, err := config.Load()
	if err != nil {
		return nil, err
	}
	if addr, _ := cmd.Flags().GetString("addr"); addr != "" {
		settings.HTTPAddr = addr
	}
	config.Init()
	return settings, nil
}

func newServeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			migrate, _ := cmd.Flags().GetBool("migrate")

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return serve(ctx, settings, migrate)
		},
	}
	cmd.Flags().String("addr", "", "Listen address (overrides HTTP_ADDR)")
	cmd.Flags().Bool("migrate", false, "Run migrations before serving")
	return cmd
}

func serve(ctx context.Context, settings *config.Settings, migrate bool) error {
	log := config.Logger

	c, err := container.New(ctx, settings)
	if err != nil {
		return err
	}
	if migrate {
		if err := container.Migrate(c.DB); err != nil {
			return err
		}
	}

	server := &http.Server{
		Addr:    settings.HTTPAddr,
		Handler: c.Router(),
	}

	errCh := make(chan error, 1)
	go func() {
		log.WithField("addr", settings.HTTPAddr).Info("Setting up HTTP server")
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			log.WithError(err).Error("Failed to listen and serve HTTP")
		}
		return err
	case <-ctx.Done():
	}

	log.Info("Shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), settings.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Failed to shut down HTTP server")
		return err
	}
	log.Info("HTTP server stopped")
	return nil
}

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			settings, err := loadSettings(cmd)
			if err != nil {
				return err
			}
			if err := config.Connect(cmd.Context(), settings.DatabaseDriver, settings.DatabaseDSN); err != nil {
				return err
			}
			if err := container.Migrate(config.DB); err != nil {
				return err
			}
			config.Logger.Info("Migrations applied")
			return nil
		},
	}
}

func Execute() {
	if err := NewRootCmd().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
