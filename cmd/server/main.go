package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/laflopet/Employee-onboarding-system/internal/adapters/restapi"
	sqliteadapter "github.com/laflopet/Employee-onboarding-system/internal/adapters/sqlite"
	"github.com/laflopet/Employee-onboarding-system/internal/backend"
	"github.com/laflopet/Employee-onboarding-system/internal/config"
	"github.com/laflopet/Employee-onboarding-system/internal/controller"
	"github.com/laflopet/Employee-onboarding-system/internal/handlers"
)

func main() {
	if err := rootCmd().ExecuteContext(context.Background()); err != nil {
		slog.Error("exit", "err", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var cfg config.Config
	root := &cobra.Command{
		Use:           "employees",
		Short:         "Employee records admin tool",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(*cobra.Command, []string) error {
			c, err := config.Load()
			if err != nil {
				return err
			}
			cfg = c
			slog.SetDefault(cfg.Logger(os.Stderr))
			return nil
		},
	}
	root.AddCommand(
		&cobra.Command{
			Use:   "ui",
			Short: "Serve the web admin against the employee API",
			RunE:  func(cmd *cobra.Command, _ []string) error { return runUI(cmd.Context(), cfg) },
		},
		&cobra.Command{
			Use:   "backend",
			Short: "Serve the development employee API backed by SQLite",
			RunE:  func(cmd *cobra.Command, _ []string) error { return runBackend(cmd.Context(), cfg) },
		},
	)
	return root
}

func runUI(ctx context.Context, cfg config.Config) error {
	log := slog.Default()
	api := restapi.New(cfg.APIBaseURL, restapi.WithTimeout(cfg.APITimeout), restapi.WithLogger(log))
	ctrl := controller.New(api, handlers.Confirmer, controller.WithLogger(log))
	if err := ctrl.LoadAll(ctx); err != nil {
		return fmt.Errorf("initial load: %w", err)
	}
	if msg := ctrl.State().LastError; msg != "" {
		log.Warn("initial load failed", "api", cfg.APIBaseURL, "msg", msg)
	}

	log.Info("employee admin running", "addr", cfg.UIAddr, "api", cfg.APIBaseURL)
	return serve(ctx, cfg.UIAddr, handlers.New(ctrl, log).Routes())
}

func runBackend(ctx context.Context, cfg config.Config) error {
	log := slog.Default()
	repo, err := sqliteadapter.New(ctx, cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer repo.Close()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	srv := backend.New(repo,
		backend.WithLogger(log),
		backend.WithRegistry(reg),
		backend.WithEmailDomains(cfg.EmailDomainCO, cfg.EmailDomainUS),
		backend.WithHireWindow(cfg.HireWindowDays),
	)

	log.Info("employee API running", "addr", cfg.BackendAddr, "prefix", backend.Prefix, "db", cfg.DBPath)
	return serve(ctx, cfg.BackendAddr, srv.Routes())
}

// serve runs h on addr until SIGINT or SIGTERM, then drains connections.
func serve(ctx context.Context, addr string, h http.Handler) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	srv := &http.Server{Addr: addr, Handler: h, ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() { errc <- srv.ListenAndServe() }()

	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}
	slog.Info("shutting down", "addr", addr)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
