package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/spf13/cobra"

	"github.com/dmitrymomot/postmarkit/pkg/health"
	"github.com/dmitrymomot/postmarkit/pkg/schedule"
	"github.com/dmitrymomot/postmarkit/pkg/suppression"
)

const shutdownTimeout = 30 * time.Second

var seedOnStart bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Reseed the suppression list on a schedule until interrupted",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().BoolVar(&seedOnStart, "seed-on-start", true, "seed the suppression list before the first scheduled run")
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.Close()

	runner := schedule.New(schedule.WithLogger(a.log), schedule.WithTimeout(a.cfg.Seed.Timeout))
	if err := runner.Add(suppression.NewSeedTask(a.suppressions, suppression.WithSchedule(a.cfg.Seed.Schedule))); err != nil {
		return err
	}

	if seedOnStart {
		if err := runner.RunNow(ctx, suppression.SeedTaskName); err != nil {
			a.log.ErrorContext(ctx, "initial seed failed", slog.Any("error", err))
		}
	}
	if err := runner.Start(ctx); err != nil {
		return err
	}

	var srv *http.Server
	if a.cfg.Health.Addr != "" {
		r := chi.NewRouter()
		r.Mount("/health", health.Handler(a.checks, health.WithLogger(a.log)))
		srv = &http.Server{Addr: a.cfg.Health.Addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.log.ErrorContext(ctx, "health endpoint stopped", slog.Any("error", err))
				stop()
			}
		}()
		a.log.InfoContext(ctx, "health endpoint listening", slog.String("addr", a.cfg.Health.Addr))
	}

	<-ctx.Done()
	a.log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	var errs []error
	if srv != nil {
		errs = append(errs, srv.Shutdown(shutdownCtx))
	}
	errs = append(errs, runner.Stop(shutdownCtx))
	return errors.Join(errs...)
}
