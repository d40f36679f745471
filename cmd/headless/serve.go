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

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"

	"github.com/vango-dev/headless/internal/config"
	"github.com/vango-dev/headless/pkg/bridge"
	"github.com/vango-dev/headless/pkg/middleware"
	"github.com/vango-dev/headless/pkg/toast"
)

func serveCmd() *cobra.Command {
	var (
		dir  string
		addr string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the state bridge server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(dir)
			if err != nil {
				return err
			}
			if addr != "" {
				cfg.Addr = addr
			}
			return serve(cfg)
		},
	}

	cmd.Flags().StringVarP(&dir, "dir", "d", ".", "directory containing headless.json")
	cmd.Flags().StringVarP(&addr, "addr", "a", "", "listen address (overrides config)")

	return cmd
}

func serve(cfg *config.Config) error {
	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	store := toast.New(
		toast.WithLimit(cfg.ToastLimit),
		toast.WithRemoveDelay(cfg.RemoveDelay()),
	)

	b := bridge.New(
		bridge.WithLogger(logger.With("component", "bridge")),
		bridge.WithStore(store),
		bridge.WithBreakpoint(cfg.Breakpoint),
		bridge.WithDebounce(cfg.Debounce()),
		bridge.WithCarouselItems(cfg.CarouselItems),
		bridge.Use(
			middleware.OpenTelemetry(),
			middleware.Metrics(),
		),
	)

	r := chi.NewRouter()
	r.Mount("/", b.Router())
	if cfg.Metrics {
		middleware.InstrumentBridge(prometheus.DefaultRegisterer, b)
		middleware.InstrumentStore(prometheus.DefaultRegisterer, store)
		r.Handle("/metrics", promhttp.Handler())
	}

	srv := &http.Server{
		Addr:    cfg.Addr,
		Handler: r,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", cfg.Addr)
		if err := srv.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case sig := <-stop:
		logger.Info("shutting down", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	b.Shutdown()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
