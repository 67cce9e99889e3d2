package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	"lawmap/data"
	"lawmap/internal/api"
	"lawmap/internal/config"
	"lawmap/internal/engine"
	"lawmap/internal/logging"
	"lawmap/internal/metrics"
	"lawmap/internal/view"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var cfgPath string
	root := &cobra.Command{
		Use:          "lawmap",
		Short:        "Serves the family-law map views",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfgPath)
		},
	}
	root.PersistentFlags().StringVarP(&cfgPath, "config", "c", os.Getenv("LAWMAP_CONFIG"), "path to a YAML config file")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server (default)",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context(), cfgPath)
		},
	})
	root.AddCommand(newInspectCmd(&cfgPath))
	return root
}

func loadStore(ctx context.Context, cfg config.Config) (*engine.Store, error) {
	return engine.LoadStore(ctx, engine.Sources{
		TopicsPath: cfg.Data.TopicsPath,
		RatesPath:  cfg.Data.RatesPath,
		Topics:     data.Topics,
		Rates:      data.Rates,
	})
}

func runServe(parent context.Context, cfgPath string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return err
	}
	logging.Setup(cfg.Log.Level, cfg.Log.Color)

	if parent == nil {
		parent = context.Background()
	}
	ctx, stop := signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
	defer stop()

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true
	e.JSONSerializer = api.JSONSerializer{}
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())
	e.Use(middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:   true,
		LogURI:      true,
		LogStatus:   true,
		LogLatency:  true,
		LogError:    true,
		HandleError: true,
		LogValuesFunc: func(_ echo.Context, v middleware.RequestLoggerValues) error {
			attrs := []any{"method", v.Method, "uri", v.URI, "status", v.Status, "latency", v.Latency}
			if v.Error != nil {
				slog.Warn("request failed", append(attrs, "err", v.Error)...)
				return nil
			}
			slog.Debug("request", attrs...)
			return nil
		},
	}))

	m := metrics.New()
	e.GET("/metrics", echo.WrapHandler(m.Handler()))

	// The API is live right away and answers 503 until the datasets land.
	h := api.NewHandler(nil, m)
	limiter := middleware.RateLimiter(middleware.NewRateLimiterMemoryStore(rate.Limit(cfg.Server.RateLimit)))
	h.RegisterRoutes(e, limiter)

	loadErr := make(chan error, 1)
	go func() {
		store, err := loadStore(ctx, cfg)
		if err != nil {
			loadErr <- err
			return
		}
		factory, err := view.NewFactory(cfg.Map, store)
		if err != nil {
			loadErr <- err
			return
		}
		reg := view.NewRegistry(factory, cfg.Server.MaxViews, cfg.Server.ViewTTL, func(string) {
			m.IncrementViewsClosed()
		})
		m.TrackActiveViews(func() float64 { return float64(reg.Len()) })
		h.SetData(reg)
		slog.Info("api ready", "mode", cfg.Map.Mode)
	}()

	serveErr := make(chan error, 1)
	go func() {
		slog.Info("listening", "addr", cfg.Server.Addr)
		if err := e.Start(cfg.Server.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
	}()

	select {
	case <-ctx.Done():
		slog.Info("shutting down")
	case err := <-loadErr:
		slog.Error("loading datasets failed", "err", err)
		shutdown(e)
		return err
	case err := <-serveErr:
		return err
	}
	return shutdown(e)
}

func shutdown(e *echo.Echo) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return e.Shutdown(ctx)
}
