package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/patrickwarner/offergate/internal/api"
	"github.com/patrickwarner/offergate/internal/config"
	"github.com/patrickwarner/offergate/internal/geoip"
	"github.com/patrickwarner/offergate/internal/middleware"
	"github.com/patrickwarner/offergate/internal/observability"
	"github.com/patrickwarner/offergate/internal/upstream"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	logger, err := observability.InitLogger(cfg.ServiceName)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger: %v\n", err)
		os.Exit(1)
	}

	defer func() {
		if err := logger.Sync(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to sync logger: %v\n", err)
		}
	}()

	if err := run(logger, cfg); err != nil {
		logger.Error("server error", zap.Error(err))
		os.Exit(1)
	}
}

func run(logger *zap.Logger, cfg config.Config) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.OffersAPIKey == "" {
		return fmt.Errorf("OFFERS_API_KEY is required")
	}

	if cfg.TracingEnabled {
		shutdown, err := observability.InitTracing(ctx, logger, cfg.ServiceName, cfg.TempoEndpoint, cfg.TracingSampleRate)
		if err != nil {
			return fmt.Errorf("init tracing: %w", err)
		}
		defer shutdown()
	}

	metricsRegistry := observability.NewPrometheusRegistry()

	var geoSvc *geoip.GeoIP
	if cfg.GeoIPDB != "" {
		var err error
		geoSvc, err = geoip.Init(cfg.GeoIPDB)
		if err != nil {
			// country annotation is best effort, serve without it
			logger.Warn("geoip db unavailable", zap.String("path", cfg.GeoIPDB), zap.Error(err))
		} else {
			defer func() { _ = geoSvc.Close() }()
		}
	}

	client := upstream.New(cfg.OffersAPIURL, cfg.OffersAPIKey, cfg.UpstreamTimeout, logger, metricsRegistry)
	srvDeps := api.NewServer(logger, client, geoSvc, metricsRegistry, cfg)

	r := mux.NewRouter()
	r.Use(middleware.WithTraceLogger(logger))
	r.Use(middleware.WithRecovery(logger))
	r.HandleFunc("/api/offers", srvDeps.OffersHandler).Methods("GET")
	r.HandleFunc("/health", srvDeps.HealthHandler).Methods("GET")

	// Static file server for the demo page assets
	r.PathPrefix("/static/").Handler(http.StripPrefix("/static/", http.FileServer(http.Dir("./static"))))

	r.Handle("/metrics", promhttp.Handler())

	cors := handlers.CORS(
		handlers.AllowedOrigins(cfg.CORSOrigins),
		handlers.AllowedMethods([]string{"GET", "OPTIONS"}),
		handlers.AllowedHeaders([]string{"Content-Type"}),
	)

	addr := ":" + cfg.Port
	srv := &http.Server{
		Addr:         addr,
		Handler:      cors(r),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	logger.Info("Offers proxy running", zap.String("addr", addr))

	errCh := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("listen: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	return nil
}
