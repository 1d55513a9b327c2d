package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"wayfargo/internal/api"
	"wayfargo/pkg/cache"
	"wayfargo/pkg/config"
	"wayfargo/pkg/core"
	"wayfargo/pkg/db"
	"wayfargo/pkg/location"
	"wayfargo/pkg/location/mockgps"
	"wayfargo/pkg/logging"
	"wayfargo/pkg/nav"
	"wayfargo/pkg/request"
	"wayfargo/pkg/routing"
	"wayfargo/pkg/routing/directions"
	"wayfargo/pkg/routing/mockroute"
	"wayfargo/pkg/store"
	"wayfargo/pkg/tracker"
	"wayfargo/pkg/version"
)

var initConfig = flag.Bool("init-config", false, "Generate default config file and exit")

const defaultConfigPath = "configs/wayfar.yaml"

func main() {
	flag.Parse()

	// API keys can live in a local .env instead of the config file.
	_ = godotenv.Load()

	if *initConfig {
		if err := config.GenerateDefault(defaultConfigPath); err != nil {
			fmt.Fprintf(os.Stderr, "Failed to generate config: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Config file generated:", defaultConfigPath)
		return
	}

	if err := run(context.Background(), defaultConfigPath); err != nil {
		fmt.Fprintf(os.Stderr, "CRITICAL ERROR: Application failed: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, configPath string) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	cleanupLogs, err := logging.Init(&cfg.Log)
	if err != nil {
		return fmt.Errorf("failed to initialize logging: %w", err)
	}
	defer cleanupLogs()

	slog.Info("Wayfar started", "version", version.Version)

	dbConn, err := db.Init(cfg.DB.Path)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer dbConn.Close()
	st := store.NewSQLiteStore(dbConn)

	tr := tracker.New()
	reqClient := request.New(cache.NewStoreCache(st), tr, cfg.Request)

	provider, err := initRouting(cfg, reqClient, tr)
	if err != nil {
		return err
	}

	locProvider, err := initLocation(cfg)
	if err != nil {
		return err
	}
	defer locProvider.Close()

	session := nav.NewSession(provider, st, tr, cfg.Nav)
	defer session.Close()

	// The mock walker follows whatever route the session is navigating.
	if follower, ok := locProvider.(location.PathFollower); ok {
		session.SetPathSink(follower.SetPath)
	}

	if snap, ok := core.LoadLastSnapshot(ctx, st); ok && snap.Mode != "" {
		slog.Info("Previous session snapshot found", "mode", snap.Mode)
	}

	locH := api.NewLocationHandler()

	pump := core.NewPump(cfg, locProvider, session, locH)
	pump.AddJob(core.NewPruneJob(dbConn))
	go pump.Start(ctx)

	persistence := core.NewSessionPersistenceJob(st, session, time.Duration(cfg.Ticker.Persistence))
	persistence.Start(ctx)

	return runServer(ctx, cfg, session, locH, tr, st)
}

func initRouting(cfg *config.Config, rc *request.Client, tr *tracker.Tracker) (routing.Provider, error) {
	switch cfg.Routing.Provider {
	case "mock":
		slog.Info("Using mock route provider")
		return mockroute.New(), nil
	case "directions", "":
		if cfg.Routing.APIKey == "" {
			slog.Warn("No routing API key configured; route fetches will fail")
		}
		return directions.New(rc, tr, cfg.Routing), nil
	default:
		return nil, fmt.Errorf("unknown routing provider %q", cfg.Routing.Provider)
	}
}

func initLocation(cfg *config.Config) (location.Provider, error) {
	switch cfg.Location.Provider {
	case "mock", "":
		slog.Info("Using simulated GPS", "lat", cfg.Location.Mock.StartLat, "lon", cfg.Location.Mock.StartLon)
		return mockgps.New(cfg.Location.Mock), nil
	default:
		return nil, fmt.Errorf("unknown location provider %q (device GPS is bridged via the API)", cfg.Location.Provider)
	}
}

func runServer(ctx context.Context, cfg *config.Config, session *nav.Session, locH *api.LocationHandler, tr *tracker.Tracker, st store.Store) error {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	shutdownFunc := func() { quit <- syscall.SIGTERM }

	srv := api.NewServer(cfg.Server.Address,
		api.NewNavHandler(session),
		locH,
		api.NewStatsHandler(tr),
		api.NewTripHandler(st),
		api.NewStreamHandler(session),
		shutdownFunc,
	)
	srv.Handler = loggingMiddleware(srv.Handler)

	slog.Info("Starting server", "addr", srv.Addr)
	serverErrors := make(chan error, 1)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrors <- err
		}
	}()

	select {
	case <-quit:
		slog.Info("Shutting down server...")
	case <-ctx.Done():
		slog.Info("Context cancelled, shutting down...")
	case err := <-serverErrors:
		return fmt.Errorf("server failed: %w", err)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logging.RequestLogger.Info("Request Processed", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
