package application

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/eugenenazirov/siteconfig/internal/api"
	"github.com/eugenenazirov/siteconfig/internal/config"
	"github.com/eugenenazirov/siteconfig/internal/environ"
	"github.com/eugenenazirov/siteconfig/internal/metrics"
	"github.com/eugenenazirov/siteconfig/internal/siteconfig"
	"github.com/eugenenazirov/siteconfig/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	storage storage.Storage
	metrics *metrics.Recorder
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// Lookup returns the process environment, with the given dotenv files layered
// beneath it when any are configured.
func Lookup(envFiles []string) (siteconfig.LookupFunc, error) {
	if len(envFiles) == 0 {
		return environ.Process(), nil
	}
	lookup, err := environ.WithDotenv(environ.Process(), envFiles...)
	if err != nil {
		return nil, fmt.Errorf("load env files: %w", err)
	}
	return lookup, nil
}

// Snapshot resolves the configuration for args and lookup and stamps it.
func Snapshot(args []string, lookup siteconfig.LookupFunc, now time.Time) storage.Snapshot {
	return storage.Snapshot{
		Config:     siteconfig.Resolve(args, lookup),
		Mode:       siteconfig.DetectMode(args),
		ResolvedAt: now,
	}
}

// New resolves the configuration once and wires the HTTP server around it.
func New(cfg config.Config, args []string, lookup siteconfig.LookupFunc, logger *zap.Logger) (*App, error) {
	snap := Snapshot(args, lookup, time.Now().UTC())

	store := storage.NewMemoryStorage()
	if err := store.Set(snap); err != nil {
		return nil, fmt.Errorf("failed to store resolved configuration: %w", err)
	}

	base, baseSet := snap.Config.BaseValue()
	logger.Info("configuration resolved",
		zap.String("mode", string(snap.Mode)),
		zap.String("base", base),
		zap.Bool("base_set", baseSet),
	)

	recorder := metrics.NewRecorder(prom.NewRegistry())
	handler := api.NewHandler(store, api.WithMetrics(recorder))
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	return &App{
		storage: store,
		metrics: recorder,
		handler: handler,
		router:  apiRouter,
		logger:  logger,
		server:  NewServer(cfg, BuildRootHandler(apiRouter, recorder.Handler())),
	}, nil
}

// BuildRootHandler routes API requests and the metrics endpoint.
func BuildRootHandler(apiHandler, metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
