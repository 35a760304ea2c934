package main

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"go.uber.org/zap"

	"github.com/eugenenazirov/siteconfig/internal/application"
	"github.com/eugenenazirov/siteconfig/internal/config"
	"github.com/eugenenazirov/siteconfig/internal/logging"
	"github.com/eugenenazirov/siteconfig/internal/render"
	"github.com/eugenenazirov/siteconfig/internal/siteconfig"
)

var signalNotify = signal.Notify

func main() {
	kingpinApp := kingpin.New("siteconfig", "Static site configuration resolver - emits adapter and base path settings for the build tool")
	configFile := kingpinApp.Flag("config", "Path to YAML configuration file").String()
	format := kingpinApp.Flag("format", "Output format (json or yaml)").Short('f').String()
	envFiles := kingpinApp.Flag("env-file", "Dotenv file layered beneath the process environment (repeatable)").Strings()
	logLevel := kingpinApp.Flag("log-level", "Log level (debug, info, warn, error)").String()

	resolveCmd := kingpinApp.Command("resolve", "Resolve the configuration and print it to stdout")
	resolveCmd.Arg("args", "Build tool invocation; a \"dev\" token selects dev mode").Strings()

	serveCmd := kingpinApp.Command("serve", "Resolve the configuration once and serve it over HTTP")
	port := serveCmd.Flag("port", "HTTP port exposed by the service").String()
	rateLimitRPSFlag := serveCmd.Flag("rate-limit-rps", "Requests per second allowed (set 0 to disable)").Default("-1").Float64()
	rateLimitBurstFlag := serveCmd.Flag("rate-limit-burst", "Burst capacity for rate limiter (set 0 to disable)").Default("-1").Int()
	serveCmd.Arg("args", "Build tool invocation; a \"dev\" token selects dev mode").Strings()

	command := kingpin.MustParse(kingpinApp.Parse(os.Args[1:]))

	overrides := &config.CLIOverrides{
		ConfigFile: *configFile,
		EnvFiles:   *envFiles,
	}

	if *format != "" {
		overrides.Format = format
	}

	if *logLevel != "" {
		overrides.LogLevel = logLevel
	}

	if *port != "" {
		overrides.Port = port
	}

	if *rateLimitRPSFlag >= 0 {
		overrides.RateLimitRPS = rateLimitRPSFlag
	}

	if *rateLimitBurstFlag >= 0 {
		overrides.RateLimitBurst = rateLimitBurstFlag
	}

	cfg, err := config.Load(overrides)
	if err != nil {
		panic(fmt.Sprintf("failed to load configuration: %v", err))
	}

	logger, err := logging.New(cfg.LogLevel)
	if err != nil {
		panic(fmt.Sprintf("failed to initialize logger: %v", err))
	}
	defer func() {
		_ = logger.Sync()
	}()

	lookup, err := application.Lookup(cfg.EnvFiles)
	if err != nil {
		logger.Fatal("failed to prepare environment", zap.Error(err))
	}

	switch command {
	case resolveCmd.FullCommand():
		if err := runResolve(os.Stdout, os.Args, lookup, cfg.Format, logger); err != nil {
			logger.Fatal("failed to write configuration", zap.Error(err))
		}
	case serveCmd.FullCommand():
		app, err := application.New(cfg, os.Args, lookup, logger)
		if err != nil {
			logger.Fatal("failed to initialize application", zap.Error(err))
		}

		if err := app.Start(); err != nil {
			logger.Fatal("failed to start server", zap.Error(err))
		}

		shutdown(app.Server(), cfg.ShutdownGracePeriod, logger)
	}
}

// runResolve resolves against the full process argument list and writes the
// build tool document to w.
func runResolve(w io.Writer, args []string, lookup siteconfig.LookupFunc, format render.Format, logger *zap.Logger) error {
	cfg := siteconfig.Resolve(args, lookup)
	base, baseSet := cfg.BaseValue()
	logger.Debug("configuration resolved",
		zap.String("mode", string(siteconfig.DetectMode(args))),
		zap.String("base", base),
		zap.Bool("base_set", baseSet),
	)
	return render.Write(w, cfg.Document(), format)
}

func shutdown(server *http.Server, timeout time.Duration, logger *zap.Logger) {
	quit := make(chan os.Signal, 1)
	signalNotify(quit, os.Interrupt, syscall.SIGINT, syscall.SIGTERM)

	<-quit
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Warn("graceful shutdown failed", zap.Error(err))
		if closeErr := server.Close(); closeErr != nil {
			logger.Error("forced close failed", zap.Error(closeErr))
		}
	}
}
