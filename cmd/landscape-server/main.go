package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/iwvelando/landscape-calculator/internal/catalog"
	"github.com/iwvelando/landscape-calculator/internal/config"
	"github.com/iwvelando/landscape-calculator/internal/server"
	"github.com/iwvelando/landscape-calculator/internal/store"
	"github.com/iwvelando/landscape-calculator/pkg/constants"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

// Set at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	configLocation := flag.String("config", constants.DefaultServerConfigFile, "path to server configuration file")
	catalogLocation := flag.String("catalog-config", constants.DefaultConfigFile, "path to calculator configuration with pricing overrides")
	logLevel := flag.String("log-level", "", "log level override (debug, info, warn, error)")
	flag.Parse()

	_ = godotenv.Load()

	cfg, err := server.LoadConfig(*configLocation)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to load server configuration at %s\", \"error\": \"%v\"}\n", *configLocation, err)
		os.Exit(1)
	}

	logger, err := config.NewLogger(cfg.Logging, *logLevel)
	if err != nil {
		fmt.Printf("{\"op\": \"main\", \"level\": \"fatal\", \"msg\": \"failed to initialize logger\", \"error\": \"%v\"}\n", err)
		os.Exit(1)
	}
	defer func() {
		_ = logger.Sync()
	}()

	cat, err := loadCatalog(logger, *catalogLocation)
	if err != nil {
		logger.Fatal("failed to build pricing catalog",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}

	inputStore, err := store.New(logger, cfg.Store)
	if err != nil {
		logger.Fatal("failed to open input store",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
	if closer, ok := inputStore.(interface{ Close() error }); ok {
		defer func() {
			_ = closer.Close()
		}()
	}

	var limiter *server.RateLimiter
	if cfg.RateLimit.Capacity > 0 {
		limiter = server.NewRateLimiter(cfg.RateLimit.Capacity, cfg.RateLimitWindow())
		defer limiter.Stop()
	}

	handler := server.NewHandler(logger, server.Options{
		Catalog:     cat,
		Store:       inputStore,
		StoreKey:    cfg.Store.StoreKey(),
		MaxBodySize: cfg.BodySizeBytes(),
		ShareURL:    cfg.ShareURL,
		Version:     version,
		RateLimiter: limiter,
	})

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	serverErr := make(chan error, 1)
	go func() {
		logger.Info("listening",
			zap.String("op", "main"),
			zap.String("address", cfg.Address),
			zap.String("version", version),
		)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	select {
	case err := <-serverErr:
		logger.Error("server failed",
			zap.String("op", "main"),
			zap.Error(err),
		)
		return
	case <-ctx.Done():
		logger.Info("shutting down",
			zap.String("op", "main"),
		)
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("error during shutdown",
			zap.String("op", "main"),
			zap.Error(err),
		)
	}
}

// loadCatalog builds the pricing catalog from the calculator configuration,
// or uses the built-in tables when the file does not exist.
func loadCatalog(logger *zap.Logger, path string) (*catalog.Catalog, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return catalog.Default(), nil
	}

	conf, err := config.LoadConfiguration(path)
	if err != nil {
		return nil, err
	}
	for _, warning := range conf.ValidateConfiguration() {
		logger.Warn("Configuration warning: "+warning,
			zap.String("op", "main"),
		)
	}
	return conf.BuildCatalog()
}
