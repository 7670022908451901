// Package main is the entry point for the storeadmin API server.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/klauspost/compress/gzhttp"

	"storeadmin/internal/config"
	"storeadmin/internal/domain"
	"storeadmin/internal/domain/actions"
	"storeadmin/internal/domain/auth"
	"storeadmin/internal/domain/confirm"
	"storeadmin/internal/domain/dashboard"
	"storeadmin/internal/domain/listing"
	v1 "storeadmin/internal/infrastructure/http/v1"
	"storeadmin/internal/infrastructure/http/v1/handlers"
	"storeadmin/internal/infrastructure/metrics"
	"storeadmin/internal/infrastructure/storage/postgres"
	"storeadmin/internal/infrastructure/upstream"
	"storeadmin/pkg/logger"
)

func main() {
	cfg, err := config.Load(".", "/etc/storeadmin")
	if err != nil {
		fmt.Printf("invalid configuration: %v\n", err)
		os.Exit(1)
	}

	log, err := logger.New(logger.Config{
		Level:       cfg.LogLevel,
		Development: cfg.Development(),
	})
	if err != nil {
		fmt.Printf("failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	logger.SetDefault(log)
	if !cfg.Development() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx = logger.WithLogger(ctx, log)

	log.Infow("starting storeadmin", "data_source", cfg.DataSource, "env", cfg.Env)

	// --- Data source ---
	var (
		source  domain.Source
		mutator domain.Mutator
		ready   = map[string]handlers.Check{}
	)
	switch cfg.DataSource {
	case config.SourcePostgres:
		pool, err := postgres.NewPool(ctx, postgres.DefaultPoolConfig(cfg.DatabaseURL))
		if err != nil {
			log.Fatalw("failed to connect to replica", "error", err)
		}
		defer pool.Close()

		replica := postgres.NewSource(postgres.NewTxManager(pool, postgres.DefaultTxOptions()))
		source = replica
		ready["replica"] = replica.Ping
		log.Info("replica data source ready (read-only, actions disabled)")
	default:
		client := upstream.NewClient(upstream.Config{BaseURL: cfg.UpstreamURL, Timeout: cfg.UpstreamTimeout})
		source, mutator = client, client
		log.Infow("backend data source ready", "url", cfg.UpstreamURL)
	}

	// --- Services ---
	store := confirm.NewStore(cfg.ConfirmTTL)
	go store.Run(ctx, time.Minute)

	m := metrics.New(store.Len)
	jwtService := auth.NewJWTService(auth.DefaultJWTConfig(cfg.JWTSecret))

	router := v1.NewRouter(v1.RouterConfig{
		Logger:       log,
		JWTValidator: jwtService,
		Listing:      listing.NewService(source, m),
		Dashboard:    dashboard.NewService(source, cfg.TopN),
		Actions:      actions.NewService(mutator, store),
		Metrics:      m,
		ReadyChecks:  ready,
		WorkingHours: cfg.WorkingHours,
	})

	// --- HTTP Server ---
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      gzhttp.GzipHandler(router),
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Infow("server starting", "port", cfg.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalw("server failed", "error", err)
		}
	}()

	// --- Graceful shutdown ---
	<-ctx.Done()
	log.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Errorw("server forced to shutdown", "error", err)
	}

	log.Info("server stopped")
	_ = log.Sync()
}
