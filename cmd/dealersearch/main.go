package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/enthusiast-garage/dealersearch/internal/cache"
	cacheRedis "github.com/enthusiast-garage/dealersearch/internal/cache/redis"
	"github.com/enthusiast-garage/dealersearch/internal/config"
	logpkg "github.com/enthusiast-garage/dealersearch/internal/logger"
	"github.com/enthusiast-garage/dealersearch/internal/metrics"
	indexrepo "github.com/enthusiast-garage/dealersearch/internal/repository/index"
	chiTransport "github.com/enthusiast-garage/dealersearch/internal/transport/chi"
	"github.com/enthusiast-garage/dealersearch/internal/transport/sanity"
	"github.com/enthusiast-garage/dealersearch/internal/transport/shopify"
	healthuc "github.com/enthusiast-garage/dealersearch/internal/usecase/health"
	recommenduc "github.com/enthusiast-garage/dealersearch/internal/usecase/recommend"
	searchuc "github.com/enthusiast-garage/dealersearch/internal/usecase/search"
	"github.com/enthusiast-garage/dealersearch/internal/version"
)

func main() {
	// .env is optional; real env vars win either way
	_ = godotenv.Load()

	env := config.GetEnv()

	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting dealersearch API server",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.Int("http_port", cfg.HTTP.Port),
		zap.String("cache_backend", cfg.Cache.Backend),
	)

	ctx := context.Background()

	// Create the cache store based on backend
	var store cache.Cache
	switch cfg.Cache.Backend {
	case "memory":
		store = cache.NewMemory()
	case "redis":
		redisStore, err := cacheRedis.NewStore(cacheRedis.Config{
			Addrs:     cfg.Cache.Addrs,
			Username:  cfg.Cache.Username,
			Password:  cfg.Cache.Password,
			DB:        cfg.Cache.DB,
			KeyPrefix: cfg.Cache.KeyPrefix,
		}, logger)
		if err != nil {
			logger.Fatal("Failed to create redis cache", zap.Error(err))
		}
		defer redisStore.Close()
		if err := redisStore.Ping(ctx); err != nil {
			logger.Fatal("Redis cache not ready", zap.Error(err))
		}
		store = redisStore
	default:
		logger.Fatal("Unknown cache backend", zap.String("backend", cfg.Cache.Backend))
	}

	// Register search metrics explicitly (no init())
	metrics.RegisterSearchMetrics()

	// Upstream source clients
	content := sanity.NewClient(&sanity.Config{
		ProjectID:  cfg.Content.ProjectID,
		Dataset:    cfg.Content.Dataset,
		APIVersion: cfg.Content.APIVersion,
		Token:      cfg.Content.Token,
		Logger:     logger,
	})
	catalog := shopify.NewClient(&shopify.Config{
		StoreDomain:     cfg.Catalog.StoreDomain,
		StorefrontToken: cfg.Catalog.StorefrontToken,
		APIVersion:      cfg.Catalog.APIVersion,
		Logger:          logger,
	})

	// Index repository over both sources
	indexRepo := indexrepo.NewRepo(&indexrepo.Config{
		Vehicles: content,
		Products: catalog,
		Cache:    store,
		TTL:      time.Duration(cfg.Cache.IndexTTLSec) * time.Second,
		Logger:   logger,
	})

	// Use case services
	searchSvc := searchuc.New(indexRepo, store)
	recommendSvc := recommenduc.New(content, catalog, store)
	healthSvc := healthuc.New(content, catalog)

	// Pre-build the indexes and seed the result cache for common
	// queries so the first requests don't pay the upstream round trips
	if cfg.Cache.WarmOnStart {
		go func() {
			warmCtx := logpkg.ContextWithLogger(ctx, logger)
			indexRepo.Warm(warmCtx)
			searchSvc.WarmPopular(warmCtx)
		}()
	}

	server := chiTransport.NewServer(searchSvc, recommendSvc, indexRepo, healthSvc, logger)

	r := chi.NewRouter()
	r.Use(jsonRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(wideEventMiddleware(logger))
	r.Use(chiTransport.BearerAuthMiddleware(cfg.Auth.APIKeys))
	r.Use(chiTransport.NewRateLimiter(cfg.RateLimit.RequestsPerMinute).Middleware)
	r.Use(metrics.Middleware())
	server.RegisterRoutes(r)

	addr := fmt.Sprintf(":%d", cfg.HTTP.Port)
	srv := &http.Server{
		Addr:         addr,
		Handler:      r,
		ReadTimeout:  time.Duration(cfg.HTTP.ReadTimeoutSec) * time.Second,
		WriteTimeout: time.Duration(cfg.HTTP.WriteTimeoutSec) * time.Second,
	}

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	go func() {
		logger.Info("Starting HTTP server", zap.String("addr", addr))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("HTTP server error", zap.Error(err))
		}
	}()

	<-quit
	logger.Info("Received shutdown signal")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Duration(cfg.HTTP.ShutdownSec)*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("Error during shutdown", zap.Error(err))
	}

	logger.Info("Server stopped gracefully")
}

// jsonRecoverer is a recovery middleware that returns JSON instead of a plain text stacktrace.
func jsonRecoverer(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				if rvr := recover(); rvr != nil {
					logger.Error("panic recovered",
						zap.Any("panic", rvr),
						zap.Stack("stacktrace"),
					)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusInternalServerError)
					_ = json.NewEncoder(w).Encode(map[string]string{
						"code":    "internal_error",
						"message": "internal error",
					})
				}
			}()
			next.ServeHTTP(w, r)
		})
	}
}

// wideEventMiddleware emits a canonical log line per request and propagates X-Request-ID.
func wideEventMiddleware(logger *zap.Logger) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()

			// chi.middleware.RequestID already placed request_id in context
			requestID := chiMiddleware.GetReqID(r.Context())

			// Set X-Request-ID in response header
			if requestID != "" {
				w.Header().Set("X-Request-ID", requestID)
			}

			// Per-request logger with request_id
			reqLogger := logger.With(zap.String("request_id", requestID))
			ctx := logpkg.ContextWithLogger(r.Context(), reqLogger)

			ww := chiMiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r.WithContext(ctx))

			// Canonical log line — one line per request
			reqLogger.Info("http_request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("latency", time.Since(start)),
				zap.String("ip", r.RemoteAddr),
				zap.Int64("content_length", r.ContentLength),
				zap.String("user_agent", r.UserAgent()),
				zap.Int("response_bytes", ww.BytesWritten()),
			)
		})
	}
}
