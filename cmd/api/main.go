package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"cityinfo-api/internal/api"
	"cityinfo-api/internal/config"
	"cityinfo-api/internal/logger"
	"cityinfo-api/internal/middleware"
	"cityinfo-api/internal/migrations"
	"cityinfo-api/internal/repository"
	"cityinfo-api/internal/services"

	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
)

func main() {
	cfg := config.Load()

	if err := logger.Setup(cfg.LogLevel, cfg.LogFile); err != nil {
		logger.Logger.Fatal("Failed to configure logger: ", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize repositories
	cityRepo := repository.NewCityRepository(migrations.SeedCities())

	// Initialize cache
	cache := initCache(ctx, cfg.Cache)
	_, cacheEnabled := cache.(*services.RedisCacheService)

	// Initialize services
	cityService := services.NewCityService(cityRepo, cache, cfg.Cache.DefaultTTL)
	pointOfInterestService := services.NewPointOfInterestService(cityRepo, cache, cfg.Cache.DefaultTTL)
	uptimeService := services.NewUptimeService()
	go uptimeService.MonitorAnomalies(ctx, time.Minute)

	// Initialize router
	router := api.SetupRoutes(api.Dependencies{
		CityService:            cityService,
		PointOfInterestService: pointOfInterestService,
		UptimeService:          uptimeService,
		Cache:                  cache,
		CacheEnabled:           cacheEnabled,
		RateLimiter:            middleware.NewRateLimiter(cfg.RateLimit),
	})

	corsMiddleware := cors.New(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			middleware.RequestIDHeader,
		},
		ExposedHeaders: []string{
			"Location",
			middleware.RequestIDHeader,
		},
		MaxAge: 300, // Maximum value not ignored by any of major browsers
	})

	// Create server with timeouts
	srv := &http.Server{
		Handler:      corsMiddleware.Handler(router),
		Addr:         ":" + cfg.Port,
		WriteTimeout: cfg.WriteTimeout,
		ReadTimeout:  cfg.ReadTimeout,
	}

	go func() {
		logger.Logger.Infof("Server starting on port %s...", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Logger.Fatal("Server failed: ", err)
		}
	}()

	<-ctx.Done()
	logger.Logger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Logger.WithError(err).Error("Graceful shutdown failed")
	}
	if redisCache, ok := cache.(*services.RedisCacheService); ok {
		redisCache.Close()
	}
}

// initCache connects to Redis when caching is enabled and clears entries left
// by a previous process, since the dataset is reseeded on every start. Any
// failure falls back to running without a cache.
func initCache(ctx context.Context, cfg *config.CacheConfig) services.CacheService {
	if !cfg.Enabled {
		return services.NoopCacheService{}
	}

	cache, err := services.NewRedisCacheService(cfg)
	if err != nil {
		logger.Logger.WithError(err).Warn("Redis unavailable, continuing without cache")
		return services.NoopCacheService{}
	}

	if err := cache.DeleteByPattern(ctx, "cities*"); err != nil {
		logger.Logger.WithError(err).Warn("Failed to clear stale cache entries")
	}

	logger.LogEvent(logrus.InfoLevel, "Cache connected", logrus.Fields{
		"addr": cfg.Addr(),
		"ttl":  cfg.DefaultTTL.String(),
	})
	return cache
}
