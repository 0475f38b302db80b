package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"go.opentelemetry.io/contrib/instrumentation/runtime"

	"github.com/zatekoja/hospitalsite/internal/adapters/cache"
	"github.com/zatekoja/hospitalsite/internal/adapters/catalog"
	"github.com/zatekoja/hospitalsite/internal/api/handlers"
	"github.com/zatekoja/hospitalsite/internal/api/middleware"
	"github.com/zatekoja/hospitalsite/internal/api/routes"
	"github.com/zatekoja/hospitalsite/internal/application/services"
	"github.com/zatekoja/hospitalsite/internal/domain/providers"
	"github.com/zatekoja/hospitalsite/internal/infrastructure/clients/redis"
	"github.com/zatekoja/hospitalsite/internal/infrastructure/observability"
	"github.com/zatekoja/hospitalsite/internal/web"
	"github.com/zatekoja/hospitalsite/pkg/config"
)

func main() {
	started := time.Now()

	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("Failed to read .env file")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Initialize OpenTelemetry if enabled
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("Failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("Error shutting down OpenTelemetry")
				}
			}()
			if err := runtime.Start(runtime.WithMinimumReadMemStatsInterval(15 * time.Second)); err != nil {
				log.Warn().Err(err).Msg("Failed to start runtime metrics")
			}
			log.Info().Str("endpoint", cfg.OTEL.Endpoint).Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize metrics")
	}

	hospital, err := catalog.Load(cfg.Catalog.File)
	if err != nil {
		log.Fatal().Err(err).Str("file", cfg.Catalog.File).Msg("Failed to load catalog")
	}

	var cacheProvider providers.CacheProvider
	if cfg.Redis.Enabled {
		redisClient, err := redis.NewClient(ctx, &cfg.Redis)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, response cache disabled")
		} else {
			defer redisClient.Close()
			cacheProvider = cache.NewRedisAdapter(redisClient.Client())
			log.Info().Str("addr", cfg.Redis.RedisAddr()).Msg("Response cache enabled")
		}
	}

	renderer, err := web.NewRenderer(cfg.Server.PublicDir)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to parse page templates")
	}

	directoryService := services.NewDirectoryService(hospital)
	appointmentService := services.NewAppointmentService(metrics)

	var cacheMiddleware *middleware.CacheMiddleware
	if cacheProvider != nil {
		cacheMiddleware = middleware.NewCacheMiddleware(cacheProvider, metrics, middleware.DefaultCacheRoutes)
	}

	router := routes.NewRouter(
		handlers.NewHealthHandler(started),
		handlers.NewDirectoryHandler(directoryService),
		handlers.NewAppointmentHandler(appointmentService),
		handlers.NewPageHandler(directoryService, appointmentService, renderer),
		handlers.NewStaticHandler(cfg.Server.PublicDir),
		cacheMiddleware,
		metrics,
		routes.Options{
			AccessLog:      !cfg.Server.IsTest(),
			AllowedOrigins: cfg.CORS.AllowedOrigins,
			BodyLimit:      cfg.Server.BodyLimit,
			SubmitRequests: cfg.RateLimit.Requests,
			SubmitWindow:   cfg.RateLimit.Window,
			TrustProxyHops: cfg.Server.TrustProxyHops,
		},
	)

	server := &http.Server{
		Handler:           router.SetupRoutes(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	target := cfg.Server.Port
	ln, err := listen(target, cfg.Server.Host)
	if err != nil {
		exitOnListenError(target, err)
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("bind", target.Bind()).Msgf("Hospital web server listening at %s", target)
		serveErr <- server.Serve(ln)
	}()

	select {
	case err := <-serveErr:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("Server stopped unexpectedly")
		}
		return
	case <-ctx.Done():
	}

	log.Info().Msg("Server shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}
	log.Info().Msg("Server stopped")
}
