package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/staybook/staybook-api/internal/config"
	"github.com/staybook/staybook-api/internal/domain/booking"
	"github.com/staybook/staybook-api/internal/domain/property"
	"github.com/staybook/staybook-api/internal/middleware"
	"github.com/staybook/staybook-api/internal/pkg/bookingapi"
	"github.com/staybook/staybook-api/internal/pkg/database"
	"github.com/staybook/staybook-api/internal/pkg/logger"
	"github.com/staybook/staybook-api/internal/pkg/metrics"
	"github.com/staybook/staybook-api/internal/pkg/propertyapi"
	"github.com/staybook/staybook-api/internal/pkg/realtime"
	pkgresponse "github.com/staybook/staybook-api/internal/pkg/response"
	"github.com/staybook/staybook-api/internal/pkg/telemetry"
)

const (
	userAgentBooking  = "Staybook/1.0 booking"
	userAgentProperty = "Staybook/1.0 property"
)

func main() {
	cfg := config.Load()
	if err := logger.Init(logger.Config{Level: cfg.LogLevel, Environment: cfg.Env}); err != nil {
		log.Fatal().Err(err).Msg("Failed to init logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Staybook API")

	rootCtx, stop := context.WithCancel(context.Background())
	defer stop()

	tracerProvider, err := telemetry.Init(rootCtx, telemetry.Config{
		ServiceName: "staybook-api",
		Environment: cfg.Env,
		Endpoint:    cfg.OTLPEndpoint,
		Insecure:    cfg.OTLPInsecure,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to init tracing")
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tracerProvider.Shutdown(ctx); err != nil {
			logger.LogError(ctx, err, "Failed to flush traces")
		}
	}()

	redisClient, err := database.NewRedis(rootCtx, cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	// ---------- WebSocket hub ----------
	hub := realtime.NewHub(redisClient)
	go hub.Run()
	defer hub.Shutdown()

	// ---------- Upstream clients ----------
	bookingClient := bookingapi.NewClient(cfg.BookingAPIBaseURL, cfg.BookingAPIToken, cfg.UpstreamTimeout(), userAgentBooking)
	propertyClient := propertyapi.NewClient(cfg.PropertyAPIBaseURL, cfg.PropertyAPIToken, cfg.UpstreamTimeout(), userAgentProperty)

	// ---------- Services ----------
	bookingService := booking.NewService(bookingClient, hub, booking.Config{
		NavigationDelay: cfg.ConfirmationDelay,
		IdleTTL:         cfg.FormIdleTTL,
	})
	go bookingService.Run(rootCtx)
	defer bookingService.Shutdown()

	propertyService := property.NewService(propertyClient)

	// ---------- Handlers ----------
	r := newRouter(cfg, routerDeps{
		booking:  booking.NewHandler(bookingService, hub, cfg.AllowedOrigins),
		property: property.NewHandler(propertyService),
		redis:    redisClient,
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")
	stop()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Error().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}

type routerDeps struct {
	booking  *booking.Handler
	property *property.Handler
	redis    *redis.Client
}

func newRouter(cfg *config.Config, deps routerDeps) chi.Router {
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Tracing)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))
	if cfg.MetricsEnabled {
		r.Use(metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", metrics.Handler())
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		status := "ok"
		if err := database.PingRedis(r.Context(), deps.redis); err != nil {
			log.Warn().Err(err).Msg("Redis health check failed")
			status = "degraded"
		}
		pkgresponse.OK(w, map[string]string{
			"status":  status,
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
			pkgresponse.OK(w, map[string]string{"message": "pong"})
		})

		// Forms keep the WebSocket route, so no timeout wrapper here
		r.Mount("/forms", deps.booking.Routes())

		r.Route("/properties", func(r chi.Router) {
			r.Use(middleware.Timeout(cfg.UpstreamTimeout() + 5*time.Second))
			r.Mount("/", deps.property.Routes())
		})
	})

	return r
}
