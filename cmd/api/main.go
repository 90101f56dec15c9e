package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/tripfolio/backend/internal/adapters/database"
	"github.com/tripfolio/backend/internal/adapters/events"
	"github.com/tripfolio/backend/internal/adapters/providers/geolocation"
	"github.com/tripfolio/backend/internal/adapters/providers/passwords"
	"github.com/tripfolio/backend/internal/api/handlers"
	"github.com/tripfolio/backend/internal/api/routes"
	"github.com/tripfolio/backend/internal/application/services"
	"github.com/tripfolio/backend/internal/domain/providers"
	"github.com/tripfolio/backend/internal/infrastructure/clients/postgres"
	"github.com/tripfolio/backend/internal/infrastructure/clients/redis"
	"github.com/tripfolio/backend/internal/infrastructure/observability"
	"github.com/tripfolio/backend/pkg/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	observability.InitLogger(cfg.OTEL.ServiceName, cfg.Server.Env)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// OpenTelemetry export is optional; the service runs without it
	if cfg.OTEL.Enabled && cfg.OTEL.Endpoint != "" {
		shutdown, err := observability.Setup(ctx, cfg.OTEL.ServiceName, cfg.OTEL.ServiceVersion, cfg.OTEL.Endpoint)
		if err != nil {
			log.Warn().Err(err).Msg("failed to set up OpenTelemetry")
		} else {
			defer func() {
				ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := shutdown(ctx); err != nil {
					log.Error().Err(err).Msg("error shutting down OpenTelemetry")
				}
			}()
			log.Info().Msg("OpenTelemetry initialized")
		}
	}

	metrics, err := observability.InitMetrics()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize metrics")
	}

	pgClient, err := postgres.NewClient(&cfg.Database)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize PostgreSQL client")
	}
	defer pgClient.Close()

	// Redis is optional; without it the catalog event bus is disabled
	var eventBus providers.EventBus
	redisClient, err := redis.NewClient(&cfg.Redis)
	if err != nil {
		log.Warn().Err(err).Msg("Redis unavailable, event bus disabled")
	} else {
		defer redisClient.Close()
		eventBus = events.NewRedisEventBus(redisClient)
		log.Info().Msg("Redis event bus initialized")
	}

	// Adapters
	userAdapter := database.NewUserAdapter(pgClient)
	itineraryAdapter := database.NewItineraryAdapter(pgClient)
	placeAdapter := database.NewPlaceAdapter(pgClient)
	tagAdapter := database.NewTagAdapter(pgClient)

	var geolocationProvider providers.GeolocationProvider
	switch cfg.Geolocation.Provider {
	case "google":
		if cfg.Geolocation.APIKey == "" {
			log.Warn().Msg("GEOLOCATION_API_KEY is not set, using mock geolocation provider")
			geolocationProvider = geolocation.NewMockGeolocationProvider()
		} else {
			geolocationProvider = geolocation.NewGoogleGeolocationProvider(cfg.Geolocation.APIKey)
		}
	default:
		geolocationProvider = geolocation.NewMockGeolocationProvider()
	}

	hasher := passwords.NewBcryptHasher(cfg.Auth.BcryptCost)

	// Services
	userService := services.NewUserService(userAdapter, hasher, eventBus)
	itineraryService := services.NewItineraryService(itineraryAdapter, placeAdapter, geolocationProvider, eventBus, metrics)
	tagService := services.NewTagService(tagAdapter)

	// Handlers
	authHandler := handlers.NewAuthHandler(userService)
	userHandler := handlers.NewUserHandler(userService)
	itineraryHandler := handlers.NewItineraryHandler(itineraryService, userService)
	tagHandler := handlers.NewTagHandler(tagService)

	router := routes.NewRouter(authHandler, userHandler, itineraryHandler, tagHandler, metrics)
	handler := router.SetupRoutes()

	serverAddr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	server := &http.Server{
		Addr:         serverAddr,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", serverAddr).Msg("server starting")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server failed to start")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("server shutting down")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("error during server shutdown")
	}

	if eventBus != nil {
		if err := eventBus.Close(); err != nil {
			log.Error().Err(err).Msg("error closing event bus")
		}
	}

	log.Info().Msg("server stopped")
}
