package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/noah-isme/gema-css-lab/internal/catalog"
	"github.com/noah-isme/gema-css-lab/internal/config"
	"github.com/noah-isme/gema-css-lab/internal/database"
	"github.com/noah-isme/gema-css-lab/internal/handler"
	"github.com/noah-isme/gema-css-lab/internal/middleware"
	"github.com/noah-isme/gema-css-lab/internal/preview"
	"github.com/noah-isme/gema-css-lab/internal/repository"
	"github.com/noah-isme/gema-css-lab/internal/router"
	"github.com/noah-isme/gema-css-lab/internal/service"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil {
		level = zerolog.InfoLevel
	}
	logger := zerolog.New(os.Stdout).Level(level).With().Timestamp().Str("service", cfg.AppName).Logger()

	db, err := database.Connect(cfg.DatabaseDriver, cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := database.Migrate(db); err != nil {
		log.Fatalf("failed to migrate database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("failed to access database handle: %v", err)
	}
	probes := map[string]handler.HealthProbe{
		"database": sqlDB.PingContext,
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		redisClient, err = database.ConnectRedis(cfg.RedisURL)
		if err != nil {
			log.Fatalf("failed to connect to redis: %v", err)
		}
		defer redisClient.Close()
		probes["redis"] = func(ctx context.Context) error { return redisClient.Ping(ctx).Err() }
	} else {
		logger.Warn().Msg("redis disabled, progress caching and assistant preferences are unavailable")
	}

	var publisher service.EventPublisher
	if cfg.NATSURL != "" {
		conn, err := database.ConnectNATS(cfg.NATSURL, cfg.AppName, logger)
		if err != nil {
			log.Fatalf("failed to connect to nats: %v", err)
		}
		defer conn.Drain()
		publisher = conn
		probes["nats"] = func(context.Context) error {
			if !conn.IsConnected() {
				return fmt.Errorf("nats %s", conn.Status())
			}
			return nil
		}
	}

	exercises, err := catalog.Load()
	if err != nil {
		log.Fatalf("failed to load exercise catalog: %v", err)
	}

	validate := validator.New(validator.WithRequiredStructEnabled())
	previews := preview.NewBuilder()

	progressRepo := repository.NewProgressRepository(db)

	progressService := service.NewProgressService(progressRepo, exercises, redisClient, cfg.ProgressCacheTTL, logger)
	exerciseService := service.NewExerciseService(exercises, progressService, previews, publisher, service.ExerciseServiceConfig{
		StrictProbes: cfg.StrictProbes,
		Subject:      cfg.NATSSubject,
	}, logger)
	styleService := service.NewStyleService(validate, logger)
	playgroundService := service.NewPlaygroundService(previews, logger)
	preferenceService := service.NewPreferenceService(redisClient, validate, logger)
	assistantService := service.NewAssistantService(preferenceService, service.NewOpenAIGeneratorFactory(logger), service.AssistantConfig{
		Provider: cfg.AIProvider,
		APIKey:   cfg.AIAPIKey,
		Model:    cfg.AIModel,
	}, validate, logger)

	exerciseHandler := handler.NewExerciseHandler(exerciseService, logger)
	styleHandler := handler.NewStyleHandler(styleService, logger)
	playgroundHandler := handler.NewPlaygroundHandler(playgroundService, logger)
	progressHandler := handler.NewProgressHandler(progressService, logger)
	assistantHandler := handler.NewAssistantHandler(assistantService, preferenceService, logger)

	app := fiber.New(fiber.Config{
		AppName:      cfg.AppName,
		ServerHeader: cfg.AppName,
	})

	middleware.Register(app, middleware.Config{
		Logger:       &logger,
		AllowOrigins: cfg.CORSAllowOrigins,
		AccessLog:    cfg.AppEnv == "development",
	})
	router.Register(app, cfg, router.Dependencies{
		ExerciseHandler:    exerciseHandler,
		StyleHandler:       styleHandler,
		PlaygroundHandler:  playgroundHandler,
		ProgressHandler:    progressHandler,
		AssistantHandler:   assistantHandler,
		ExerciseCount:      exercises.Len(),
		HealthProbes:       probes,
		JWTMiddleware:      middleware.JWTProtected(cfg.JWTSecret),
		OptionalJWT:        middleware.JWTOptional(cfg.JWTSecret),
		AssistantRateLimit: middleware.RateLimit("assistant", cfg.AssistantRateLimit, cfg.AssistantRateWindow),
	})

	go func() {
		if err := app.Listen(cfg.HTTPAddress()); err != nil {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	logger.Info().Str("address", cfg.HTTPAddress()).Int("exercises", exercises.Len()).Msg("server started")
	waitForShutdown(app)
}

func waitForShutdown(app *fiber.App) {
	shutdownCtx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	<-shutdownCtx.Done()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(ctx); err != nil {
		log.Printf("graceful shutdown failed: %v", err)
	}

	log.Println("server stopped")
}
