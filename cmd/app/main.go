package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"ezytutors/internal/api/v1/router"
	"ezytutors/internal/config"
	"ezytutors/internal/logger"
	"ezytutors/internal/pubsub"
	"ezytutors/internal/repository"
	"ezytutors/internal/service"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
)

// @title EzyTutors Course Registry API
// @version 1.0
// @description Tracks the courses offered by tutors
// @host localhost:3000
// @BasePath /
// @Schemes http

func main() {
	logger := logger.New()

	// 1. Load configuration
	if err := godotenv.Load(); err != nil {
		logger.Warn().Msg("Warning: no .env file found")
	}

	cfg, err := config.Load()
	if err != nil {
		logger.Fatal().Msgf("Error loading config: %v", err)
	}

	// 2. Course store: Postgres when DATABASE_URL is set, memory otherwise
	repo, closeRepo, err := newCourseRepository(cfg, logger)
	if err != nil {
		logger.Fatal().Msgf("Failed to initialize course store: %v", err)
	}
	defer closeRepo()

	// 3. Optional course event publisher
	var publisher pubsub.Publisher
	if cfg.PublishesEvents() {
		pub, err := pubsub.NewPublisher(context.Background(), cfg.GCPProjectID, cfg.PubSubEndpoint)
		if err != nil {
			logger.Fatal().Msgf("Failed to create Pub/Sub publisher: %v", err)
		}
		defer pub.Close()
		publisher = pub
		logger.Info().Str("topic", cfg.PubSubCourseTopic).Msg("Course events enabled")
	}

	// 4. Build router
	courseSvc := service.NewCourseService(repo, publisher, cfg.PubSubCourseTopic, logger)
	r := router.New(cfg, courseSvc, logger)

	// 5. Create HTTP server
	srv := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      r,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info().Msgf("Server starting on %s", cfg.ServerAddr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal().Msgf("Listen: %s", err)
		}
	}()

	// 6. Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info().Msg("Shutdown signal received, exiting...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error().Msgf("Server forced to shutdown: %v", err)
		return
	}
	logger.Info().Msg("Server shut down gracefully")
}

func newCourseRepository(cfg *config.Config, logger zerolog.Logger) (repository.CourseRepository, func(), error) {
	if !cfg.UsesDatabase() {
		logger.Info().Msg("DATABASE_URL not set, keeping courses in memory")
		return repository.NewMemoryCourseRepository(), func() {}, nil
	}

	db, err := repository.OpenPostgres(context.Background(), cfg.DatabaseURL, cfg.IsDevelopment(), repository.PoolConfig{
		MaxOpenConns:    cfg.DBMaxOpenConns,
		MaxIdleConns:    cfg.DBMaxIdleConns,
		ConnMaxIdleTime: cfg.DBConnMaxIdleTime,
	})
	if err != nil {
		return nil, nil, err
	}
	logger.Info().Msg("Database connection successful")

	closeDB := func() {
		if err := db.Close(); err != nil {
			logger.Error().Err(err).Msg("Failed to close database")
		}
	}
	return repository.NewPostgresCourseRepository(db, logger), closeDB, nil
}
