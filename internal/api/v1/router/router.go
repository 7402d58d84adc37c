package router

import (
	"net/http"

	"ezytutors/internal/api/v1/handler"
	"ezytutors/internal/config"
	"ezytutors/internal/middleware"
	"ezytutors/internal/service"

	"github.com/rs/cors"
	"github.com/rs/zerolog"
)

// New builds the fixed route table on top of courseSvc and wraps it in the
// request id, logging, recovery and CORS middleware.
func New(cfg *config.Config, courseSvc service.CourseService, logger zerolog.Logger) http.Handler {
	validate := handler.NewValidator()

	healthHandler := handler.NewHealthHandler(courseSvc, cfg.HealthCheckResponse, logger)
	courseHandler := handler.NewCourseHandler(courseSvc, validate, cfg.StrictStatusCodes, logger)

	mux := http.NewServeMux()
	healthHandler.RegisterRoutes(mux)
	courseHandler.RegisterRoutes(mux)

	c := cors.New(cors.Options{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{middleware.RequestIDHeader},
	})

	logger.Info().Bool("strict_status_codes", cfg.StrictStatusCodes).Msg("Router initialized")

	return middleware.RequestIDMiddleware(
		middleware.LoggerMiddleware(logger)(
			middleware.RecoverMiddleware(logger)(
				c.Handler(mux),
			),
		),
	)
}
