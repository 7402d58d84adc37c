package handler

import (
	"fmt"
	"net/http"

	"ezytutors/internal/service"

	"github.com/rs/zerolog"
)

// HealthHandler reports liveness and how often it has been asked.
type HealthHandler struct {
	courseService service.CourseService
	message       string
	errors        errorResponder
}

func NewHealthHandler(courseService service.CourseService, message string, logger zerolog.Logger) *HealthHandler {
	return &HealthHandler{
		courseService: courseService,
		message:       message,
		errors:        errorResponder{logger: logger},
	}
}

func (h *HealthHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("GET /health", h.healthCheck)
}

// healthCheck godoc
// @Summary Health check
// @Tags health
// @Produce json
// @Success 200 {string} string "I'm good. You've already asked me 1 times"
// @Router /health [get]
func (h *HealthHandler) healthCheck(w http.ResponseWriter, r *http.Request) {
	count, err := h.courseService.RecordVisit(r.Context())
	if err != nil {
		h.errors.write(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, fmt.Sprintf("%s %d times", h.message, count))
}
