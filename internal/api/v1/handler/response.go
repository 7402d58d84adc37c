package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"ezytutors/internal/repository"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

// Response bodies for each error kind. Every body is a JSON string.
const (
	msgValidationFailed = "Validation failed: "
	msgCourseNotFound   = "Course not found"
	msgConcurrencyFault = "Concurrency fault"
	msgStoreFailure     = "Failed to access course registry"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// errorResponder maps store errors onto responses. With strict unset,
// validation and not-found failures keep status 200 and carry only the
// string body.
type errorResponder struct {
	strict bool
	logger zerolog.Logger
}

func (e errorResponder) write(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *repository.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeJSON(w, e.status(http.StatusBadRequest), msgValidationFailed+vErr.Error())
	case errors.Is(err, repository.ErrCourseNotFound):
		writeJSON(w, e.status(http.StatusNotFound), msgCourseNotFound)
	case errors.Is(err, repository.ErrConcurrencyFault):
		e.logger.Error().Err(err).Msgf("Concurrency fault in %s %s", r.Method, r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, msgConcurrencyFault)
	default:
		e.logger.Error().Err(err).Msgf("Store failure in %s %s", r.Method, r.URL.Path)
		writeJSON(w, http.StatusInternalServerError, msgStoreFailure)
	}
}

func (e errorResponder) status(strictStatus int) int {
	if e.strict {
		return strictStatus
	}
	return http.StatusOK
}

// toValidationError converts decoder and validator failures into a
// *repository.ValidationError naming the first offending field.
func toValidationError(err error, field string) *repository.ValidationError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		fe := fieldErrs[0]
		return &repository.ValidationError{Field: fe.Field(), Reason: reasonFor(fe)}
	}
	return &repository.ValidationError{Field: field, Reason: err.Error()}
}

func reasonFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	default:
		return "failed " + fe.Tag() + " check"
	}
}
