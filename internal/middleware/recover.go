package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// InternalErrorMessage is the body written when a handler panics.
const InternalErrorMessage = "Internal server error"

// RecoverMiddleware turns a handler panic into a 500 response so that only
// the failing request is lost.
func RecoverMiddleware(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				logger.Error().
					Str("request_id", RequestIDFromContext(r.Context())).
					Interface("panic", rec).
					Msgf("Recovered panic in %s %s", r.Method, r.URL.Path)

				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				json.NewEncoder(w).Encode(InternalErrorMessage)
			}()
			next.ServeHTTP(w, r)
		})
	}
}
