package middlewares

import (
	"errors"
	"log/slog"
	"net/http"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
)

// RecoveryMiddleware catches a panicking handler and renders it as a 500,
// instead of letting net/http's own recovery close the connection silently.
func RecoveryMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				requestID, _ := r.Context().Value(common.RequestIDKey).(string)
				slog.ErrorContext(r.Context(), "panic recovered",
					"panic", rec, "path", r.URL.Path, "request_id", requestID)
				_ = common.WriteErrorResponse(w, errors.New("internal error"))
			}
		}()
		next.ServeHTTP(w, r)
	})
}
