package middlewares

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"net/http"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
)

// RequestIDMiddleware stamps every request with a correlation ID, stored
// under common.RequestIDKey and echoed back as the x-request-id response
// header so a caller can match a response to the server's log lines.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("x-request-id")
		if id == "" {
			id = generateRequestID()
		}

		ctx := context.WithValue(r.Context(), common.RequestIDKey, id)
		w.Header().Set("x-request-id", id)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// generateRequestID produces a random 8-byte hex token, the same
// crypto/rand construction used for verification/reset tokens.
func generateRequestID() string {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "unavailable"
	}
	return hex.EncodeToString(b)
}
