package middlewares

import (
	"net/http"
	"regexp"
)

// CORSMiddleware enforces the configured allow-origin policy. A request's
// Origin header is allowed only if it matches allowOriginRegex; allowed
// methods and headers are both wildcard per §6.
type CORSMiddleware struct {
	allowOrigin *regexp.Regexp
}

// NewCORSMiddleware compiles allowOriginRegex once at startup. A pattern
// that fails to compile matches nothing, so misconfiguration fails closed.
func NewCORSMiddleware(allowOriginRegex string) *CORSMiddleware {
	re, err := regexp.Compile(allowOriginRegex)
	if err != nil {
		re = regexp.MustCompile(`$^`)
	}
	return &CORSMiddleware{allowOrigin: re}
}

// Handler adds CORS headers and short-circuits preflight OPTIONS requests.
func (m *CORSMiddleware) Handler(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		origin := r.Header.Get("Origin")
		if origin != "" && m.allowOrigin.MatchString(origin) {
			w.Header().Set("Access-Control-Allow-Origin", origin)
			w.Header().Set("Access-Control-Allow-Credentials", "true")
			w.Header().Set("Vary", "Origin")
		}
		w.Header().Set("Access-Control-Allow-Methods", "*")
		w.Header().Set("Access-Control-Allow-Headers", "*")
		w.Header().Set("Access-Control-Expose-Headers", "x-new-token, x-request-id")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
