package middlewares

import (
	"net/http"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/authn"
)

// httpResponseSink adapts http.ResponseWriter to authn.ResponseSink so the
// gate can set x-new-token without depending on net/http directly.
type httpResponseSink struct{ w http.ResponseWriter }

func (s httpResponseSink) SetHeader(key, value string) { s.w.Header().Set(key, value) }

// AuthMiddleware resolves the bearer credential via authn.Gate and attaches
// the authenticated Principal to the request context.
type AuthMiddleware struct {
	gate *authn.Gate
}

func NewAuthMiddleware(gate *authn.Gate) *AuthMiddleware {
	return &AuthMiddleware{gate: gate}
}

// RequireAuth rejects requests without a valid bearer credential; on success
// it stores the Principal in context for downstream controllers.
func (m *AuthMiddleware) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		principal, err := m.gate.Authenticate(r.Context(), r.Header.Get("Authorization"), httpResponseSink{w})
		if err != nil {
			_ = common.WriteErrorResponse(w, err)
			return
		}

		next(w, r.WithContext(authn.WithPrincipal(r.Context(), principal)))
	}
}
