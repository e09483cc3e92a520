package controllers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/authn"
)

// DecodeBody decodes the request's JSON body into dest.
func DecodeBody(r *http.Request, dest interface{}) error {
	defer r.Body.Close()
	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return common.NewErrBadRequest("malformed request body")
	}
	return nil
}

// PathID parses a common.ID path variable, e.g. {pool_id}.
func PathID(r *http.Request, name string) (common.ID, error) {
	raw, ok := mux.Vars(r)[name]
	if !ok || raw == "" {
		return common.ID{}, common.NewErrBadRequest(name + " is required")
	}
	id, err := common.IDFromHex(raw)
	if err != nil {
		return common.ID{}, common.NewErrBadRequest("invalid " + name)
	}
	return id, nil
}

// QueryID parses a common.ID query parameter. ok is false when absent.
func QueryID(r *http.Request, name string) (id common.ID, ok bool, err error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return common.ID{}, false, nil
	}
	id, err = common.IDFromHex(raw)
	if err != nil {
		return common.ID{}, false, common.NewErrBadRequest("invalid " + name)
	}
	return id, true, nil
}

// RequirePrincipal retrieves the authenticated caller stashed by
// AuthMiddleware. Every call site is behind RequireAuth, so a nil principal
// indicates a wiring bug rather than a client error.
func RequirePrincipal(r *http.Request) *authn.Principal {
	p := authn.PrincipalFromContext(r.Context())
	if p == nil {
		panic("controller reached without an authenticated principal")
	}
	return p
}

// RequireSameUser enforces the "same-user" access rule from §6: the caller
// must be the resource's own subject.
func RequireSameUser(principal *authn.Principal, subject common.ID) error {
	if principal.ID != subject {
		return common.NewErrForbidden("same-user required")
	}
	return nil
}

// pathVar reads a raw (non-ID) path variable, e.g. the verification token.
func pathVar(r *http.Request, name string) string {
	return mux.Vars(r)[name]
}

// queryInt parses an integer query parameter, falling back to def when
// absent or malformed.
func queryInt(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return v
}
