package common

type ContextKey string

const (
	// AuthUserIDKey is a context key for the authenticated user's ID. Nothing
	// sets it: the auth gate stores its principal under authn's own key.
	AuthUserIDKey ContextKey = "auth_user_id"

	// RequestIDKey correlates a request across log lines.
	RequestIDKey ContextKey = "x-request-id"
)
