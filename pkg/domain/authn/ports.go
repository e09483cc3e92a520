// Package authn implements the auth gate (§4.C): resolving a bearer
// credential to an authenticated principal and refreshing it when due.
package authn

import (
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/user/entities"
)

// Credential is the decoded form of a bearer access token.
type Credential struct {
	Subject   common.ID
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// CredentialCodec encodes and decodes the opaque bearer credential described
// in §4.A.
type CredentialCodec interface {
	Encode(subject common.ID, now time.Time) (string, Credential, error)
	Decode(token string) (Credential, error)
	RefreshInterval() time.Duration
}

// Principal is the authenticated caller attached to a request context.
type Principal struct {
	ID         common.ID
	Credential Credential
	User       *entities.User
}

// ResponseSink receives the response header carrying a refreshed credential,
// decoupling the gate from any particular HTTP library.
type ResponseSink interface {
	SetHeader(key, value string)
}
