package authn

import (
	"context"
	"log/slog"
	"strings"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	user_out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// Gate resolves bearer credentials to authenticated principals.
type Gate struct {
	codec CredentialCodec
	users user_out.UserRepository
}

func NewGate(codec CredentialCodec, users user_out.UserRepository) *Gate {
	return &Gate{codec: codec, users: users}
}

// Authenticate implements §4.C steps 1-5.
func (g *Gate) Authenticate(ctx context.Context, authorizationHeader string, sink ResponseSink) (*Principal, error) {
	token, ok := extractBearer(authorizationHeader)
	if !ok {
		return nil, common.NewErrUnauthorized("missing or malformed authorization header")
	}

	cred, err := g.codec.Decode(token)
	if err != nil {
		return nil, common.NewErrUnauthorized("invalid credential")
	}

	u, err := g.users.GetByID(ctx, cred.Subject)
	if err != nil || u == nil {
		return nil, common.NewErrUnauthorized("invalid credential")
	}
	if string(u.AccountStatus) != "active" {
		return nil, common.NewErrForbidden("account is not active")
	}

	if u.TokenInvalidatedAt != nil && !cred.IssuedAt.After(*u.TokenInvalidatedAt) {
		return nil, common.NewErrUnauthorized("credential has been invalidated")
	}

	now := time.Now().UTC()
	if now.Sub(cred.IssuedAt) >= g.codec.RefreshInterval() {
		newToken, newCred, err := g.codec.Encode(u.ID, now)
		if err != nil {
			slog.ErrorContext(ctx, "failed to mint refreshed credential", "error", err)
		} else {
			sink.SetHeader("x-new-token", newToken)
			cred = newCred
		}
	}

	return &Principal{ID: u.ID, Credential: cred, User: u}, nil
}

func extractBearer(header string) (string, bool) {
	const prefix = "Bearer "
	if !strings.HasPrefix(header, prefix) {
		return "", false
	}
	token := strings.TrimSpace(strings.TrimPrefix(header, prefix))
	if token == "" {
		return "", false
	}
	return token, true
}
