package crypto

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/authn"
)

// JWTCredentialCodec implements authn.CredentialCodec with HS256 bearer
// tokens, signed with the configured secret.
type JWTCredentialCodec struct {
	secret          []byte
	tokenTTL        time.Duration
	refreshInterval time.Duration
}

func NewJWTCredentialCodec(secret string, tokenTTL, refreshInterval time.Duration) *JWTCredentialCodec {
	return &JWTCredentialCodec{
		secret:          []byte(secret),
		tokenTTL:        tokenTTL,
		refreshInterval: refreshInterval,
	}
}

func (c *JWTCredentialCodec) Encode(subject common.ID, now time.Time) (string, authn.Credential, error) {
	issuedAt := now
	expiresAt := now.Add(c.tokenTTL)

	claims := jwt.RegisteredClaims{
		Subject:   subject.Hex(),
		IssuedAt:  jwt.NewNumericDate(issuedAt),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", authn.Credential{}, err
	}

	return signed, authn.Credential{Subject: subject, IssuedAt: issuedAt, ExpiresAt: expiresAt}, nil
}

func (c *JWTCredentialCodec) Decode(tokenString string) (authn.Credential, error) {
	var claims jwt.RegisteredClaims

	token, err := jwt.ParseWithClaims(tokenString, &claims, func(t *jwt.Token) (interface{}, error) {
		if t.Method != jwt.SigningMethodHS256 {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil {
		return authn.Credential{}, err
	}
	if !token.Valid {
		return authn.Credential{}, fmt.Errorf("invalid token")
	}

	subject, err := common.IDFromHex(claims.Subject)
	if err != nil {
		return authn.Credential{}, fmt.Errorf("invalid subject claim: %w", err)
	}

	return authn.Credential{
		Subject:   subject,
		IssuedAt:  claims.IssuedAt.Time,
		ExpiresAt: claims.ExpiresAt.Time,
	}, nil
}

func (c *JWTCredentialCodec) RefreshInterval() time.Duration {
	return c.refreshInterval
}
