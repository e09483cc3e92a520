package crypto

import (
	"context"

	out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
	"golang.org/x/crypto/bcrypt"
)

// dummyPassword is hashed once at construction so login_user can run a
// real bcrypt comparison against nonexistent accounts, keeping failed-login
// timing indistinguishable from a wrong-password failure (§4.D).
const dummyPassword = "correct horse battery staple placeholder"

type BcryptPasswordHasherAdapter struct {
	cost      int
	dummyHash string
}

func NewBcryptPasswordHasherAdapter(cost int) out.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}

	dummyHash, err := bcrypt.GenerateFromPassword([]byte(dummyPassword), cost)
	if err != nil {
		panic(err)
	}

	return &BcryptPasswordHasherAdapter{cost: cost, dummyHash: string(dummyHash)}
}

func (b *BcryptPasswordHasherAdapter) Hash(ctx context.Context, password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), b.cost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func (b *BcryptPasswordHasherAdapter) Verify(ctx context.Context, password, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}

func (b *BcryptPasswordHasherAdapter) DummyHash() string {
	return b.dummyHash
}
