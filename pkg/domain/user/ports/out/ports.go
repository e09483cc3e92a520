package out

import (
	"context"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/user/entities"
)

// UserRepository is the persistence contract for the users collection.
type UserRepository interface {
	Create(ctx context.Context, user *entities.User) error
	Update(ctx context.Context, user *entities.User) error
	GetByID(ctx context.Context, id common.ID) (*entities.User, error)
	GetByUsername(ctx context.Context, username string) (*entities.User, error)
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByIdentifier(ctx context.Context, identifier string) (*entities.User, error)
	GetByVerificationToken(ctx context.Context, token string) (*entities.User, error)
	GetByResetToken(ctx context.Context, token string) (*entities.User, error)
	SearchByUsernamePrefix(ctx context.Context, query string, limit int) ([]*entities.User, error)
	Delete(ctx context.Context, id common.ID) error
	ClearDefaultPool(ctx context.Context, poolID common.ID) error

	// CompareAndSwapFailedLogin atomically applies a login-attempt mutation
	// and returns the after-image, used to serialize concurrent login
	// attempts against the same account.
	CompareAndSwapFailedLogin(ctx context.Context, id common.ID, mutate func(u *entities.User, now time.Time)) (*entities.User, error)
}

// PasswordHasher is the one-way password hashing oracle (§4.A).
type PasswordHasher interface {
	Hash(ctx context.Context, password string) (string, error)
	Verify(ctx context.Context, password, hash string) bool
	DummyHash() string
}

// EmailSender delivers transactional account emails.
type EmailSender interface {
	SendVerificationEmail(ctx context.Context, to, token string) error
	SendPasswordResetEmail(ctx context.Context, to, token string) error
}
