package usecases

import (
	"context"
	"strings"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/authn"
	"github.com/survivor-pool/survivor-pool/pkg/domain/user/entities"
	out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// LoginUserCommand is the input to LoginUser (§4.D login_user).
type LoginUserCommand struct {
	Identifier string
	Password   string
}

// LoginResult carries the minted credential and the authenticated user.
type LoginResult struct {
	User  *entities.User
	Token string
}

// LoginUser is the usecase for §4.D login_user. It always runs the hash
// comparison, using the dummy hash for unknown identifiers, so that
// unknown-user and wrong-password failures take equal time.
type LoginUser struct {
	Users  out.UserRepository
	Hasher out.PasswordHasher
	Codec  authn.CredentialCodec
}

func (uc *LoginUser) Exec(ctx context.Context, cmd LoginUserCommand) (*LoginResult, error) {
	identifier := strings.TrimSpace(cmd.Identifier)

	user, _ := uc.Users.GetByIdentifier(ctx, identifier)

	hashToVerify := uc.Hasher.DummyHash()
	if user != nil {
		hashToVerify = user.PasswordHash
	}
	passwordOK := uc.Hasher.Verify(ctx, cmd.Password, hashToVerify)

	if user == nil {
		return nil, common.NewErrUnauthorized("invalid credentials")
	}

	now := time.Now().UTC()
	updated, err := uc.Users.CompareAndSwapFailedLogin(ctx, user.ID, func(u *entities.User, now time.Time) {
		u.ResetLockoutIfExpired(now)
		if u.IsLocked(now) {
			return
		}
		if passwordOK {
			u.RegisterSuccessfulLogin()
		} else {
			u.RegisterFailedLogin(now)
		}
	})
	if err != nil {
		return nil, err
	}

	if updated.IsLocked(now) {
		return nil, common.NewErrRateLimited("account locked, try again later")
	}
	if !passwordOK {
		return nil, common.NewErrUnauthorized("invalid credentials")
	}

	token, _, err := uc.Codec.Encode(updated.ID, now)
	if err != nil {
		return nil, err
	}

	return &LoginResult{User: updated, Token: token}, nil
}
