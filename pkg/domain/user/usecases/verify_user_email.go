package usecases

import (
	"context"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// VerifyUserEmail is the usecase for §4.D verify_user_email. Idempotent: a
// second call with the same token succeeds as a no-op. The verification
// token is intentionally retained after a successful verification (rather
// than cleared) so that a retried request with the same token still
// resolves to the same user; EmailVerified gates the mutation either way.
type VerifyUserEmail struct {
	Users out.UserRepository
}

func (uc *VerifyUserEmail) Exec(ctx context.Context, token string) error {
	user, err := uc.Users.GetByVerificationToken(ctx, token)
	if err != nil || user == nil {
		if err == nil {
			return common.NewErrInvalidInput("invalid verification token")
		}
		return err
	}

	if user.EmailVerified {
		return nil
	}

	user.EmailVerified = true
	user.Touch()

	return uc.Users.Update(ctx, user)
}
