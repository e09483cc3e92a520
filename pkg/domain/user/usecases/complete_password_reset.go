package usecases

import (
	"context"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// CompletePasswordResetCommand is the input to CompletePasswordReset (§4.D
// complete_password_reset).
type CompletePasswordResetCommand struct {
	Token           string
	NewPassword     string
	ConfirmPassword string
}

// CompletePasswordReset is the usecase for §4.D complete_password_reset.
type CompletePasswordReset struct {
	Users  out.UserRepository
	Hasher out.PasswordHasher
}

func (uc *CompletePasswordReset) Exec(ctx context.Context, cmd CompletePasswordResetCommand) error {
	if cmd.NewPassword != cmd.ConfirmPassword {
		return common.NewErrInvalidInput("new and confirm passwords must match")
	}
	if len(cmd.NewPassword) < 6 {
		return common.NewErrInvalidInput("new password must be at least 6 characters")
	}

	user, err := uc.Users.GetByResetToken(ctx, cmd.Token)
	if err != nil || user == nil {
		return common.NewErrInvalidInput("invalid or expired reset token")
	}

	now := time.Now().UTC()
	if user.ResetTokenExpiresAt == nil || user.ResetTokenExpiresAt.Before(now) {
		return common.NewErrInvalidInput("invalid or expired reset token")
	}

	hash, err := uc.Hasher.Hash(ctx, cmd.NewPassword)
	if err != nil {
		return err
	}

	user.PasswordHash = hash
	user.ResetToken = nil
	user.ResetTokenExpiresAt = nil
	user.TokenInvalidatedAt = &now
	user.Touch()

	return uc.Users.Update(ctx, user)
}
