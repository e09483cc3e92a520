package usecases

import (
	"context"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// UpdatePasswordCommand is the input to UpdatePassword (§4.D update_password).
type UpdatePasswordCommand struct {
	UserID          common.ID
	CurrentPassword string
	NewPassword     string
	ConfirmPassword string
}

// UpdatePassword is the usecase for §4.D update_password.
type UpdatePassword struct {
	Users  out.UserRepository
	Hasher out.PasswordHasher
}

func (uc *UpdatePassword) Exec(ctx context.Context, cmd UpdatePasswordCommand) error {
	if cmd.NewPassword != cmd.ConfirmPassword {
		return common.NewErrInvalidInput("new and confirm passwords must match")
	}
	if len(cmd.NewPassword) < 6 {
		return common.NewErrInvalidInput("new password must be at least 6 characters")
	}

	user, err := uc.Users.GetByID(ctx, cmd.UserID)
	if err != nil || user == nil {
		return common.NewErrNotFound(common.UserResourceType, "id", cmd.UserID.Hex())
	}

	if !uc.Hasher.Verify(ctx, cmd.CurrentPassword, user.PasswordHash) {
		return common.NewErrUnauthorized("current password is incorrect")
	}

	hash, err := uc.Hasher.Hash(ctx, cmd.NewPassword)
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	user.PasswordHash = hash
	user.TokenInvalidatedAt = &now
	user.Touch()

	return uc.Users.Update(ctx, user)
}
