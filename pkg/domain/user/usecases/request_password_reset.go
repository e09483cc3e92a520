package usecases

import (
	"context"
	"log/slog"
	"time"

	out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

const resetTokenTTL = time.Hour

// RequestPasswordReset is the usecase for §4.D request_password_reset. A
// nonexistent email is not an error: the response surface must not reveal
// account existence.
type RequestPasswordReset struct {
	Users  out.UserRepository
	Emails out.EmailSender
}

func (uc *RequestPasswordReset) Exec(ctx context.Context, email string) error {
	user, err := uc.Users.GetByEmail(ctx, email)
	if err != nil || user == nil {
		return nil
	}

	token, err := generateSecureToken()
	if err != nil {
		return err
	}

	expires := time.Now().UTC().Add(resetTokenTTL)
	user.ResetToken = &token
	user.ResetTokenExpiresAt = &expires
	user.Touch()

	if err := uc.Users.Update(ctx, user); err != nil {
		return err
	}

	if err := uc.Emails.SendPasswordResetEmail(ctx, user.Email, token); err != nil {
		slog.ErrorContext(ctx, "failed to send password reset email", "error", err, "user_id", user.ID.Hex())
	}

	return nil
}
