package usecases

import (
	"context"
	"log/slog"
	"strings"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/user/entities"
	out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// CreateUserCommand is the input to CreateUser (§4.D create_user).
type CreateUserCommand struct {
	Username string
	Email    string
	Password string
}

// CreateUser is the usecase for §4.D create_user.
type CreateUser struct {
	Users    out.UserRepository
	Hasher   out.PasswordHasher
	Emails   out.EmailSender
}

func (uc *CreateUser) Exec(ctx context.Context, cmd CreateUserCommand) (*entities.User, error) {
	username := strings.TrimSpace(cmd.Username)
	email := strings.TrimSpace(cmd.Email)
	if username == "" || email == "" || cmd.Password == "" {
		return nil, common.NewErrInvalidInput("username, email, and password are required")
	}

	if existing, err := uc.Users.GetByUsername(ctx, username); err == nil && existing != nil {
		return nil, common.NewErrAlreadyExists(common.UserResourceType, "username", username)
	}
	if existing, err := uc.Users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, common.NewErrAlreadyExists(common.UserResourceType, "email", email)
	}

	hash, err := uc.Hasher.Hash(ctx, cmd.Password)
	if err != nil {
		return nil, err
	}

	user := entities.NewUser(username, email, hash)

	token, err := generateSecureToken()
	if err != nil {
		return nil, err
	}
	user.VerificationToken = &token

	if err := uc.Users.Create(ctx, user); err != nil {
		return nil, err
	}

	if err := uc.Emails.SendVerificationEmail(ctx, user.Email, token); err != nil {
		slog.ErrorContext(ctx, "failed to send verification email", "error", err, "user_id", user.ID.Hex())
	}

	slog.InfoContext(ctx, "user created", "user_id", user.ID.Hex())

	return user, nil
}
