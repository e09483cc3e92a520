package entities

import (
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
)

type AccountStatus string

const (
	AccountActive   AccountStatus = "active"
	AccountInactive AccountStatus = "inactive"
)

const MaxFailedLoginAttempts = 5

const LockoutDuration = 15 * time.Minute

// User is the account aggregate root.
type User struct {
	common.BaseEntity `bson:",inline"`

	Username      string        `json:"username" bson:"username"`
	Email         string        `json:"email" bson:"email"`
	PasswordHash  string        `json:"-" bson:"password_hash"`
	AccountStatus AccountStatus `json:"account_status" bson:"account_status"`
	EmailVerified bool          `json:"email_verified" bson:"email_verified"`

	DefaultPool *common.ID `json:"default_pool,omitempty" bson:"default_pool,omitempty"`

	FailedLoginAttempts int        `json:"-" bson:"failed_login_attempts"`
	LockedUntil         *time.Time `json:"-" bson:"locked_until,omitempty"`
	TokenInvalidatedAt  *time.Time `json:"-" bson:"token_invalidated_at,omitempty"`

	VerificationToken   *string    `json:"-" bson:"verification_token,omitempty"`
	ResetToken          *string    `json:"-" bson:"reset_token,omitempty"`
	ResetTokenExpiresAt *time.Time `json:"-" bson:"reset_token_expires_at,omitempty"`
}

// NewUser constructs a freshly-signed-up, unverified account.
func NewUser(username, email, passwordHash string) *User {
	return &User{
		BaseEntity:    common.NewEntity(),
		Username:      username,
		Email:         email,
		PasswordHash:  passwordHash,
		AccountStatus: AccountActive,
		EmailVerified: false,
	}
}

// IsLocked reports whether the account is currently under a failed-login
// lockout, as of now.
func (u *User) IsLocked(now time.Time) bool {
	return u.LockedUntil != nil && u.LockedUntil.After(now)
}

// ResetLockoutIfExpired clears stale lockout state once locked_until has
// passed, per §4.D login_user.
func (u *User) ResetLockoutIfExpired(now time.Time) {
	if u.LockedUntil != nil && !u.LockedUntil.After(now) {
		u.FailedLoginAttempts = 0
		u.LockedUntil = nil
	}
}

// RegisterFailedLogin increments the failure counter and locks the account
// once it reaches MaxFailedLoginAttempts.
func (u *User) RegisterFailedLogin(now time.Time) {
	u.FailedLoginAttempts++
	if u.FailedLoginAttempts >= MaxFailedLoginAttempts {
		lockUntil := now.Add(LockoutDuration)
		u.LockedUntil = &lockUntil
	}
}

// RegisterSuccessfulLogin clears lockout state after a successful auth.
func (u *User) RegisterSuccessfulLogin() {
	u.FailedLoginAttempts = 0
	u.LockedUntil = nil
}

// DisplayName is the name shown in leaderboards and invite lists.
func (u *User) DisplayName() string {
	return u.Username
}
