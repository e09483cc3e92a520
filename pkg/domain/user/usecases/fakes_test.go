package usecases_test

import (
	"context"
	"sync"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/authn"
	"github.com/survivor-pool/survivor-pool/pkg/domain/user/entities"
)

// fakeUserRepository is a minimal in-memory stand-in for
// user_out.UserRepository.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[common.ID]*entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[common.ID]*entities.User)}
}

func (r *fakeUserRepository) Create(_ context.Context, u *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepository) Update(_ context.Context, u *entities.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepository) GetByID(_ context.Context, id common.ID) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	return u, nil
}

func (r *fakeUserRepository) GetByUsername(_ context.Context, username string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) GetByEmail(_ context.Context, email string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) GetByIdentifier(ctx context.Context, identifier string) (*entities.User, error) {
	if u, _ := r.GetByUsername(ctx, identifier); u != nil {
		return u, nil
	}
	return r.GetByEmail(ctx, identifier)
}

func (r *fakeUserRepository) GetByVerificationToken(_ context.Context, token string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.VerificationToken != nil && *u.VerificationToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) GetByResetToken(_ context.Context, token string) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.ResetToken != nil && *u.ResetToken == token {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepository) SearchByUsernamePrefix(_ context.Context, query string, limit int) ([]*entities.User, error) {
	return nil, nil
}

func (r *fakeUserRepository) Delete(_ context.Context, id common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}

func (r *fakeUserRepository) ClearDefaultPool(context.Context, common.ID) error { return nil }

func (r *fakeUserRepository) CompareAndSwapFailedLogin(_ context.Context, id common.ID, mutate func(u *entities.User, now time.Time)) (*entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, common.NewErrNotFound(common.UserResourceType, "id", id.Hex())
	}
	mutate(u, time.Now().UTC())
	return u, nil
}

// fakePasswordHasher is a deterministic, non-cryptographic stand-in for
// out.PasswordHasher: a hash is just the literal password prefixed with a
// marker, so Verify only succeeds for the exact password it hashed.
type fakePasswordHasher struct{}

func (fakePasswordHasher) Hash(_ context.Context, password string) (string, error) {
	return "hashed:" + password, nil
}

func (fakePasswordHasher) Verify(_ context.Context, password, hash string) bool {
	return hash == "hashed:"+password
}

func (fakePasswordHasher) DummyHash() string {
	return "hashed:__dummy__"
}

// fakeEmailSender discards every send, recording the last token for
// assertions.
type fakeEmailSender struct {
	mu              sync.Mutex
	lastVerifyToken string
	lastResetToken  string
}

func (s *fakeEmailSender) SendVerificationEmail(_ context.Context, to, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastVerifyToken = token
	return nil
}

func (s *fakeEmailSender) SendPasswordResetEmail(_ context.Context, to, token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastResetToken = token
	return nil
}

// fakeCredentialCodec mints the subject's hex id as an opaque token instead
// of a real JWT, decoding it back via a lookup table.
type fakeCredentialCodec struct {
	mu     sync.Mutex
	tokens map[string]authn.Credential
	next   int
}

func newFakeCredentialCodec() *fakeCredentialCodec {
	return &fakeCredentialCodec{tokens: make(map[string]authn.Credential)}
}

func (c *fakeCredentialCodec) Encode(subject common.ID, now time.Time) (string, authn.Credential, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.next++
	cred := authn.Credential{Subject: subject, IssuedAt: now, ExpiresAt: now.Add(30 * 24 * time.Hour)}
	token := subject.Hex()
	c.tokens[token] = cred
	return token, cred, nil
}

func (c *fakeCredentialCodec) Decode(token string) (authn.Credential, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	cred, ok := c.tokens[token]
	if !ok {
		return authn.Credential{}, common.NewErrUnauthorized("invalid token")
	}
	return cred, nil
}

func (c *fakeCredentialCodec) RefreshInterval() time.Duration {
	return 3 * 24 * time.Hour
}
