package usecases_test

import (
	"context"
	"sync"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	pool_entities "github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	season_entities "github.com/survivor-pool/survivor-pool/pkg/domain/season/entities"
	user_entities "github.com/survivor-pool/survivor-pool/pkg/domain/user/entities"
)

// fakePoolRepository is a minimal in-memory stand-in for
// pool_out.PoolRepository.
type fakePoolRepository struct {
	mu    sync.Mutex
	pools map[common.ID]*pool_entities.Pool
}

func newFakePoolRepository() *fakePoolRepository {
	return &fakePoolRepository{pools: make(map[common.ID]*pool_entities.Pool)}
}

func (r *fakePoolRepository) Create(_ context.Context, p *pool_entities.Pool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[p.ID] = p
	return nil
}

func (r *fakePoolRepository) Update(_ context.Context, p *pool_entities.Pool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[p.ID] = p
	return nil
}

func (r *fakePoolRepository) GetByID(_ context.Context, id common.ID) (*pool_entities.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pools[id]
	if !ok {
		return nil, nil
	}
	cp := *p
	return &cp, nil
}

func (r *fakePoolRepository) Delete(_ context.Context, id common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pools, id)
	return nil
}

func (r *fakePoolRepository) CompareAndSwapCurrentWeek(_ context.Context, poolID common.ID, expectedWeek int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pools[poolID]
	if !ok || p.CurrentWeek != expectedWeek {
		return false, nil
	}
	p.CurrentWeek = expectedWeek + 1
	return true, nil
}

func (r *fakePoolRepository) CompareAndSwapCompetitive(_ context.Context, poolID common.ID, sinceWeek int) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pools[poolID]
	if !ok || p.IsCompetitive {
		return false, nil
	}
	p.IsCompetitive = true
	week := sinceWeek
	p.CompetitiveSinceWeek = &week
	return true, nil
}

// fakeMembershipRepository is a minimal in-memory stand-in for
// pool_out.MembershipRepository.
type fakeMembershipRepository struct {
	mu          sync.Mutex
	memberships map[common.ID]map[common.ID]*pool_entities.Membership
}

func newFakeMembershipRepository() *fakeMembershipRepository {
	return &fakeMembershipRepository{memberships: make(map[common.ID]map[common.ID]*pool_entities.Membership)}
}

func (r *fakeMembershipRepository) Upsert(_ context.Context, m *pool_entities.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.memberships[m.PoolID] == nil {
		r.memberships[m.PoolID] = make(map[common.ID]*pool_entities.Membership)
	}
	cp := *m
	r.memberships[m.PoolID][m.UserID] = &cp
	return nil
}

func (r *fakeMembershipRepository) GetByPoolAndUser(_ context.Context, poolID, userID common.ID) (*pool_entities.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberships[poolID][userID]
	if !ok {
		return nil, nil
	}
	cp := *m
	return &cp, nil
}

func (r *fakeMembershipRepository) ListByPool(_ context.Context, poolID common.ID) ([]*pool_entities.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*pool_entities.Membership
	for _, m := range r.memberships[poolID] {
		cp := *m
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeMembershipRepository) ListByUser(_ context.Context, userID common.ID) ([]*pool_entities.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*pool_entities.Membership
	for _, byUser := range r.memberships {
		if m, ok := byUser[userID]; ok {
			cp := *m
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeMembershipRepository) DeleteByPool(_ context.Context, poolID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.memberships, poolID)
	return nil
}

func (r *fakeMembershipRepository) DeleteByUser(_ context.Context, userID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, byUser := range r.memberships {
		delete(byUser, userID)
	}
	return nil
}

func (r *fakeMembershipRepository) CompareAndSwapInvitedStatus(_ context.Context, poolID, userID common.ID, mutate func(m *pool_entities.Membership)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberships[poolID][userID]
	if !ok || m.Status != pool_entities.StatusInvited {
		return false, nil
	}
	mutate(m)
	return true, nil
}

// fakePickRepository is a minimal in-memory stand-in for
// pool_out.PickRepository.
type fakePickRepository struct {
	mu    sync.Mutex
	picks []*pool_entities.Pick
}

func newFakePickRepository() *fakePickRepository {
	return &fakePickRepository{}
}

func (r *fakePickRepository) Create(_ context.Context, p *pool_entities.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.picks = append(r.picks, &cp)
	return nil
}

func (r *fakePickRepository) GetByPoolUserWeek(_ context.Context, poolID, userID common.ID, week int) (*pool_entities.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.picks {
		if p.PoolID == poolID && p.UserID == userID && p.Week == week {
			cp := *p
			return &cp, nil
		}
	}
	return nil, nil
}

func (r *fakePickRepository) ListByPoolUser(_ context.Context, poolID, userID common.ID) ([]*pool_entities.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*pool_entities.Pick
	for _, p := range r.picks {
		if p.PoolID == poolID && p.UserID == userID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePickRepository) ListByPoolWeek(_ context.Context, poolID common.ID, week int) ([]*pool_entities.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*pool_entities.Pick
	for _, p := range r.picks {
		if p.PoolID == poolID && p.Week == week {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePickRepository) DeleteByPool(_ context.Context, poolID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*pool_entities.Pick
	for _, p := range r.picks {
		if p.PoolID != poolID {
			kept = append(kept, p)
		}
	}
	r.picks = kept
	return nil
}

func (r *fakePickRepository) DeleteByUser(_ context.Context, userID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	var kept []*pool_entities.Pick
	for _, p := range r.picks {
		if p.UserID != userID {
			kept = append(kept, p)
		}
	}
	r.picks = kept
	return nil
}

// fakeSeasonRepository is a minimal in-memory stand-in for
// season_out.SeasonRepository.
type fakeSeasonRepository struct {
	season *season_entities.Season
}

func (r *fakeSeasonRepository) GetByID(_ context.Context, id common.ID) (*season_entities.Season, error) {
	if r.season == nil || r.season.ID != id {
		return nil, nil
	}
	cp := *r.season
	return &cp, nil
}

// fakeUserRepository is a minimal in-memory stand-in for
// user_out.UserRepository; only the methods the pool usecases call are
// exercised here.
type fakeUserRepository struct {
	mu    sync.Mutex
	users map[common.ID]*user_entities.User
}

func newFakeUserRepository() *fakeUserRepository {
	return &fakeUserRepository{users: make(map[common.ID]*user_entities.User)}
}

func (r *fakeUserRepository) put(u *user_entities.User) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users[u.ID] = u
}

func (r *fakeUserRepository) Create(_ context.Context, u *user_entities.User) error {
	r.put(u)
	return nil
}

func (r *fakeUserRepository) Update(_ context.Context, u *user_entities.User) error {
	r.put(u)
	return nil
}

func (r *fakeUserRepository) GetByID(_ context.Context, id common.ID) (*user_entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	cp := *u
	return &cp, nil
}

func (r *fakeUserRepository) GetByUsername(context.Context, string) (*user_entities.User, error) { return nil, nil }
func (r *fakeUserRepository) GetByEmail(context.Context, string) (*user_entities.User, error)    { return nil, nil }
func (r *fakeUserRepository) GetByIdentifier(context.Context, string) (*user_entities.User, error) {
	return nil, nil
}
func (r *fakeUserRepository) GetByVerificationToken(context.Context, string) (*user_entities.User, error) {
	return nil, nil
}
func (r *fakeUserRepository) GetByResetToken(context.Context, string) (*user_entities.User, error) {
	return nil, nil
}
func (r *fakeUserRepository) SearchByUsernamePrefix(context.Context, string, int) ([]*user_entities.User, error) {
	return nil, nil
}
func (r *fakeUserRepository) Delete(_ context.Context, id common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.users, id)
	return nil
}
func (r *fakeUserRepository) ClearDefaultPool(context.Context, common.ID) error { return nil }

func (r *fakeUserRepository) CompareAndSwapFailedLogin(_ context.Context, id common.ID, mutate func(u *user_entities.User, now time.Time)) (*user_entities.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[id]
	if !ok {
		return nil, nil
	}
	mutate(u, time.Now())
	return u, nil
}
