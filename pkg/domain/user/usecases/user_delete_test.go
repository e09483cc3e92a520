package usecases_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	pool_entities "github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_usecases "github.com/survivor-pool/survivor-pool/pkg/domain/pool/usecases"
	"github.com/survivor-pool/survivor-pool/pkg/domain/user/usecases"
)

// fakeDeletePoolRepository is a minimal in-memory stand-in for
// pool_out.PoolRepository, scoped to what delete_user's cascade exercises.
type fakeDeletePoolRepository struct {
	mu    sync.Mutex
	pools map[common.ID]*pool_entities.Pool
}

func newFakeDeletePoolRepository() *fakeDeletePoolRepository {
	return &fakeDeletePoolRepository{pools: make(map[common.ID]*pool_entities.Pool)}
}

func (r *fakeDeletePoolRepository) Create(_ context.Context, p *pool_entities.Pool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[p.ID] = p
	return nil
}
func (r *fakeDeletePoolRepository) Update(_ context.Context, p *pool_entities.Pool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.pools[p.ID] = p
	return nil
}
func (r *fakeDeletePoolRepository) GetByID(_ context.Context, id common.ID) (*pool_entities.Pool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.pools[id]
	if !ok {
		return nil, nil
	}
	return p, nil
}
func (r *fakeDeletePoolRepository) Delete(_ context.Context, id common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.pools, id)
	return nil
}
func (r *fakeDeletePoolRepository) CompareAndSwapCurrentWeek(context.Context, common.ID, int) (bool, error) {
	return false, nil
}
func (r *fakeDeletePoolRepository) CompareAndSwapCompetitive(context.Context, common.ID, int) (bool, error) {
	return false, nil
}

// fakeDeleteMembershipRepository is a minimal in-memory stand-in for
// pool_out.MembershipRepository, scoped to delete_user's cascade.
type fakeDeleteMembershipRepository struct {
	mu          sync.Mutex
	memberships map[common.ID]map[common.ID]*pool_entities.Membership
}

func newFakeDeleteMembershipRepository() *fakeDeleteMembershipRepository {
	return &fakeDeleteMembershipRepository{memberships: make(map[common.ID]map[common.ID]*pool_entities.Membership)}
}

func (r *fakeDeleteMembershipRepository) Upsert(_ context.Context, m *pool_entities.Membership) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.memberships[m.PoolID] == nil {
		r.memberships[m.PoolID] = make(map[common.ID]*pool_entities.Membership)
	}
	r.memberships[m.PoolID][m.UserID] = m
	return nil
}
func (r *fakeDeleteMembershipRepository) GetByPoolAndUser(_ context.Context, poolID, userID common.ID) (*pool_entities.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberships[poolID][userID]
	if !ok {
		return nil, nil
	}
	return m, nil
}
func (r *fakeDeleteMembershipRepository) ListByPool(_ context.Context, poolID common.ID) ([]*pool_entities.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*pool_entities.Membership
	for _, m := range r.memberships[poolID] {
		out = append(out, m)
	}
	return out, nil
}
func (r *fakeDeleteMembershipRepository) ListByUser(_ context.Context, userID common.ID) ([]*pool_entities.Membership, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*pool_entities.Membership
	for _, byUser := range r.memberships {
		if m, ok := byUser[userID]; ok {
			out = append(out, m)
		}
	}
	return out, nil
}
func (r *fakeDeleteMembershipRepository) DeleteByPool(_ context.Context, poolID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.memberships, poolID)
	return nil
}
func (r *fakeDeleteMembershipRepository) DeleteByUser(_ context.Context, userID common.ID) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, byUser := range r.memberships {
		delete(byUser, userID)
	}
	return nil
}
func (r *fakeDeleteMembershipRepository) CompareAndSwapInvitedStatus(_ context.Context, poolID, userID common.ID, mutate func(m *pool_entities.Membership)) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.memberships[poolID][userID]
	if !ok || m.Status != pool_entities.StatusInvited {
		return false, nil
	}
	mutate(m)
	return true, nil
}

// fakeDeletePickRepository is a minimal in-memory stand-in for
// pool_out.PickRepository, scoped to delete_user's cascade.
type fakeDeletePickRepository struct {
	mu    sync.Mutex
	picks []*pool_entities.Pick
}

func (r *fakeDeletePickRepository) Create(_ context.Context, p *pool_entities.Pick) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.picks = append(r.picks, p)
	return nil
}
func (r *fakeDeletePickRepository) GetByPoolUserWeek(_ context.Context, poolID, userID common.ID, week int) (*pool_entities.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, p := range r.picks {
		if p.PoolID == poolID && p.UserID == userID && p.Week == week {
			return p, nil
		}
	}
	return nil, nil
}
func (r *fakeDeletePickRepository) ListByPoolUser(_ context.Context, poolID, userID common.ID) ([]*pool_entities.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*pool_entities.Pick
	for _, p := range r.picks {
		if p.PoolID == poolID && p.UserID == userID {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeDeletePickRepository) ListByPoolWeek(_ context.Context, poolID common.ID, week int) ([]*pool_entities.Pick, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*pool_entities.Pick
	for _, p := range r.picks {
		if p.PoolID == poolID && p.Week == week {
			out = append(out, p)
		}
	}
	return out, nil
}
func (r *fakeDeletePickRepository) DeleteByPool(_ context.Context, poolID common.ID) error {
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
func (r *fakeDeletePickRepository) DeleteByUser(_ context.Context, userID common.ID) error {
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

// TestDeleteUserCascadesOwnedPools exercises §4.D delete_user: deleting a
// user who owns a pool first tears the pool down (memberships and picks for
// every member, not just the owner) before the user row itself is removed.
func TestDeleteUserCascadesOwnedPools(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepository()
	memberships := newFakeDeleteMembershipRepository()
	picks := &fakeDeletePickRepository{}
	pools := newFakeDeletePoolRepository()

	createUser := &usecases.CreateUser{Users: users, Hasher: fakePasswordHasher{}, Emails: &fakeEmailSender{}}
	owner, err := createUser.Exec(ctx, usecases.CreateUserCommand{Username: "gail", Email: "gail@example.com", Password: "hunter2"})
	require.NoError(t, err)
	member, err := createUser.Exec(ctx, usecases.CreateUserCommand{Username: "hank", Email: "hank@example.com", Password: "hunter2"})
	require.NoError(t, err)

	pool := pool_entities.NewPool("Gail's Pool", owner.ID, common.NewID(), 1)
	require.NoError(t, pools.Create(ctx, pool))
	ownerMembership := pool_entities.NewOwnerMembership(pool.ID, owner.ID, pool.CreatedAt)
	require.NoError(t, memberships.Upsert(ctx, ownerMembership))
	memberMembership := pool_entities.NewInvitedMembership(pool.ID, member.ID, pool.CreatedAt)
	memberMembership.Status = pool_entities.StatusActive
	require.NoError(t, memberships.Upsert(ctx, memberMembership))
	require.NoError(t, picks.Create(ctx, &pool_entities.Pick{PoolID: pool.ID, UserID: member.ID, Week: 1, ContestantID: common.NewID()}))

	deletePool := &pool_usecases.DeletePool{Pools: pools, Memberships: memberships, Picks: picks, Users: users}
	deleteUser := &usecases.DeleteUser{Users: users, Memberships: memberships, Picks: picks, DeletePool: deletePool}

	require.NoError(t, deleteUser.Exec(ctx, owner.ID))

	gotPool, err := pools.GetByID(ctx, pool.ID)
	require.NoError(t, err)
	assert.Nil(t, gotPool)

	remainingMembers, err := memberships.ListByPool(ctx, pool.ID)
	require.NoError(t, err)
	assert.Empty(t, remainingMembers)

	remainingPicks, err := picks.ListByPoolUser(ctx, pool.ID, member.ID)
	require.NoError(t, err)
	assert.Empty(t, remainingPicks)

	gotOwner, err := users.GetByID(ctx, owner.ID)
	require.NoError(t, err)
	assert.Nil(t, gotOwner)
}

// TestDeleteUserRejectsUnknownUser exercises the not-found guard.
func TestDeleteUserRejectsUnknownUser(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserRepository()
	memberships := newFakeDeleteMembershipRepository()
	picks := &fakeDeletePickRepository{}
	pools := newFakeDeletePoolRepository()
	deletePool := &pool_usecases.DeletePool{Pools: pools, Memberships: memberships, Picks: picks, Users: users}
	deleteUser := &usecases.DeleteUser{Users: users, Memberships: memberships, Picks: picks, DeletePool: deletePool}

	err := deleteUser.Exec(ctx, common.NewID())
	require.Error(t, err)
	assert.True(t, common.IsNotFoundError(err))
}
