package usecases_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/usecases"
	season_entities "github.com/survivor-pool/survivor-pool/pkg/domain/season/entities"
	user_entities "github.com/survivor-pool/survivor-pool/pkg/domain/user/entities"
)

// harness wires one set of fakes plus the usecases that exercise them.
type harness struct {
	pools       *fakePoolRepository
	memberships *fakeMembershipRepository
	picks       *fakePickRepository
	seasons     *fakeSeasonRepository
	users       *fakeUserRepository

	createPool           *usecases.CreatePool
	createPick           *usecases.CreatePick
	advanceStatus        *usecases.ComputeAdvanceStatus
	advanceWeek          *usecases.AdvancePoolWeek
	respondToInvite      *usecases.RespondToInvite
	maybeMarkCompetitive *usecases.MaybeMarkPoolCompetitive
}

func newHarness(season *season_entities.Season) *harness {
	h := &harness{
		pools:       newFakePoolRepository(),
		memberships: newFakeMembershipRepository(),
		picks:       newFakePickRepository(),
		seasons:     &fakeSeasonRepository{season: season},
		users:       newFakeUserRepository(),
	}

	h.createPool = &usecases.CreatePool{
		Pools: h.pools, Memberships: h.memberships, Picks: h.picks,
		Seasons: h.seasons, Users: h.users,
	}
	h.createPick = &usecases.CreatePick{
		Pools: h.pools, Memberships: h.memberships, Picks: h.picks, Seasons: h.seasons,
	}
	h.advanceStatus = &usecases.ComputeAdvanceStatus{
		Memberships: h.memberships, Picks: h.picks, Users: h.users,
	}
	h.advanceWeek = &usecases.AdvancePoolWeek{
		Pools: h.pools, Memberships: h.memberships, Picks: h.picks,
		Seasons: h.seasons, Users: h.users, Status: h.advanceStatus,
	}
	h.maybeMarkCompetitive = &usecases.MaybeMarkPoolCompetitive{Pools: h.pools, Memberships: h.memberships}
	h.respondToInvite = &usecases.RespondToInvite{
		Pools: h.pools, Memberships: h.memberships, Picks: h.picks,
		Seasons: h.seasons, Competitive: h.maybeMarkCompetitive,
	}

	return h
}

func (h *harness) newUser(t *testing.T, username string) *user_entities.User {
	t.Helper()
	u := user_entities.NewUser(username, username+"@example.com", "hash")
	require.NoError(t, h.users.Create(context.Background(), u))
	return u
}

// fourContestantSeason builds the season fixture underlying S1/S2/S3/S5/S6:
// contestants A,B,C,D with A voted out in week 1.
func fourContestantSeason(t *testing.T) (*season_entities.Season, map[string]common.ID) {
	t.Helper()
	ids := map[string]common.ID{
		"A": common.NewID(), "B": common.NewID(), "C": common.NewID(), "D": common.NewID(),
	}
	season := &season_entities.Season{
		ID:   common.NewID(),
		Name: "Test Season",
		Contestants: []season_entities.Contestant{
			{ID: ids["A"], Name: "A"},
			{ID: ids["B"], Name: "B"},
			{ID: ids["C"], Name: "C"},
			{ID: ids["D"], Name: "D"},
		},
		Eliminations: []season_entities.Elimination{
			{Week: 1, EliminatedContestant: ids["A"]},
		},
	}
	return season, ids
}

// twoContestantSeason builds the season fixture underlying S4: contestants
// A,B with A voted out in week 1, leaving no week-2 options for anyone who
// already used B.
func twoContestantSeason(t *testing.T) (*season_entities.Season, map[string]common.ID) {
	t.Helper()
	ids := map[string]common.ID{"A": common.NewID(), "B": common.NewID()}
	season := &season_entities.Season{
		ID:   common.NewID(),
		Name: "Two Contestant Season",
		Contestants: []season_entities.Contestant{
			{ID: ids["A"], Name: "A"},
			{ID: ids["B"], Name: "B"},
		},
		Eliminations: []season_entities.Elimination{
			{Week: 1, EliminatedContestant: ids["A"]},
		},
	}
	return season, ids
}

// TestS1TwoPlayerHappyPath mirrors spec §8 scenario S1: Alice creates a
// pool, invites Bob, both pick, and advancing week 1 eliminates Bob
// (contestant voted out) while Alice wins outright.
func TestS1TwoPlayerHappyPath(t *testing.T) {
	ctx := context.Background()
	season, cid := fourContestantSeason(t)
	h := newHarness(season)

	alice := h.newUser(t, "alice")
	bob := h.newUser(t, "bob")

	createResult, err := h.createPool.Exec(ctx, usecases.CreatePoolCommand{
		OwnerID: alice.ID, Name: "Alice's Pool", SeasonID: season.ID,
		StartWeek: 1, Invitees: []common.ID{bob.ID},
	})
	require.NoError(t, err)
	pool := createResult.Pool

	aliceMembership, err := h.memberships.GetByPoolAndUser(ctx, pool.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, aliceMembership.IsActive())

	bobMembership, err := h.memberships.GetByPoolAndUser(ctx, pool.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusInvited, bobMembership.Status)

	_, err = h.respondToInvite.Exec(ctx, pool.ID, bob.ID, usecases.InviteAccept)
	require.NoError(t, err)

	bobMembership, err = h.memberships.GetByPoolAndUser(ctx, pool.ID, bob.ID)
	require.NoError(t, err)
	assert.True(t, bobMembership.IsActive())

	pool, err = h.pools.GetByID(ctx, pool.ID)
	require.NoError(t, err)
	assert.True(t, pool.IsCompetitive)
	require.NotNil(t, pool.CompetitiveSinceWeek)
	assert.Equal(t, 1, *pool.CompetitiveSinceWeek)

	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: alice.ID, ContestantID: cid["B"]})
	require.NoError(t, err)
	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: bob.ID, ContestantID: cid["A"]})
	require.NoError(t, err)

	result, err := h.advanceWeek.Exec(ctx, pool.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, result.Eliminations, 1)
	assert.Equal(t, bob.ID, result.Eliminations[0].UserID)
	assert.Equal(t, entities.ReasonContestantVotedOut, result.Eliminations[0].Reason)

	// Only one active member remains after Bob's elimination, so the pool
	// completes outright with Alice as sole winner (Stage 4).
	assert.True(t, result.PoolCompleted)
	require.Len(t, result.Winners, 1)
	assert.Equal(t, alice.ID, result.Winners[0].UserID)

	bobMembership, err = h.memberships.GetByPoolAndUser(ctx, pool.ID, bob.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusEliminated, bobMembership.Status)

	aliceMembership, err = h.memberships.GetByPoolAndUser(ctx, pool.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, entities.StatusWinner, aliceMembership.Status)

	pool, err = h.pools.GetByID(ctx, pool.ID)
	require.NoError(t, err)
	assert.True(t, pool.IsCompleted())
}

// TestS2MissedPickElimination mirrors spec §8 scenario S2: an active member
// who locks no pick for the current week is eliminated with missed_pick on
// advance.
func TestS2MissedPickElimination(t *testing.T) {
	ctx := context.Background()
	season, cid := fourContestantSeason(t)
	h := newHarness(season)

	alice := h.newUser(t, "alice")
	bob := h.newUser(t, "bob")

	createResult, err := h.createPool.Exec(ctx, usecases.CreatePoolCommand{
		OwnerID: alice.ID, Name: "Pool", SeasonID: season.ID, StartWeek: 1,
		Invitees: []common.ID{bob.ID},
	})
	require.NoError(t, err)
	pool := createResult.Pool

	_, err = h.respondToInvite.Exec(ctx, pool.ID, bob.ID, usecases.InviteAccept)
	require.NoError(t, err)

	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: alice.ID, ContestantID: cid["B"]})
	require.NoError(t, err)
	// Bob locks no pick for week 1.

	result, err := h.advanceWeek.Exec(ctx, pool.ID, alice.ID)
	require.NoError(t, err)
	require.Len(t, result.Eliminations, 1)
	assert.Equal(t, bob.ID, result.Eliminations[0].UserID)
	assert.Equal(t, entities.ReasonMissedPick, result.Eliminations[0].Reason)
}

// TestS3TieClosure mirrors spec §8 scenario S3: in a three-player pool, a
// week-2 elimination that matches both surviving members' picks closes the
// pool with both promoted to winner (did_tie).
func TestS3TieClosure(t *testing.T) {
	ctx := context.Background()
	ids := map[string]common.ID{
		"A": common.NewID(), "B": common.NewID(), "C": common.NewID(), "D": common.NewID(),
	}
	season := &season_entities.Season{
		ID:   common.NewID(),
		Name: "Tie Season",
		Contestants: []season_entities.Contestant{
			{ID: ids["A"], Name: "A"}, {ID: ids["B"], Name: "B"},
			{ID: ids["C"], Name: "C"}, {ID: ids["D"], Name: "D"},
		},
		Eliminations: []season_entities.Elimination{
			{Week: 1, EliminatedContestant: ids["A"]},
			{Week: 2, EliminatedContestant: ids["B"]},
		},
	}
	h := newHarness(season)

	alice := h.newUser(t, "alice")
	bob := h.newUser(t, "bob")
	carol := h.newUser(t, "carol")

	createResult, err := h.createPool.Exec(ctx, usecases.CreatePoolCommand{
		OwnerID: alice.ID, Name: "Pool", SeasonID: season.ID, StartWeek: 1,
		Invitees: []common.ID{bob.ID, carol.ID},
	})
	require.NoError(t, err)
	pool := createResult.Pool

	_, err = h.respondToInvite.Exec(ctx, pool.ID, bob.ID, usecases.InviteAccept)
	require.NoError(t, err)
	_, err = h.respondToInvite.Exec(ctx, pool.ID, carol.ID, usecases.InviteAccept)
	require.NoError(t, err)

	// Week 1: everyone picks a contestant that survives week 1.
	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: alice.ID, ContestantID: ids["C"]})
	require.NoError(t, err)
	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: bob.ID, ContestantID: ids["D"]})
	require.NoError(t, err)
	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: carol.ID, ContestantID: ids["A"]})
	require.NoError(t, err)

	result, err := h.advanceWeek.Exec(ctx, pool.ID, alice.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, result.NewCurrentWeek)
	require.Len(t, result.Eliminations, 1)
	assert.Equal(t, carol.ID, result.Eliminations[0].UserID)

	// Week 2: both remaining active members (alice, bob) pick B, who is
	// eliminated this week, tying them both out as winners.
	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: alice.ID, ContestantID: ids["B"]})
	require.NoError(t, err)
	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: bob.ID, ContestantID: ids["B"]})
	require.NoError(t, err)

	result, err = h.advanceWeek.Exec(ctx, pool.ID, alice.ID)
	require.NoError(t, err)
	assert.True(t, result.PoolCompleted)
	assert.Empty(t, result.Eliminations)
	require.Len(t, result.Winners, 2)

	pool, err = h.pools.GetByID(ctx, pool.ID)
	require.NoError(t, err)
	assert.True(t, pool.IsCompleted())
	assert.ElementsMatch(t, []common.ID{alice.ID, bob.ID}, pool.Winners)
}

// TestS4NoOptionsLeft mirrors spec §8 scenario S4: in a two-contestant
// season where the only surviving contestant has already been picked, the
// member is eliminated with no_options_left on advance rather than being
// asked to re-pick an exhausted contestant.
func TestS4NoOptionsLeft(t *testing.T) {
	ctx := context.Background()
	season, cid := twoContestantSeason(t)
	h := newHarness(season)

	carol := h.newUser(t, "carol")

	createResult, err := h.createPool.Exec(ctx, usecases.CreatePoolCommand{
		OwnerID: carol.ID, Name: "Pool", SeasonID: season.ID, StartWeek: 1,
	})
	require.NoError(t, err)
	pool := createResult.Pool

	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: carol.ID, ContestantID: cid["B"]})
	require.NoError(t, err)

	result, err := h.advanceWeek.Exec(ctx, pool.ID, carol.ID)
	require.NoError(t, err)
	require.Len(t, result.Eliminations, 1)
	assert.Equal(t, carol.ID, result.Eliminations[0].UserID)
	assert.Equal(t, entities.ReasonNoOptionsLeft, result.Eliminations[0].Reason)
}

// TestS5ConcurrentAdvance mirrors spec §8 scenario S5: two racing
// advance-week calls against the same not-yet-advanced pool must not both
// succeed; exactly one advances and the other sees a conflict.
func TestS5ConcurrentAdvance(t *testing.T) {
	ctx := context.Background()
	season, cid := fourContestantSeason(t)
	h := newHarness(season)

	alice := h.newUser(t, "alice")
	bob := h.newUser(t, "bob")

	createResult, err := h.createPool.Exec(ctx, usecases.CreatePoolCommand{
		OwnerID: alice.ID, Name: "Pool", SeasonID: season.ID, StartWeek: 1,
		Invitees: []common.ID{bob.ID},
	})
	require.NoError(t, err)
	pool := createResult.Pool
	_, err = h.respondToInvite.Exec(ctx, pool.ID, bob.ID, usecases.InviteAccept)
	require.NoError(t, err)

	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: alice.ID, ContestantID: cid["B"]})
	require.NoError(t, err)
	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: bob.ID, ContestantID: cid["C"]})
	require.NoError(t, err)

	var wg sync.WaitGroup
	results := make([]error, 2)
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			_, err := h.advanceWeek.Exec(ctx, pool.ID, alice.ID)
			results[idx] = err
		}(i)
	}
	wg.Wait()

	var successes, conflicts int
	for _, err := range results {
		if err == nil {
			successes++
		} else if common.IsConflictError(err) {
			conflicts++
		}
	}
	assert.Equal(t, 1, successes)
	assert.Equal(t, 1, conflicts)

	pool, err = h.pools.GetByID(ctx, pool.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, pool.CurrentWeek)
}

// TestS6PickRejections mirrors spec §8 scenario S6: re-picking the same
// contestant in the same week, picking a nonexistent contestant, and
// picking a contestant eliminated in a strictly-prior week are all
// rejected.
func TestS6PickRejections(t *testing.T) {
	ctx := context.Background()
	season, cid := fourContestantSeason(t)
	h := newHarness(season)

	alice := h.newUser(t, "alice")
	createResult, err := h.createPool.Exec(ctx, usecases.CreatePoolCommand{
		OwnerID: alice.ID, Name: "Pool", SeasonID: season.ID, StartWeek: 1,
	})
	require.NoError(t, err)
	pool := createResult.Pool

	// Pick a nonexistent contestant: rejected as not found. This runs before
	// any week-1 pick exists, since an existing pick for the week is
	// rejected first.
	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: alice.ID, ContestantID: common.NewID()})
	require.Error(t, err)
	assert.True(t, common.IsNotFoundError(err))

	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: alice.ID, ContestantID: cid["B"]})
	require.NoError(t, err)

	// Re-pick the same contestant in the same week: rejected.
	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: alice.ID, ContestantID: cid["B"]})
	require.Error(t, err)
	assert.True(t, common.IsBadRequestError(err))

	// Advance past week 1 so A's elimination (recorded at week 1) becomes
	// strictly prior to the now-current week.
	_, err = h.advanceWeek.Exec(ctx, pool.ID, alice.ID)
	require.NoError(t, err)

	_, err = h.createPick.Exec(ctx, usecases.CreatePickCommand{PoolID: pool.ID, UserID: alice.ID, ContestantID: cid["A"]})
	require.Error(t, err)
	assert.True(t, common.IsBadRequestError(err))
}
