package usecases

import (
	"context"
	"log/slog"
	"sort"
	"strings"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	season_out "github.com/survivor-pool/survivor-pool/pkg/domain/season/ports/out"
	"github.com/survivor-pool/survivor-pool/pkg/domain/season/services"
	user_out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// EliminationReport names a member eliminated during one advance-week call.
type EliminationReport struct {
	UserID      common.ID
	DisplayName string
	Reason      entities.EliminationReason
}

// WinnerReport names a member promoted to winner during one advance-week
// call.
type WinnerReport struct {
	UserID      common.ID
	DisplayName string
}

// AdvanceWeekResult is the Stage 6 report of advance_pool_week.
type AdvanceWeekResult struct {
	NewCurrentWeek int
	Eliminations   []EliminationReport
	PoolCompleted  bool
	Winners        []WinnerReport
}

// AdvancePoolWeek is the usecase for §4.F.5 — the hardest algorithm in the
// system. It runs Stages 1-6 in order against a single now, per the
// ordering invariant I7.
type AdvancePoolWeek struct {
	Pools       pool_out.PoolRepository
	Memberships pool_out.MembershipRepository
	Picks       pool_out.PickRepository
	Seasons     season_out.SeasonRepository
	Users       user_out.UserRepository
	Status      *ComputeAdvanceStatus
}

func (uc *AdvancePoolWeek) Exec(ctx context.Context, poolID, actingUserID common.ID) (*AdvanceWeekResult, error) {
	pool, err := uc.Pools.GetByID(ctx, poolID)
	if err != nil || pool == nil {
		return nil, common.NewErrNotFound(common.PoolResourceType, "id", poolID.Hex())
	}
	if pool.OwnerID != actingUserID {
		return nil, common.NewErrForbidden("owner-only")
	}
	if pool.IsCompleted() {
		return nil, common.NewErrConflict("pool_already_completed")
	}

	season, err := uc.Seasons.GetByID(ctx, pool.SeasonID)
	if err != nil || season == nil {
		return nil, common.NewErrInternal("season unavailable for pool")
	}

	status, err := uc.Status.Exec(ctx, pool, season)
	if err != nil {
		return nil, err
	}
	if !status.CanAdvance {
		return nil, common.NewErrBadRequest("next_week_unavailable")
	}

	members, err := uc.Memberships.ListByPool(ctx, poolID)
	if err != nil {
		return nil, err
	}
	byUser := make(map[common.ID]*entities.Membership, len(members))
	for _, m := range members {
		byUser[m.UserID] = m
	}

	now := time.Now().UTC()
	currentWeek := pool.CurrentWeek
	displayCache := make(map[common.ID]string)
	displayName := func(id common.ID) string {
		if name, ok := displayCache[id]; ok {
			return name
		}
		name := id.Hex()
		if u, err := uc.Users.GetByID(ctx, id); err == nil && u != nil {
			name = u.DisplayName()
		}
		displayCache[id] = name
		return name
	}

	var eliminatedThisAdvance []*entities.Membership
	eliminate := func(m *entities.Membership, reason entities.EliminationReason) error {
		m.Eliminate(reason, currentWeek, now)
		eliminatedThisAdvance = append(eliminatedThisAdvance, m)
		return uc.Memberships.Upsert(ctx, m)
	}

	// Stage 1 — missed-pick eliminations.
	for _, missing := range status.MissingMembers {
		m := byUser[missing.UserID]
		if m == nil || m.Status != entities.StatusActive {
			continue
		}
		if err := eliminate(m, entities.ReasonMissedPick); err != nil {
			return nil, err
		}
	}

	// Stage 2 — contestant-voted-out eliminations.
	eliminatedContestants := make(map[common.ID]bool)
	for _, id := range season.EliminatedAtWeek(currentWeek) {
		eliminatedContestants[id] = true
	}
	weekPicks, err := uc.Picks.ListByPoolWeek(ctx, poolID, currentWeek)
	if err != nil {
		return nil, err
	}
	for _, p := range weekPicks {
		if !eliminatedContestants[p.ContestantID] {
			continue
		}
		m := byUser[p.UserID]
		if m == nil || m.Status != entities.StatusActive {
			continue
		}
		if err := eliminate(m, entities.ReasonContestantVotedOut); err != nil {
			return nil, err
		}
	}

	// Stage 3 — no-options-left eliminations.
	eligibleNext := services.ActiveContestants(season, currentWeek+1)
	for _, m := range members {
		if m.Status != entities.StatusActive {
			continue
		}
		userPicks, err := uc.Picks.ListByPoolUser(ctx, poolID, m.UserID)
		if err != nil {
			return nil, err
		}
		used := make(map[common.ID]bool, len(userPicks))
		for _, p := range userPicks {
			used[p.ContestantID] = true
		}
		remaining := false
		for id := range eligibleNext {
			if !used[id] {
				remaining = true
				break
			}
		}
		if remaining {
			continue
		}
		if err := eliminate(m, entities.ReasonNoOptionsLeft); err != nil {
			return nil, err
		}
	}

	// Stage 4 — completion detection.
	var activeCount int
	for _, m := range members {
		if m.Status == entities.StatusActive {
			activeCount++
		}
	}

	var winners []*entities.Membership
	completed := false
	if pool.IsCompetitive {
		switch {
		case activeCount == 1:
			for _, m := range members {
				if m.Status == entities.StatusActive {
					winners = []*entities.Membership{m}
					break
				}
			}
			completed = true
		case activeCount == 0 && len(eliminatedThisAdvance) >= 1:
			winners = eliminatedThisAdvance
			completed = true
		}
	}

	// Stage 5 — persistence.
	if completed {
		winnerIDs := make([]common.ID, 0, len(winners))
		for _, w := range winners {
			w.PromoteToWinner(currentWeek, now)
			if err := uc.Memberships.Upsert(ctx, w); err != nil {
				return nil, err
			}
			winnerIDs = append(winnerIDs, w.UserID)
		}

		pool.Complete(currentWeek, now, winnerIDs)
		if err := uc.Pools.Update(ctx, pool); err != nil {
			return nil, err
		}

		if err := RecalculatePoolScores(ctx, uc.Picks, uc.Memberships, season, poolID, currentWeek, members); err != nil {
			return nil, err
		}
	} else {
		ok, err := uc.Pools.CompareAndSwapCurrentWeek(ctx, poolID, currentWeek)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, common.NewErrConflict("concurrent_modification")
		}
		currentWeek++

		if err := RecalculatePoolScores(ctx, uc.Picks, uc.Memberships, season, poolID, currentWeek, members); err != nil {
			return nil, err
		}
	}

	// Stage 6 — reporting. Tie-closure winners are excluded from eliminations.
	winnerSet := make(map[common.ID]bool, len(winners))
	for _, w := range winners {
		winnerSet[w.UserID] = true
	}

	var eliminationReports []EliminationReport
	for _, m := range eliminatedThisAdvance {
		if winnerSet[m.UserID] {
			continue
		}
		eliminationReports = append(eliminationReports, EliminationReport{
			UserID:      m.UserID,
			DisplayName: displayName(m.UserID),
			Reason:      *m.EliminationReason,
		})
	}
	sort.Slice(eliminationReports, func(i, j int) bool {
		return strings.ToLower(eliminationReports[i].DisplayName) < strings.ToLower(eliminationReports[j].DisplayName)
	})

	var winnerReports []WinnerReport
	for _, w := range winners {
		winnerReports = append(winnerReports, WinnerReport{UserID: w.UserID, DisplayName: displayName(w.UserID)})
	}
	sort.Slice(winnerReports, func(i, j int) bool {
		return strings.ToLower(winnerReports[i].DisplayName) < strings.ToLower(winnerReports[j].DisplayName)
	})

	slog.InfoContext(ctx, "pool week advanced",
		"pool_id", poolID.Hex(), "new_current_week", currentWeek,
		"completed", completed, "eliminations", len(eliminationReports))

	return &AdvanceWeekResult{
		NewCurrentWeek: currentWeek,
		Eliminations:   eliminationReports,
		PoolCompleted:  completed,
		Winners:        winnerReports,
	}, nil
}
