package usecases

import (
	"context"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	season_out "github.com/survivor-pool/survivor-pool/pkg/domain/season/ports/out"
	"github.com/survivor-pool/survivor-pool/pkg/domain/season/services"
)

// AvailableContestant enriches a cached available contestant id with
// display data (§4.F.7).
type AvailableContestant struct {
	ContestantID common.ID
	Name         string
	TribeName    string
	TribeColor   string
}

// AvailableContestantsView is the response of get_available_contestants.
type AvailableContestantsView struct {
	IsEliminated      bool
	EliminationReason *entities.EliminationReason
	EliminatedWeek    *int
	IsWinner          bool
	Contestants       []AvailableContestant
	CurrentWeekPicked *common.ID

	PoolStatus    entities.PoolStatus
	CompletedWeek *int
	CompletedAt   *time.Time
	Winners       []common.ID
	DidTie        bool
}

// GetAvailableContestants is the usecase for §4.F.7.
type GetAvailableContestants struct {
	Pools       pool_out.PoolRepository
	Memberships pool_out.MembershipRepository
	Picks       pool_out.PickRepository
	Seasons     season_out.SeasonRepository
}

func (uc *GetAvailableContestants) Exec(ctx context.Context, poolID, userID common.ID) (*AvailableContestantsView, error) {
	pool, err := uc.Pools.GetByID(ctx, poolID)
	if err != nil || pool == nil {
		return nil, common.NewErrNotFound(common.PoolResourceType, "id", poolID.Hex())
	}

	m, err := uc.Memberships.GetByPoolAndUser(ctx, poolID, userID)
	if err != nil || m == nil {
		return nil, common.NewErrForbidden("not_a_member")
	}

	if m.Status == entities.StatusActive && m.Score != len(m.AvailableContestants) {
		return nil, common.NewErrInternal("cache_invalid")
	}

	view := &AvailableContestantsView{
		PoolStatus:    pool.Status,
		CompletedWeek: pool.CompletedWeek,
		CompletedAt:   pool.CompletedAt,
		Winners:       pool.Winners,
		DidTie:        len(pool.Winners) > 1,
	}

	switch m.Status {
	case entities.StatusEliminated:
		view.IsEliminated = true
		view.EliminationReason = m.EliminationReason
		view.EliminatedWeek = m.EliminatedWeek
		return view, nil
	case entities.StatusWinner:
		view.IsWinner = true
		return view, nil
	case entities.StatusActive:
		// enriched below
	default:
		return nil, common.NewErrForbidden("not_a_member")
	}

	season, err := uc.Seasons.GetByID(ctx, pool.SeasonID)
	if err != nil || season == nil {
		return nil, common.NewErrInternal("season unavailable for pool")
	}

	currentPick, err := uc.Picks.GetByPoolUserWeek(ctx, poolID, userID, pool.CurrentWeek)
	if err != nil {
		return nil, err
	}
	if currentPick != nil {
		view.CurrentWeekPicked = &currentPick.ContestantID
	}

	contestants := make([]AvailableContestant, 0, len(m.AvailableContestants))
	for _, id := range m.AvailableContestants {
		c, ok := season.Contestant(id)
		if !ok {
			continue
		}
		name, color := services.ResolveTribe(season, id, pool.CurrentWeek)
		contestants = append(contestants, AvailableContestant{
			ContestantID: id,
			Name:         c.Name,
			TribeName:    name,
			TribeColor:   color,
		})
	}
	view.Contestants = contestants

	return view, nil
}
