// Package usecases implements the pool lifecycle engine operations of §4.F
// and the invite subsystem operations of §4.G, one file per operation.
package usecases

import (
	"context"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	season_entities "github.com/survivor-pool/survivor-pool/pkg/domain/season/entities"
	"github.com/survivor-pool/survivor-pool/pkg/domain/season/services"
)

// RecalculatePoolScores is the ONLY code path that writes
// available_contestants/score (§4.F.4), preserving I1 and I2 by
// construction.
func RecalculatePoolScores(
	ctx context.Context,
	picks pool_out.PickRepository,
	memberships pool_out.MembershipRepository,
	season *season_entities.Season,
	poolID common.ID,
	targetWeek int,
	members []*entities.Membership,
) error {
	eligible := services.ActiveContestants(season, targetWeek)

	for _, m := range members {
		if m.Status != entities.StatusActive {
			m.ClearAvailable()
			if err := memberships.Upsert(ctx, m); err != nil {
				return err
			}
			continue
		}

		userPicks, err := picks.ListByPoolUser(ctx, poolID, m.UserID)
		if err != nil {
			return err
		}

		used := make(map[common.ID]bool, len(userPicks))
		for _, p := range userPicks {
			if p.Week < targetWeek {
				used[p.ContestantID] = true
			}
		}

		remaining := make([]common.ID, 0, len(eligible))
		for id := range eligible {
			if !used[id] {
				remaining = append(remaining, id)
			}
		}

		m.SetAvailable(remaining)
		if err := memberships.Upsert(ctx, m); err != nil {
			return err
		}
	}

	return nil
}
