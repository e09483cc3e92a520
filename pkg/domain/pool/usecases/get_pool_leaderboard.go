package usecases

import (
	"context"
	"sort"
	"strings"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	user_out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// LeaderboardEntry is one ranked row of get_pool_leaderboard (§4.F.9).
type LeaderboardEntry struct {
	UserID            common.ID
	DisplayName       string
	Score             int
	Status            entities.MembershipStatus
	IsWinner          bool
	EliminationReason *entities.EliminationReason
	EliminatedWeek    *int
	FinalRank         *int
	FinishedWeek      *int
	FinishedDate      *time.Time
	Rank              int
}

// GetPoolLeaderboard is the usecase for §4.F.9.
type GetPoolLeaderboard struct {
	Memberships pool_out.MembershipRepository
	Users       user_out.UserRepository
}

func (uc *GetPoolLeaderboard) Exec(ctx context.Context, poolID, viewerID common.ID) ([]LeaderboardEntry, error) {
	members, err := uc.Memberships.ListByPool(ctx, poolID)
	if err != nil {
		return nil, err
	}

	viewer, err := uc.Memberships.GetByPoolAndUser(ctx, poolID, viewerID)
	if err != nil || viewer == nil || !isLeaderboardVisible(viewer.Status) {
		return nil, common.NewErrForbidden("not_a_member")
	}

	var entries []LeaderboardEntry
	for _, m := range members {
		if !isLeaderboardVisible(m.Status) {
			continue
		}

		display := m.UserID.Hex()
		if u, err := uc.Users.GetByID(ctx, m.UserID); err == nil && u != nil {
			display = u.DisplayName()
		}

		entries = append(entries, LeaderboardEntry{
			UserID:            m.UserID,
			DisplayName:       display,
			Score:             m.Score,
			Status:            m.Status,
			IsWinner:          m.Status == entities.StatusWinner,
			EliminationReason: m.EliminationReason,
			EliminatedWeek:    m.EliminatedWeek,
			FinalRank:         m.FinalRank,
			FinishedWeek:      m.FinishedWeek,
			FinishedDate:      m.FinishedDate,
		})
	}

	sort.Slice(entries, func(i, j int) bool {
		if entries[i].Score != entries[j].Score {
			return entries[i].Score > entries[j].Score
		}
		return strings.ToLower(entries[i].DisplayName) < strings.ToLower(entries[j].DisplayName)
	})

	for i := range entries {
		if i == 0 || entries[i].Score != entries[i-1].Score {
			entries[i].Rank = i + 1
		} else {
			entries[i].Rank = entries[i-1].Rank
		}
	}

	return entries, nil
}

func isLeaderboardVisible(status entities.MembershipStatus) bool {
	switch status {
	case entities.StatusActive, entities.StatusEliminated, entities.StatusWinner:
		return true
	default:
		return false
	}
}
