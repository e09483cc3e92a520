package usecases

import (
	"context"
	"sort"
	"strings"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	pool_entities "github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	pool_out "github.com/survivor-pool/survivor-pool/pkg/domain/pool/ports/out"
	"github.com/survivor-pool/survivor-pool/pkg/domain/user/entities"
	out "github.com/survivor-pool/survivor-pool/pkg/domain/user/ports/out"
)

// UserSearchResult is one ranked candidate from §4.D search_active_users.
type UserSearchResult struct {
	User             *entities.User
	MembershipStatus *pool_entities.MembershipStatus
}

// SearchActiveUsers is the usecase for §4.D search_active_users.
type SearchActiveUsers struct {
	Users       out.UserRepository
	Memberships pool_out.MembershipRepository
}

func (uc *SearchActiveUsers) Exec(ctx context.Context, query string, poolID *common.ID, limit int) ([]UserSearchResult, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []UserSearchResult{}, nil
	}
	if limit < 1 {
		limit = 1
	}
	if limit > 25 {
		limit = 25
	}

	fetchLimit := limit * 3
	if fetchLimit < 30 {
		fetchLimit = 30
	}

	candidates, err := uc.Users.SearchByUsernamePrefix(ctx, query, fetchLimit)
	if err != nil {
		return nil, err
	}

	lowerQuery := strings.ToLower(query)

	excluded := map[common.ID]pool_entities.MembershipStatus{}
	if poolID != nil {
		memberships, err := uc.Memberships.ListByPool(ctx, *poolID)
		if err != nil {
			return nil, err
		}
		for _, m := range memberships {
			excluded[m.UserID] = m.Status
		}
	}

	type ranked struct {
		user   *entities.User
		status *pool_entities.MembershipStatus
		rank   int
	}

	var candidatesRanked []ranked
	for _, u := range candidates {
		lowerUsername := strings.ToLower(u.Username)
		if !strings.Contains(lowerUsername, lowerQuery) {
			continue
		}

		var statusPtr *pool_entities.MembershipStatus
		if poolID != nil {
			if status, ok := excluded[u.GetID()]; ok {
				if status == pool_entities.StatusActive || status == pool_entities.StatusInvited || status == pool_entities.StatusEliminated {
					continue
				}
				s := status
				statusPtr = &s
			}
		}

		rank := 2
		switch {
		case lowerUsername == lowerQuery:
			rank = 0
		case strings.HasPrefix(lowerUsername, lowerQuery):
			rank = 1
		}

		candidatesRanked = append(candidatesRanked, ranked{user: u, status: statusPtr, rank: rank})
	}

	sort.SliceStable(candidatesRanked, func(i, j int) bool {
		if candidatesRanked[i].rank != candidatesRanked[j].rank {
			return candidatesRanked[i].rank < candidatesRanked[j].rank
		}
		return strings.ToLower(candidatesRanked[i].user.Username) < strings.ToLower(candidatesRanked[j].user.Username)
	})

	if len(candidatesRanked) > limit {
		candidatesRanked = candidatesRanked[:limit]
	}

	results := make([]UserSearchResult, 0, len(candidatesRanked))
	for _, c := range candidatesRanked {
		results = append(results, UserSearchResult{User: c.user, MembershipStatus: c.status})
	}

	return results, nil
}
