package out

import (
	"context"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
)

// PoolRepository is the persistence contract for the pools collection.
type PoolRepository interface {
	Create(ctx context.Context, pool *entities.Pool) error
	Update(ctx context.Context, pool *entities.Pool) error
	GetByID(ctx context.Context, id common.ID) (*entities.Pool, error)
	Delete(ctx context.Context, id common.ID) error

	// CompareAndSwapCurrentWeek atomically bumps current_week from
	// expectedWeek to expectedWeek+1, returning ok=false if the
	// precondition did not hold (§5, the sole CAS point).
	CompareAndSwapCurrentWeek(ctx context.Context, poolID common.ID, expectedWeek int) (ok bool, err error)

	// CompareAndSwapCompetitive atomically flips is_competitive false->true
	// and stamps competitive_since_week, returning ok=false if the
	// precondition (is_competitive==false) did not hold.
	CompareAndSwapCompetitive(ctx context.Context, poolID common.ID, sinceWeek int) (ok bool, err error)
}

// MembershipRepository is the persistence contract for pool_memberships.
type MembershipRepository interface {
	Upsert(ctx context.Context, m *entities.Membership) error
	GetByPoolAndUser(ctx context.Context, poolID, userID common.ID) (*entities.Membership, error)
	ListByPool(ctx context.Context, poolID common.ID) ([]*entities.Membership, error)
	ListByUser(ctx context.Context, userID common.ID) ([]*entities.Membership, error)
	DeleteByPool(ctx context.Context, poolID common.ID) error
	DeleteByUser(ctx context.Context, userID common.ID) error

	// CompareAndSwapInvitedStatus atomically applies mutate to a membership
	// that is still invited, returning ok=false if it was not invited.
	CompareAndSwapInvitedStatus(ctx context.Context, poolID, userID common.ID, mutate func(m *entities.Membership)) (ok bool, err error)
}

// PickRepository is the persistence contract for picks.
type PickRepository interface {
	Create(ctx context.Context, p *entities.Pick) error
	GetByPoolUserWeek(ctx context.Context, poolID, userID common.ID, week int) (*entities.Pick, error)
	ListByPoolUser(ctx context.Context, poolID, userID common.ID) ([]*entities.Pick, error)
	ListByPoolWeek(ctx context.Context, poolID common.ID, week int) ([]*entities.Pick, error)
	DeleteByPool(ctx context.Context, poolID common.ID) error
	DeleteByUser(ctx context.Context, userID common.ID) error
}
