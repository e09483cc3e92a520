package mongodb

import (
	"context"
	"log/slog"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const PoolMembershipsCollection = "pool_memberships"

// MembershipRepository implements pool/ports/out.MembershipRepository.
// Memberships are keyed by the natural (pool_id, user_id) pair rather than
// an opaque id, so it does not embed MongoDBRepository[T].
type MembershipRepository struct {
	collection *mongo.Collection
}

func NewMembershipRepository(client *mongo.Client, dbName string) *MembershipRepository {
	return &MembershipRepository{collection: client.Database(dbName).Collection(PoolMembershipsCollection)}
}

func (r *MembershipRepository) Upsert(ctx context.Context, m *entities.Membership) error {
	_, err := r.collection.ReplaceOne(ctx,
		bson.M{"pool_id": m.PoolID, "user_id": m.UserID},
		m,
		options.Replace().SetUpsert(true),
	)
	if err != nil {
		slog.ErrorContext(ctx, "membership upsert failed", "err", err)
	}
	return err
}

func (r *MembershipRepository) GetByPoolAndUser(ctx context.Context, poolID, userID common.ID) (*entities.Membership, error) {
	var m entities.Membership
	err := r.collection.FindOne(ctx, bson.M{"pool_id": poolID, "user_id": userID}).Decode(&m)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *MembershipRepository) ListByPool(ctx context.Context, poolID common.ID) ([]*entities.Membership, error) {
	return r.find(ctx, bson.M{"pool_id": poolID})
}

func (r *MembershipRepository) ListByUser(ctx context.Context, userID common.ID) ([]*entities.Membership, error) {
	return r.find(ctx, bson.M{"user_id": userID})
}

func (r *MembershipRepository) find(ctx context.Context, filter bson.M) ([]*entities.Membership, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	memberships := make([]*entities.Membership, 0)
	for cursor.Next(ctx) {
		var m entities.Membership
		if err := cursor.Decode(&m); err != nil {
			return nil, err
		}
		memberships = append(memberships, &m)
	}
	return memberships, cursor.Err()
}

func (r *MembershipRepository) DeleteByPool(ctx context.Context, poolID common.ID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"pool_id": poolID})
	return err
}

func (r *MembershipRepository) DeleteByUser(ctx context.Context, userID common.ID) error {
	_, err := r.collection.DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}

// CompareAndSwapInvitedStatus loads the membership, applies mutate, and
// replaces the document only if it was still invited at the time of the
// write — the status field itself is the CAS guard, so a concurrent
// accept/decline race loses cleanly instead of double-applying.
func (r *MembershipRepository) CompareAndSwapInvitedStatus(ctx context.Context, poolID, userID common.ID, mutate func(m *entities.Membership)) (bool, error) {
	var current entities.Membership
	err := r.collection.FindOne(ctx, bson.M{
		"pool_id": poolID,
		"user_id": userID,
		"status":  entities.StatusInvited,
	}).Decode(&current)
	if err == mongo.ErrNoDocuments {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	mutate(&current)

	result, err := r.collection.ReplaceOne(ctx, bson.M{
		"pool_id": poolID,
		"user_id": userID,
		"status":  entities.StatusInvited,
	}, &current)
	if err != nil {
		return false, err
	}
	if result.MatchedCount == 0 {
		return false, nil
	}
	return true, nil
}
