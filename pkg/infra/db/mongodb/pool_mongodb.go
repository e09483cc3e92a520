package mongodb

import (
	"context"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const PoolsCollection = "pools"

// PoolRepository implements pool/ports/out.PoolRepository.
type PoolRepository struct {
	MongoDBRepository[entities.Pool]
}

func NewPoolRepository(client *mongo.Client, dbName string) *PoolRepository {
	repo := newRepository[entities.Pool](client, dbName, PoolsCollection, "Pool")
	return &PoolRepository{repo}
}

func (r *PoolRepository) Delete(ctx context.Context, id common.ID) error {
	return r.DeleteByID(ctx, id)
}

// CompareAndSwapCurrentWeek is the sole CAS point for week advancement (§5):
// it atomically bumps current_week from expectedWeek to expectedWeek+1.
func (r *PoolRepository) CompareAndSwapCurrentWeek(ctx context.Context, poolID common.ID, expectedWeek int) (bool, error) {
	result, err := r.Collection().UpdateOne(ctx,
		bson.M{"_id": poolID, "current_week": expectedWeek},
		bson.M{
			"$set": bson.M{
				"current_week": expectedWeek + 1,
				"updated_at":   time.Now().UTC(),
			},
		},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}

// CompareAndSwapCompetitive atomically flips is_competitive false->true and
// stamps competitive_since_week.
func (r *PoolRepository) CompareAndSwapCompetitive(ctx context.Context, poolID common.ID, sinceWeek int) (bool, error) {
	result, err := r.Collection().UpdateOne(ctx,
		bson.M{"_id": poolID, "is_competitive": false},
		bson.M{
			"$set": bson.M{
				"is_competitive":         true,
				"competitive_since_week": sinceWeek,
				"updated_at":             time.Now().UTC(),
			},
		},
	)
	if err != nil {
		return false, err
	}
	return result.MatchedCount == 1, nil
}
