package mongodb

import (
	"context"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/pool/entities"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

const PicksCollection = "picks"

// PickRepository implements pool/ports/out.PickRepository.
type PickRepository struct {
	MongoDBRepository[entities.Pick]
}

func NewPickRepository(client *mongo.Client, dbName string) *PickRepository {
	repo := newRepository[entities.Pick](client, dbName, PicksCollection, "Pick")
	return &PickRepository{repo}
}

func (r *PickRepository) GetByPoolUserWeek(ctx context.Context, poolID, userID common.ID, week int) (*entities.Pick, error) {
	return r.findOne(ctx, bson.M{"pool_id": poolID, "user_id": userID, "week": week})
}

func (r *PickRepository) ListByPoolUser(ctx context.Context, poolID, userID common.ID) ([]*entities.Pick, error) {
	return r.findMany(ctx, bson.M{"pool_id": poolID, "user_id": userID})
}

func (r *PickRepository) ListByPoolWeek(ctx context.Context, poolID common.ID, week int) ([]*entities.Pick, error) {
	return r.findMany(ctx, bson.M{"pool_id": poolID, "week": week})
}

func (r *PickRepository) DeleteByPool(ctx context.Context, poolID common.ID) error {
	_, err := r.Collection().DeleteMany(ctx, bson.M{"pool_id": poolID})
	return err
}

func (r *PickRepository) DeleteByUser(ctx context.Context, userID common.ID) error {
	_, err := r.Collection().DeleteMany(ctx, bson.M{"user_id": userID})
	return err
}
