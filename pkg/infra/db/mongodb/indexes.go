package mongodb

import (
	"context"
	"fmt"
	"log/slog"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// IndexDefinition describes one index to create at startup.
type IndexDefinition struct {
	Collection string
	Name       string
	Keys       bson.D
	Options    *options.IndexOptions
}

// GetAllIndexes returns every index definition required by §5's uniqueness
// and lookup guarantees.
func GetAllIndexes() []IndexDefinition {
	return []IndexDefinition{
		{
			Collection: UsersCollection,
			Name:       "idx_users_username_unique",
			Keys:       bson.D{{Key: "username", Value: 1}},
			Options:    options.Index().SetUnique(true),
		},
		{
			Collection: UsersCollection,
			Name:       "idx_users_email_unique",
			Keys:       bson.D{{Key: "email", Value: 1}},
			Options:    options.Index().SetUnique(true),
		},
		{
			Collection: UsersCollection,
			Name:       "idx_users_verification_token",
			Keys:       bson.D{{Key: "verification_token", Value: 1}},
			Options:    options.Index().SetSparse(true),
		},
		{
			Collection: UsersCollection,
			Name:       "idx_users_reset_token",
			Keys:       bson.D{{Key: "reset_token", Value: 1}},
			Options:    options.Index().SetSparse(true),
		},
		{
			Collection: PoolMembershipsCollection,
			Name:       "idx_memberships_pool_user_unique",
			Keys:       bson.D{{Key: "pool_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options:    options.Index().SetUnique(true),
		},
		{
			Collection: PoolMembershipsCollection,
			Name:       "idx_memberships_user",
			Keys:       bson.D{{Key: "user_id", Value: 1}},
			Options:    options.Index(),
		},
		{
			Collection: PicksCollection,
			Name:       "idx_picks_pool_user_week_unique",
			Keys:       bson.D{{Key: "pool_id", Value: 1}, {Key: "user_id", Value: 1}, {Key: "week", Value: 1}},
			Options:    options.Index().SetUnique(true),
		},
		{
			Collection: PicksCollection,
			Name:       "idx_picks_pool_week",
			Keys:       bson.D{{Key: "pool_id", Value: 1}, {Key: "week", Value: 1}},
			Options:    options.Index(),
		},
		{
			Collection: PicksCollection,
			Name:       "idx_picks_user",
			Keys:       bson.D{{Key: "user_id", Value: 1}},
			Options:    options.Index(),
		},
		{
			Collection: PoolsCollection,
			Name:       "idx_pools_owner",
			Keys:       bson.D{{Key: "owner_id", Value: 1}},
			Options:    options.Index(),
		},
	}
}

// CreateIndexes creates all indexes needed by the system, tolerating
// already-present indexes across restarts.
func CreateIndexes(ctx context.Context, client *mongo.Client, dbName string) error {
	db := client.Database(dbName)
	indexes := GetAllIndexes()

	errorCount := 0
	for _, idx := range indexes {
		collection := db.Collection(idx.Collection)
		model := mongo.IndexModel{Keys: idx.Keys, Options: idx.Options.SetName(idx.Name)}

		if _, err := collection.Indexes().CreateOne(ctx, model); err != nil {
			if mongo.IsDuplicateKeyError(err) {
				continue
			}
			slog.ErrorContext(ctx, "failed to create index", "collection", idx.Collection, "index", idx.Name, "err", err)
			errorCount++
			continue
		}
		slog.InfoContext(ctx, "created index", "collection", idx.Collection, "index", idx.Name)
	}

	if errorCount > 0 {
		return fmt.Errorf("failed to create %d indexes", errorCount)
	}
	return nil
}
