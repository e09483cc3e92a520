package mongodb

import (
	"context"
	"log/slog"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoDBRepository is the shared CRUD core that every concrete repository
// in this package except MembershipRepository embeds. Domain-specific
// finders and CAS operations live on the wrapping type.
type MongoDBRepository[T common.Entity] struct {
	client     *mongo.Client
	dbName     string
	collection *mongo.Collection
	entityName string
}

func newRepository[T common.Entity](client *mongo.Client, dbName, collectionName, entityName string) MongoDBRepository[T] {
	return MongoDBRepository[T]{
		client:     client,
		dbName:     dbName,
		collection: client.Database(dbName).Collection(collectionName),
		entityName: entityName,
	}
}

func (r *MongoDBRepository[T]) Collection() *mongo.Collection {
	return r.collection
}

func (r *MongoDBRepository[T]) Create(ctx context.Context, entity *T) error {
	_, err := r.collection.InsertOne(ctx, entity)
	if err != nil {
		slog.ErrorContext(ctx, "create failed", "entity", r.entityName, "err", err)
		return err
	}
	return nil
}

func (r *MongoDBRepository[T]) Update(ctx context.Context, entity *T) error {
	id := any(*entity).(common.Entity).GetID()
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": id}, entity)
	if err != nil {
		slog.ErrorContext(ctx, "update failed", "entity", r.entityName, "err", err)
		return err
	}
	return nil
}

func (r *MongoDBRepository[T]) GetByID(ctx context.Context, id common.ID) (*T, error) {
	var entity T
	err := r.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&entity)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "get by id failed", "entity", r.entityName, "err", err)
		return nil, err
	}
	return &entity, nil
}

func (r *MongoDBRepository[T]) DeleteByID(ctx context.Context, id common.ID) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		slog.ErrorContext(ctx, "delete failed", "entity", r.entityName, "err", err)
		return err
	}
	return nil
}

func (r *MongoDBRepository[T]) findOne(ctx context.Context, filter bson.M) (*T, error) {
	var entity T
	err := r.collection.FindOne(ctx, filter).Decode(&entity)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		slog.ErrorContext(ctx, "find one failed", "entity", r.entityName, "err", err)
		return nil, err
	}
	return &entity, nil
}

func (r *MongoDBRepository[T]) findMany(ctx context.Context, filter bson.M) ([]*T, error) {
	cursor, err := r.collection.Find(ctx, filter)
	if err != nil {
		slog.ErrorContext(ctx, "find many failed", "entity", r.entityName, "err", err)
		return nil, err
	}
	defer cursor.Close(ctx)

	results := make([]*T, 0)
	for cursor.Next(ctx) {
		var entity T
		if err := cursor.Decode(&entity); err != nil {
			slog.ErrorContext(ctx, "decode failed", "entity", r.entityName, "err", err)
			return nil, err
		}
		copied := entity
		results = append(results, &copied)
	}
	return results, cursor.Err()
}
