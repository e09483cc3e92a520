package mongodb

import (
	"context"
	"time"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/user/entities"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const UsersCollection = "users"

// UserRepository implements user/ports/out.UserRepository.
type UserRepository struct {
	MongoDBRepository[entities.User]
}

func NewUserRepository(client *mongo.Client, dbName string) *UserRepository {
	repo := newRepository[entities.User](client, dbName, UsersCollection, "User")
	return &UserRepository{repo}
}

func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"username": username})
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *UserRepository) GetByIdentifier(ctx context.Context, identifier string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"$or": bson.A{
		bson.M{"username": identifier},
		bson.M{"email": identifier},
	}})
}

func (r *UserRepository) GetByVerificationToken(ctx context.Context, token string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"verification_token": token})
}

func (r *UserRepository) GetByResetToken(ctx context.Context, token string) (*entities.User, error) {
	return r.findOne(ctx, bson.M{"reset_token": token})
}

func (r *UserRepository) SearchByUsernamePrefix(ctx context.Context, query string, limit int) ([]*entities.User, error) {
	cursor, err := r.Collection().Find(ctx,
		bson.M{
			"username":       bson.M{"$regex": query, "$options": "i"},
			"account_status": string(entities.AccountActive),
		},
		options.Find().SetLimit(int64(limit)),
	)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	users := make([]*entities.User, 0)
	for cursor.Next(ctx) {
		var u entities.User
		if err := cursor.Decode(&u); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, cursor.Err()
}

func (r *UserRepository) Delete(ctx context.Context, id common.ID) error {
	return r.DeleteByID(ctx, id)
}

func (r *UserRepository) ClearDefaultPool(ctx context.Context, poolID common.ID) error {
	_, err := r.Collection().UpdateMany(ctx,
		bson.M{"default_pool": poolID},
		bson.M{"$unset": bson.M{"default_pool": ""}},
	)
	return err
}

// CompareAndSwapFailedLogin loads the user, applies mutate (which may reset
// or increment the lockout counters), and persists the after-image with an
// optimistic version check on updated_at so concurrent login attempts don't
// clobber each other's counters.
func (r *UserRepository) CompareAndSwapFailedLogin(ctx context.Context, id common.ID, mutate func(u *entities.User, now time.Time)) (*entities.User, error) {
	for {
		user, err := r.GetByID(ctx, id)
		if err != nil || user == nil {
			return user, err
		}

		before := user.UpdatedAt
		now := time.Now().UTC()
		mutate(user, now)
		user.Touch()

		result, err := r.Collection().UpdateOne(ctx,
			bson.M{"_id": id, "updated_at": before},
			bson.M{"$set": user},
		)
		if err != nil {
			return nil, err
		}
		if result.MatchedCount == 1 {
			return user, nil
		}
		// lost the race against a concurrent login attempt; retry
	}
}
