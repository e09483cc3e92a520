package mongodb

import (
	"github.com/survivor-pool/survivor-pool/pkg/domain/season/entities"
	"go.mongodb.org/mongo-driver/mongo"
)

const SeasonsCollection = "seasons"

// SeasonRepository implements season/ports/out.SeasonRepository. Seasons
// are reference data (read-only from the pool engine's perspective), so
// only GetByID is exposed beyond the generic core.
type SeasonRepository struct {
	MongoDBRepository[entities.Season]
}

func NewSeasonRepository(client *mongo.Client, dbName string) *SeasonRepository {
	repo := newRepository[entities.Season](client, dbName, SeasonsCollection, "Season")
	return &SeasonRepository{repo}
}
