package out

import (
	"context"

	common "github.com/survivor-pool/survivor-pool/pkg/domain"
	"github.com/survivor-pool/survivor-pool/pkg/domain/season/entities"
)

// SeasonRepository is the read path for season metadata.
type SeasonRepository interface {
	GetByID(ctx context.Context, id common.ID) (*entities.Season, error)
}
