package common

import "time"

// Entity is implemented by every aggregate root persisted through the
// generic Mongo repository.
type Entity interface {
	GetID() ID
}

// BaseEntity carries the fields common to every stored aggregate.
type BaseEntity struct {
	ID        ID        `json:"id" bson:"_id"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
	UpdatedAt time.Time `json:"updated_at" bson:"updated_at"`
}

func (b BaseEntity) GetID() ID {
	return b.ID
}

// NewEntity stamps a fresh ID and timestamps for a new aggregate.
func NewEntity() BaseEntity {
	now := time.Now().UTC()
	return BaseEntity{
		ID:        NewID(),
		CreatedAt: now,
		UpdatedAt: now,
	}
}

// Touch refreshes UpdatedAt; call before persisting a mutation.
func (b *BaseEntity) Touch() {
	b.UpdatedAt = time.Now().UTC()
}
