package models

import (
	"time"

	"github.com/google/uuid"
)

// ContentBase carries the fields shared by every managed content row: a
// server-generated id, the publication flag gating public visibility, the
// display order and creation stamps.
type ContentBase struct {
	ID        uuid.UUID  `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Publie    bool       `json:"publie" gorm:"column:publie;not null;default:false"`
	Ordre     int        `json:"ordre" gorm:"column:ordre;not null;default:0"`
	CreatedBy *uuid.UUID `json:"created_by,omitempty" gorm:"column:created_by;type:uuid"`
	CreatedAt time.Time  `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time  `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (b *ContentBase) GetID() uuid.UUID {
	return b.ID
}

func (b *ContentBase) SetID(id uuid.UUID) {
	b.ID = id
}

func (b *ContentBase) IsPublished() bool {
	return b.Publie
}

func (b *ContentBase) SetPublished(published bool) {
	b.Publie = published
}

func (b *ContentBase) GetOrdre() int {
	return b.Ordre
}

func (b *ContentBase) SetOrdre(ordre int) {
	b.Ordre = ordre
}

// StampCreator records the authoring operator on first insert.
func (b *ContentBase) StampCreator(actorID *uuid.UUID) {
	if actorID != nil && *actorID != uuid.Nil {
		b.CreatedBy = actorID
	}
}
