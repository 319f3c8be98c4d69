package models

import (
	"time"

	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	"github.com/google/uuid"
)

// Media tracks an object uploaded to the storage bucket.
type Media struct {
	ID        uuid.UUID       `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Kind      enums.MediaKind `json:"kind" gorm:"column:kind;not null"`
	ObjectKey string          `json:"object_key" gorm:"column:object_key;not null;uniqueIndex"`
	FileName  string          `json:"file_name" gorm:"column:file_name;not null"`
	MimeType  string          `json:"mime_type" gorm:"column:mime_type;not null"`
	SizeBytes int64           `json:"size_bytes" gorm:"column:size_bytes;not null"`
	URL       string          `json:"url" gorm:"column:url;not null"`
	CreatedBy *uuid.UUID      `json:"created_by,omitempty" gorm:"column:created_by;type:uuid"`
	CreatedAt time.Time       `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (Media) TableName() string { return "medias" }
