package models

import (
	"time"

	dbtypes "github.com/agence-judiciaire/aje-backend/pkg/db/types"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	"github.com/google/uuid"
)

// AuditLog records one back-office mutation.
type AuditLog struct {
	ID        uuid.UUID         `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Action    enums.AuditAction `json:"action" gorm:"column:action;not null"`
	Table     string            `json:"table" gorm:"column:table_name;not null"`
	RecordID  *uuid.UUID        `json:"record_id,omitempty" gorm:"column:record_id;type:uuid"`
	ActorID   *uuid.UUID        `json:"actor_id,omitempty" gorm:"column:actor_id;type:uuid"`
	Payload   dbtypes.JSONMap   `json:"payload" gorm:"column:payload;type:jsonb;not null;default:'{}'"`
	CreatedAt time.Time         `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (AuditLog) TableName() string { return "audit_logs" }
