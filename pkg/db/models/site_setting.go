package models

import (
	"time"

	dbtypes "github.com/agence-judiciaire/aje-backend/pkg/db/types"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	"github.com/google/uuid"
)

// SiteSetting is one typed settings document keyed by name (coordonnees,
// reseaux_sociaux, mot_directeur, antennes). The raw column holds the JSON
// payload; the settings service decodes it into its concrete schema.
type SiteSetting struct {
	ID        uuid.UUID        `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Cle       enums.SettingKey `json:"cle" gorm:"column:cle;not null;uniqueIndex"`
	Valeur    dbtypes.JSONMap  `json:"valeur" gorm:"column:valeur;type:jsonb;not null;default:'{}'"`
	UpdatedBy *uuid.UUID       `json:"updated_by,omitempty" gorm:"column:updated_by;type:uuid"`
	CreatedAt time.Time        `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (SiteSetting) TableName() string { return "site_settings" }
