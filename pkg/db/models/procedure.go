package models

import (
	dbtypes "github.com/agence-judiciaire/aje-backend/pkg/db/types"
)

// Procedure describes an administrative procedure and its ordered steps.
type Procedure struct {
	ContentBase
	Titre       string              `json:"titre" gorm:"column:titre;not null"`
	Description string              `json:"description" gorm:"column:description;type:text"`
	Etapes      dbtypes.StringArray `json:"etapes" gorm:"column:etapes;type:jsonb;not null;default:'[]'"`
}

func (Procedure) TableName() string { return "procedures" }
