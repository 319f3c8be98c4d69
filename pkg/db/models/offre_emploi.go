package models

import (
	"time"

	dbtypes "github.com/agence-judiciaire/aje-backend/pkg/db/types"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
)

// OffreEmploi is a job opening published on the careers page.
type OffreEmploi struct {
	ContentBase
	Titre       string              `json:"titre" gorm:"column:titre;not null"`
	Description string              `json:"description" gorm:"column:description;type:text;not null"`
	TypeContrat enums.TypeContrat   `json:"type_contrat" gorm:"column:type_contrat;not null"`
	Lieu        string              `json:"lieu" gorm:"column:lieu"`
	DateLimite  *time.Time          `json:"date_limite,omitempty" gorm:"column:date_limite"`
	Criteres    dbtypes.StringArray `json:"criteres" gorm:"column:criteres;type:jsonb;not null;default:'[]'"`
}

func (OffreEmploi) TableName() string { return "offres_emploi" }
