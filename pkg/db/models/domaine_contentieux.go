package models

import "github.com/shopspring/decimal"

// DomaineContentieux is a litigation domain with its headline figures.
type DomaineContentieux struct {
	ContentBase
	Nom             string          `json:"nom" gorm:"column:nom;not null"`
	Description     string          `json:"description" gorm:"column:description;type:text"`
	MontantRecupere decimal.Decimal `json:"montant_recupere" gorm:"column:montant_recupere;type:numeric(14,2);not null;default:0"`
	NombreDossiers  int             `json:"nombre_dossiers" gorm:"column:nombre_dossiers;not null;default:0"`
}

func (DomaineContentieux) TableName() string { return "domaines_contentieux" }
