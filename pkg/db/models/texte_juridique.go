package models

import (
	"time"

	"github.com/agence-judiciaire/aje-backend/pkg/enums"
)

// TexteJuridique references a statute or regulation relevant to the agency.
type TexteJuridique struct {
	ContentBase
	Titre      string          `json:"titre" gorm:"column:titre;not null"`
	TypeTexte  enums.TypeTexte `json:"type_texte" gorm:"column:type_texte;not null"`
	Reference  string          `json:"reference" gorm:"column:reference"`
	DateTexte  *time.Time      `json:"date_texte,omitempty" gorm:"column:date_texte"`
	FichierURL string          `json:"fichier_url" gorm:"column:fichier_url"`
}

func (TexteJuridique) TableName() string { return "textes_juridiques" }
