package models

import (
	dbtypes "github.com/agence-judiciaire/aje-backend/pkg/db/types"
)

// Actualite is a news item shown on the public home and news pages.
// Photos, videos and attached PDFs are embedded JSON collections replaced
// whole on update.
type Actualite struct {
	ContentBase
	Titre         string                 `json:"titre" gorm:"column:titre;not null"`
	Contenu       string                 `json:"contenu" gorm:"column:contenu;type:text;not null"`
	Categorie     string                 `json:"categorie" gorm:"column:categorie"`
	ImageURL      string                 `json:"image_url" gorm:"column:image_url"`
	Photos        dbtypes.AttachmentList `json:"photos" gorm:"column:photos;type:jsonb;not null;default:'[]'"`
	Videos        dbtypes.AttachmentList `json:"videos" gorm:"column:videos;type:jsonb;not null;default:'[]'"`
	PiecesJointes dbtypes.AttachmentList `json:"pieces_jointes" gorm:"column:pieces_jointes;type:jsonb;not null;default:'[]'"`
}

func (Actualite) TableName() string { return "actualites" }
