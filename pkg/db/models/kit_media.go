package models

// KitMediaElement is a downloadable press-kit asset (logos, official
// portraits, charters).
type KitMediaElement struct {
	ContentBase
	Titre       string `json:"titre" gorm:"column:titre;not null"`
	TypeElement string `json:"type_element" gorm:"column:type_element"`
	FichierURL  string `json:"fichier_url" gorm:"column:fichier_url;not null"`
}

func (KitMediaElement) TableName() string { return "kit_media" }
