package models

import "time"

// Communique is an official press release.
type Communique struct {
	ContentBase
	Titre           string     `json:"titre" gorm:"column:titre;not null"`
	Contenu         string     `json:"contenu" gorm:"column:contenu;type:text;not null"`
	DatePublication *time.Time `json:"date_publication,omitempty" gorm:"column:date_publication"`
}

func (Communique) TableName() string { return "communiques" }
