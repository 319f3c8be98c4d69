package models

import "time"

// Jurisprudence is a court decision summarized for the public case-law page.
type Jurisprudence struct {
	ContentBase
	Titre          string     `json:"titre" gorm:"column:titre;not null"`
	Juridiction    string     `json:"juridiction" gorm:"column:juridiction;not null"`
	NumeroDecision string     `json:"numero_decision" gorm:"column:numero_decision"`
	DateDecision   *time.Time `json:"date_decision,omitempty" gorm:"column:date_decision"`
	Resume         string     `json:"resume" gorm:"column:resume;type:text"`
	FichierURL     string     `json:"fichier_url" gorm:"column:fichier_url"`
}

func (Jurisprudence) TableName() string { return "jurisprudences" }
