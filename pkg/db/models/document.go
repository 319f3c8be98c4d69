package models

// Document is a downloadable publication (rapports, guides, formulaires).
// Unlike news items, documents go live as soon as they are created.
type Document struct {
	ContentBase
	Titre       string `json:"titre" gorm:"column:titre;not null"`
	Description string `json:"description" gorm:"column:description;type:text"`
	Categorie   string `json:"categorie" gorm:"column:categorie"`
	FichierURL  string `json:"fichier_url" gorm:"column:fichier_url;not null"`
}

func (Document) TableName() string { return "documents" }
