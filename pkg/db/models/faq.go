package models

// FAQ is a question/answer entry grouped by category.
type FAQ struct {
	ContentBase
	Question  string `json:"question" gorm:"column:question;not null"`
	Reponse   string `json:"reponse" gorm:"column:reponse;type:text;not null"`
	Categorie string `json:"categorie" gorm:"column:categorie"`
}

func (FAQ) TableName() string { return "faqs" }
