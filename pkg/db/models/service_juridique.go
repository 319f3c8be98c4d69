package models

// ServiceJuridique is one of the legal services presented on the site.
type ServiceJuridique struct {
	ContentBase
	Nom         string `json:"nom" gorm:"column:nom;not null"`
	Description string `json:"description" gorm:"column:description;type:text"`
	Icone       string `json:"icone" gorm:"column:icone"`
}

func (ServiceJuridique) TableName() string { return "services_juridiques" }
