package models

import (
	"time"

	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	"github.com/google/uuid"
)

// DemandeContact is a message sent through the public contact form.
type DemandeContact struct {
	ID        uuid.UUID           `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference string              `json:"reference" gorm:"column:reference;not null;uniqueIndex"`
	Nom       string              `json:"nom" gorm:"column:nom;not null"`
	Email     string              `json:"email" gorm:"column:email;not null"`
	Telephone string              `json:"telephone" gorm:"column:telephone"`
	Sujet     string              `json:"sujet" gorm:"column:sujet;not null"`
	Message   string              `json:"message" gorm:"column:message;type:text;not null"`
	Statut    enums.StatutDemande `json:"statut" gorm:"column:statut;not null;default:'nouveau'"`
	CreatedAt time.Time           `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (DemandeContact) TableName() string { return "demandes_contact" }

// DemandeAvis is a request for a legal opinion filed by a public body.
type DemandeAvis struct {
	ID             uuid.UUID           `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference      string              `json:"reference" gorm:"column:reference;not null;uniqueIndex"`
	Nom            string              `json:"nom" gorm:"column:nom;not null"`
	Email          string              `json:"email" gorm:"column:email;not null"`
	Telephone      string              `json:"telephone" gorm:"column:telephone"`
	Administration string              `json:"administration" gorm:"column:administration;not null"`
	Objet          string              `json:"objet" gorm:"column:objet;not null"`
	Description    string              `json:"description" gorm:"column:description;type:text;not null"`
	Statut         enums.StatutDemande `json:"statut" gorm:"column:statut;not null;default:'nouveau'"`
	CreatedAt      time.Time           `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time           `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (DemandeAvis) TableName() string { return "demandes_avis" }

// Signalement is an irregularity report; the author may stay anonymous.
type Signalement struct {
	ID          uuid.UUID           `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference   string              `json:"reference" gorm:"column:reference;not null;uniqueIndex"`
	Nom         string              `json:"nom" gorm:"column:nom"`
	Email       string              `json:"email" gorm:"column:email"`
	Categorie   string              `json:"categorie" gorm:"column:categorie;not null"`
	Description string              `json:"description" gorm:"column:description;type:text;not null"`
	Statut      enums.StatutDemande `json:"statut" gorm:"column:statut;not null;default:'nouveau'"`
	CreatedAt   time.Time           `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt   time.Time           `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Signalement) TableName() string { return "signalements" }

// AccreditationPresse is a press accreditation request.
type AccreditationPresse struct {
	ID        uuid.UUID           `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference string              `json:"reference" gorm:"column:reference;not null;uniqueIndex"`
	Nom       string              `json:"nom" gorm:"column:nom;not null"`
	Email     string              `json:"email" gorm:"column:email;not null"`
	Organe    string              `json:"organe" gorm:"column:organe;not null"`
	Fonction  string              `json:"fonction" gorm:"column:fonction"`
	Motif     string              `json:"motif" gorm:"column:motif;type:text"`
	Statut    enums.StatutDemande `json:"statut" gorm:"column:statut;not null;default:'nouveau'"`
	CreatedAt time.Time           `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (AccreditationPresse) TableName() string { return "accreditations_presse" }

// NewsletterAbonne is a newsletter subscription.
type NewsletterAbonne struct {
	ID        uuid.UUID `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Reference string    `json:"reference" gorm:"column:reference;not null;uniqueIndex"`
	Email     string    `json:"email" gorm:"column:email;not null;uniqueIndex"`
	CreatedAt time.Time `json:"created_at" gorm:"column:created_at;autoCreateTime"`
}

func (NewsletterAbonne) TableName() string { return "newsletter_abonnes" }
