package models

import (
	"time"

	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	"github.com/google/uuid"
)

// Candidature is an application submitted against a job offer. The offre_id
// column carries no foreign key on purpose: deleting an offer must not erase
// the applications received for it.
type Candidature struct {
	ID        uuid.UUID           `json:"id" gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	OffreID   uuid.UUID           `json:"offre_id" gorm:"column:offre_id;type:uuid;not null"`
	Nom       string              `json:"nom" gorm:"column:nom;not null"`
	Email     string              `json:"email" gorm:"column:email;not null"`
	Telephone string              `json:"telephone" gorm:"column:telephone"`
	CVURL     string              `json:"cv_url" gorm:"column:cv_url"`
	LettreURL string              `json:"lettre_url" gorm:"column:lettre_url"`
	Statut    enums.StatutDemande `json:"statut" gorm:"column:statut;not null;default:'nouveau'"`
	CreatedAt time.Time           `json:"created_at" gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `json:"updated_at" gorm:"column:updated_at;autoUpdateTime"`
}

func (Candidature) TableName() string { return "candidatures" }
