// Package emplois covers the careers page: applications filed against
// published job offers, and the expiry of offers past their deadline.
// The offers themselves are ordinary content rows managed by the content
// package.
package emplois

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agence-judiciaire/aje-backend/internal/content"
	"github.com/agence-judiciaire/aje-backend/pkg/db/models"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type offreLoader interface {
	Get(ctx context.Context, id uuid.UUID, scope content.Scope) (*models.OffreEmploi, error)
}

type auditRecorder interface {
	Record(ctx context.Context, action enums.AuditAction, table string, recordID *uuid.UUID, actorID *uuid.UUID, payload map[string]any)
}

// CandidatureInput is the payload of the public application form. The CV
// and cover letter are uploaded beforehand through the media presign
// flow; only their URLs travel here.
type CandidatureInput struct {
	Nom       string `json:"nom"`
	Email     string `json:"email"`
	Telephone string `json:"telephone,omitempty"`
	CVURL     string `json:"cv_url"`
	LettreURL string `json:"lettre_url,omitempty"`
}

func (r CandidatureInput) Validate() error {
	return validation.ValidateStruct(&r,
		validation.Field(&r.Nom, validation.Required.Error("nom is required"), validation.Length(2, 200)),
		validation.Field(&r.Email, validation.Required.Error("email is required"), is.EmailFormat.Error("invalid email format")),
		validation.Field(&r.CVURL, validation.Required.Error("cv_url is required"), is.URL.Error("cv_url must be a URL")),
		validation.Field(&r.LettreURL, validation.When(r.LettreURL != "", is.URL.Error("lettre_url must be a URL"))),
	)
}

// Repository persists candidatures.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a candidature repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a candidature.
func (r *Repository) Create(ctx context.Context, row *models.Candidature) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.db.WithContext(ctx).Create(row).Error
}

// FindByID loads one candidature.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Candidature, error) {
	var row models.Candidature
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// List returns candidatures newest first, optionally narrowed to one
// offer or one statut.
func (r *Repository) List(ctx context.Context, offreID *uuid.UUID, statut enums.StatutDemande, limit, offset int) ([]models.Candidature, error) {
	qb := r.db.WithContext(ctx).Model(&models.Candidature{})
	if offreID != nil {
		qb = qb.Where("offre_id = ?", *offreID)
	}
	if strings.TrimSpace(string(statut)) != "" {
		qb = qb.Where("statut = ?", statut)
	}
	if limit > 0 {
		qb = qb.Limit(limit)
	}
	if offset > 0 {
		qb = qb.Offset(offset)
	}

	var rows []models.Candidature
	if err := qb.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// UpdateStatut sets the handling state of one candidature.
func (r *Repository) UpdateStatut(ctx context.Context, id uuid.UUID, statut enums.StatutDemande) (bool, error) {
	result := r.db.WithContext(ctx).Model(&models.Candidature{}).
		Where("id = ?", id).
		UpdateColumn("statut", statut)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UnpublishExpiredOffres hides published offers whose deadline has
// passed. Returns the number of offers taken down.
func (r *Repository) UnpublishExpiredOffres(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.OffreEmploi{}).
		Where("publie = ?", true).
		Where("date_limite IS NOT NULL AND date_limite < ?", now).
		UpdateColumn("publie", false)
	return result.RowsAffected, result.Error
}

// Service handles job applications.
type Service struct {
	repo   *Repository
	offres offreLoader
	audit  auditRecorder
}

// NewService constructs the emplois service.
func NewService(repo *Repository, offres offreLoader, audit auditRecorder) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("candidature repository required")
	}
	if offres == nil {
		return nil, fmt.Errorf("offre loader required")
	}
	return &Service{repo: repo, offres: offres, audit: audit}, nil
}

// Apply files an application against a published offer. Applications on
// offers past their deadline are refused even if the offer is still
// visible.
func (s *Service) Apply(ctx context.Context, offreID uuid.UUID, input CandidatureInput) (*models.Candidature, error) {
	if err := input.Validate(); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	offre, err := s.offres.Get(ctx, offreID, content.ScopePublic)
	if err != nil {
		return nil, err
	}
	if offre.DateLimite != nil && offre.DateLimite.Before(time.Now()) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "la date limite de candidature est depassee")
	}

	row := &models.Candidature{
		OffreID:   offreID,
		Nom:       strings.TrimSpace(input.Nom),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Telephone: strings.TrimSpace(input.Telephone),
		CVURL:     input.CVURL,
		LettreURL: input.LettreURL,
		Statut:    enums.StatutDemandeNouveau,
	}
	if err := s.repo.Create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert candidature")
	}
	return row, nil
}

// ListInput filters an admin candidature listing.
type ListInput struct {
	OffreID *uuid.UUID
	Statut  enums.StatutDemande
	Limit   int
	Offset  int
}

// List returns candidatures for the back office.
func (s *Service) List(ctx context.Context, input ListInput) ([]models.Candidature, error) {
	if input.Statut != "" && !input.Statut.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid statut filter")
	}
	rows, err := s.repo.List(ctx, input.OffreID, input.Statut, input.Limit, input.Offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list candidatures")
	}
	return rows, nil
}

// Get loads one candidature.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*models.Candidature, error) {
	row, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "candidature not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load candidature")
	}
	return row, nil
}

// UpdateStatut moves a candidature through the handling pipeline.
func (s *Service) UpdateStatut(ctx context.Context, actorID *uuid.UUID, id uuid.UUID, statut enums.StatutDemande) error {
	if !statut.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid statut")
	}

	row, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	old := row.Statut

	if _, err := s.repo.UpdateStatut(ctx, id, statut); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update candidature statut")
	}

	if s.audit != nil {
		s.audit.Record(ctx, enums.AuditActionStatutChange, models.Candidature{}.TableName(), &id, actorID, map[string]any{
			"from": old.String(),
			"to":   statut.String(),
		})
	}
	return nil
}

// ExpireOffres takes down offers past their deadline. Called by the cron
// worker.
func (s *Service) ExpireOffres(ctx context.Context, now time.Time) (int64, error) {
	n, err := s.repo.UnpublishExpiredOffres(ctx, now)
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "unpublish expired offres")
	}
	if n > 0 && s.audit != nil {
		s.audit.Record(ctx, enums.AuditActionTogglePublish, models.OffreEmploi{}.TableName(), nil, nil, map[string]any{
			"expired": n,
		})
	}
	return n, nil
}
