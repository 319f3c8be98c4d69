// Package settings stores the typed configuration documents editable
// from the back office (contact block, social accounts, director's
// message, regional offices). Each document lives in one row keyed by
// its SettingKey and is validated against its schema before writing.
package settings

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/agence-judiciaire/aje-backend/pkg/db/models"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type auditRecorder interface {
	Record(ctx context.Context, action enums.AuditAction, table string, recordID *uuid.UUID, actorID *uuid.UUID, payload map[string]any)
}

// Repository persists setting documents.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a settings repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// FindByKey loads one setting document.
func (r *Repository) FindByKey(ctx context.Context, key enums.SettingKey) (*models.SiteSetting, error) {
	var row models.SiteSetting
	if err := r.db.WithContext(ctx).First(&row, "cle = ?", key).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

// ListAll returns every setting document.
func (r *Repository) ListAll(ctx context.Context) ([]models.SiteSetting, error) {
	var rows []models.SiteSetting
	if err := r.db.WithContext(ctx).Order("cle ASC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert writes the document for its key, creating the row on first use.
func (r *Repository) Upsert(ctx context.Context, row *models.SiteSetting) error {
	if row.ID == uuid.Nil {
		row.ID = uuid.New()
	}
	return r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "cle"}},
			DoUpdates: clause.AssignmentColumns([]string{"valeur", "updated_by", "updated_at"}),
		}).
		Create(row).Error
}

// Service exposes the typed settings operations.
type Service struct {
	repo  *Repository
	audit auditRecorder
}

// NewService constructs the settings service.
func NewService(repo *Repository, audit auditRecorder) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("settings repository required")
	}
	return &Service{repo: repo, audit: audit}, nil
}

// Get returns the document for the key. A key that was never written
// returns an empty document rather than an error, so the frontend can
// render its defaults.
func (s *Service) Get(ctx context.Context, key enums.SettingKey) (*models.SiteSetting, error) {
	if !key.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown setting key")
	}

	row, err := s.repo.FindByKey(ctx, key)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &models.SiteSetting{Cle: key, Valeur: map[string]any{}}, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load setting")
	}
	return row, nil
}

// List returns every stored setting document.
func (s *Service) List(ctx context.Context) ([]models.SiteSetting, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list settings")
	}
	return rows, nil
}

// Update validates the payload against the key's schema and writes it.
func (s *Service) Update(ctx context.Context, actorID *uuid.UUID, key enums.SettingKey, raw json.RawMessage) (*models.SiteSetting, error) {
	if !key.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown setting key")
	}
	if len(raw) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payload is required")
	}
	if err := validatePayload(key, raw); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	var valeur map[string]any
	if err := json.Unmarshal(raw, &valeur); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payload must be a JSON object")
	}

	row := &models.SiteSetting{
		Cle:       key,
		Valeur:    valeur,
		UpdatedBy: actorID,
	}
	if err := s.repo.Upsert(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write setting")
	}

	if s.audit != nil {
		s.audit.Record(ctx, enums.AuditActionUpdate, models.SiteSetting{}.TableName(), nil, actorID, map[string]any{
			"cle": key.String(),
		})
	}
	return row, nil
}
