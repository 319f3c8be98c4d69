package forms

import (
	"context"
	"strings"
	"time"

	"github.com/agence-judiciaire/aje-backend/pkg/db/models"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// store carries the persistence operations shared by every intake table.
type store[M any] struct {
	db *gorm.DB
}

func (s store[M]) create(ctx context.Context, row *M) error {
	return s.db.WithContext(ctx).Create(row).Error
}

func (s store[M]) find(ctx context.Context, id uuid.UUID) (*M, error) {
	var row M
	if err := s.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &row, nil
}

func (s store[M]) list(ctx context.Context, statut enums.StatutDemande, limit, offset int) ([]M, error) {
	qb := s.db.WithContext(ctx).Model(new(M))
	if strings.TrimSpace(string(statut)) != "" {
		qb = qb.Where("statut = ?", statut)
	}
	if limit > 0 {
		qb = qb.Limit(limit)
	}
	if offset > 0 {
		qb = qb.Offset(offset)
	}

	var rows []M
	if err := qb.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (s store[M]) updateStatut(ctx context.Context, id uuid.UUID, statut enums.StatutDemande) (bool, error) {
	result := s.db.WithContext(ctx).Model(new(M)).
		Where("id = ?", id).
		UpdateColumn("statut", statut)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (s store[M]) deleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(new(M))
	return result.RowsAffected, result.Error
}

// Repository groups the intake tables behind one handle.
type Repository struct {
	contact     store[models.DemandeContact]
	avis        store[models.DemandeAvis]
	signalement store[models.Signalement]
	presse      store[models.AccreditationPresse]
	newsletter  store[models.NewsletterAbonne]
}

// NewRepository constructs the intake repository.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		contact:     store[models.DemandeContact]{db: db},
		avis:        store[models.DemandeAvis]{db: db},
		signalement: store[models.Signalement]{db: db},
		presse:      store[models.AccreditationPresse]{db: db},
		newsletter:  store[models.NewsletterAbonne]{db: db},
	}
}
