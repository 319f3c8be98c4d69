// Package analytics computes the back-office dashboard figures. Volumes
// are small enough that everything is aggregated in the database on
// demand, no precomputation.
package analytics

import (
	"context"
	"fmt"

	"github.com/agence-judiciaire/aje-backend/pkg/db/models"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// ContentCount is the row/published tally for one managed table.
type ContentCount struct {
	Table     string `json:"table"`
	Total     int64  `json:"total"`
	Published int64  `json:"published"`
}

// IntakeCount groups submissions of one form by handling state.
type IntakeCount struct {
	Form   enums.FormType                `json:"form"`
	Total  int64                         `json:"total"`
	Statut map[enums.StatutDemande]int64 `json:"statut"`
}

// ContentieuxTotals sums the headline figures across litigation domains.
type ContentieuxTotals struct {
	Domaines        int64           `json:"domaines"`
	MontantRecupere decimal.Decimal `json:"montant_recupere"`
	NombreDossiers  int64           `json:"nombre_dossiers"`
}

// Dashboard is the whole admin dashboard payload.
type Dashboard struct {
	Content     []ContentCount    `json:"content"`
	Intake      []IntakeCount     `json:"intake"`
	Newsletter  int64             `json:"newsletter"`
	Contentieux ContentieuxTotals `json:"contentieux"`
}

// contentModels maps each managed table to a model probe for counting.
// Order is the display order of the dashboard.
var contentModels = []struct {
	table string
	model any
}{
	{"actualites", &models.Actualite{}},
	{"documents", &models.Document{}},
	{"textes_juridiques", &models.TexteJuridique{}},
	{"offres_emploi", &models.OffreEmploi{}},
	{"jurisprudences", &models.Jurisprudence{}},
	{"communiques", &models.Communique{}},
	{"kit_media", &models.KitMediaElement{}},
	{"procedures", &models.Procedure{}},
	{"services_juridiques", &models.ServiceJuridique{}},
	{"domaines_contentieux", &models.DomaineContentieux{}},
	{"faqs", &models.FAQ{}},
}

var intakeModels = []struct {
	form  enums.FormType
	model any
}{
	{enums.FormTypeContact, &models.DemandeContact{}},
	{enums.FormTypeAvisJuridique, &models.DemandeAvis{}},
	{enums.FormTypeSignalement, &models.Signalement{}},
	{enums.FormTypePresse, &models.AccreditationPresse{}},
}

// Service computes dashboard aggregates.
type Service struct {
	db *gorm.DB
}

// NewService constructs the analytics service.
func NewService(db *gorm.DB) (*Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db connection required")
	}
	return &Service{db: db}, nil
}

// Dashboard assembles every aggregate in one call.
func (s *Service) Dashboard(ctx context.Context) (*Dashboard, error) {
	content, err := s.ContentCounts(ctx)
	if err != nil {
		return nil, err
	}
	intake, err := s.IntakeCounts(ctx)
	if err != nil {
		return nil, err
	}
	newsletter, err := s.NewsletterCount(ctx)
	if err != nil {
		return nil, err
	}
	contentieux, err := s.Contentieux(ctx)
	if err != nil {
		return nil, err
	}
	return &Dashboard{
		Content:     content,
		Intake:      intake,
		Newsletter:  newsletter,
		Contentieux: *contentieux,
	}, nil
}

// ContentCounts tallies rows and published rows per managed table.
func (s *Service) ContentCounts(ctx context.Context) ([]ContentCount, error) {
	counts := make([]ContentCount, 0, len(contentModels))
	for _, entry := range contentModels {
		var total, published int64
		if err := s.db.WithContext(ctx).Model(entry.model).Count(&total).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count "+entry.table)
		}
		if err := s.db.WithContext(ctx).Model(entry.model).Where("publie = ?", true).Count(&published).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count published "+entry.table)
		}
		counts = append(counts, ContentCount{Table: entry.table, Total: total, Published: published})
	}
	return counts, nil
}

// IntakeCounts groups each form's submissions by statut.
func (s *Service) IntakeCounts(ctx context.Context) ([]IntakeCount, error) {
	counts := make([]IntakeCount, 0, len(intakeModels))
	for _, entry := range intakeModels {
		type bucket struct {
			Statut enums.StatutDemande
			N      int64
		}
		var buckets []bucket
		if err := s.db.WithContext(ctx).Model(entry.model).
			Select("statut, COUNT(*) AS n").
			Group("statut").
			Scan(&buckets).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count "+entry.form.String()+" submissions")
		}

		count := IntakeCount{Form: entry.form, Statut: map[enums.StatutDemande]int64{}}
		for _, b := range buckets {
			count.Statut[b.Statut] = b.N
			count.Total += b.N
		}
		counts = append(counts, count)
	}
	return counts, nil
}

// NewsletterCount is the active subscriber tally.
func (s *Service) NewsletterCount(ctx context.Context) (int64, error) {
	var n int64
	if err := s.db.WithContext(ctx).Model(&models.NewsletterAbonne{}).Count(&n).Error; err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "count newsletter subscribers")
	}
	return n, nil
}

// Contentieux sums the headline figures over every litigation domain,
// published or not.
func (s *Service) Contentieux(ctx context.Context) (*ContentieuxTotals, error) {
	var row struct {
		Domaines int64
		Montant  decimal.Decimal
		Dossiers int64
	}
	if err := s.db.WithContext(ctx).Model(&models.DomaineContentieux{}).
		Select("COUNT(*) AS domaines, COALESCE(SUM(montant_recupere), 0) AS montant, COALESCE(SUM(nombre_dossiers), 0) AS dossiers").
		Scan(&row).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "sum contentieux figures")
	}
	return &ContentieuxTotals{
		Domaines:        row.Domaines,
		MontantRecupere: row.Montant,
		NombreDossiers:  row.Dossiers,
	}, nil
}
