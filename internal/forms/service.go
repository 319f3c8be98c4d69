package forms

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/agence-judiciaire/aje-backend/pkg/db"
	"github.com/agence-judiciaire/aje-backend/pkg/db/models"
	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type sequencer interface {
	NextSequence(ctx context.Context, name string) (int64, error)
}

type auditRecorder interface {
	Record(ctx context.Context, action enums.AuditAction, table string, recordID *uuid.UUID, actorID *uuid.UUID, payload map[string]any)
}

// Service handles the public intake forms and their admin follow-up.
type Service struct {
	repo  *Repository
	seq   sequencer
	audit auditRecorder
}

// NewService constructs the intake service.
func NewService(repo *Repository, seq sequencer, audit auditRecorder) (*Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("forms repository required")
	}
	if seq == nil {
		return nil, fmt.Errorf("sequencer required")
	}
	return &Service{repo: repo, seq: seq, audit: audit}, nil
}

// nextReference allocates the visitor-facing reference, CT-000042 style.
func (s *Service) nextReference(ctx context.Context, form enums.FormType) (string, error) {
	n, err := s.seq.NextSequence(ctx, "forms:"+form.String())
	if err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "allocate reference")
	}
	return fmt.Sprintf("%s-%06d", form.ReferenceCode(), n), nil
}

// SubmitContact files a contact-form message.
func (s *Service) SubmitContact(ctx context.Context, input ContactInput) (*Receipt, error) {
	if err := input.Validate(); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	reference, err := s.nextReference(ctx, enums.FormTypeContact)
	if err != nil {
		return nil, err
	}

	row := &models.DemandeContact{
		ID:        uuid.New(),
		Reference: reference,
		Nom:       strings.TrimSpace(input.Nom),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Telephone: strings.TrimSpace(input.Telephone),
		Sujet:     strings.TrimSpace(input.Sujet),
		Message:   input.Message,
		Statut:    enums.StatutDemandeNouveau,
	}
	if err := s.repo.contact.create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert demande contact")
	}
	return &Receipt{Reference: reference}, nil
}

// SubmitAvis files a legal-opinion request.
func (s *Service) SubmitAvis(ctx context.Context, input AvisInput) (*Receipt, error) {
	if err := input.Validate(); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	reference, err := s.nextReference(ctx, enums.FormTypeAvisJuridique)
	if err != nil {
		return nil, err
	}

	row := &models.DemandeAvis{
		ID:             uuid.New(),
		Reference:      reference,
		Nom:            strings.TrimSpace(input.Nom),
		Email:          strings.ToLower(strings.TrimSpace(input.Email)),
		Telephone:      strings.TrimSpace(input.Telephone),
		Administration: strings.TrimSpace(input.Administration),
		Objet:          strings.TrimSpace(input.Objet),
		Description:    input.Description,
		Statut:         enums.StatutDemandeNouveau,
	}
	if err := s.repo.avis.create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert demande avis")
	}
	return &Receipt{Reference: reference}, nil
}

// SubmitSignalement files an irregularity report, possibly anonymous.
func (s *Service) SubmitSignalement(ctx context.Context, input SignalementInput) (*Receipt, error) {
	if err := input.Validate(); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	reference, err := s.nextReference(ctx, enums.FormTypeSignalement)
	if err != nil {
		return nil, err
	}

	row := &models.Signalement{
		ID:          uuid.New(),
		Reference:   reference,
		Nom:         strings.TrimSpace(input.Nom),
		Email:       strings.ToLower(strings.TrimSpace(input.Email)),
		Categorie:   strings.TrimSpace(input.Categorie),
		Description: input.Description,
		Statut:      enums.StatutDemandeNouveau,
	}
	if err := s.repo.signalement.create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert signalement")
	}
	return &Receipt{Reference: reference}, nil
}

// SubmitPresse files a press accreditation request.
func (s *Service) SubmitPresse(ctx context.Context, input PresseInput) (*Receipt, error) {
	if err := input.Validate(); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	reference, err := s.nextReference(ctx, enums.FormTypePresse)
	if err != nil {
		return nil, err
	}

	row := &models.AccreditationPresse{
		ID:        uuid.New(),
		Reference: reference,
		Nom:       strings.TrimSpace(input.Nom),
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
		Organe:    strings.TrimSpace(input.Organe),
		Fonction:  strings.TrimSpace(input.Fonction),
		Motif:     input.Motif,
		Statut:    enums.StatutDemandeNouveau,
	}
	if err := s.repo.presse.create(ctx, row); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert accreditation presse")
	}
	return &Receipt{Reference: reference}, nil
}

// SubscribeNewsletter registers an email address. Subscribing twice with
// the same address is a conflict, not a silent success, so the frontend
// can tell the visitor.
func (s *Service) SubscribeNewsletter(ctx context.Context, input NewsletterInput) (*Receipt, error) {
	if err := input.Validate(); err != nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, err.Error())
	}

	reference, err := s.nextReference(ctx, enums.FormTypeNewsletter)
	if err != nil {
		return nil, err
	}

	row := &models.NewsletterAbonne{
		ID:        uuid.New(),
		Reference: reference,
		Email:     strings.ToLower(strings.TrimSpace(input.Email)),
	}
	if err := s.repo.newsletter.create(ctx, row); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "email already subscribed")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "insert newsletter subscriber")
	}
	return &Receipt{Reference: reference}, nil
}

// ListInput filters an admin submissions listing.
type ListInput struct {
	Statut enums.StatutDemande
	Limit  int
	Offset int
}

func (s *Service) validateList(input ListInput) error {
	if input.Statut != "" && !input.Statut.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid statut filter")
	}
	return nil
}

// ListContacts returns contact submissions, newest first.
func (s *Service) ListContacts(ctx context.Context, input ListInput) ([]models.DemandeContact, error) {
	if err := s.validateList(input); err != nil {
		return nil, err
	}
	return listRows(ctx, s.repo.contact, input)
}

// ListAvis returns legal-opinion requests, newest first.
func (s *Service) ListAvis(ctx context.Context, input ListInput) ([]models.DemandeAvis, error) {
	if err := s.validateList(input); err != nil {
		return nil, err
	}
	return listRows(ctx, s.repo.avis, input)
}

// ListSignalements returns irregularity reports, newest first.
func (s *Service) ListSignalements(ctx context.Context, input ListInput) ([]models.Signalement, error) {
	if err := s.validateList(input); err != nil {
		return nil, err
	}
	return listRows(ctx, s.repo.signalement, input)
}

// ListPresse returns press accreditation requests, newest first.
func (s *Service) ListPresse(ctx context.Context, input ListInput) ([]models.AccreditationPresse, error) {
	if err := s.validateList(input); err != nil {
		return nil, err
	}
	return listRows(ctx, s.repo.presse, input)
}

// ListNewsletter returns newsletter subscribers, newest first.
func (s *Service) ListNewsletter(ctx context.Context, limit, offset int) ([]models.NewsletterAbonne, error) {
	return listRows(ctx, s.repo.newsletter, ListInput{Limit: limit, Offset: offset})
}

func listRows[M any](ctx context.Context, st store[M], input ListInput) ([]M, error) {
	rows, err := st.list(ctx, input.Statut, input.Limit, input.Offset)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list submissions")
	}
	return rows, nil
}

// UpdateStatut moves a submission through the handling pipeline. The
// newsletter table has no statut and rejects the call.
func (s *Service) UpdateStatut(ctx context.Context, actorID *uuid.UUID, form enums.FormType, id uuid.UUID, statut enums.StatutDemande) error {
	if !statut.IsValid() {
		return pkgerrors.New(pkgerrors.CodeValidation, "invalid statut")
	}

	var (
		table string
		old   enums.StatutDemande
		err   error
	)
	switch form {
	case enums.FormTypeContact:
		table = models.DemandeContact{}.TableName()
		old, err = transitionStatut(ctx, s.repo.contact, id, statut,
			func(m *models.DemandeContact) enums.StatutDemande { return m.Statut })
	case enums.FormTypeAvisJuridique:
		table = models.DemandeAvis{}.TableName()
		old, err = transitionStatut(ctx, s.repo.avis, id, statut,
			func(m *models.DemandeAvis) enums.StatutDemande { return m.Statut })
	case enums.FormTypeSignalement:
		table = models.Signalement{}.TableName()
		old, err = transitionStatut(ctx, s.repo.signalement, id, statut,
			func(m *models.Signalement) enums.StatutDemande { return m.Statut })
	case enums.FormTypePresse:
		table = models.AccreditationPresse{}.TableName()
		old, err = transitionStatut(ctx, s.repo.presse, id, statut,
			func(m *models.AccreditationPresse) enums.StatutDemande { return m.Statut })
	default:
		return pkgerrors.New(pkgerrors.CodeValidation, "form type has no statut")
	}
	if err != nil {
		return err
	}

	if s.audit != nil {
		s.audit.Record(ctx, enums.AuditActionStatutChange, table, &id, actorID, map[string]any{
			"from": old.String(),
			"to":   statut.String(),
		})
	}
	return nil
}

func transitionStatut[M any](ctx context.Context, st store[M], id uuid.UUID, statut enums.StatutDemande, getStatut func(*M) enums.StatutDemande) (enums.StatutDemande, error) {
	row, err := st.find(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", pkgerrors.New(pkgerrors.CodeNotFound, "submission not found")
		}
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load submission")
	}

	old := getStatut(row)
	if _, err := st.updateStatut(ctx, id, statut); err != nil {
		return "", pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update statut")
	}
	return old, nil
}

// PurgeOlderThan deletes submissions past the retention window across
// every intake table and reports the number of rows removed. Newsletter
// subscriptions stay until the subscriber cancels.
func (s *Service) PurgeOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	var total int64

	n, err := s.repo.contact.deleteOlderThan(ctx, cutoff)
	if err != nil {
		return total, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "purge demandes contact")
	}
	total += n

	n, err = s.repo.avis.deleteOlderThan(ctx, cutoff)
	if err != nil {
		return total, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "purge demandes avis")
	}
	total += n

	n, err = s.repo.signalement.deleteOlderThan(ctx, cutoff)
	if err != nil {
		return total, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "purge signalements")
	}
	total += n

	n, err = s.repo.presse.deleteOlderThan(ctx, cutoff)
	if err != nil {
		return total, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "purge accreditations presse")
	}
	total += n

	return total, nil
}
