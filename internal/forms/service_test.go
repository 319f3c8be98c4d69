package forms

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

var intakeTestDDL = []string{
	`CREATE TABLE demandes_contact (
		id TEXT PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		nom TEXT NOT NULL,
		email TEXT NOT NULL,
		telephone TEXT,
		sujet TEXT NOT NULL,
		message TEXT NOT NULL,
		statut TEXT NOT NULL DEFAULT 'nouveau',
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE demandes_avis (
		id TEXT PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		nom TEXT NOT NULL,
		email TEXT NOT NULL,
		telephone TEXT,
		administration TEXT NOT NULL,
		objet TEXT NOT NULL,
		description TEXT NOT NULL,
		statut TEXT NOT NULL DEFAULT 'nouveau',
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE signalements (
		id TEXT PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		nom TEXT,
		email TEXT,
		categorie TEXT NOT NULL,
		description TEXT NOT NULL,
		statut TEXT NOT NULL DEFAULT 'nouveau',
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE accreditations_presse (
		id TEXT PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		nom TEXT NOT NULL,
		email TEXT NOT NULL,
		organe TEXT NOT NULL,
		fonction TEXT,
		motif TEXT,
		statut TEXT NOT NULL DEFAULT 'nouveau',
		created_at DATETIME,
		updated_at DATETIME
	)`,
	`CREATE TABLE newsletter_abonnes (
		id TEXT PRIMARY KEY,
		reference TEXT NOT NULL UNIQUE,
		email TEXT NOT NULL UNIQUE,
		created_at DATETIME
	)`,
}

type fakeSequencer struct {
	counters map[string]int64
}

func (f *fakeSequencer) NextSequence(_ context.Context, name string) (int64, error) {
	if f.counters == nil {
		f.counters = make(map[string]int64)
	}
	f.counters[name]++
	return f.counters[name], nil
}

type capturedAudit struct {
	Action  enums.AuditAction
	Table   string
	Payload map[string]any
}

type fakeAudit struct {
	entries []capturedAudit
}

func (f *fakeAudit) Record(_ context.Context, action enums.AuditAction, table string, _, _ *uuid.UUID, payload map[string]any) {
	f.entries = append(f.entries, capturedAudit{Action: action, Table: table, Payload: payload})
}

func newFormsService(t *testing.T) (*Service, *fakeAudit, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	for _, ddl := range intakeTestDDL {
		if err := conn.Exec(ddl).Error; err != nil {
			t.Fatalf("create table: %v", err)
		}
	}

	audit := &fakeAudit{}
	svc, err := NewService(NewRepository(conn), &fakeSequencer{}, audit)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, audit, conn
}

func TestSubmitContactAllocatesSequentialReferences(t *testing.T) {
	svc, _, _ := newFormsService(t)
	ctx := context.Background()

	input := ContactInput{
		Nom:     "Jean Martin",
		Email:   "Jean.Martin@Example.FR",
		Sujet:   "Question sur une procedure",
		Message: "Bonjour, je souhaite des informations sur le suivi de mon dossier.",
	}

	first, err := svc.SubmitContact(ctx, input)
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if first.Reference != "CT-000001" {
		t.Fatalf("expected CT-000001, got %s", first.Reference)
	}

	second, err := svc.SubmitContact(ctx, input)
	if err != nil {
		t.Fatalf("second submit: %v", err)
	}
	if second.Reference != "CT-000002" {
		t.Fatalf("expected CT-000002, got %s", second.Reference)
	}

	rows, err := svc.ListContacts(ctx, ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 rows, got %d", len(rows))
	}
	if rows[0].Statut != enums.StatutDemandeNouveau {
		t.Fatalf("expected statut nouveau, got %s", rows[0].Statut)
	}
	if rows[0].Email != "jean.martin@example.fr" {
		t.Fatalf("expected lowercased email, got %s", rows[0].Email)
	}
}

func TestSubmitContactRejectsShortMessage(t *testing.T) {
	svc, _, _ := newFormsService(t)

	_, err := svc.SubmitContact(context.Background(), ContactInput{
		Nom:     "Jean Martin",
		Email:   "jean@example.fr",
		Sujet:   "Test",
		Message: "trop bref",
	})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubmitSignalementAllowsAnonymous(t *testing.T) {
	svc, _, _ := newFormsService(t)

	receipt, err := svc.SubmitSignalement(context.Background(), SignalementInput{
		Categorie:   "marches_publics",
		Description: "Irregularite constatee dans une attribution.",
	})
	if err != nil {
		t.Fatalf("submit: %v", err)
	}
	if receipt.Reference != "SG-000001" {
		t.Fatalf("unexpected reference %s", receipt.Reference)
	}
}

func TestSubmitAvisRequiresAdministration(t *testing.T) {
	svc, _, _ := newFormsService(t)

	_, err := svc.SubmitAvis(context.Background(), AvisInput{
		Nom:         "Prefecture de X",
		Email:       "contact@prefecture.fr",
		Objet:       "Demande d'avis",
		Description: "Question juridique detaillee sur un contrat.",
	})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSubscribeNewsletterRejectsDuplicates(t *testing.T) {
	svc, _, _ := newFormsService(t)
	ctx := context.Background()

	if _, err := svc.SubscribeNewsletter(ctx, NewsletterInput{Email: "lecteur@example.fr"}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	_, err := svc.SubscribeNewsletter(ctx, NewsletterInput{Email: "Lecteur@Example.FR"})
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeConflict {
		t.Fatalf("expected conflict for duplicate email, got %v", err)
	}
}

func TestUpdateStatutRecordsTransition(t *testing.T) {
	svc, audit, _ := newFormsService(t)
	ctx := context.Background()

	if _, err := svc.SubmitContact(ctx, ContactInput{
		Nom: "Jean", Email: "jean@example.fr", Sujet: "Sujet",
		Message: "Message suffisamment long pour la validation.",
	}); err != nil {
		t.Fatalf("submit: %v", err)
	}
	rows, err := svc.ListContacts(ctx, ListInput{})
	if err != nil || len(rows) != 1 {
		t.Fatalf("list: %v (%d rows)", err, len(rows))
	}

	actor := uuid.New()
	if err := svc.UpdateStatut(ctx, &actor, enums.FormTypeContact, rows[0].ID, enums.StatutDemandeEnCours); err != nil {
		t.Fatalf("update statut: %v", err)
	}

	updated, err := svc.ListContacts(ctx, ListInput{Statut: enums.StatutDemandeEnCours})
	if err != nil {
		t.Fatalf("list filtered: %v", err)
	}
	if len(updated) != 1 {
		t.Fatalf("expected the updated row in the en_cours filter, got %d", len(updated))
	}

	if len(audit.entries) == 0 {
		t.Fatal("expected an audit entry")
	}
	entry := audit.entries[len(audit.entries)-1]
	if entry.Action != enums.AuditActionStatutChange || entry.Table != "demandes_contact" {
		t.Fatalf("unexpected audit entry %+v", entry)
	}
	if entry.Payload["from"] != "nouveau" || entry.Payload["to"] != "en_cours" {
		t.Fatalf("unexpected transition payload %+v", entry.Payload)
	}
}

func TestUpdateStatutRejectsBadInput(t *testing.T) {
	svc, _, _ := newFormsService(t)
	ctx := context.Background()

	err := svc.UpdateStatut(ctx, nil, enums.FormTypeContact, uuid.New(), enums.StatutDemande("perdu"))
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for unknown statut, got %v", err)
	}

	err = svc.UpdateStatut(ctx, nil, enums.FormTypeNewsletter, uuid.New(), enums.StatutDemandeTraite)
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation for newsletter, got %v", err)
	}

	err = svc.UpdateStatut(ctx, nil, enums.FormTypeContact, uuid.New(), enums.StatutDemandeTraite)
	if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown id, got %v", err)
	}
}

func TestPurgeOlderThanRemovesExpiredSubmissions(t *testing.T) {
	svc, _, conn := newFormsService(t)
	ctx := context.Background()

	if _, err := svc.SubmitContact(ctx, ContactInput{
		Nom: "Ancien", Email: "ancien@example.fr", Sujet: "Vieille demande",
		Message: "Cette demande devrait etre purgee par la retention.",
	}); err != nil {
		t.Fatalf("submit old: %v", err)
	}
	// Age the row beyond the cutoff.
	old := time.Now().Add(-48 * time.Hour)
	if err := conn.Exec("UPDATE demandes_contact SET created_at = ?", old).Error; err != nil {
		t.Fatalf("age row: %v", err)
	}

	if _, err := svc.SubmitContact(ctx, ContactInput{
		Nom: "Recent", Email: "recent@example.fr", Sujet: "Demande recente",
		Message: "Cette demande doit survivre a la purge de retention.",
	}); err != nil {
		t.Fatalf("submit recent: %v", err)
	}
	if _, err := svc.SubscribeNewsletter(ctx, NewsletterInput{Email: "abonne@example.fr"}); err != nil {
		t.Fatalf("subscribe: %v", err)
	}

	purged, err := svc.PurgeOlderThan(ctx, time.Now().Add(-24*time.Hour))
	if err != nil {
		t.Fatalf("purge: %v", err)
	}
	if purged != 1 {
		t.Fatalf("expected 1 purged row, got %d", purged)
	}

	remaining, err := svc.ListContacts(ctx, ListInput{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(remaining) != 1 || remaining[0].Nom != "Recent" {
		t.Fatalf("expected only the recent row, got %+v", remaining)
	}

	subscribers, err := svc.ListNewsletter(ctx, 0, 0)
	if err != nil {
		t.Fatalf("list newsletter: %v", err)
	}
	if len(subscribers) != 1 {
		t.Fatal("newsletter subscribers must not be purged")
	}
}

func TestEmailRulesCheckFormatOnly(t *testing.T) {
	// Reserved .example domains never resolve, so these passing proves
	// the rule stays offline.
	inputs := map[string]error{
		"contact": ContactInput{
			Nom:     "Jean Martin",
			Email:   "jean.martin@mx-absent.example",
			Sujet:   "Suivi de dossier",
			Message: "Bonjour, ou en est le traitement de ma demande?",
		}.Validate(),
		"avis": AvisInput{
			Nom:            "Claire Dupont",
			Email:          "c.dupont@mx-absent.example",
			Administration: "Prefecture du Rhone",
			Objet:          "Marche public",
			Description:    "Demande d'avis sur une clause de resiliation.",
		}.Validate(),
		"signalement": SignalementInput{
			Email:       "temoin@mx-absent.example",
			Categorie:   "marches",
			Description: "Attribution irreguliere presumee.",
		}.Validate(),
		"presse": PresseInput{
			Nom:    "Paul Bernard",
			Email:  "p.bernard@mx-absent.example",
			Organe: "Le Quotidien",
		}.Validate(),
		"newsletter": NewsletterInput{Email: "lectrice@mx-absent.example"}.Validate(),
	}
	for name, err := range inputs {
		if err != nil {
			t.Fatalf("%s: valid address rejected: %v", name, err)
		}
	}

	if err := (NewsletterInput{Email: "pas-un-email"}).Validate(); err == nil {
		t.Fatal("malformed address should still fail")
	}
}
