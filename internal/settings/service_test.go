package settings

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/agence-judiciaire/aje-backend/pkg/enums"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const settingsTestDDL = `
CREATE TABLE site_settings (
	id TEXT PRIMARY KEY,
	cle TEXT NOT NULL UNIQUE,
	valeur TEXT NOT NULL DEFAULT '{}',
	updated_by TEXT,
	created_at DATETIME,
	updated_at DATETIME
)`

type noopAudit struct{ count int }

func (n *noopAudit) Record(context.Context, enums.AuditAction, string, *uuid.UUID, *uuid.UUID, map[string]any) {
	n.count++
}

func newSettingsService(t *testing.T) (*Service, *noopAudit, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := conn.Exec(settingsTestDDL).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	audit := &noopAudit{}
	svc, err := NewService(NewRepository(conn), audit)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}
	return svc, audit, conn
}

func TestUpdateAndGetCoordonnees(t *testing.T) {
	svc, audit, _ := newSettingsService(t)
	ctx := context.Background()

	actor := uuid.New()
	payload := json.RawMessage(`{"adresse":"6 rue Louise Weiss, 75013 Paris","email":"contact@agence-judiciaire.gouv.fr","telephone":"+33 1 44 87 70 00"}`)

	row, err := svc.Update(ctx, &actor, enums.SettingKeyCoordonnees, payload)
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if row.Valeur["email"] != "contact@agence-judiciaire.gouv.fr" {
		t.Fatalf("unexpected stored value %+v", row.Valeur)
	}
	if audit.count != 1 {
		t.Fatalf("expected one audit entry, got %d", audit.count)
	}

	loaded, err := svc.Get(ctx, enums.SettingKeyCoordonnees)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Valeur["adresse"] != "6 rue Louise Weiss, 75013 Paris" {
		t.Fatalf("unexpected loaded value %+v", loaded.Valeur)
	}
	if loaded.UpdatedBy == nil || *loaded.UpdatedBy != actor {
		t.Fatal("expected updated_by to be stamped")
	}
}

func TestUpdateUpsertsSingleRowPerKey(t *testing.T) {
	svc, _, conn := newSettingsService(t)
	ctx := context.Background()

	first := json.RawMessage(`{"contenu":"Premier message"}`)
	if _, err := svc.Update(ctx, nil, enums.SettingKeyMotDirecteur, first); err != nil {
		t.Fatalf("first update: %v", err)
	}
	second := json.RawMessage(`{"contenu":"Message revise","titre":"Le mot du directeur"}`)
	if _, err := svc.Update(ctx, nil, enums.SettingKeyMotDirecteur, second); err != nil {
		t.Fatalf("second update: %v", err)
	}

	var count int64
	if err := conn.Table("site_settings").Count(&count).Error; err != nil {
		t.Fatalf("count: %v", err)
	}
	if count != 1 {
		t.Fatalf("expected one row per key, got %d", count)
	}

	loaded, err := svc.Get(ctx, enums.SettingKeyMotDirecteur)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Valeur["contenu"] != "Message revise" {
		t.Fatalf("expected the revised payload, got %+v", loaded.Valeur)
	}
}

func TestGetUnsetKeyReturnsEmptyDocument(t *testing.T) {
	svc, _, _ := newSettingsService(t)

	row, err := svc.Get(context.Background(), enums.SettingKeyAntennes)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if row.Cle != enums.SettingKeyAntennes || len(row.Valeur) != 0 {
		t.Fatalf("expected empty document, got %+v", row)
	}
}

func TestUpdateValidatesPayloads(t *testing.T) {
	svc, _, _ := newSettingsService(t)
	ctx := context.Background()

	cases := []struct {
		name    string
		key     enums.SettingKey
		payload string
	}{
		{name: "unknown key", key: enums.SettingKey("theme"), payload: `{}`},
		{name: "missing required field", key: enums.SettingKeyCoordonnees, payload: `{"email":"x@y.fr"}`},
		{name: "bad email", key: enums.SettingKeyCoordonnees, payload: `{"adresse":"a","email":"pas-un-email"}`},
		{name: "unknown field", key: enums.SettingKeyMotDirecteur, payload: `{"contenu":"ok","couleur":"bleu"}`},
		{name: "bad social url", key: enums.SettingKeyReseauxSociaux, payload: `{"twitter":"pas une url"}`},
		{name: "antenne without nom", key: enums.SettingKeyAntennes, payload: `{"antennes":[{"adresse":"12 rue du Port, Lyon"}]}`},
		{name: "not an object", key: enums.SettingKeyMotDirecteur, payload: `"texte"`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Update(ctx, nil, tc.key, json.RawMessage(tc.payload))
			if pkgerrors.As(err) == nil || pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}
}

func TestListReturnsStoredDocuments(t *testing.T) {
	svc, _, _ := newSettingsService(t)
	ctx := context.Background()

	if _, err := svc.Update(ctx, nil, enums.SettingKeyMotDirecteur, json.RawMessage(`{"contenu":"Bonjour"}`)); err != nil {
		t.Fatalf("update: %v", err)
	}
	if _, err := svc.Update(ctx, nil, enums.SettingKeyAntennes, json.RawMessage(`{"antennes":[{"nom":"Antenne de Lyon","adresse":"12 rue du Port"}]}`)); err != nil {
		t.Fatalf("update antennes: %v", err)
	}

	rows, err := svc.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 {
		t.Fatalf("expected 2 documents, got %d", len(rows))
	}
}

func TestUpdateCoordonneesAcceptsUnresolvableEmailDomain(t *testing.T) {
	svc, _, _ := newSettingsService(t)
	ctx := context.Background()

	// .example never resolves; format is all the rule may check.
	payload := json.RawMessage(`{"adresse":"6 rue Louise Weiss, 75013 Paris","email":"contact@mx-absent.example"}`)
	if _, err := svc.Update(ctx, nil, enums.SettingKeyCoordonnees, payload); err != nil {
		t.Fatalf("update: %v", err)
	}
}
