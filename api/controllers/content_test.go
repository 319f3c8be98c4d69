package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/agence-judiciaire/aje-backend/internal/content"
	"github.com/agence-judiciaire/aje-backend/pkg/config"
	"github.com/agence-judiciaire/aje-backend/pkg/db"
	"github.com/agence-judiciaire/aje-backend/pkg/db/models"
	"github.com/agence-judiciaire/aje-backend/pkg/logger"
)

const faqTestDDL = `
CREATE TABLE faqs (
	id TEXT PRIMARY KEY,
	publie BOOLEAN NOT NULL DEFAULT FALSE,
	ordre INTEGER NOT NULL DEFAULT 0,
	created_by TEXT,
	created_at DATETIME,
	updated_at DATETIME,
	question TEXT NOT NULL,
	reponse TEXT NOT NULL,
	categorie TEXT
)`

func testLogger() *logger.Logger {
	return logger.New(logger.Options{ServiceName: "test", Level: zerolog.ErrorLevel, Output: io.Discard})
}

func newFAQHandlers(t *testing.T) (*contentHandlers[models.FAQ, *models.FAQ, faqRequest], *content.Service[models.FAQ, *models.FAQ]) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	client, err := db.New(context.Background(), config.DBConfig{Driver: "sqlite", DSN: dsn}, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := client.DB().Exec(faqTestDDL).Error; err != nil {
		t.Fatalf("create table: %v", err)
	}

	svc, err := content.NewService(content.NewRepository[models.FAQ](client.DB(), content.FAQDef), client, nil)
	if err != nil {
		t.Fatalf("new service: %v", err)
	}

	return newContentHandlers[models.FAQ, *models.FAQ, faqRequest](svc, testLogger()), svc
}

func routerFor(h *contentHandlers[models.FAQ, *models.FAQ, faqRequest], admin bool) http.Handler {
	r := chi.NewRouter()
	if admin {
		r.Route("/faq", h.MountAdmin)
	} else {
		r.Route("/faq", h.MountPublic)
	}
	return r
}

func decodeData(t *testing.T, body []byte, dest any) {
	t.Helper()
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		t.Fatalf("decoding envelope: %v (%s)", err, body)
	}
	if err := json.Unmarshal(envelope.Data, dest); err != nil {
		t.Fatalf("decoding data: %v", err)
	}
}

func TestContentCreateAppliesResourceDefault(t *testing.T) {
	h, _ := newFAQHandlers(t)
	router := routerFor(h, true)

	body := `{"question": "Comment saisir l'agence ?", "reponse": "Par le formulaire de contact."}`
	req := httptest.NewRequest(http.MethodPost, "/faq/", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var created models.FAQ
	decodeData(t, rec.Body.Bytes(), &created)
	if !created.Publie {
		t.Fatal("faq rows publish by default")
	}
	if created.ID == uuid.Nil {
		t.Fatal("expected server-generated id")
	}
}

func TestContentCreateRejectsMissingFields(t *testing.T) {
	h, _ := newFAQHandlers(t)
	router := routerFor(h, true)

	req := httptest.NewRequest(http.MethodPost, "/faq/", strings.NewReader(`{"question": "Seule"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}

	var envelope struct {
		Error struct {
			Details map[string]any `json:"details"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &envelope); err != nil {
		t.Fatalf("decoding error body: %v", err)
	}
	if envelope.Error.Details["reponse"] != "required" {
		t.Fatalf("expected reponse flagged as required, got %v", envelope.Error.Details)
	}
}

func TestContentPublicListHidesDrafts(t *testing.T) {
	h, svc := newFAQHandlers(t)
	ctx := context.Background()

	published := &models.FAQ{Question: "Visible ?", Reponse: "Oui."}
	published.SetPublished(true)
	if _, err := svc.Create(ctx, nil, published); err != nil {
		t.Fatalf("seed published: %v", err)
	}
	draft := &models.FAQ{Question: "Brouillon ?", Reponse: "Pas encore."}
	draft.SetPublished(false)
	if _, err := svc.Create(ctx, nil, draft); err != nil {
		t.Fatalf("seed draft: %v", err)
	}

	assertCount := func(admin bool, want int) {
		t.Helper()
		req := httptest.NewRequest(http.MethodGet, "/faq/", nil)
		rec := httptest.NewRecorder()
		routerFor(h, admin).ServeHTTP(rec, req)
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		var rows []models.FAQ
		decodeData(t, rec.Body.Bytes(), &rows)
		if len(rows) != want {
			t.Fatalf("expected %d rows, got %d", want, len(rows))
		}
	}

	assertCount(false, 1)
	assertCount(true, 2)
}

func TestContentPublicGetHidesDraft(t *testing.T) {
	h, svc := newFAQHandlers(t)

	draft := &models.FAQ{Question: "Brouillon ?", Reponse: "Pas encore."}
	draft.SetPublished(false)
	if _, err := svc.Create(context.Background(), nil, draft); err != nil {
		t.Fatalf("seed draft: %v", err)
	}

	req := httptest.NewRequest(http.MethodGet, "/faq/"+draft.ID.String(), nil)
	rec := httptest.NewRecorder()
	routerFor(h, false).ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for draft in public scope, got %d", rec.Code)
	}
}

func TestContentUpdateKeepsUnsetFields(t *testing.T) {
	h, svc := newFAQHandlers(t)

	row := &models.FAQ{Question: "Initiale ?", Reponse: "Reponse initiale.", Categorie: "general"}
	row.SetPublished(true)
	if _, err := svc.Create(context.Background(), nil, row); err != nil {
		t.Fatalf("seed: %v", err)
	}

	body := `{"reponse": "Reponse corrigee."}`
	req := httptest.NewRequest(http.MethodPut, "/faq/"+row.ID.String(), strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	routerFor(h, true).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var updated models.FAQ
	decodeData(t, rec.Body.Bytes(), &updated)
	if updated.Reponse != "Reponse corrigee." {
		t.Fatalf("expected updated reponse, got %q", updated.Reponse)
	}
	if updated.Question != "Initiale ?" || updated.Categorie != "general" {
		t.Fatalf("fields absent from the payload must not change: %+v", updated)
	}
	if !updated.Publie {
		t.Fatal("publie must survive an update that does not set it")
	}
}

func TestContentTogglePublish(t *testing.T) {
	h, svc := newFAQHandlers(t)

	row := &models.FAQ{Question: "Toggle ?", Reponse: "Oui."}
	row.SetPublished(true)
	if _, err := svc.Create(context.Background(), nil, row); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/faq/"+row.ID.String()+"/toggle-publish", nil)
	rec := httptest.NewRecorder()
	routerFor(h, true).ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var toggled models.FAQ
	decodeData(t, rec.Body.Bytes(), &toggled)
	if toggled.Publie {
		t.Fatal("expected publie flipped to false")
	}
}

func TestContentMoveSwapsNeighbours(t *testing.T) {
	h, svc := newFAQHandlers(t)
	ctx := context.Background()

	first := &models.FAQ{Question: "Premiere ?", Reponse: "R1."}
	second := &models.FAQ{Question: "Deuxieme ?", Reponse: "R2."}
	for _, row := range []*models.FAQ{first, second} {
		row.SetPublished(true)
		if _, err := svc.Create(ctx, nil, row); err != nil {
			t.Fatalf("seed: %v", err)
		}
	}

	body := `{"direction": "up"}`
	req := httptest.NewRequest(http.MethodPost, "/faq/"+second.ID.String()+"/move", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	routerFor(h, true).ServeHTTP(rec, req)

	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d: %s", rec.Code, rec.Body.String())
	}

	rows, err := svc.List(ctx, content.ListInput{Scope: content.ScopeAdmin})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(rows) != 2 || rows[0].ID != second.ID {
		t.Fatalf("expected second row promoted to the top, got %+v", rows)
	}
}

func TestContentDeleteRemovesRow(t *testing.T) {
	h, svc := newFAQHandlers(t)

	row := &models.FAQ{Question: "A supprimer ?", Reponse: "Oui."}
	row.SetPublished(true)
	if _, err := svc.Create(context.Background(), nil, row); err != nil {
		t.Fatalf("seed: %v", err)
	}

	req := httptest.NewRequest(http.MethodDelete, "/faq/"+row.ID.String(), nil)
	rec := httptest.NewRecorder()
	router := routerFor(h, true)
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNoContent {
		t.Fatalf("expected 204, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/faq/"+row.ID.String(), nil)
	rec = httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 after delete, got %d", rec.Code)
	}
}

func TestContentBadIDRejected(t *testing.T) {
	h, _ := newFAQHandlers(t)

	req := httptest.NewRequest(http.MethodGet, "/faq/not-a-uuid", nil)
	rec := httptest.NewRecorder()
	routerFor(h, true).ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", rec.Code)
	}
}
