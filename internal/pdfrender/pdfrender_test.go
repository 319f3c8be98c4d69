package pdfrender

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestTemplateStoreAllowList(t *testing.T) {
	store, err := NewTemplateStore("")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	names := store.Names()
	if len(names) == 0 {
		t.Fatal("expected embedded templates on the allow-list")
	}
	for _, name := range names {
		if !store.Allowed(name) {
			t.Fatalf("embedded template %q must be allowed", name)
		}
	}

	denied := []string{
		"unknown.html",
		"../templates/rapport-activite.html",
		"templates/rapport-activite.html",
		"..\\rapport-activite.html",
		"",
	}
	for _, name := range denied {
		if store.Allowed(name) {
			t.Fatalf("%q must not be allowed", name)
		}
	}
}

func TestTemplateStoreEmbeddedHTML(t *testing.T) {
	store, err := NewTemplateStore("")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	html, err := store.HTML("rapport-activite.html")
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if !strings.Contains(html, "<html") {
		t.Fatal("expected HTML markup")
	}

	if _, err := store.HTML("unknown.html"); err == nil {
		t.Fatal("expected error for unknown template")
	}
}

func TestTemplateStoreFetchesFromBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/rapport-activite.html" {
			http.NotFound(w, r)
			return
		}
		fmt.Fprint(w, "<html>remote</html>")
	}))
	defer srv.Close()

	store, err := NewTemplateStore(srv.URL + "/")
	if err != nil {
		t.Fatalf("new store: %v", err)
	}

	html, err := store.HTML("rapport-activite.html")
	if err != nil {
		t.Fatalf("html: %v", err)
	}
	if html != "<html>remote</html>" {
		t.Fatalf("expected remote markup, got %q", html)
	}

	// Off-list names never reach the remote even when it would serve them.
	if _, err := store.HTML("secret.html"); err == nil {
		t.Fatal("expected error for name off the allow-list")
	}
}

type stubRenderer struct {
	pdf []byte
	err error
}

func (s *stubRenderer) Render(_ context.Context, fileName string) ([]byte, error) {
	if s.err != nil {
		return nil, s.err
	}
	return s.pdf, nil
}

func TestConvertStreamsPDF(t *testing.T) {
	handler := NewHandler(&stubRenderer{pdf: []byte("%PDF-1.7 fake")}, nil)

	req := httptest.NewRequest(http.MethodPost, "/convert", strings.NewReader(`{"file_name": "rapport-activite.html"}`))
	rec := httptest.NewRecorder()
	handler.Convert(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if got := rec.Header().Get("Content-Type"); got != "application/pdf" {
		t.Fatalf("expected pdf content type, got %q", got)
	}
	if got := rec.Header().Get("Content-Disposition"); got != `attachment; filename="rapport-activite.pdf"` {
		t.Fatalf("unexpected disposition %q", got)
	}
	if rec.Body.String() != "%PDF-1.7 fake" {
		t.Fatal("expected rendered bytes in the body")
	}
}

func TestConvertErrorsAsJSON(t *testing.T) {
	cases := []struct {
		name string
		body string
		stub *stubRenderer
	}{
		{name: "render failure", body: `{"file_name": "rapport-activite.html"}`, stub: &stubRenderer{err: errUnknownTemplate}},
		{name: "missing file name", body: `{}`, stub: &stubRenderer{pdf: []byte("x")}},
		{name: "garbage body", body: `{`, stub: &stubRenderer{pdf: []byte("x")}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			handler := NewHandler(tc.stub, nil)
			req := httptest.NewRequest(http.MethodPost, "/convert", strings.NewReader(tc.body))
			rec := httptest.NewRecorder()
			handler.Convert(rec, req)

			if rec.Code != http.StatusInternalServerError {
				t.Fatalf("expected 500, got %d", rec.Code)
			}
			var payload map[string]string
			if err := json.Unmarshal(rec.Body.Bytes(), &payload); err != nil {
				t.Fatalf("decoding error body: %v", err)
			}
			if payload["error"] == "" {
				t.Fatal("expected error message")
			}
		})
	}
}

func TestPDFFileName(t *testing.T) {
	if got := pdfFileName("dossier-presse.html"); got != "dossier-presse.pdf" {
		t.Fatalf("got %q", got)
	}
	if got := pdfFileName("rapport"); got != "rapport.pdf" {
		t.Fatalf("got %q", got)
	}
}
