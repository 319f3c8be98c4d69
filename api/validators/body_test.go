package validators

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/agence-judiciaire/aje-backend/internal/auth"
	pkgerrors "github.com/agence-judiciaire/aje-backend/pkg/errors"
)

func TestDecodeJSONBodyValidatesLoginRequest(t *testing.T) {
	// .example never resolves; the email tag must only check format.
	req := httptest.NewRequest("POST", "/admin/auth/login",
		strings.NewReader(`{"email":"agent@mx-absent.example","password":"s3cret"}`))

	var body auth.LoginRequest
	if err := DecodeJSONBody(req, &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Email != "agent@mx-absent.example" {
		t.Fatalf("unexpected email %q", body.Email)
	}
}

func TestDecodeJSONBodyRejectsMalformedEmail(t *testing.T) {
	req := httptest.NewRequest("POST", "/admin/auth/login",
		strings.NewReader(`{"email":"pas-un-email","password":"s3cret"}`))

	var body auth.LoginRequest
	err := DecodeJSONBody(req, &body)
	if err == nil {
		t.Fatal("expected a validation error")
	}
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
	details, ok := typed.Details().(map[string]string)
	if !ok {
		t.Fatalf("unexpected details type %T", typed.Details())
	}
	if details["email"] == "" {
		t.Fatalf("expected a detail keyed by the json field, got %v", details)
	}
}

func TestDecodeJSONBodyRejectsUnknownFields(t *testing.T) {
	req := httptest.NewRequest("POST", "/admin/auth/login",
		strings.NewReader(`{"email":"agent@mx-absent.example","password":"s3cret","role":"admin"}`))

	var body auth.LoginRequest
	err := DecodeJSONBody(req, &body)
	if err == nil {
		t.Fatal("expected unknown field to be rejected")
	}
	if pkgerrors.As(err).Code() != pkgerrors.CodeValidation {
		t.Fatalf("unexpected error: %v", err)
	}
}
