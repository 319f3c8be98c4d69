package dbtypes

import (
	"testing"
)

func TestStringArrayRoundTrip(t *testing.T) {
	in := StringArray{"licence en droit", "3 ans d'expérience"}

	val, err := in.Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}

	var out StringArray
	if err := out.Scan(val); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(out) != 2 || out[0] != in[0] || out[1] != in[1] {
		t.Fatalf("round trip mismatch: %v", out)
	}
}

func TestStringArrayEmptyValue(t *testing.T) {
	val, err := StringArray(nil).Value()
	if err != nil {
		t.Fatalf("Value failed: %v", err)
	}
	if val != "[]" {
		t.Fatalf("expected empty JSON array, got %v", val)
	}
}

func TestAttachmentListScanFromBytes(t *testing.T) {
	var l AttachmentList
	raw := []byte(`[{"url":"https://cdn.example/a.pdf","description":"rapport annuel"}]`)
	if err := l.Scan(raw); err != nil {
		t.Fatalf("Scan failed: %v", err)
	}
	if len(l) != 1 || l[0].URL != "https://cdn.example/a.pdf" {
		t.Fatalf("unexpected list %v", l)
	}
	if l[0].Description != "rapport annuel" {
		t.Fatalf("description lost: %v", l[0])
	}
}

func TestJSONMapRejectsUnknownType(t *testing.T) {
	var m JSONMap
	if err := m.Scan(42); err == nil {
		t.Fatal("expected unsupported type error")
	}
}
