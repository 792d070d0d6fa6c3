package handler

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	got, err := parseDate("2024-01-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := time.Date(2024, time.January, 10, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("parseDate = %v, want %v", got, want)
	}

	got, err = parseDate("2024-01-10T14:30:00Z")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.UTC().Hour() != 14 {
		t.Errorf("parsed hour = %d, want 14", got.UTC().Hour())
	}

	if _, err := parseDate("10/01/2024"); err == nil {
		t.Error("expected error for unsupported format")
	}
}

func TestQueryInt(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/api/expenses/getall?page=3&limit=abc", nil)
	if got := queryInt(req, "page", 1); got != 3 {
		t.Errorf("page = %d, want 3", got)
	}
	if got := queryInt(req, "limit", 10); got != 10 {
		t.Errorf("limit fallback = %d, want 10", got)
	}
	if got := queryInt(req, "missing", 7); got != 7 {
		t.Errorf("missing fallback = %d, want 7", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/?page=-2", nil)
	if got := queryInt(req, "page", 1); got != 1 {
		t.Errorf("negative page fallback = %d, want 1", got)
	}
}

func TestNotFoundRoute(t *testing.T) {
	h := NewHandler(nil, nil)
	req := httptest.NewRequest(http.MethodGet, "/api/unknown", nil)
	rec := httptest.NewRecorder()
	h.NotFound(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Route not found") {
		t.Errorf("body = %q, want route-not-found message", rec.Body.String())
	}
}
