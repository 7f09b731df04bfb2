package web

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestRequestLogger_PropagatesValidRequestID(t *testing.T) {
	var seen string
	h := requestLogger(zerolog.Nop(), nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = RequestIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	if seen != "abc-123" {
		t.Fatalf("expected request id in context, got %q", seen)
	}
	if got := rec.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected echoed header, got %q", got)
	}
}

func TestRequestLogger_ReplacesInvalidRequestID(t *testing.T) {
	h := requestLogger(zerolog.Nop(), nil, http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(requestIDHeader, "bad id with spaces")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	got := rec.Header().Get(requestIDHeader)
	if got == "" || strings.Contains(got, " ") {
		t.Fatalf("expected generated request id, got %q", got)
	}
	if len(got) != 16 {
		t.Fatalf("expected 16 hex chars, got %q", got)
	}
}

func TestRequestLogger_LogsStatus(t *testing.T) {
	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	h := requestLogger(logger, nil, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/healthz", nil))

	var line map[string]any
	if err := json.Unmarshal(buf.Bytes(), &line); err != nil {
		t.Fatalf("expected one JSON log line, got %q: %v", buf.String(), err)
	}
	if line["status_code"] != float64(http.StatusTeapot) {
		t.Fatalf("expected status_code 418, got %v", line["status_code"])
	}
	if line["path"] != "/healthz" || line["method"] != "GET" {
		t.Fatalf("unexpected log fields %v", line)
	}
	if line["message"] != "request complete" {
		t.Fatalf("unexpected message %v", line["message"])
	}
}

func TestRequestLogger_LogsRejectedCalculation(t *testing.T) {
	var buf bytes.Buffer
	s := New(Options{Logger: zerolog.New(&buf).Level(zerolog.WarnLevel)})
	rec := httptest.NewRecorder()
	s.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/target?first_innings_score=1&overs_lost=25", nil))

	if !strings.Contains(buf.String(), `"error_kind":"overs_lost_exceeds_maximum"`) {
		t.Fatalf("expected rejection to be logged with kind, got %q", buf.String())
	}
}

func TestNormalizePath(t *testing.T) {
	tests := map[string]string{
		"/":            "/",
		"/api/target":  "/api/target",
		"/metrics":     "/metrics",
		"/random/path": "other",
	}
	for in, want := range tests {
		if got := normalizePath(in); got != want {
			t.Errorf("normalizePath(%q) = %q, want %q", in, got, want)
		}
	}
}
