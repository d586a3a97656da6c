package main

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/tomz197/invaders/internal/config"
)

func TestRouter(t *testing.T) {
	data := pageData{SSHHost: "play.example.com", SSHPort: "2222"}
	r := newRouter(data, config.DefaultTuning(), log.New(io.Discard))

	tests := []struct {
		name       string
		method     string
		path       string
		wantStatus int
		wantBody   string
	}{
		{"landing page", http.MethodGet, "/", http.StatusOK, "ssh -t -p 2222 play.example.com"},
		{"tuning", http.MethodGet, "/tuning.toml", http.StatusOK, "[formation]"},
		{"health", http.MethodGet, "/healthz", http.StatusNoContent, ""},
		{"wrong method", http.MethodPost, "/", http.StatusMethodNotAllowed, ""},
		{"unknown path", http.MethodGet, "/missing", http.StatusNotFound, ""},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			r.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))
			if rec.Code != tc.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tc.wantStatus)
			}
			if tc.wantBody != "" && !strings.Contains(rec.Body.String(), tc.wantBody) {
				t.Errorf("body missing %q:\n%s", tc.wantBody, rec.Body.String())
			}
		})
	}
}

func TestLandingPageEscapesHost(t *testing.T) {
	data := pageData{SSHHost: "<script>", SSHPort: "22"}
	r := newRouter(data, config.DefaultTuning(), log.New(io.Discard))

	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	if strings.Contains(rec.Body.String(), "<script>") {
		t.Error("host must be HTML escaped")
	}
}
