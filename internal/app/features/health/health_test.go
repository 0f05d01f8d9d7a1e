package health

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

type fakePinger struct{ err error }

func (f fakePinger) Ping(context.Context, *readpref.ReadPref) error { return f.err }

func decode(t *testing.T, rec *httptest.ResponseRecorder) Response {
	t.Helper()
	var resp Response
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	return resp
}

func TestHandler_Check(t *testing.T) {
	tests := []struct {
		name       string
		pingErr    error
		wantCode   int
		wantStatus string
		wantMongo  string
	}{
		{"healthy", nil, http.StatusOK, "ok", "ok"},
		{"mongo down", errors.New("server selection timeout"), http.StatusServiceUnavailable, "degraded", "unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(fakePinger{err: tt.pingErr}, zap.NewNop())
			rec := httptest.NewRecorder()

			h.Check(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

			if rec.Code != tt.wantCode {
				t.Errorf("status = %d, want %d", rec.Code, tt.wantCode)
			}
			resp := decode(t, rec)
			if resp.Status != tt.wantStatus || resp.Services["mongodb"] != tt.wantMongo {
				t.Errorf("response = %+v", resp)
			}
		})
	}
}

func TestHandler_Ready(t *testing.T) {
	rec := httptest.NewRecorder()
	NewHandler(fakePinger{}, zap.NewNop()).Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusOK || decode(t, rec).Status != "ready" {
		t.Errorf("Ready() = %d", rec.Code)
	}

	rec = httptest.NewRecorder()
	NewHandler(fakePinger{err: errors.New("down")}, zap.NewNop()).Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil))
	if rec.Code != http.StatusServiceUnavailable {
		t.Errorf("Ready() with mongo down = %d, want 503", rec.Code)
	}
}

func TestRoutes(t *testing.T) {
	r := chi.NewRouter()
	h := NewHandler(fakePinger{}, zap.NewNop())
	r.Mount("/health", Routes(h))
	MountRootEndpoints(r, h)

	for _, path := range []string{"/health", "/health/ready", "/health/live", "/readyz", "/livez"} {
		rec := httptest.NewRecorder()
		r.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Errorf("GET %s = %d, want 200", path, rec.Code)
		}
	}
}
