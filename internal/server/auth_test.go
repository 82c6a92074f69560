package server

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mhrezaei/newsbrief/internal/agent"
	"github.com/mhrezaei/newsbrief/internal/store"
)

func TestAuthProtectsAPIGroup(t *testing.T) {
	secret := []byte("test-secret")
	api := newTestAPI(t, &fakeRunner{result: &agent.RunResult{}}, store.NewMemoryStore(), secret)

	req := httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without token, got %d", rec.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	rec = httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 with bad token, got %d", rec.Code)
	}

	token, err := SignJWT("ops", secret, time.Hour)
	if err != nil {
		t.Fatalf("SignJWT: %v", err)
	}
	req = httptest.NewRequest(http.MethodGet, "/api/runs", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	rec = httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with valid token, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestHealthzBypassesAuth(t *testing.T) {
	api := newTestAPI(t, &fakeRunner{result: &agent.RunResult{}}, store.NewMemoryStore(), []byte("s"))

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	if rec.Code != http.StatusOK {
		t.Fatalf("healthz must not require auth, got %d", rec.Code)
	}
}
