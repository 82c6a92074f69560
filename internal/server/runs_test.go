package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/mhrezaei/newsbrief/internal/agent"
	"github.com/mhrezaei/newsbrief/internal/store"
)

type fakeRunner struct {
	result *agent.RunResult
}

func (f *fakeRunner) Run(_ context.Context, in agent.RunInput) *agent.RunResult {
	res := *f.result
	res.Query = in.Query
	return &res
}

func newTestAPI(t *testing.T, runner *fakeRunner, st store.Store, secret []byte) http.Handler {
	t.Helper()
	e := newEcho()
	registerRoutes(e, runner, st, secret)
	return e
}

func TestCreateRunReturnsAndPersists(t *testing.T) {
	st := store.NewMemoryStore()
	runner := &fakeRunner{result: &agent.RunResult{
		ID:            "run-1",
		TerminalState: agent.StateDone,
		Digest:        "## hello\n",
		StartedAt:     time.Now().Add(-time.Second),
		FinishedAt:    time.Now(),
	}}
	api := newTestAPI(t, runner, st, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/runs", strings.NewReader(`{"query":"ai chips"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	var got agent.RunResult
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decoding response: %v", err)
	}
	if got.Query != "ai chips" || got.TerminalState != agent.StateDone {
		t.Fatalf("unexpected response: %+v", got)
	}

	if _, err := st.GetRun(context.Background(), "run-1"); err != nil {
		t.Fatalf("run not persisted: %v", err)
	}
}

func TestCreateRunRejectsEmptyQuery(t *testing.T) {
	api := newTestAPI(t, &fakeRunner{result: &agent.RunResult{}}, store.NewMemoryStore(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/runs", strings.NewReader(`{"query":"  "}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestGetRunNotFound(t *testing.T) {
	api := newTestAPI(t, &fakeRunner{result: &agent.RunResult{}}, store.NewMemoryStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/api/runs/nope", nil)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "error") {
		t.Fatalf("expected JSON error body, got %s", rec.Body.String())
	}
}

func TestGetRunDigestServesMarkdown(t *testing.T) {
	st := store.NewMemoryStore()
	_ = st.SaveRun(context.Background(), &agent.RunResult{ID: "r1", Digest: "## headline\n"})
	api := newTestAPI(t, &fakeRunner{result: &agent.RunResult{}}, st, nil)

	req := httptest.NewRequest(http.MethodGet, "/api/runs/r1/digest", nil)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/markdown") {
		t.Fatalf("expected markdown content type, got %s", ct)
	}
	if rec.Body.String() != "## headline\n" {
		t.Fatalf("unexpected digest body: %q", rec.Body.String())
	}
}

func TestFailedRunStillAnswers200(t *testing.T) {
	runner := &fakeRunner{result: &agent.RunResult{
		ID:            "run-f",
		TerminalState: agent.StateFailed,
		Error:         "search call failed: 401",
	}}
	api := newTestAPI(t, runner, store.NewMemoryStore(), nil)

	req := httptest.NewRequest(http.MethodPost, "/api/runs", strings.NewReader(`{"query":"x"}`))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("run failures are results, not transport errors; got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "FAILED") {
		t.Fatalf("expected FAILED state in body: %s", rec.Body.String())
	}
}

func TestHealthz(t *testing.T) {
	api := newTestAPI(t, &fakeRunner{result: &agent.RunResult{}}, store.NewMemoryStore(), nil)

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK || rec.Body.String() != "ok" {
		t.Fatalf("unexpected healthz response: %d %q", rec.Code, rec.Body.String())
	}
}
