package openai_provider

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newStubServer(t *testing.T, content string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer test-key" {
			t.Errorf("missing auth header")
		}
		var req request
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("decode request: %v", err)
		}
		resp := map[string]any{
			"choices": []map[string]any{
				{"message": map[string]string{"content": content}},
			},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestCompleteReturnsContent(t *testing.T) {
	srv := newStubServer(t, "hello world")
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "gpt-4o-mini", 0.2, 256, 5*time.Second)
	got, err := c.Complete(context.Background(), "sys", "hi")
	if err != nil {
		t.Fatalf("Complete: %v", err)
	}
	if got != "hello world" {
		t.Fatalf("expected content, got %q", got)
	}
}

func TestCompleteJSONUnwrapsCodeFence(t *testing.T) {
	srv := newStubServer(t, "```json\n{\"q\": \"ai\"}\n```")
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "gpt-4o-mini", 0.2, 256, 5*time.Second)
	var out struct {
		Q string `json:"q"`
	}
	if err := c.CompleteJSON(context.Background(), "", "params", &out); err != nil {
		t.Fatalf("CompleteJSON: %v", err)
	}
	if out.Q != "ai" {
		t.Fatalf("expected q=ai, got %q", out.Q)
	}
}

func TestCompleteJSONMalformed(t *testing.T) {
	srv := newStubServer(t, "not json at all")
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "gpt-4o-mini", 0.2, 256, 5*time.Second)
	var out map[string]any
	err := c.CompleteJSON(context.Background(), "", "params", &out)
	if !errors.Is(err, ErrMalformedCompletion) {
		t.Fatalf("expected ErrMalformedCompletion, got %v", err)
	}
}

func TestCompleteNon200(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	c := NewClient("test-key", srv.URL, "gpt-4o-mini", 0.2, 256, 5*time.Second)
	if _, err := c.Complete(context.Background(), "", "hi"); err == nil {
		t.Fatal("expected error on non-200 response")
	}
}
