package newsapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mhrezaei/newsbrief/tools/web_search/models"
)

func TestDiscoverBuildsQueryAndParsesResults(t *testing.T) {
	var gotQuery map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-Api-Key") != "k" {
			t.Errorf("missing api key header")
		}
		q := r.URL.Query()
		gotQuery = map[string]string{
			"q": q.Get("q"), "sources": q.Get("sources"),
			"from": q.Get("from"), "to": q.Get("to"),
			"language": q.Get("language"), "sortBy": q.Get("sortBy"),
		}
		_ = json.NewEncoder(w).Encode(map[string]any{
			"status": "ok", "totalResults": 1,
			"articles": []map[string]any{{
				"source":      map[string]string{"name": "BBC News"},
				"title":       "A headline",
				"description": "A synopsis",
				"url":         "https://example.com/a",
				"publishedAt": "2026-08-20T10:00:00Z",
			}},
		})
	}))
	defer srv.Close()

	s := Search{APIKey: "k", Endpoint: srv.URL, MaxResults: 5, Timeout: 5 * time.Second}
	req := models.Request{
		Keywords: "ai chips",
		Sources:  []string{"bbc-news", "cnn"},
		DateFrom: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC),
		DateTo:   time.Date(2026, 8, 20, 0, 0, 0, 0, time.UTC),
		Language: "en",
		SortBy:   models.SortRecency,
	}
	results, err := s.Discover(context.Background(), req)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("expected 1 result, got %d", len(results))
	}
	if results[0].URL != "https://example.com/a" || results[0].Snippet != "A synopsis" {
		t.Fatalf("unexpected result: %+v", results[0])
	}
	if gotQuery["sources"] != "bbc-news,cnn" {
		t.Fatalf("expected joined sources, got %q", gotQuery["sources"])
	}
	if gotQuery["from"] != "2026-08-01" || gotQuery["to"] != "2026-08-20" {
		t.Fatalf("unexpected date params: %v", gotQuery)
	}
	if gotQuery["sortBy"] != "publishedAt" {
		t.Fatalf("expected sortBy publishedAt, got %q", gotQuery["sortBy"])
	}
}

func TestDiscoverErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad key", http.StatusUnauthorized)
	}))
	defer srv.Close()

	s := Search{APIKey: "bad", Endpoint: srv.URL, Timeout: 5 * time.Second}
	if _, err := s.Discover(context.Background(), models.Request{Keywords: "x"}); err == nil {
		t.Fatal("expected error on non-200 status")
	}
}
