package newsapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/mhrezaei/newsbrief/tools/web_search/models"
)

const defaultEndpoint = "https://newsapi.org/v2/everything"

// Search implements metadata discovery against newsapi.org /v2/everything.
type Search struct {
	APIKey     string
	Endpoint   string
	MaxResults int
	Timeout    time.Duration
}

type response struct {
	Status       string `json:"status"`
	TotalResults int    `json:"totalResults"`
	Articles     []struct {
		Source struct {
			Name string `json:"name"`
		} `json:"source"`
		Title       string    `json:"title"`
		Description string    `json:"description"`
		URL         string    `json:"url"`
		PublishedAt time.Time `json:"publishedAt"`
	} `json:"articles"`
}

func (s Search) Discover(ctx context.Context, req models.Request) ([]models.Result, error) {
	endpoint := s.Endpoint
	if endpoint == "" {
		endpoint = defaultEndpoint
	}
	pageSize := s.MaxResults
	if pageSize <= 0 {
		pageSize = 10
	}

	params := url.Values{}
	params.Add("q", req.Keywords)
	if len(req.Sources) > 0 {
		params.Add("sources", strings.Join(req.Sources, ","))
	}
	if !req.DateFrom.IsZero() {
		params.Add("from", req.DateFrom.Format("2006-01-02"))
	}
	if !req.DateTo.IsZero() {
		params.Add("to", req.DateTo.Format("2006-01-02"))
	}
	if req.Language != "" {
		params.Add("language", req.Language)
	}
	params.Add("sortBy", sortParam(req.SortBy))
	params.Add("pageSize", fmt.Sprintf("%d", pageSize))

	httpReq, err := http.NewRequestWithContext(ctx, "GET", fmt.Sprintf("%s?%s", endpoint, params.Encode()), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("X-Api-Key", s.APIKey)

	client := &http.Client{Timeout: s.Timeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch news: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("newsapi error: %s", resp.Status)
	}

	var result response
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	out := make([]models.Result, 0, len(result.Articles))
	for _, a := range result.Articles {
		out = append(out, models.Result{
			Title:       a.Title,
			URL:         a.URL,
			Snippet:     a.Description,
			Source:      a.Source.Name,
			PublishedAt: a.PublishedAt,
		})
	}
	return out, nil
}

// sortParam maps the generic sort order onto NewsAPI's sortBy values.
func sortParam(s models.SortOrder) string {
	switch s {
	case models.SortPopularity:
		return "popularity"
	case models.SortRecency:
		return "publishedAt"
	default:
		return "relevancy"
	}
}
