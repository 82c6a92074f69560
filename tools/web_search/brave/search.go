package brave

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

const endpoint = "https://api.search.brave.com/res/v1/news/search"

// Search implements metadata discovery against the Brave news search API.
// Source filters map onto site: operators; the date range maps onto the
// freshness parameter (Brave only supports coarse windows).
type Search struct {
	APIKey     string
	MaxResults int
	Timeout    time.Duration
}

func (s Search) Discover(ctx context.Context, req models.Request) ([]models.Result, error) {
	k := s.MaxResults
	if k <= 0 {
		k = 10
	}
	q := req.Keywords
	if len(req.Sources) > 0 {
		sites := make([]string, 0, len(req.Sources))
		for _, src := range req.Sources {
			sites = append(sites, "site:"+src)
		}
		q += " " + strings.Join(sites, " OR ")
	}

	params := url.Values{}
	params.Add("q", q)
	params.Add("count", fmt.Sprintf("%d", k))
	if f := freshness(req.DateWindow()); f != "" {
		params.Add("freshness", f)
	}

	httpReq, err := http.NewRequestWithContext(ctx, "GET", endpoint+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Accept", "application/json")
	httpReq.Header.Set("X-Subscription-Token", s.APIKey)

	client := &http.Client{Timeout: s.Timeout}
	resp, err := client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("brave error: %s", resp.Status)
	}

	var raw struct {
		Results []struct {
			Title       string `json:"title"`
			URL         string `json:"url"`
			Description string `json:"description"`
			Age         string `json:"age"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, err
	}

	var out []models.Result
	for i, r := range raw.Results {
		if i >= k {
			break
		}
		out = append(out, models.Result{Title: r.Title, URL: r.URL, Snippet: r.Description})
	}
	return out, nil
}

func freshness(window time.Duration) string {
	switch {
	case window <= 0:
		return ""
	case window <= 24*time.Hour:
		return "pd"
	case window <= 7*24*time.Hour:
		return "pw"
	case window <= 31*24*time.Hour:
		return "pm"
	default:
		return "py"
	}
}
