package models

import "time"

// SortOrder controls result ranking at the search provider.
type SortOrder string

const (
	SortRelevancy  SortOrder = "relevancy"
	SortPopularity SortOrder = "popularity"
	SortRecency    SortOrder = "recency"
)

// Request is one immutable search-parameter set issued against a provider.
// Empty Sources means "any source".
type Request struct {
	Keywords string    `json:"q"`
	Sources  []string  `json:"sources,omitempty"`
	DateFrom time.Time `json:"date_from"`
	DateTo   time.Time `json:"date_to"`
	Language string    `json:"language"`
	SortBy   SortOrder `json:"sort_by"`
}

// DateWindow returns the request's date range size.
func (r Request) DateWindow() time.Duration {
	return r.DateTo.Sub(r.DateFrom)
}

// HasSourceFilter reports whether the request restricts sources.
func (r Request) HasSourceFilter() bool { return len(r.Sources) > 0 }

// Result is ranked article metadata returned by a provider; full text is
// never guaranteed.
type Result struct {
	Title       string    `json:"title"`
	URL         string    `json:"url"`
	Snippet     string    `json:"snippet"`
	Source      string    `json:"source,omitempty"`
	PublishedAt time.Time `json:"published_at,omitempty"`
}
