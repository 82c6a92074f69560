package agent

import (
	"context"
	"fmt"
	"strings"
	"time"

	search_models "github.com/mhrezaei/newsbrief/tools/web_search/models"
)

const (
	// maxDateWindow is the widest date range the generator may request and
	// the range forced on the final remaining attempt.
	maxDateWindow = 30 * 24 * time.Hour

	defaultLanguage   = "en"
	initialDateWindow = 7 * 24 * time.Hour
)

const paramsSystemPrompt = `You are a news search assistant. Given a user query and the searches already tried, produce the next set of news-search parameters as JSON with keys: keywords (string), sources (array of source identifiers, may be empty), date_from (YYYY-MM-DD), date_to (YYYY-MM-DD), language (ISO 639-1), sort_by (one of relevancy, popularity, recency). Each new search must be broader than the previous one: widen the date range or drop sources, never narrow.`

type paramsCompletion struct {
	Keywords string   `json:"keywords"`
	Sources  []string `json:"sources"`
	DateFrom string   `json:"date_from"`
	DateTo   string   `json:"date_to"`
	Language string   `json:"language"`
	SortBy   string   `json:"sort_by"`
}

// generateParams produces the next search request for the run. It never
// fails: a completion error or malformed structure falls back to a
// deterministic wide default so the run keeps converging.
func (c *Controller) generateParams(ctx context.Context, query string, history []search_models.Request, remaining int) search_models.Request {
	req, err := c.completeParams(ctx, query, history, remaining)
	if err != nil {
		c.logger.Printf("parameter generation failed, using default request: %v", err)
		req = c.fallbackRequest(query)
	}

	if len(history) > 0 {
		req = broaden(history[len(history)-1], req)
	}
	if remaining <= 1 {
		req = c.widest(req)
	}
	return req
}

func (c *Controller) completeParams(ctx context.Context, query string, history []search_models.Request, remaining int) (search_models.Request, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Query: %s\n", query)
	fmt.Fprintf(&sb, "Remaining search attempts: %d\n", remaining)
	if len(c.allowedSources) > 0 {
		fmt.Fprintf(&sb, "Allowed sources: %s\n", strings.Join(c.allowedSources, ", "))
	}
	if len(history) == 0 {
		sb.WriteString("No searches tried yet.\n")
	} else {
		sb.WriteString("Searches already tried, oldest first:\n")
		for i, prev := range history {
			fmt.Fprintf(&sb, "%d. keywords=%q sources=%v window=%s..%s\n",
				i+1, prev.Keywords, prev.Sources,
				prev.DateFrom.Format("2006-01-02"), prev.DateTo.Format("2006-01-02"))
		}
	}
	if remaining <= 1 {
		sb.WriteString("This is the final attempt: use no source filter and the widest date range.\n")
	}

	var out paramsCompletion
	if err := c.provider.CompleteJSON(ctx, paramsSystemPrompt, sb.String(), &out); err != nil {
		return search_models.Request{}, err
	}
	return c.requestFromCompletion(query, out), nil
}

func (c *Controller) requestFromCompletion(query string, out paramsCompletion) search_models.Request {
	now := c.now()
	req := search_models.Request{
		Keywords: strings.TrimSpace(out.Keywords),
		Sources:  c.knownSources(out.Sources),
		Language: strings.TrimSpace(out.Language),
		SortBy:   search_models.SortOrder(out.SortBy),
	}
	if req.Keywords == "" {
		req.Keywords = query
	}
	if req.Language == "" {
		req.Language = defaultLanguage
	}
	switch req.SortBy {
	case search_models.SortRelevancy, search_models.SortPopularity, search_models.SortRecency:
	default:
		req.SortBy = search_models.SortRelevancy
	}

	req.DateFrom = parseDay(out.DateFrom, now.Add(-initialDateWindow))
	req.DateTo = parseDay(out.DateTo, now)
	if !req.DateFrom.Before(req.DateTo) {
		req.DateFrom = req.DateTo.Add(-initialDateWindow)
	}
	if floor := now.Add(-maxDateWindow); req.DateFrom.Before(floor) {
		req.DateFrom = floor
	}
	return req
}

// knownSources drops source identifiers outside the configured allow-list.
// With no allow-list configured, completions may name any source.
func (c *Controller) knownSources(sources []string) []string {
	var out []string
	for _, s := range sources {
		s = strings.TrimSpace(strings.ToLower(s))
		if s == "" {
			continue
		}
		if len(c.allowedSources) > 0 && !contains(c.allowedSources, s) {
			continue
		}
		out = append(out, s)
	}
	return out
}

// fallbackRequest is the deterministic default used when the completion
// cannot be trusted: query keywords verbatim, no source filter, the widest
// date window.
func (c *Controller) fallbackRequest(query string) search_models.Request {
	now := c.now()
	return search_models.Request{
		Keywords: query,
		DateFrom: now.Add(-maxDateWindow),
		DateTo:   now,
		Language: defaultLanguage,
		SortBy:   search_models.SortRelevancy,
	}
}

// widest relaxes every filter axis to its maximum: no source filter and the
// full date window ending now.
func (c *Controller) widest(req search_models.Request) search_models.Request {
	now := c.now()
	req.Sources = nil
	req.DateFrom = now.Add(-maxDateWindow)
	req.DateTo = now
	return req
}

// broaden coerces next to be at least as broad as prev on every axis.
// Tightening is never allowed: the date window may only grow and a source
// filter may only be relaxed, which guarantees monotonic progress.
func broaden(prev, next search_models.Request) search_models.Request {
	if next.DateFrom.After(prev.DateFrom) {
		next.DateFrom = prev.DateFrom
	}
	if next.DateTo.Before(prev.DateTo) {
		next.DateTo = prev.DateTo
	}
	if !prev.HasSourceFilter() {
		next.Sources = nil
		return next
	}
	// prev had a filter: next keeps a superset of it or drops filtering.
	if next.HasSourceFilter() && !supersetOf(next.Sources, prev.Sources) {
		next.Sources = nil
	}
	return next
}

func supersetOf(super, sub []string) bool {
	for _, s := range sub {
		if !contains(super, s) {
			return false
		}
	}
	return true
}

func contains(haystack []string, needle string) bool {
	for _, h := range haystack {
		if h == needle {
			return true
		}
	}
	return false
}

func parseDay(s string, fallback time.Time) time.Time {
	t, err := time.Parse("2006-01-02", strings.TrimSpace(s))
	if err != nil {
		return fallback
	}
	return t
}
