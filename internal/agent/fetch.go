package agent

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	search_models "github.com/mhrezaei/newsbrief/tools/web_search/models"
)

// fetchCandidates runs one search and turns the results into candidate
// documents with best-effort full text. A failing search call is run-fatal
// and returned as an error; a failing per-document extraction only leaves
// that document's FullText empty.
func (c *Controller) fetchCandidates(ctx context.Context, req search_models.Request) ([]Document, error) {
	results, err := c.searcher.Discover(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("search call failed: %w", err)
	}
	if len(results) == 0 {
		return nil, nil
	}

	docs := make([]Document, len(results))
	for i, r := range results {
		docs[i] = Document{
			URL:           r.URL,
			Title:         r.Title,
			Synopsis:      r.Snippet,
			Source:        r.Source,
			PublishedAt:   r.PublishedAt,
			OriginRequest: req,
		}
	}

	// Extraction calls are independent I/O: run them through a bounded pool
	// and write each result to its own slice index so batch order is stable.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(c.fetchConcurrency)
	for i := range docs {
		g.Go(func() error {
			res, err := c.fetcher.Exec(gctx, docs[i].URL)
			if err != nil {
				c.logger.Printf("text extraction failed for %s: %v", docs[i].URL, err)
				return nil
			}
			if text := strings.TrimSpace(res.Text); text != "" {
				docs[i].FullText = text
				if docs[i].Title == "" {
					docs[i].Title = res.Title
				}
			}
			return nil
		})
	}
	// Workers never return errors; Wait only orders the writes above.
	_ = g.Wait()

	return docs, nil
}
