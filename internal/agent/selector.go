package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/mhrezaei/newsbrief/internal/helpers"
)

const selectSystemPrompt = `You are a news relevance judge. From the numbered candidate articles, pick the ones most relevant to the user's query. Reply with the URLs of the chosen articles, one per line, and nothing else.`

// selectTopK asks the completion capability to pick at most k documents from
// the pool. URLs the completion invents are discarded silently; if nothing
// valid survives, the first k pool documents are used instead. A transport
// failure of the completion call itself is run-fatal and returned.
func (c *Controller) selectTopK(ctx context.Context, query string, p *pool, k int) ([]Document, error) {
	docs := p.documents()
	if len(docs) <= k {
		return docs, nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Query: %s\n", query)
	fmt.Fprintf(&sb, "Pick at most %d articles.\n\nCandidates:\n", k)
	for i, doc := range docs {
		fmt.Fprintf(&sb, "%d. %s\n   %s\n   %s\n", i+1, doc.Title, doc.URL, doc.Synopsis)
	}

	raw, err := c.provider.Complete(ctx, selectSystemPrompt, sb.String())
	if err != nil {
		if ctx.Err() != nil {
			// Run deadline hit: degrade to insertion order instead of failing.
			return docs[:k], nil
		}
		return nil, fmt.Errorf("selection call failed: %w", err)
	}

	picked := make([]Document, 0, k)
	taken := make(map[string]struct{}, k)
	for _, url := range helpers.ExtractURLs(raw) {
		if len(picked) == k {
			break
		}
		if !p.contains(url) {
			c.logger.Printf("selection returned unknown url, discarding: %s", url)
			continue
		}
		key := poolKey(url)
		if _, dup := taken[key]; dup {
			continue
		}
		for _, doc := range docs {
			if poolKey(doc.URL) == key {
				taken[key] = struct{}{}
				picked = append(picked, doc)
				break
			}
		}
	}

	if len(picked) == 0 {
		c.logger.Printf("selection produced no valid urls, falling back to first %d documents", k)
		return docs[:k], nil
	}
	return picked, nil
}
