package agent

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

const summarySystemPrompt = `You are a news editor. Summarize the article below as three to five short markdown bullet points covering the key facts. Reply with the bullet list only.`

// summarize produces a bulleted synopsis per selected document. Each call is
// independent: a failure on one document yields a placeholder summary for
// that document only and never aborts the others.
func (c *Controller) summarize(ctx context.Context, query string, docs []Document) {
	g := new(errgroup.Group)
	g.SetLimit(c.summaryConcurrency)
	for i := range docs {
		g.Go(func() error {
			body := docs[i].FullText
			if body == "" {
				body = docs[i].Synopsis
			}
			prompt := fmt.Sprintf("Query: %s\n\nTitle: %s\n\nArticle:\n%s\n", query, docs[i].Title, body)
			summary, err := c.provider.Complete(ctx, summarySystemPrompt, prompt)
			if err != nil {
				c.logger.Printf("summarization failed for %s: %v", docs[i].URL, err)
				docs[i].Summary = fmt.Sprintf("summary unavailable: %v", err)
				return nil
			}
			docs[i].Summary = summary
			return nil
		})
	}
	// Workers write to disjoint indexes and never return errors.
	_ = g.Wait()
}
