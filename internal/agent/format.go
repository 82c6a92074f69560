package agent

import (
	"fmt"
	"strings"
)

// Digest renders the selected, summarized documents as a markdown brief.
func Digest(query string, docs []Document) string {
	if len(docs) == 0 {
		return fmt.Sprintf("No articles found for %q.", query)
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Here are the top %d articles based on search terms: %s\n\n", len(docs), query)
	for _, doc := range docs {
		fmt.Fprintf(&sb, "## %s\n", doc.Title)
		fmt.Fprintf(&sb, "%s\n\n", doc.URL)
		if doc.Summary != "" {
			fmt.Fprintf(&sb, "%s\n\n", strings.TrimSpace(doc.Summary))
		}
	}
	return strings.TrimRight(sb.String(), "\n") + "\n"
}
