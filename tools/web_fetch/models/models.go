package models

// Result is the outcome of a best-effort page fetch + text extraction.
// Text is empty when extraction failed; that is not an error.
type Result struct {
	URL      string `json:"url"`
	Title    string `json:"title,omitempty"`
	Byline   string `json:"byline,omitempty"`
	Text     string `json:"text"`
	Status   int    `json:"status"`
	RenderMS int    `json:"render_ms"`
}
