package agent

import (
	"time"

	search_models "github.com/mhrezaei/newsbrief/tools/web_search/models"
)

// TerminalState is the final state a run lands in.
type TerminalState string

const (
	// StateDone means documents were selected and summarized.
	StateDone TerminalState = "DONE"
	// StateDoneEmpty means the search budget was consumed with zero documents
	// found. This is an explicit result, not an error.
	StateDoneEmpty TerminalState = "DONE_EMPTY"
	// StateFailed means a run-fatal failure occurred; partial state is still
	// attached to the result.
	StateFailed TerminalState = "FAILED"
)

// Document is one candidate article accumulated during a run. FullText is
// best-effort: extraction failures leave it empty and the document is kept
// with its search-result synopsis.
type Document struct {
	URL           string                `json:"url"`
	Title         string                `json:"title"`
	Synopsis      string                `json:"synopsis"`
	FullText      string                `json:"full_text,omitempty"`
	Summary       string                `json:"summary,omitempty"`
	Source        string                `json:"source,omitempty"`
	PublishedAt   time.Time             `json:"published_at,omitempty"`
	OriginRequest search_models.Request `json:"origin_request"`
}

// RunInput is the entry-point payload for a single run. Zero fields are
// replaced with the configured defaults.
type RunInput struct {
	Query          string `json:"query"`
	SearchBudget   int    `json:"search_budget,omitempty"`
	TargetPoolSize int    `json:"target_pool_size,omitempty"`
	SummaryCount   int    `json:"summary_count,omitempty"`
}

// RunResult is everything a run produced, including partial state on failure.
type RunResult struct {
	ID            string                  `json:"id"`
	Query         string                  `json:"query"`
	Documents     []Document              `json:"documents"`
	SearchHistory []search_models.Request `json:"search_history"`
	TerminalState TerminalState           `json:"terminal_state"`
	Digest        string                  `json:"digest,omitempty"`
	Error         string                  `json:"error,omitempty"`
	StartedAt     time.Time               `json:"started_at"`
	FinishedAt    time.Time               `json:"finished_at"`
}
