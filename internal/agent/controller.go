package agent

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/mhrezaei/newsbrief/config"
	"github.com/mhrezaei/newsbrief/provider"
	"github.com/mhrezaei/newsbrief/tools/web_fetch"
	"github.com/mhrezaei/newsbrief/tools/web_search"
	search_models "github.com/mhrezaei/newsbrief/tools/web_search/models"
)

// loopState is one step of the expansion loop. Transitions are decided in
// Run with a plain switch; no workflow framework involved.
type loopState int

const (
	stateGenerateParams loopState = iota
	stateFetch
	stateFilter
	stateDecide
	stateSelect
	stateSummarize
)

// Controller drives a single run: generate search parameters, fetch and
// filter candidates, broaden until the pool target or search budget is hit,
// then select and summarize. One Controller serves many runs; all per-run
// state lives inside Run.
type Controller struct {
	provider provider.Provider
	searcher web_search.WebSearcher
	fetcher  web_fetch.WebFetcher

	defaults           config.AgentConfig
	allowedSources     []string
	fetchConcurrency   int
	summaryConcurrency int
	maxRunTime         time.Duration

	logger *log.Logger
	now    func() time.Time
}

func NewController(p provider.Provider, s web_search.WebSearcher, f web_fetch.WebFetcher, cfg *config.Config) *Controller {
	fetchConc := cfg.Fetch.Concurrency
	if fetchConc <= 0 {
		fetchConc = 1
	}
	sumConc := cfg.Agent.SummaryConcurrency
	if sumConc <= 0 {
		sumConc = 1
	}
	return &Controller{
		provider:           p,
		searcher:           s,
		fetcher:            f,
		defaults:           cfg.Agent,
		allowedSources:     cfg.Search.AllowedSources,
		fetchConcurrency:   fetchConc,
		summaryConcurrency: sumConc,
		maxRunTime:         cfg.Agent.MaxRunTime,
		logger:             log.New(log.Writer(), "[AGENT] ", log.LstdFlags),
		now:                time.Now,
	}
}

// Run executes one full expansion loop. It always returns a result: run
// failures land in TerminalState FAILED with the partial pool and search
// history attached.
func (c *Controller) Run(ctx context.Context, in RunInput) *RunResult {
	budget := in.SearchBudget
	if budget <= 0 {
		budget = c.defaults.SearchBudget
	}
	summaryCount := in.SummaryCount
	if summaryCount <= 0 {
		summaryCount = c.defaults.SummaryCount
	}
	target := in.TargetPoolSize
	if target <= 0 {
		target = summaryCount
	}
	maxPool := c.defaults.MaxPoolSize
	if maxPool < target {
		maxPool = target
	}

	if c.maxRunTime > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.maxRunTime)
		defer cancel()
	}

	res := &RunResult{
		ID:        uuid.NewString(),
		Query:     in.Query,
		StartedAt: c.now(),
	}
	c.logger.Printf("run %s started: query=%q budget=%d target=%d", res.ID, in.Query, budget, target)

	p := newPool(maxPool)
	var (
		req       search_models.Request
		batch     []Document
		iteration int
	)

	state := stateGenerateParams
	for {
		switch state {
		case stateGenerateParams:
			req = c.generateParams(ctx, in.Query, res.SearchHistory, budget-iteration)
			state = stateFetch

		case stateFetch:
			iteration++
			res.SearchHistory = append(res.SearchHistory, req)
			var err error
			batch, err = c.fetchCandidates(ctx, req)
			if err != nil {
				if ctx.Err() != nil && p.size() > 0 {
					// Wall-clock budget spent mid-fetch: keep what we have.
					batch = nil
				} else {
					return c.fail(res, p, fmt.Errorf("iteration %d: %w", iteration, err))
				}
			}
			state = stateFilter

		case stateFilter:
			added := p.add(batch)
			c.logger.Printf("run %s iteration %d: %d fetched, %d novel, pool %d/%d",
				res.ID, iteration, len(batch), added, p.size(), maxPool)
			state = stateDecide

		case stateDecide:
			switch {
			case ctx.Err() != nil && p.size() > 0:
				// Wall-clock budget spent: degrade to whatever accumulated.
				c.logger.Printf("run %s timed out, selecting from partial pool", res.ID)
				state = stateSelect
			case iteration >= budget && p.size() == 0:
				return c.finishEmpty(res)
			case iteration >= budget:
				state = stateSelect
			case ctx.Err() != nil:
				return c.finishEmpty(res)
			case p.size() < target && !p.full():
				state = stateGenerateParams
			default:
				state = stateSelect
			}

		case stateSelect:
			selected, err := c.selectTopK(ctx, in.Query, p, summaryCount)
			if err != nil {
				return c.fail(res, p, fmt.Errorf("iteration %d: %w", iteration, err))
			}
			res.Documents = selected
			state = stateSummarize

		case stateSummarize:
			c.summarize(ctx, in.Query, res.Documents)
			res.TerminalState = StateDone
			res.Digest = Digest(in.Query, res.Documents)
			res.FinishedAt = c.now()
			c.logger.Printf("run %s done: %d documents summarized over %d searches",
				res.ID, len(res.Documents), iteration)
			return res
		}
	}
}

func (c *Controller) finishEmpty(res *RunResult) *RunResult {
	res.TerminalState = StateDoneEmpty
	res.Digest = Digest(res.Query, nil)
	res.FinishedAt = c.now()
	c.logger.Printf("run %s finished empty after %d searches", res.ID, len(res.SearchHistory))
	return res
}

// fail attaches whatever accumulated before the fatal error so completed
// work is not discarded.
func (c *Controller) fail(res *RunResult, p *pool, err error) *RunResult {
	res.TerminalState = StateFailed
	res.Error = err.Error()
	res.Documents = p.documents()
	res.FinishedAt = c.now()
	c.logger.Printf("run %s failed: %v", res.ID, err)
	return res
}
