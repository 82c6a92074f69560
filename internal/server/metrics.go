package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/mhrezaei/newsbrief/internal/agent"
)

var (
	runsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "newsbrief",
		Name:      "runs_total",
		Help:      "Completed runs by terminal state.",
	}, []string{"state"})

	runDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "newsbrief",
		Name:      "run_duration_seconds",
		Help:      "Wall-clock duration of runs.",
		Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
	})

	runSearches = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: "newsbrief",
		Name:      "run_search_iterations",
		Help:      "Search iterations consumed per run.",
		Buckets:   prometheus.LinearBuckets(1, 1, 10),
	})
)

func observeRun(res *agent.RunResult) {
	runsTotal.WithLabelValues(string(res.TerminalState)).Inc()
	runSearches.Observe(float64(len(res.SearchHistory)))
	if !res.FinishedAt.IsZero() && !res.StartedAt.IsZero() {
		runDuration.Observe(res.FinishedAt.Sub(res.StartedAt).Seconds())
	}
}
