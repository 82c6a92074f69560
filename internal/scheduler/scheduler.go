package scheduler

import (
	"context"
	"log"
	"time"

	"github.com/gorhill/cronexpr"

	"github.com/mhrezaei/newsbrief/internal/agent"
	"github.com/mhrezaei/newsbrief/internal/store"
)

// Runner executes one digest run. *agent.Controller satisfies it.
type Runner interface {
	Run(ctx context.Context, in agent.RunInput) *agent.RunResult
}

// Scheduler walks the stored subscriptions on a fixed tick and fires a run
// for every subscription whose cron schedule is due.
type Scheduler struct {
	store  store.Store
	runner Runner

	tickInterval time.Duration
	logger       *log.Logger
	now          func() time.Time
	stop         chan struct{}
}

func New(st store.Store, runner Runner, tickInterval time.Duration) *Scheduler {
	if tickInterval <= 0 {
		tickInterval = time.Minute
	}
	return &Scheduler{
		store:        st,
		runner:       runner,
		tickInterval: tickInterval,
		logger:       log.New(log.Writer(), "[SCHED] ", log.LstdFlags),
		now:          time.Now,
		stop:         make(chan struct{}),
	}
}

func (s *Scheduler) Start() {
	ticker := time.NewTicker(s.tickInterval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-s.stop:
				return
			case <-ticker.C:
				s.tick(context.Background())
			}
		}
	}()
}

func (s *Scheduler) Stop() { close(s.stop) }

func (s *Scheduler) tick(ctx context.Context) {
	subs, err := s.store.ListSubscriptions(ctx)
	if err != nil {
		s.logger.Printf("listing subscriptions: %v", err)
		return
	}
	for _, sub := range subs {
		if !s.due(sub) {
			continue
		}
		s.fire(ctx, sub)
	}
}

func (s *Scheduler) fire(ctx context.Context, sub store.Subscription) {
	s.logger.Printf("subscription %s due, running query %q", sub.ID, sub.Query)
	res := s.runner.Run(ctx, agent.RunInput{Query: sub.Query, SummaryCount: sub.SummaryCount})
	if err := s.store.SaveRun(ctx, res); err != nil {
		s.logger.Printf("saving run for subscription %s: %v", sub.ID, err)
	}

	sub.LastRunAt = s.now()
	sub.LastRunID = res.ID
	if err := s.store.SaveSubscription(ctx, sub); err != nil {
		s.logger.Printf("updating subscription %s: %v", sub.ID, err)
	}
}

// due reports whether the subscription's schedule has a firing time between
// its last run and now. A never-run subscription is due immediately; an
// unparsable schedule is treated as daily.
func (s *Scheduler) due(sub store.Subscription) bool {
	now := s.now()
	if sub.LastRunAt.IsZero() {
		return true
	}
	expr, err := cronexpr.Parse(sub.Schedule)
	if err != nil {
		return now.Sub(sub.LastRunAt) >= 24*time.Hour
	}
	next := expr.Next(sub.LastRunAt)
	return !next.IsZero() && !next.After(now)
}
