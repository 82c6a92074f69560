package store

import (
	"context"
	"sync"

	"github.com/mhrezaei/newsbrief/internal/agent"
)

// memoryStore is the default store when Redis is not configured. Runs and
// subscriptions survive only for the lifetime of the process.
type memoryStore struct {
	mu   sync.RWMutex
	runs map[string]agent.RunResult
	subs map[string]Subscription
}

func NewMemoryStore() Store {
	return &memoryStore{
		runs: make(map[string]agent.RunResult),
		subs: make(map[string]Subscription),
	}
}

func (m *memoryStore) SaveRun(_ context.Context, run *agent.RunResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.runs[run.ID] = *run
	return nil
}

func (m *memoryStore) GetRun(_ context.Context, id string) (agent.RunResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	run, ok := m.runs[id]
	if !ok {
		return agent.RunResult{}, ErrRunNotFound
	}
	return run, nil
}

func (m *memoryStore) ListRuns(_ context.Context) ([]agent.RunResult, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	runs := make([]agent.RunResult, 0, len(m.runs))
	for _, run := range m.runs {
		runs = append(runs, run)
	}
	sortRunsNewestFirst(runs)
	return runs, nil
}

func (m *memoryStore) SaveSubscription(_ context.Context, sub Subscription) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.subs[sub.ID] = sub
	return nil
}

func (m *memoryStore) GetSubscription(_ context.Context, id string) (Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	sub, ok := m.subs[id]
	if !ok {
		return Subscription{}, ErrSubscriptionNotFound
	}
	return sub, nil
}

func (m *memoryStore) ListSubscriptions(_ context.Context) ([]Subscription, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	subs := make([]Subscription, 0, len(m.subs))
	for _, sub := range m.subs {
		subs = append(subs, sub)
	}
	sortSubsOldestFirst(subs)
	return subs, nil
}

func (m *memoryStore) DeleteSubscription(_ context.Context, id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.subs[id]; !ok {
		return ErrSubscriptionNotFound
	}
	delete(m.subs, id)
	return nil
}
