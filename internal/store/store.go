package store

import (
	"context"
	"errors"
	"time"

	"github.com/mhrezaei/newsbrief/config"
	"github.com/mhrezaei/newsbrief/internal/agent"
)

var (
	ErrRunNotFound          = errors.New("run not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

// Subscription is a recurring digest request: the query is re-run on the
// cron schedule and the resulting run is recorded like any ad-hoc one.
type Subscription struct {
	ID           string    `json:"id"`
	Query        string    `json:"query"`
	Schedule     string    `json:"schedule"` // cron expression
	SummaryCount int       `json:"summary_count,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	LastRunAt    time.Time `json:"last_run_at,omitempty"`
	LastRunID    string    `json:"last_run_id,omitempty"`
}

// Store is the run-log and subscription storage.
type Store interface {
	SaveRun(ctx context.Context, run *agent.RunResult) error
	GetRun(ctx context.Context, id string) (agent.RunResult, error)
	ListRuns(ctx context.Context) ([]agent.RunResult, error)

	SaveSubscription(ctx context.Context, sub Subscription) error
	GetSubscription(ctx context.Context, id string) (Subscription, error)
	ListSubscriptions(ctx context.Context) ([]Subscription, error)
	DeleteSubscription(ctx context.Context, id string) error
}

// New builds the configured store: Redis when enabled, otherwise an
// in-process store that lives for the lifetime of the service.
func New(ctx context.Context, cfg config.StorageConfig) (Store, error) {
	if !cfg.Redis.Enabled {
		return NewMemoryStore(), nil
	}
	client, err := Conn(ctx, cfg.Redis)
	if err != nil {
		return nil, err
	}
	return NewRedisStore(client), nil
}
