package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"

	"github.com/redis/go-redis/v9"

	"github.com/mhrezaei/newsbrief/config"
	"github.com/mhrezaei/newsbrief/internal/agent"
)

const (
	runKeyPrefix = "run:"
	subKeyPrefix = "subscription:"
)

// Conn opens and pings a Redis client from configuration.
func Conn(ctx context.Context, cfg config.RedisConfig) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        fmt.Sprintf("%s:%s", cfg.Host, cfg.Port),
		DialTimeout: cfg.Timeout,
		Password:    cfg.Password,
		DB:          cfg.DB,
	})

	pong, err := client.Ping(ctx).Result()
	if err != nil {
		return nil, fmt.Errorf("redis ping: %w", err)
	}
	if pong != "PONG" {
		return nil, fmt.Errorf("expected PONG, got %s", pong)
	}
	return client, nil
}

// redisStore keeps runs and subscriptions as JSON values under prefixed keys.
type redisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) Store {
	return &redisStore{client: client}
}

func (r *redisStore) SaveRun(ctx context.Context, run *agent.RunResult) error {
	data, err := json.Marshal(run)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, runKeyPrefix+run.ID, data, 0).Err()
}

func (r *redisStore) GetRun(ctx context.Context, id string) (agent.RunResult, error) {
	val, err := r.client.Get(ctx, runKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return agent.RunResult{}, ErrRunNotFound
		}
		return agent.RunResult{}, err
	}
	var run agent.RunResult
	if err := json.Unmarshal([]byte(val), &run); err != nil {
		return agent.RunResult{}, err
	}
	return run, nil
}

func (r *redisStore) ListRuns(ctx context.Context) ([]agent.RunResult, error) {
	keys, err := r.client.Keys(ctx, runKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	runs := make([]agent.RunResult, 0, len(keys))
	for _, key := range keys {
		val, err := r.client.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue // deleted between KEYS and GET
			}
			return nil, err
		}
		var run agent.RunResult
		if err := json.Unmarshal([]byte(val), &run); err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	sortRunsNewestFirst(runs)
	return runs, nil
}

func (r *redisStore) SaveSubscription(ctx context.Context, sub Subscription) error {
	data, err := json.Marshal(sub)
	if err != nil {
		return err
	}
	return r.client.Set(ctx, subKeyPrefix+sub.ID, data, 0).Err()
}

func (r *redisStore) GetSubscription(ctx context.Context, id string) (Subscription, error) {
	val, err := r.client.Get(ctx, subKeyPrefix+id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return Subscription{}, ErrSubscriptionNotFound
		}
		return Subscription{}, err
	}
	var sub Subscription
	if err := json.Unmarshal([]byte(val), &sub); err != nil {
		return Subscription{}, err
	}
	return sub, nil
}

func (r *redisStore) ListSubscriptions(ctx context.Context) ([]Subscription, error) {
	keys, err := r.client.Keys(ctx, subKeyPrefix+"*").Result()
	if err != nil {
		return nil, err
	}

	subs := make([]Subscription, 0, len(keys))
	for _, key := range keys {
		val, err := r.client.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, err
		}
		var sub Subscription
		if err := json.Unmarshal([]byte(val), &sub); err != nil {
			return nil, err
		}
		subs = append(subs, sub)
	}
	sortSubsOldestFirst(subs)
	return subs, nil
}

func (r *redisStore) DeleteSubscription(ctx context.Context, id string) error {
	n, err := r.client.Del(ctx, subKeyPrefix+id).Result()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSubscriptionNotFound
	}
	return nil
}

func sortRunsNewestFirst(runs []agent.RunResult) {
	sort.Slice(runs, func(i, j int) bool { return runs[i].StartedAt.After(runs[j].StartedAt) })
}

func sortSubsOldestFirst(subs []Subscription) {
	sort.Slice(subs, func(i, j int) bool { return subs[i].CreatedAt.Before(subs[j].CreatedAt) })
}
