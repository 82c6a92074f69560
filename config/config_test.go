package config

import (
	"testing"
	"time"
)

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Agent.SearchBudget != 10 {
		t.Fatalf("expected default search budget 10, got %d", cfg.Agent.SearchBudget)
	}
	if cfg.Agent.SummaryCount != 3 {
		t.Fatalf("expected default summary count 3, got %d", cfg.Agent.SummaryCount)
	}
	if cfg.Fetch.Timeout != 15*time.Second {
		t.Fatalf("expected default fetch timeout 15s, got %v", cfg.Fetch.Timeout)
	}
	if len(cfg.Search.AllowedSources) == 0 {
		t.Fatal("expected default allowed sources")
	}
}

func TestAgentConfigValidate(t *testing.T) {
	a := AgentConfig{SearchBudget: 0, SummaryCount: 3, MaxPoolSize: 10}
	if err := a.Validate(); err == nil {
		t.Fatal("expected error for zero search budget")
	}
	a = AgentConfig{SearchBudget: 5, SummaryCount: 3, MaxPoolSize: 2}
	if err := a.Validate(); err == nil {
		t.Fatal("expected error for pool smaller than summary count")
	}
	a = AgentConfig{SearchBudget: 5, SummaryCount: 3, MaxPoolSize: 10}
	if err := a.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestRedisConfigValidate(t *testing.T) {
	r := RedisConfig{Enabled: true}
	if err := r.Validate(); err == nil {
		t.Fatal("expected error when enabled without host")
	}
	r = RedisConfig{Enabled: false}
	if err := r.Validate(); err != nil {
		t.Fatalf("disabled redis should validate: %v", err)
	}
}
