package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the newsbrief service
type Config struct {
	General   GeneralConfig   `mapstructure:"general"`
	Server    ServerConfig    `mapstructure:"server"`
	LLM       LLMConfig       `mapstructure:"llm"`
	Search    SearchConfig    `mapstructure:"search"`
	Fetch     FetchConfig     `mapstructure:"fetch"`
	Agent     AgentConfig     `mapstructure:"agent"`
	Storage   StorageConfig   `mapstructure:"storage"`
	Scheduler SchedulerConfig `mapstructure:"scheduler"`
}

// GeneralConfig contains general application settings
type GeneralConfig struct {
	Debug    bool   `mapstructure:"debug"`
	LogLevel string `mapstructure:"log_level"`
}

// ServerConfig contains HTTP server and auth settings
type ServerConfig struct {
	Address   string `mapstructure:"address"`
	JWTSecret string `mapstructure:"jwt_secret"` // empty disables auth on /api
}

// LLMConfig contains the text-completion provider configuration
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"` // openai
	APIKey      string        `mapstructure:"api_key"`
	BaseURL     string        `mapstructure:"base_url"`
	Model       string        `mapstructure:"model"`
	Temperature float64       `mapstructure:"temperature"`
	MaxTokens   int           `mapstructure:"max_tokens"`
	Timeout     time.Duration `mapstructure:"timeout"`
}

func (l LLMConfig) Validate() error {
	if strings.TrimSpace(l.APIKey) == "" {
		return fmt.Errorf("llm.api_key is required")
	}
	if strings.TrimSpace(l.Model) == "" {
		return fmt.Errorf("llm.model is required")
	}
	return nil
}

// SearchConfig contains metadata-search provider settings
type SearchConfig struct {
	Provider        string        `mapstructure:"provider"` // newsapi, brave
	NewsAPIKey      string        `mapstructure:"newsapi_api_key"`
	NewsAPIEndpoint string        `mapstructure:"newsapi_endpoint"`
	BraveAPIKey     string        `mapstructure:"brave_api_key"`
	MaxResults      int           `mapstructure:"max_results"`
	Timeout         time.Duration `mapstructure:"timeout"`
	// AllowedSources is the closed set of source identifiers the parameter
	// generator may filter on. Empty means any source.
	AllowedSources []string `mapstructure:"allowed_sources"`
}

func (s SearchConfig) Validate() error {
	switch s.Provider {
	case "newsapi":
		if strings.TrimSpace(s.NewsAPIKey) == "" {
			return fmt.Errorf("search.newsapi_api_key required when provider is newsapi")
		}
	case "brave":
		if strings.TrimSpace(s.BraveAPIKey) == "" {
			return fmt.Errorf("search.brave_api_key required when provider is brave")
		}
	default:
		return fmt.Errorf("search.provider must be one of newsapi, brave")
	}
	return nil
}

// FetchConfig contains full-text extraction settings
type FetchConfig struct {
	Type        string        `mapstructure:"type"` // readability, chromedp
	Timeout     time.Duration `mapstructure:"timeout"`
	MaxChars    int           `mapstructure:"max_chars"`
	Concurrency int           `mapstructure:"concurrency"`
}

// AgentConfig contains the expansion-loop settings
type AgentConfig struct {
	SearchBudget       int           `mapstructure:"search_budget"`
	SummaryCount       int           `mapstructure:"summary_count"`
	MaxPoolSize        int           `mapstructure:"max_pool_size"`
	MaxRunTime         time.Duration `mapstructure:"max_run_time"`
	SummaryConcurrency int           `mapstructure:"summary_concurrency"`
}

func (a AgentConfig) Validate() error {
	if a.SearchBudget <= 0 {
		return fmt.Errorf("agent.search_budget must be > 0")
	}
	if a.SummaryCount <= 0 {
		return fmt.Errorf("agent.summary_count must be > 0")
	}
	if a.MaxPoolSize < a.SummaryCount {
		return fmt.Errorf("agent.max_pool_size must be >= agent.summary_count")
	}
	return nil
}

// StorageConfig contains the run-log store settings
type StorageConfig struct {
	Redis RedisConfig `mapstructure:"redis"`
}

// RedisConfig contains Redis connection settings
type RedisConfig struct {
	Enabled  bool          `mapstructure:"enabled"`
	Host     string        `mapstructure:"host"`
	Port     string        `mapstructure:"port"`
	Password string        `mapstructure:"password"`
	DB       int           `mapstructure:"db"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

func (r RedisConfig) Validate() error {
	if !r.Enabled {
		return nil
	}
	if strings.TrimSpace(r.Host) == "" {
		return fmt.Errorf("storage.redis.host required")
	}
	if strings.TrimSpace(r.Port) == "" {
		return fmt.Errorf("storage.redis.port required")
	}
	return nil
}

// SchedulerConfig controls recurring digest subscriptions
type SchedulerConfig struct {
	Enabled      bool          `mapstructure:"enabled"`
	TickInterval time.Duration `mapstructure:"tick_interval"`
}

// LoadConfig loads config from file, falling back to defaults and
// NEWSBRIEF_* environment variables when no file is present.
func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("json")

	v.SetDefault("general.log_level", "info")
	v.SetDefault("server.address", ":10010")
	v.SetDefault("llm.provider", "openai")
	v.SetDefault("llm.model", "gpt-4o-mini")
	v.SetDefault("llm.temperature", 0.2)
	v.SetDefault("llm.max_tokens", 2048)
	v.SetDefault("llm.timeout", 30*time.Second)
	v.SetDefault("search.provider", "newsapi")
	v.SetDefault("search.max_results", 10)
	v.SetDefault("search.timeout", 15*time.Second)
	v.SetDefault("search.allowed_sources", []string{
		"abc-news", "associated-press", "axios", "bbc-news", "bloomberg",
		"business-insider", "cbs-news", "cnn", "fortune", "reuters",
	})
	v.SetDefault("fetch.type", "readability")
	v.SetDefault("fetch.timeout", 15*time.Second)
	v.SetDefault("fetch.max_chars", 20000)
	v.SetDefault("fetch.concurrency", 4)
	v.SetDefault("agent.search_budget", 10)
	v.SetDefault("agent.summary_count", 3)
	v.SetDefault("agent.max_pool_size", 10)
	v.SetDefault("agent.max_run_time", 5*time.Minute)
	v.SetDefault("agent.summary_concurrency", 3)
	v.SetDefault("storage.redis.timeout", 5*time.Second)
	v.SetDefault("scheduler.tick_interval", time.Minute)

	if path == "" {
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	} else {
		v.SetConfigFile(path)
	}

	v.SetEnvPrefix("NEWSBRIEF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		// no config file found: defaults + env apply
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	if err := cfg.Agent.Validate(); err != nil {
		return nil, err
	}
	if err := cfg.Storage.Redis.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}
