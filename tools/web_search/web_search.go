package web_search

import (
	"context"
	"errors"

	"github.com/mhrezaei/newsbrief/config"
	"github.com/mhrezaei/newsbrief/tools/web_search/brave"
	"github.com/mhrezaei/newsbrief/tools/web_search/models"
	"github.com/mhrezaei/newsbrief/tools/web_search/newsapi"
)

// WebSearcher is the metadata-search capability: keyword+filter search
// returning ranked metadata only.
type WebSearcher interface {
	Discover(ctx context.Context, req models.Request) ([]models.Result, error)
}

type Provider string

const (
	NewsAPIProvider Provider = "newsapi"
	BraveProvider   Provider = "brave"
)

var ErrUnsupportedProvider = errors.New("unsupported search provider")

func NewWebSearcher(cfg config.SearchConfig) (WebSearcher, error) {
	switch Provider(cfg.Provider) {
	case NewsAPIProvider:
		return newsapi.Search{APIKey: cfg.NewsAPIKey, Endpoint: cfg.NewsAPIEndpoint, MaxResults: cfg.MaxResults, Timeout: cfg.Timeout}, nil
	case BraveProvider:
		return brave.Search{APIKey: cfg.BraveAPIKey, MaxResults: cfg.MaxResults, Timeout: cfg.Timeout}, nil
	default:
		return nil, ErrUnsupportedProvider
	}
}
