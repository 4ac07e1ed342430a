// Package websearch queries a web search backend for the conversation
// engine's search_web tool.
package websearch

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	customsearch "google.golang.org/api/customsearch/v1"
	"google.golang.org/api/option"
)

// Placeholder titles returned instead of errors.
const (
	NoResultsTitle = "No results"
	ErrorTitle     = "Error"
)

// maxPageSize is the largest page the Custom Search API accepts.
const maxPageSize = 10

// Result is one web search hit.
type Result struct {
	Title   string `json:"title"`
	Snippet string `json:"snippet"`
	URL     string `json:"url"`
}

// Searcher runs web searches. Implementations never fail: on any problem they
// return a single placeholder result describing it.
type Searcher interface {
	Search(ctx context.Context, query string, maxResults int) []Result
}

type GoogleConfig struct {
	APIKey   string
	EngineID string
	Timeout  time.Duration
}

// GoogleSearcher uses the Google Custom Search JSON API.
type GoogleSearcher struct {
	service  *customsearch.Service
	engineID string
	timeout  time.Duration
}

// NewGoogleSearcher builds a searcher. Without an API key or engine id the
// searcher is still usable but only returns a "not configured" placeholder.
func NewGoogleSearcher(ctx context.Context, cfg GoogleConfig, opts ...option.ClientOption) (*GoogleSearcher, error) {
	s := &GoogleSearcher{engineID: cfg.EngineID, timeout: cfg.Timeout}
	if cfg.APIKey == "" || cfg.EngineID == "" {
		slog.Warn("Google web search is not configured; search_web will return placeholders.")
		return s, nil
	}

	opts = append([]option.ClientOption{option.WithAPIKey(cfg.APIKey)}, opts...)
	service, err := customsearch.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create custom search service: %w", err)
	}
	s.service = service
	return s, nil
}

func (s *GoogleSearcher) Search(ctx context.Context, query string, maxResults int) []Result {
	if s.service == nil {
		return placeholder("Web search is not configured.")
	}
	if maxResults <= 0 {
		maxResults = 5
	}
	maxResults = min(maxResults, maxPageSize)

	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	start := time.Now()
	resp, err := s.service.Cse.List().Q(query).Cx(s.engineID).Num(int64(maxResults)).Context(ctx).Do()
	if err != nil {
		slog.Warn("Web search failed", "query", query, "error", err)
		return placeholder(fmt.Sprintf("Web search failed: %v", err))
	}

	results := make([]Result, 0, len(resp.Items))
	for _, item := range resp.Items {
		if len(results) == maxResults {
			break
		}
		results = append(results, Result{Title: item.Title, Snippet: item.Snippet, URL: item.Link})
	}
	slog.Debug("Web search completed", "query", query, "results", len(results), "duration", time.Since(start))

	if len(results) == 0 {
		return placeholder("No results found for this query.")
	}
	return results
}

func placeholder(snippet string) []Result {
	return []Result{{Title: NoResultsTitle, Snippet: snippet}}
}
