// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/pdiddy/curator/internal/httputil"
	"github.com/pdiddy/curator/internal/normalize"
	"github.com/pdiddy/curator/pkg/types"
)

// tavilyAPIBase is the Tavily search endpoint. Declared as a var so tests
// can substitute an httptest server.
var tavilyAPIBase = "https://api.tavily.com/search"

// TavilyCollector queries the Tavily web search API once per topic query.
type TavilyCollector struct {
	Client *http.Client
	APIKey string
}

// Name returns the source identifier.
func (c *TavilyCollector) Name() string { return "tavily" }

// Collect runs every topic query at its configured search depth. Results
// are kept when they reference a code repository or describe a product;
// generic articles without either signal are dropped at the source.
func (c *TavilyCollector) Collect(ctx context.Context, cfg types.CollectConfig) ([]types.ContentRecord, error) {
	var records []types.ContentRecord
	for _, search := range Searches(cfg.Topic) {
		results, err := c.search(ctx, search, cfg)
		if err != nil {
			return nil, err
		}
		for _, item := range results {
			hasRepo := normalize.RepoURLRe.MatchString(item.Content + " " + item.URL)
			if !hasRepo && search.Type != types.TypeProduct {
				continue
			}

			rec := types.ContentRecord{
				Title:          item.Title,
				Description:    item.Content,
				Links:          []string{item.URL},
				Type:           search.Type,
				RelevanceScore: item.Score,
			}
			if item.PublishedDate != "" {
				rec.PublishedDate = parseTavilyDate(item.PublishedDate)
			}
			records = append(records, rec)
		}
	}
	return records, nil
}

func (c *TavilyCollector) search(ctx context.Context, search Search, cfg types.CollectConfig) ([]tavilyResult, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	body, err := json.Marshal(tavilyRequest{
		Query:          search.Query,
		SearchDepth:    search.Depth,
		IncludeDomains: cfg.IncludeDomains,
		MaxResults:     maxResults,
	})
	if err != nil {
		return nil, fmt.Errorf("encoding Tavily request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, tavilyAPIBase, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", cfg.UserAgent)
	req.Header.Set("Authorization", "Bearer "+c.APIKey)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("Tavily API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("Tavily API returned HTTP %d", resp.StatusCode)
	}

	var tr tavilyResponse
	if err := json.NewDecoder(resp.Body).Decode(&tr); err != nil {
		return nil, fmt.Errorf("parsing Tavily response: %w", err)
	}
	return tr.Results, nil
}

// parseTavilyDate accepts the date layouts the API has been observed to
// emit. Returns the zero time when none matches.
func parseTavilyDate(s string) time.Time {
	for _, layout := range []string{time.RFC3339, "2006-01-02", time.RFC1123} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// Tavily API JSON structures.
type tavilyRequest struct {
	Query          string   `json:"query"`
	SearchDepth    string   `json:"search_depth,omitempty"`
	IncludeDomains []string `json:"include_domains,omitempty"`
	MaxResults     int      `json:"max_results,omitempty"`
}

type tavilyResponse struct {
	Results []tavilyResult `json:"results"`
}

type tavilyResult struct {
	Title         string  `json:"title"`
	Content       string  `json:"content"`
	URL           string  `json:"url"`
	Score         float64 `json:"score"`
	PublishedDate string  `json:"published_date"`
}
