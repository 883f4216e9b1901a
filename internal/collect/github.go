// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/pdiddy/curator/internal/httputil"
	"github.com/pdiddy/curator/pkg/types"
)

// githubAPIBase is the GitHub REST endpoint. Declared as a var so tests
// can substitute an httptest server.
var githubAPIBase = "https://api.github.com"

// ownerRepoRe extracts the owner and repository name from a repo URL.
var ownerRepoRe = regexp.MustCompile(`https?://github\.com/([^/\s]+)/([^/\s#?]+)`)

// invalidRepoPaths marks github.com URLs that are not repositories and
// must never be sent to the metrics endpoint.
var invalidRepoPaths = []string{
	"/features/", "/apps/", "/settings/", "/marketplace/",
	"github.blog", "help.github.com", "docs.github.com",
}

// GitHubCollector queries repository search and exposes per-repository
// metrics lookups for enrichment.
type GitHubCollector struct {
	Client *http.Client
	Token  string
}

// Name returns the source identifier.
func (c *GitHubCollector) Name() string { return "github" }

// Collect runs the repository search for every topic query and maps the
// results into content records carrying repository metrics.
func (c *GitHubCollector) Collect(ctx context.Context, cfg types.CollectConfig) ([]types.ContentRecord, error) {
	var records []types.ContentRecord
	for _, search := range Searches(cfg.Topic) {
		items, err := c.searchRepositories(ctx, search.Query, cfg)
		if err != nil {
			return nil, err
		}
		for _, item := range items {
			records = append(records, types.ContentRecord{
				Title:       item.FullName,
				Description: item.Description,
				Links:       []string{item.HTMLURL},
				Type:        search.Type,
				Metrics:     item.metrics(),
			})
		}
	}
	return records, nil
}

func (c *GitHubCollector) searchRepositories(ctx context.Context, query string, cfg types.CollectConfig) ([]githubRepo, error) {
	perPage := cfg.MaxResults
	if perPage <= 0 {
		perPage = 20
	}

	params := url.Values{
		"q":        {query},
		"sort":     {"stars"},
		"order":    {"desc"},
		"per_page": {fmt.Sprintf("%d", perPage)},
	}
	reqURL := githubAPIBase + "/search/repositories?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req, cfg)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return nil, fmt.Errorf("GitHub search request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GitHub search returned HTTP %d", resp.StatusCode)
	}

	var sr githubSearchResponse
	if err := json.NewDecoder(resp.Body).Decode(&sr); err != nil {
		return nil, fmt.Errorf("parsing GitHub search response: %w", err)
	}
	return sr.Items, nil
}

// LookupRepo fetches popularity metrics for a repository URL. A URL that
// is not a repository, or a repository that no longer exists (404-class
// response), is an expected empty result, not an error.
func (c *GitHubCollector) LookupRepo(ctx context.Context, repoURL string, cfg types.CollectConfig) (types.Metrics, bool, error) {
	for _, p := range invalidRepoPaths {
		if strings.Contains(repoURL, p) {
			return types.Metrics{}, false, nil
		}
	}

	m := ownerRepoRe.FindStringSubmatch(repoURL)
	if m == nil {
		return types.Metrics{}, false, nil
	}
	owner, repo := m[1], m[2]

	reqURL := fmt.Sprintf("%s/repos/%s/%s", githubAPIBase, owner, repo)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return types.Metrics{}, false, fmt.Errorf("creating request: %w", err)
	}
	c.setHeaders(req, cfg)

	resp, err := httputil.DoWithRetry(ctx, c.Client, req, 0)
	if err != nil {
		return types.Metrics{}, false, fmt.Errorf("GitHub repo request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone {
		return types.Metrics{}, false, nil
	}
	if resp.StatusCode != http.StatusOK {
		return types.Metrics{}, false, fmt.Errorf("GitHub repo lookup returned HTTP %d", resp.StatusCode)
	}

	var gr githubRepo
	if err := json.NewDecoder(resp.Body).Decode(&gr); err != nil {
		return types.Metrics{}, false, fmt.Errorf("parsing GitHub repo response: %w", err)
	}
	if gr.FullName == "" {
		return types.Metrics{}, false, nil
	}
	return gr.metrics(), true, nil
}

func (c *GitHubCollector) setHeaders(req *http.Request, cfg types.CollectConfig) {
	req.Header.Set("Accept", "application/vnd.github.v3+json")
	req.Header.Set("User-Agent", cfg.UserAgent)
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}
}

// GitHub REST JSON structures.
type githubSearchResponse struct {
	TotalCount int          `json:"total_count"`
	Items      []githubRepo `json:"items"`
}

type githubRepo struct {
	FullName        string `json:"full_name"`
	Description     string `json:"description"`
	HTMLURL         string `json:"html_url"`
	StargazersCount int    `json:"stargazers_count"`
	ForksCount      int    `json:"forks_count"`
	CreatedAt       string `json:"created_at"`
	UpdatedAt       string `json:"updated_at"`
}

func (g githubRepo) metrics() types.Metrics {
	m := types.Metrics{Stars: g.StargazersCount, Forks: g.ForksCount}
	if t, err := time.Parse(time.RFC3339, g.CreatedAt); err == nil {
		m.CreatedAt = t
	}
	if t, err := time.Parse(time.RFC3339, g.UpdatedAt); err == nil {
		m.UpdatedAt = t
	}
	return m
}
