// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"encoding/xml"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pdiddy/curator/internal/normalize"
	"github.com/pdiddy/curator/pkg/types"
)

// arxivAPIBase is the arXiv search endpoint. Declared as a var so tests
// can substitute an httptest server.
var arxivAPIBase = "https://export.arxiv.org/api/query"

// ArxivCollector queries the arXiv API for recent papers. Only papers
// whose abstract links a code repository are kept; papers without code
// belong to the web search source instead.
type ArxivCollector struct {
	Client *http.Client
}

// Name returns the source identifier.
func (c *ArxivCollector) Name() string { return "arxiv" }

// Collect queries arXiv with the research query, newest submissions first.
func (c *ArxivCollector) Collect(ctx context.Context, cfg types.CollectConfig) ([]types.ContentRecord, error) {
	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	query := buildArxivQuery(cfg.Topic)
	reqURL := fmt.Sprintf("%s?search_query=%s&start=0&max_results=%d&sortBy=submittedDate&sortOrder=descending",
		arxivAPIBase, query, maxResults)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("arXiv API request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("arXiv API returned HTTP %d", resp.StatusCode)
	}

	var feed arxivFeed
	if err := xml.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, fmt.Errorf("parsing arXiv response: %w", err)
	}

	var records []types.ContentRecord
	for _, entry := range feed.Entries {
		summary := strings.TrimSpace(entry.Summary)
		repoLinks := normalize.RepoURLRe.FindAllString(summary, -1)
		if len(repoLinks) == 0 {
			continue
		}

		links := []string{strings.TrimSpace(entry.ID), pdfURL(entry.ID)}
		links = append(links, repoLinks...)

		rec := types.ContentRecord{
			Title:       strings.TrimSpace(entry.Title),
			Description: firstSentence(summary),
			Links:       links,
			Type:        types.TypePaper,
		}
		for _, a := range entry.Authors {
			rec.Authors = append(rec.Authors, strings.TrimSpace(a.Name))
		}
		if t, parseErr := time.Parse(time.RFC3339, entry.Published); parseErr == nil {
			rec.PublishedDate = t
		}

		records = append(records, rec)
	}
	return records, nil
}

// buildArxivQuery constructs the search_query parameter from the topic.
func buildArxivQuery(topic string) string {
	terms := strings.Fields(topic)
	return "all:" + strings.Join(terms, "+")
}

// pdfURL derives the PDF link from an abstract URL
// (e.g. "http://arxiv.org/abs/2301.07041v1" → ".../pdf/2301.07041v1").
func pdfURL(absURL string) string {
	return strings.Replace(strings.TrimSpace(absURL), "/abs/", "/pdf/", 1)
}

// firstSentence truncates an abstract to its first sentence for use as a
// record description.
func firstSentence(text string) string {
	if i := strings.Index(text, ". "); i >= 0 {
		return text[:i+1]
	}
	return text
}

// arXiv Atom feed XML structures.
type arxivFeed struct {
	Entries []arxivEntry `xml:"entry"`
}

type arxivEntry struct {
	ID        string        `xml:"id"`
	Title     string        `xml:"title"`
	Summary   string        `xml:"summary"`
	Published string        `xml:"published"`
	Authors   []arxivAuthor `xml:"author"`
}

type arxivAuthor struct {
	Name string `xml:"name"`
}
