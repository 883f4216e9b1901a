// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package collect

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"

	"github.com/pdiddy/curator/pkg/types"
)

// LabsCollector visits configured research lab pages. Content extraction
// is site-specific; until per-site parsers exist, each reachable page
// yields one record pointing at the lab itself so the curated document
// can track the lab. An unreachable page is skipped, not an error.
type LabsCollector struct {
	Client *http.Client
}

// Name returns the source identifier.
func (c *LabsCollector) Name() string { return "labs" }

// Collect probes each configured lab site in name order.
func (c *LabsCollector) Collect(ctx context.Context, cfg types.CollectConfig) ([]types.ContentRecord, error) {
	names := make([]string, 0, len(cfg.LabSites))
	for name := range cfg.LabSites {
		names = append(names, name)
	}
	sort.Strings(names)

	var records []types.ContentRecord
	for _, name := range names {
		siteURL := cfg.LabSites[name]
		if !c.reachable(ctx, siteURL, cfg) {
			continue
		}
		records = append(records, types.ContentRecord{
			Title:       name,
			Description: fmt.Sprintf("Research from %s", name),
			Links:       []string{siteURL},
			Type:        types.TypeProduct,
		})
	}
	return records, nil
}

func (c *LabsCollector) reachable(ctx context.Context, siteURL string, cfg types.CollectConfig) bool {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, siteURL, nil)
	if err != nil {
		return false
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	resp, err := c.Client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, io.LimitReader(resp.Body, 1<<16))

	return resp.StatusCode == http.StatusOK
}
