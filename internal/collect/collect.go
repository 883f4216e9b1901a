// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package collect queries the external content sources and returns raw
// records for normalization. Each source implements the Collector
// interface per the Strategy pattern.
// See docs/ARCHITECTURE § Collection.
package collect

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/pdiddy/curator/pkg/types"
)

// Collector wraps one external search or data source.
type Collector interface {
	Name() string
	Collect(ctx context.Context, cfg types.CollectConfig) ([]types.ContentRecord, error)
}

// Search is one topic query sent to the sources, tagged with the content
// type it discovers and the web search depth to request.
type Search struct {
	Query string
	Type  types.ContentType
	Depth string
}

// Searches derives the per-type source queries from the research topic.
func Searches(topic string) []Search {
	return []Search{
		{Query: topic + " research papers with github implementation", Type: types.TypeResearch, Depth: "research"},
		{Query: topic + " open source tools github", Type: types.TypeTools, Depth: "tech"},
		{Query: topic + " companies and products", Type: types.TypeProduct, Depth: "news"},
	}
}

// Output holds the combined raw records and per-source bookkeeping.
type Output struct {
	Records      []types.ContentRecord
	SourceCounts map[string]int
	Errors       []string
}

// Run invokes each collector in turn. A collector failure is logged and
// contributes an empty list; it never aborts the run. Collectors are
// awaited sequentially, matching the single-threaded resource model.
func Run(ctx context.Context, collectors []Collector, cfg types.CollectConfig, log *zap.Logger) Output {
	out := Output{SourceCounts: make(map[string]int, len(collectors))}

	for _, c := range collectors {
		records, err := c.Collect(ctx, cfg)
		if err != nil {
			msg := fmt.Sprintf("%s: %v", c.Name(), err)
			out.Errors = append(out.Errors, msg)
			log.Error("collector failed", zap.String("source", c.Name()), zap.Error(err))
			continue
		}
		out.SourceCounts[c.Name()] = len(records)
		out.Records = append(out.Records, records...)
		log.Info("collected", zap.String("source", c.Name()), zap.Int("records", len(records)))
	}

	return out
}
