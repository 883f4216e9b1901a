// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline sequences the curation stages: collect, normalize,
// dedup, enrich, score, merge, and commit. Each stage consumes the
// previous stage's records; a stage failure in collection or enrichment
// degrades the run, while a merge or write failure aborts it.
// See docs/ARCHITECTURE § Pipeline Interface.
package pipeline

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/pdiddy/curator/internal/archive"
	"github.com/pdiddy/curator/internal/collect"
	"github.com/pdiddy/curator/internal/format"
	"github.com/pdiddy/curator/internal/gitops"
	"github.com/pdiddy/curator/internal/llm"
	"github.com/pdiddy/curator/internal/merge"
	"github.com/pdiddy/curator/internal/normalize"
	"github.com/pdiddy/curator/internal/score"
	"github.com/pdiddy/curator/pkg/types"
)

// mergeTopN caps how many ranked records are offered to the merge stage.
const mergeTopN = 10

// Deps holds the pipeline's injected collaborators. Tests substitute
// fakes; main wires the real clients.
type Deps struct {
	Collectors []collect.Collector

	// GitHub performs repository metrics enrichment. Nil skips the
	// enrichment stage.
	GitHub *collect.GitHubCollector

	// Completer drives the merge stage. Nil skips merging.
	Completer llm.Completer

	Log *zap.Logger

	// Now supplies the run timestamp. Nil means time.Now.
	Now func() time.Time
}

// Summary reports what one run did.
type Summary struct {
	Collected       int
	Deduped         int
	Ranked          int
	SourceCounts    map[string]int
	SourceErrors    []string
	DocumentChanged bool
	Committed       bool
	Records         []types.ContentRecord
}

// Run executes the full update pipeline and returns its summary. The
// run aborts only on configuration errors or on a failed document
// write; individual source failures degrade the result instead.
func Run(ctx context.Context, cfg types.PipelineConfig, deps Deps) (Summary, error) {
	now := time.Now
	if deps.Now != nil {
		now = deps.Now
	}
	started := now()
	log := deps.Log

	strategy, err := score.ForName(cfg.Scoring)
	if err != nil {
		return Summary{}, err
	}
	// Configuration errors must surface before any source is queried.
	if err := merge.ValidateTarget(cfg.Merge.TargetPath); err != nil {
		return Summary{}, err
	}

	collected := collect.Run(ctx, deps.Collectors, cfg.Collect, log)
	log.Info("collection finished",
		zap.Int("records", len(collected.Records)),
		zap.Int("sources_failed", len(collected.Errors)))

	records := normalize.Normalize(collected.Records, normalize.DefaultRules(), log)
	records, removed := normalize.Dedup(records)
	log.Info("normalized", zap.Int("records", len(records)), zap.Int("duplicates_removed", removed))

	if deps.GitHub != nil {
		records = enrichMetrics(ctx, deps.GitHub, records, cfg.Collect, log)
	}

	records = score.FilterRecent(records, started, cfg.Scoring.RecencyWindow)
	records = score.Apply(records, strategy, started)
	log.Info("ranked", zap.Int("records", len(records)))

	summary := Summary{
		Collected:    len(collected.Records),
		Deduped:      removed,
		Ranked:       len(records),
		SourceCounts: collected.SourceCounts,
		SourceErrors: collected.Errors,
		Records:      records,
	}

	if err := WriteDiscoveries(types.DiscoveriesPath, DiscoveriesFile{
		Topic:     cfg.Collect.Topic,
		Strategy:  cfg.Scoring.Strategy,
		Timestamp: started,
		Stats: DiscoveryStats{
			Collected:    summary.Collected,
			Deduped:      removed,
			Ranked:       len(records),
			SourceCounts: collected.SourceCounts,
			SourceErrors: collected.Errors,
		},
		Records: records,
	}); err != nil {
		log.Warn("could not save discoveries file", zap.Error(err))
	}

	if deps.Completer != nil && len(records) > 0 {
		changed, err := mergeStage(ctx, cfg.Merge, deps.Completer, records, log)
		if err != nil {
			return summary, err
		}
		summary.DocumentChanged = changed
	}

	if summary.DocumentChanged && cfg.Git.Push {
		if err := commitStage(cfg.Git, cfg.Merge.TargetPath, log); err != nil {
			return summary, err
		}
		summary.Committed = true
	}

	if cfg.Archive.Path != "" {
		archiveRun(ctx, cfg, summary, started, log)
	}

	return summary, nil
}

// enrichMetrics fills in repository popularity metrics for records that
// carry a code link but arrived without stars. Lookup failures leave the
// record as-is.
func enrichMetrics(ctx context.Context, gh *collect.GitHubCollector, records []types.ContentRecord, cfg types.CollectConfig, log *zap.Logger) []types.ContentRecord {
	for i := range records {
		rec := &records[i]
		if rec.Metrics.Stars > 0 {
			continue
		}
		repoURL := rec.FirstLinkContaining("github.com")
		if repoURL == "" {
			continue
		}

		metrics, ok, err := gh.LookupRepo(ctx, repoURL, cfg)
		if err != nil {
			log.Warn("metrics lookup failed", zap.String("repo", repoURL), zap.Error(err))
			continue
		}
		if ok {
			rec.Metrics = metrics
		}
	}
	return records
}

func mergeStage(ctx context.Context, cfg types.MergeConfig, completer llm.Completer, records []types.ContentRecord, log *zap.Logger) (bool, error) {
	engine, err := merge.NewEngine(cfg, completer, log)
	if err != nil {
		return false, err
	}

	newContent := format.Lines(score.Top(records, mergeTopN))
	changed, err := engine.Run(ctx, newContent)
	if err != nil {
		return false, err
	}
	if changed {
		log.Info("document updated", zap.String("target", cfg.TargetPath))
	} else {
		log.Info("document unchanged", zap.String("target", cfg.TargetPath))
	}
	return changed, nil
}

func commitStage(cfg types.GitConfig, targetPath string, log *zap.Logger) error {
	repo, err := gitops.Open(cfg.RepoDir)
	if err != nil {
		return fmt.Errorf("opening document repository: %w", err)
	}

	message := cfg.CommitMessage
	if message == "" {
		message = "Update curated list"
	}
	remote := cfg.Remote
	if remote == "" {
		remote = "origin"
	}
	branch := cfg.Branch
	if branch == "" {
		branch = "main"
	}

	if err := repo.CommitAndPush([]string{targetPath}, message, remote, branch); err != nil {
		return fmt.Errorf("committing document update: %w", err)
	}
	log.Info("pushed document update", zap.String("remote", remote), zap.String("branch", branch))
	return nil
}

// archiveRun appends the run to the audit store. Archive failures are
// logged and never affect the run outcome.
func archiveRun(ctx context.Context, cfg types.PipelineConfig, summary Summary, started time.Time, log *zap.Logger) {
	store, err := archive.Open(cfg.Archive.Path)
	if err != nil {
		log.Warn("could not open run archive", zap.Error(err))
		return
	}
	defer store.Close()

	err = store.RecordRun(ctx, archive.RunSummary{
		StartedAt: started,
		Topic:     cfg.Collect.Topic,
		Strategy:  cfg.Scoring.Strategy,
		Collected: summary.Collected,
		Deduped:   summary.Deduped,
		Ranked:    summary.Ranked,
		Merged:    summary.DocumentChanged,
	}, summary.Records)
	if err != nil {
		log.Warn("could not archive run", zap.Error(err))
	}
}
