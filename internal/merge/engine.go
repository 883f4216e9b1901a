// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package merge folds formatted new content into the curated document.
// The insertion decision is delegated to a generative language call; the
// deterministic gates in gates.go decide whether the result is accepted.
// See docs/ARCHITECTURE § Merge.
package merge

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/curator/internal/llm"
	"github.com/pdiddy/curator/pkg/types"
)

// Engine owns the curated document for the duration of one run: exactly
// one read and at most one write.
type Engine struct {
	cfg       types.MergeConfig
	completer llm.Completer
	log       *zap.Logger
}

// NewEngine validates the target path and returns a merge engine. A
// target resolving to a tooling-internal document is a configuration
// error caught before any network call.
func NewEngine(cfg types.MergeConfig, completer llm.Completer, log *zap.Logger) (*Engine, error) {
	if err := ValidateTarget(cfg.TargetPath); err != nil {
		return nil, err
	}
	if len(cfg.Sections) == 0 {
		cfg.Sections = DefaultSections()
	}
	return &Engine{cfg: cfg, completer: completer, log: log}, nil
}

// ValidateTarget rejects write targets that resolve to a known wrong
// file, such as a tooling directory's README instead of the project root
// document.
func ValidateTarget(path string) error {
	if path == "" {
		return fmt.Errorf("merge target path is empty")
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolving merge target %s: %w", path, err)
	}
	if filepath.Base(filepath.Dir(abs)) == "tools" {
		return fmt.Errorf("merge target %s points at a tools directory document, not the project root", abs)
	}
	if filepath.Ext(abs) != ".md" {
		return fmt.Errorf("merge target %s is not a markdown document", abs)
	}
	return nil
}

// Run reads the target document, merges the new content, and writes the
// document back when it changed. Returns whether the document changed.
// A gate rejection reverts to the original document and is not an error;
// the run continues without a commit.
func (e *Engine) Run(ctx context.Context, newContent string) (bool, error) {
	data, err := os.ReadFile(e.cfg.TargetPath)
	if err != nil {
		return false, fmt.Errorf("reading target document: %w", err)
	}
	current := string(data)

	merged := e.Merge(ctx, current, newContent)
	if merged == current {
		return false, nil
	}

	if err := os.WriteFile(e.cfg.TargetPath, []byte(merged), 0o644); err != nil {
		return false, fmt.Errorf("writing target document: %w", err)
	}
	return true, nil
}

// Merge returns the merged document, or current unchanged when the model
// fails, answers empty, or the candidate fails a gate.
func (e *Engine) Merge(ctx context.Context, current, newContent string) string {
	if strings.TrimSpace(current) == "" {
		e.log.Warn("current document is empty, cannot merge")
		return current
	}

	maxTokens := int32(e.cfg.AI.MaxTokens)
	if maxTokens <= 0 {
		maxTokens = 4000
	}

	merged, err := e.completer.Complete(ctx, llm.Request{
		Prompt:       mergePrompt(current, newContent, e.cfg.Sections),
		SystemPrompt: curatorSystemPrompt,
		MaxTokens:    maxTokens,
		Temperature:  float32(e.cfg.AI.Temperature),
	})
	if err != nil {
		e.log.Warn("merge completion failed, keeping original document", zap.Error(err))
		return current
	}
	if merged == "" {
		e.log.Warn("merge completion was empty, keeping original document")
		return current
	}

	if err := CheckGates(current, merged); err != nil {
		e.log.Warn("merge rejected, keeping original document", zap.Error(err))
		return current
	}

	e.log.Info("merged content accepted",
		zap.Int("current_bytes", len(current)),
		zap.Int("merged_bytes", len(merged)))
	return merged
}
