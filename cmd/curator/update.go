// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curator/internal/collect"
	"github.com/pdiddy/curator/internal/format"
	"github.com/pdiddy/curator/internal/llm"
	"github.com/pdiddy/curator/internal/pipeline"
	"github.com/pdiddy/curator/internal/score"
)

var updateCmd = &cobra.Command{
	Use:   "update",
	Short: "Run the full curation pipeline",
	Long: `Update collects new content for the configured topic from every enabled
source, ranks it by impact, folds the top items into the curated markdown
document, and optionally commits and pushes the result.

The ranked discovery set is also saved to discoveries.yaml for the rank
and post commands.`,
	RunE: runUpdate,
}

func runUpdate(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	if topic, _ := cmd.Flags().GetString("topic"); topic != "" {
		cfg.Collect.Topic = topic
	}
	if target, _ := cmd.Flags().GetString("target"); target != "" {
		cfg.Merge.TargetPath = target
	}
	if push, _ := cmd.Flags().GetBool("push"); push {
		cfg.Git.Push = true
	}
	noMerge, _ := cmd.Flags().GetBool("no-merge")

	if cfg.Collect.Topic == "" {
		return fmt.Errorf("no topic configured: set collect.topic or pass --topic")
	}

	client := &http.Client{Timeout: cfg.Collect.Timeout}
	deps := pipeline.Deps{Log: logger}

	if cfg.Collect.EnableGitHub {
		gh := &collect.GitHubCollector{Client: client, Token: cfg.Collect.GitHubToken}
		deps.Collectors = append(deps.Collectors, gh)
		deps.GitHub = gh
	}
	if cfg.Collect.EnableArxiv {
		deps.Collectors = append(deps.Collectors, &collect.ArxivCollector{Client: client})
	}
	if cfg.Collect.EnableTavily {
		if cfg.Collect.TavilyAPIKey == "" {
			return fmt.Errorf("tavily source enabled but no API key configured: add .secrets/tavily-api-key or disable collect.enable_tavily")
		}
		deps.Collectors = append(deps.Collectors, &collect.TavilyCollector{Client: client, APIKey: cfg.Collect.TavilyAPIKey})
	}
	if cfg.Collect.EnableLabs {
		deps.Collectors = append(deps.Collectors, &collect.LabsCollector{Client: client})
	}
	if len(deps.Collectors) == 0 {
		return fmt.Errorf("every content source is disabled")
	}

	ctx := context.Background()

	if !noMerge {
		if cfg.Merge.AI.APIKey == "" {
			return fmt.Errorf("merging requires a model API key: add .secrets/gemini-api-key or pass --no-merge")
		}
		completer, err := llm.NewGemini(ctx, cfg.Merge.AI.APIKey, cfg.Merge.AI.Model)
		if err != nil {
			return fmt.Errorf("creating model client: %w", err)
		}
		deps.Completer = completer
	}

	summary, err := pipeline.Run(ctx, cfg, deps)
	if err != nil {
		return err
	}

	fmt.Printf("Collected %d records (%d duplicates removed, %d ranked)\n",
		summary.Collected, summary.Deduped, summary.Ranked)
	for _, msg := range summary.SourceErrors {
		fmt.Fprintf(os.Stderr, "source failed: %s\n", msg)
	}
	format.WriteTable(os.Stdout, score.Top(summary.Records, 10))

	switch {
	case summary.Committed:
		fmt.Println("Document updated, committed, and pushed.")
	case summary.DocumentChanged:
		fmt.Println("Document updated.")
	default:
		fmt.Println("Document unchanged.")
	}
	return nil
}

func init() {
	updateCmd.Flags().String("topic", "", "research topic (overrides collect.topic)")
	updateCmd.Flags().String("target", "", "curated markdown document (overrides merge.target_path)")
	updateCmd.Flags().Bool("push", false, "commit and push the document after a successful merge")
	updateCmd.Flags().Bool("no-merge", false, "collect and rank only, leave the document untouched")

	rootCmd.AddCommand(updateCmd)
}
