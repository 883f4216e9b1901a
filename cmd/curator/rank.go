// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curator/internal/format"
	"github.com/pdiddy/curator/internal/pipeline"
	"github.com/pdiddy/curator/internal/score"
	"github.com/pdiddy/curator/pkg/types"
)

var rankCmd = &cobra.Command{
	Use:     "rank",
	Aliases: []string{"score"},
	Short:   "Re-rank a saved discovery set offline",
	Long: `Rank loads the records from a saved discoveries file and prints them as
a ranked table, without any network calls. Pass --strategy to re-score
the set under a different scoring strategy than the one that produced
it.`,
	RunE: runRank,
}

func runRank(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		input = types.DiscoveriesPath
	}
	top, _ := cmd.Flags().GetInt("top")

	df, err := pipeline.ReadDiscoveries(input)
	if err != nil {
		return fmt.Errorf("loading discoveries (run update first): %w", err)
	}

	records := df.Records
	if name, _ := cmd.Flags().GetString("strategy"); name != "" && name != df.Strategy {
		cfg.Scoring.Strategy = name
		strategy, err := score.ForName(cfg.Scoring)
		if err != nil {
			return err
		}
		// Clear stored scores so the new strategy recomputes them.
		for i := range records {
			records[i].ImpactScore = 0
		}
		records = score.Apply(records, strategy, time.Now())
		fmt.Printf("Re-ranked %d records with the %s strategy\n\n", len(records), name)
	}

	format.WriteTable(os.Stdout, score.Top(records, top))
	return nil
}

func init() {
	rankCmd.Flags().String("input", "", "discoveries file to rank (default: discoveries.yaml)")
	rankCmd.Flags().String("strategy", "", "scoring strategy: weighted or authority")
	rankCmd.Flags().Int("top", 0, "print only the top N records (0 = all)")

	rootCmd.AddCommand(rankCmd)
}
