// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/curator/internal/llm"
	"github.com/pdiddy/curator/internal/pipeline"
	"github.com/pdiddy/curator/internal/publish"
	"github.com/pdiddy/curator/pkg/types"
)

// newsKeywords mark titles that read as announcements. Matching records
// are preferred when choosing what to post.
var newsKeywords = []string{
	"launch", "release", "announc", "open source", "open-source",
	"breakthrough", "state-of-the-art", "introduc",
}

var postCmd = &cobra.Command{
	Use:   "post",
	Short: "Post the top discoveries to social media",
	Long: `Post publishes the top-ranked items from the latest saved discovery set.
Posting prefers announcement-style items, polishes titles through the
model when a key is configured, and falls back to the legacy API when
the primary API rejects the account's access tier.

With publish.engage enabled, post also replies to, reposts, and likes
the most relevant discovered social post.`,
	RunE: runPost,
}

func runPost(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig()
	if err != nil {
		return err
	}

	input, _ := cmd.Flags().GetString("input")
	if input == "" {
		input = types.DiscoveriesPath
	}
	if n, _ := cmd.Flags().GetInt("top"); n > 0 {
		cfg.Publish.TopN = n
	}
	if engage, _ := cmd.Flags().GetBool("engage"); engage {
		cfg.Publish.Engage = true
	}

	if cfg.Publish.APIKey == "" {
		return fmt.Errorf("posting requires an API key: add .secrets/x-api-key")
	}

	df, err := pipeline.ReadDiscoveries(input)
	if err != nil {
		return fmt.Errorf("loading discoveries (run update first): %w", err)
	}
	if len(df.Records) == 0 {
		fmt.Println("Nothing to post.")
		return nil
	}

	ctx := context.Background()
	records := preferNewsworthy(df.Records)

	if cfg.Merge.AI.APIKey != "" {
		completer, err := llm.NewGemini(ctx, cfg.Merge.AI.APIKey, cfg.Merge.AI.Model)
		if err != nil {
			return fmt.Errorf("creating model client: %w", err)
		}
		n := cfg.Publish.TopN
		if n <= 0 {
			n = 3
		}
		for i := range records {
			if i >= n {
				break
			}
			records[i].Title = llm.PolishTitle(ctx, completer, records[i].Title)
		}
	}

	client := &http.Client{Timeout: 15 * time.Second}
	publisher := &publish.Publisher{
		Primary:  &publish.XClient{Client: client, Token: cfg.Publish.APIKey, UserID: cfg.Publish.UserID},
		Hashtags: cfg.Publish.Hashtags,
		TopN:     cfg.Publish.TopN,
		Log:      logger,
	}
	if cfg.Publish.LegacyAPIKey != "" {
		publisher.Fallback = &publish.LegacyClient{Client: client, Token: cfg.Publish.LegacyAPIKey}
	}

	if err := publisher.PostTop(ctx, records); err != nil {
		return err
	}

	if cfg.Publish.Engage {
		reply := fmt.Sprintf("Great coverage of %s! Tracking the space over at our curated list.", df.Topic)
		if err := publisher.Engage(ctx, df.Records, reply); err != nil {
			return err
		}
	}
	return nil
}

// preferNewsworthy reorders records so announcement-style items post
// first, without disturbing the impact ranking within each group.
func preferNewsworthy(records []types.ContentRecord) []types.ContentRecord {
	out := make([]types.ContentRecord, len(records))
	copy(out, records)
	sort.SliceStable(out, func(i, j int) bool {
		return isNewsworthy(out[i]) && !isNewsworthy(out[j])
	})
	return out
}

func isNewsworthy(rec types.ContentRecord) bool {
	text := strings.ToLower(rec.Title + " " + rec.Description)
	for _, kw := range newsKeywords {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

func init() {
	postCmd.Flags().String("input", "", "discoveries file to post from (default: discoveries.yaml)")
	postCmd.Flags().Int("top", 0, "number of items to post (overrides publish.top_n)")
	postCmd.Flags().Bool("engage", false, "also reply to, repost, and like the top social post")

	rootCmd.AddCommand(postCmd)
}
