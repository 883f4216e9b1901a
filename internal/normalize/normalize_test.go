// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"strings"
	"testing"

	"go.uber.org/zap"

	"github.com/pdiddy/curator/pkg/types"
)

func testLogger() *zap.Logger { return zap.NewNop() }

// --- rules ---

func TestRepoLinkExtraction(t *testing.T) {
	rec := types.ContentRecord{
		Title:       "Some paper",
		Description: "Code at https://github.com/acme/worldsim and a mirror (https://github.com/acme/worldsim-mirror).",
		Links:       []string{"https://arxiv.org/abs/2501.00001"},
	}

	out := Normalize([]types.ContentRecord{rec}, DefaultRules(), testLogger())
	if len(out) != 1 {
		t.Fatalf("len(out) = %d, want 1", len(out))
	}

	links := out[0].Links
	if len(links) != 3 {
		t.Fatalf("len(links) = %d, want 3: %v", len(links), links)
	}
	if links[1] != "https://github.com/acme/worldsim" {
		t.Errorf("links[1] = %q", links[1])
	}
	if links[2] != "https://github.com/acme/worldsim-mirror" {
		t.Errorf("links[2] = %q, trailing punctuation should be stripped", links[2])
	}
	if !out[0].HasCode {
		t.Error("HasCode should be set once a repo link is present")
	}
}

func TestRepoLinkDoesNotDuplicate(t *testing.T) {
	rec := types.ContentRecord{
		Title:       "tool",
		Description: "see https://github.com/acme/tool",
		Links:       []string{"https://github.com/acme/tool"},
	}

	out := Normalize([]types.ContentRecord{rec}, DefaultRules(), testLogger())
	if len(out[0].Links) != 1 {
		t.Errorf("links = %v, repo link already present should not be re-added", out[0].Links)
	}
}

func TestCitationExtraction(t *testing.T) {
	tests := []struct {
		name string
		desc string
		want int
	}{
		{"cited by", "An influential paper, cited by 1523 works.", 1523},
		{"n citations", "Has 42 citations so far.", 42},
		{"citations colon", "Citations: 7", 7},
		{"case insensitive", "CITED BY 99", 99},
		{"first pattern wins", "Cited by 10. Also listed with 500 citations.", 10},
		{"none", "No citation info here.", 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := types.ContentRecord{
				Title:       "p",
				Description: tt.desc,
				Links:       []string{"https://example.com/p"},
			}
			out := Normalize([]types.ContentRecord{rec}, DefaultRules(), testLogger())
			if out[0].Citations != tt.want {
				t.Errorf("Citations = %d, want %d", out[0].Citations, tt.want)
			}
		})
	}
}

// --- classification ---

func TestClassification(t *testing.T) {
	tests := []struct {
		name         string
		links        []string
		wantSocial   bool
		wantResearch bool
		wantCode     bool
	}{
		{"x post", []string{"https://x.com/someone/status/123"}, true, false, false},
		{"twitter legacy host", []string{"https://twitter.com/someone/status/123"}, true, false, false},
		{"hacker news", []string{"https://news.ycombinator.com/item?id=1"}, true, false, false},
		{"arxiv", []string{"https://arxiv.org/abs/2501.00001"}, false, true, false},
		{"doi", []string{"https://doi.org/10.1000/xyz"}, false, true, false},
		{"github only", []string{"https://github.com/acme/tool"}, false, false, true},
		{"paper with code", []string{"https://arxiv.org/abs/2501.00001", "https://github.com/acme/code"}, false, true, true},
		{"plain site", []string{"https://example.com/blog"}, false, false, false},
		{"www prefix matches suffix", []string{"https://www.reddit.com/r/ml/post"}, true, false, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := types.ContentRecord{Title: "t", Links: tt.links}
			out := Normalize([]types.ContentRecord{rec}, DefaultRules(), testLogger())
			if len(out) != 1 {
				t.Fatalf("record dropped unexpectedly")
			}
			got := out[0]
			if got.IsSocial != tt.wantSocial {
				t.Errorf("IsSocial = %v, want %v", got.IsSocial, tt.wantSocial)
			}
			if got.IsResearch != tt.wantResearch {
				t.Errorf("IsResearch = %v, want %v", got.IsResearch, tt.wantResearch)
			}
			if got.HasCode != tt.wantCode {
				t.Errorf("HasCode = %v, want %v", got.HasCode, tt.wantCode)
			}
		})
	}
}

func TestDropsLinklessRecords(t *testing.T) {
	records := []types.ContentRecord{
		{Title: "no links at all"},
		{Title: "keeper", Links: []string{"https://example.com"}},
	}
	out := Normalize(records, DefaultRules(), testLogger())
	if len(out) != 1 || out[0].Title != "keeper" {
		t.Errorf("out = %+v, linkless record should be dropped", out)
	}
}

func TestRelevanceClamping(t *testing.T) {
	records := []types.ContentRecord{
		{Title: "over", Links: []string{"https://example.com/a"}, RelevanceScore: 3.5},
		{Title: "under", Links: []string{"https://example.com/b"}, RelevanceScore: -1},
		{Title: "ok", Links: []string{"https://example.com/c"}, RelevanceScore: 0.42},
	}
	out := Normalize(records, DefaultRules(), testLogger())
	if out[0].RelevanceScore != 1 {
		t.Errorf("over = %f, want 1", out[0].RelevanceScore)
	}
	if out[1].RelevanceScore != 0 {
		t.Errorf("under = %f, want 0", out[1].RelevanceScore)
	}
	if out[2].RelevanceScore != 0.42 {
		t.Errorf("ok = %f, want 0.42", out[2].RelevanceScore)
	}
}

// --- dedup ---

func TestDedupFirstSeenWins(t *testing.T) {
	records := []types.ContentRecord{
		{Title: "first", Links: []string{"https://github.com/acme/tool"}},
		{Title: "second", Links: []string{"https://github.com/acme/tool/"}},
		{Title: "third", Links: []string{"HTTPS://GITHUB.COM/acme/tool#readme"}},
		{Title: "other", Links: []string{"https://github.com/acme/other"}},
	}

	out, removed := Dedup(records)
	if removed != 2 {
		t.Errorf("removed = %d, want 2", removed)
	}
	if len(out) != 2 {
		t.Fatalf("len(out) = %d, want 2", len(out))
	}
	if out[0].Title != "first" {
		t.Errorf("out[0] = %q, first occurrence should win", out[0].Title)
	}
}

func TestDedupPreservesOrder(t *testing.T) {
	records := []types.ContentRecord{
		{Title: "a", Links: []string{"https://example.com/a"}},
		{Title: "b", Links: []string{"https://example.com/b"}},
		{Title: "c", Links: []string{"https://example.com/c"}},
	}
	out, removed := Dedup(records)
	if removed != 0 {
		t.Errorf("removed = %d, want 0", removed)
	}
	var titles []string
	for _, r := range out {
		titles = append(titles, r.Title)
	}
	if strings.Join(titles, "") != "abc" {
		t.Errorf("order = %v, want a b c", titles)
	}
}

func TestDedupCaseOnlyPathDiffers(t *testing.T) {
	// Path case is significant on most hosts; only scheme and host fold.
	records := []types.ContentRecord{
		{Title: "lower", Links: []string{"https://example.com/Path"}},
		{Title: "upper", Links: []string{"https://example.com/path"}},
	}
	out, removed := Dedup(records)
	if removed != 0 || len(out) != 2 {
		t.Errorf("removed = %d len = %d, differing path case is not a duplicate", removed, len(out))
	}
}
