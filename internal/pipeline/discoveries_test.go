// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/curator/pkg/types"
)

func TestDiscoveriesRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "discoveries.yaml")
	df := DiscoveriesFile{
		Topic:     "embodied AI",
		Strategy:  "authority",
		Timestamp: time.Date(2026, 3, 1, 6, 0, 0, 0, time.UTC),
		Stats: DiscoveryStats{
			Collected:    12,
			Deduped:      2,
			Ranked:       10,
			SourceCounts: map[string]int{"github": 8, "arxiv": 4},
			SourceErrors: []string{"tavily: HTTP 500"},
		},
		Records: []types.ContentRecord{
			{
				Title:       "acme/worldsim",
				Type:        types.TypeTools,
				Links:       []string{"https://github.com/acme/worldsim"},
				Metrics:     types.Metrics{Stars: 900, Forks: 120},
				ImpactScore: 2.75,
			},
		},
	}

	require.NoError(t, WriteDiscoveries(path, df))

	got, err := ReadDiscoveries(path)
	require.NoError(t, err)
	assert.Equal(t, df.Topic, got.Topic)
	assert.Equal(t, df.Strategy, got.Strategy)
	assert.True(t, df.Timestamp.Equal(got.Timestamp))
	assert.Equal(t, df.Stats, got.Stats)
	require.Len(t, got.Records, 1)
	assert.Equal(t, df.Records[0].Title, got.Records[0].Title)
	assert.Equal(t, df.Records[0].Metrics.Stars, got.Records[0].Metrics.Stars)
	assert.InDelta(t, df.Records[0].ImpactScore, got.Records[0].ImpactScore, 1e-9)
}

func TestReadDiscoveriesMissingFile(t *testing.T) {
	_, err := ReadDiscoveries(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestReadDiscoveriesMalformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("records: {not: [valid"), 0o644))
	_, err := ReadDiscoveries(path)
	require.Error(t, err)
}
