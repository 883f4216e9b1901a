// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"fmt"
	"os"
	"time"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/curator/pkg/types"
)

// DiscoveriesFile is the on-disk snapshot of one run's ranked records.
// It is a convenience artifact for the offline rank command and for
// posting without re-collecting; the curated markdown document remains
// the pipeline's only durable state.
type DiscoveriesFile struct {
	Topic     string                `yaml:"topic"`
	Strategy  string                `yaml:"strategy"`
	Timestamp time.Time             `yaml:"timestamp"`
	Stats     DiscoveryStats        `yaml:"stats"`
	Records   []types.ContentRecord `yaml:"records"`
}

// DiscoveryStats stores per-run collection statistics.
type DiscoveryStats struct {
	Collected    int            `yaml:"collected"`
	Deduped      int            `yaml:"duplicates_removed"`
	Ranked       int            `yaml:"ranked"`
	SourceCounts map[string]int `yaml:"source_counts,omitempty"`
	SourceErrors []string       `yaml:"source_errors,omitempty"`
}

// WriteDiscoveries saves the ranked records and run statistics to a YAML
// file.
func WriteDiscoveries(path string, df DiscoveriesFile) error {
	data, err := yaml.Marshal(&df)
	if err != nil {
		return fmt.Errorf("marshaling discoveries file: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// ReadDiscoveries loads a previously saved discoveries file from disk.
func ReadDiscoveries(path string) (*DiscoveriesFile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading discoveries file: %w", err)
	}
	var df DiscoveriesFile
	if err := yaml.Unmarshal(data, &df); err != nil {
		return nil, fmt.Errorf("parsing discoveries file: %w", err)
	}
	return &df, nil
}
