// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package score

import (
	"sort"
	"time"

	"github.com/pdiddy/curator/pkg/types"
)

// FilterRecent drops records whose reference date is older than the
// window before now. Records with no date at all are kept; the stale-age
// sentinel already sinks them during scoring. A zero window disables the
// filter.
func FilterRecent(records []types.ContentRecord, now time.Time, window time.Duration) []types.ContentRecord {
	if window <= 0 {
		return records
	}
	cutoff := now.Add(-window)
	out := make([]types.ContentRecord, 0, len(records))
	for _, rec := range records {
		ref := rec.ReferenceDate()
		if !ref.IsZero() && ref.Before(cutoff) {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// Apply scores every record with the strategy and returns the records
// ranked by impact descending, ties broken by title ascending for
// deterministic output. Input records already carrying a score keep it.
func Apply(records []types.ContentRecord, s Strategy, now time.Time) []types.ContentRecord {
	out := make([]types.ContentRecord, len(records))
	copy(out, records)

	for i := range out {
		if out[i].ImpactScore == 0 {
			out[i].ImpactScore = s.Score(out[i], now)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].ImpactScore != out[j].ImpactScore {
			return out[i].ImpactScore > out[j].ImpactScore
		}
		return out[i].Title < out[j].Title
	})
	return out
}

// Top returns the first n ranked records, or all of them when fewer.
func Top(records []types.ContentRecord, n int) []types.ContentRecord {
	if n <= 0 || n >= len(records) {
		return records
	}
	return records[:n]
}
