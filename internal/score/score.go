// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package score computes impact scores for content records and ranks
// them. Scoring strategies are pure functions of the record and an
// injected clock reading; they never touch the wall clock or any other
// ambient state.
// See docs/ARCHITECTURE § Impact Scoring.
package score

import (
	"fmt"
	"strings"
	"time"

	"github.com/pdiddy/curator/pkg/types"
)

// Strategy computes one record's impact score. Implementations must be
// deterministic given the record and now; calling Score twice with the
// same inputs yields bit-identical output.
type Strategy interface {
	Name() string
	Score(rec types.ContentRecord, now time.Time) float64
}

// staleAgeDays is substituted when a record carries no usable timestamp,
// so dateless content sinks toward the bottom instead of erroring.
const staleAgeDays = 1000.0

// WeightedStrategy is the default scoring formula: a weighted sum of
// popularity, recency, citations, and search relevance, multiplied by a
// type-specific boost.
type WeightedStrategy struct{}

// Name returns the strategy identifier.
func (WeightedStrategy) Name() string { return "weighted" }

// Score combines the four factors. All factors floor above zero, so the
// result is never negative.
func (WeightedStrategy) Score(rec types.ContentRecord, now time.Time) float64 {
	base := 0.5
	if rec.HasCode {
		base = (float64(rec.Metrics.Stars)*1.0 + float64(rec.Metrics.Forks)*0.5) / 100
	}

	age := ageDays(rec, now)

	// Recency decays on a per-class horizon: social content goes stale in
	// weeks, research in months.
	var ageFactor float64
	switch {
	case rec.IsSocial:
		ageFactor = maxf(0.1, 2.0-age/30)
	case rec.IsResearch:
		ageFactor = maxf(0.1, 2.0-age/180)
	default:
		ageFactor = maxf(0.1, 2.0-age/90)
	}

	citationsFactor := 1.0 + float64(rec.Citations)/100
	if rec.IsResearch {
		citationsFactor = 1.0 + float64(rec.Citations)/50
	}

	relevanceBoost := 0.5 + rec.RelevanceScore

	return (base*0.3 + ageFactor*0.3 + citationsFactor*0.2 + relevanceBoost*0.2) * typeBoost(rec, age)
}

// typeBoost returns the type multiplier: research gets the strongest
// boost (more when it still lacks a code release), tools and products a
// mild one. Social content is additionally weighted by its recency.
func typeBoost(rec types.ContentRecord, age float64) float64 {
	var boost float64
	switch rec.Type {
	case types.TypeResearch, types.TypePaper:
		boost = 1.2
		if !rec.HasCode {
			boost += 0.1
		}
	case types.TypeTools:
		boost = 1.1
	case types.TypeProduct:
		boost = 1.1
	default:
		boost = 1.0
	}

	if rec.IsSocial {
		switch {
		case age <= 7:
			boost *= 1.5
		case age <= 30:
			boost *= 1.2
		default:
			boost *= 0.7
		}
	}
	return boost
}

// ageDays returns the record's age in days relative to now, per the
// reference date fallback chain. Records from the future clamp to zero.
func ageDays(rec types.ContentRecord, now time.Time) float64 {
	ref := rec.ReferenceDate()
	if ref.IsZero() {
		return staleAgeDays
	}
	days := now.Sub(ref).Hours() / 24
	if days < 0 {
		return 0
	}
	return days
}

// AuthorityStrategy extends the weighted formula with fixed bonuses for
// configured high-importance authors, venues, and labs. Used for
// pure-research ranking where who published matters as much as metrics.
type AuthorityStrategy struct {
	Authors []string
	Venues  []string
	Labs    []string

	base WeightedStrategy
}

// Name returns the strategy identifier.
func (AuthorityStrategy) Name() string { return "authority" }

// Score adds +3 for a recognized author, +2 for a recognized venue, and
// +2 for a recognized lab on top of the weighted score. Each bonus
// applies at most once per record.
func (s AuthorityStrategy) Score(rec types.ContentRecord, now time.Time) float64 {
	score := s.base.Score(rec, now)

	if matchesAuthor(rec.Authors, s.Authors) {
		score += 3
	}
	if containsAnyFold(rec.Venue, s.Venues) {
		score += 2
	}
	if containsAnyFold(rec.Title+" "+rec.Description+" "+rec.Venue, s.Labs) {
		score += 2
	}
	return score
}

func matchesAuthor(authors, important []string) bool {
	for _, a := range authors {
		for _, imp := range important {
			if strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(imp)) {
				return true
			}
		}
	}
	return false
}

// containsAnyFold reports whether text contains any of the needles,
// case-insensitively. Empty needles never match.
func containsAnyFold(text string, needles []string) bool {
	lower := strings.ToLower(text)
	for _, n := range needles {
		n = strings.ToLower(strings.TrimSpace(n))
		if n != "" && strings.Contains(lower, n) {
			return true
		}
	}
	return false
}

// ForName returns the strategy selected by configuration. Unknown names
// are a configuration error, not a silent default.
func ForName(cfg types.ScoringConfig) (Strategy, error) {
	switch cfg.Strategy {
	case "", "weighted":
		return WeightedStrategy{}, nil
	case "authority":
		return AuthorityStrategy{
			Authors: cfg.ImportantAuthors,
			Venues:  cfg.ImportantVenues,
			Labs:    cfg.ImportantLabs,
		}, nil
	default:
		return nil, fmt.Errorf("unknown scoring strategy %q (want weighted or authority)", cfg.Strategy)
	}
}

func maxf(a, b float64) float64 {
	if a > b {
		return a
	}
	return b
}
