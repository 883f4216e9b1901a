// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for the curator pipeline.
// See docs/ARCHITECTURE § Data Structures.
package types

import (
	"strings"
	"time"
)

// ContentType classifies a discovered record. It selects the markdown
// formatting template and the type-specific scoring weights.
type ContentType string

const (
	TypePaper    ContentType = "paper"
	TypeResearch ContentType = "research"
	TypeTools    ContentType = "tools"
	TypeProduct  ContentType = "product"
)

// IsPaperLike reports whether records of this type render as a table row
// (papers) rather than a list item (tools, products, anything unknown).
func (t ContentType) IsPaperLike() bool {
	return t == TypePaper || t == TypeResearch
}

// Metrics holds repository popularity signals attached to a record.
// Absent timestamps are zero values.
type Metrics struct {
	Stars     int       `json:"stars" yaml:"stars"`
	Forks     int       `json:"forks" yaml:"forks"`
	CreatedAt time.Time `json:"created_at,omitempty" yaml:"created_at,omitempty"`
	UpdatedAt time.Time `json:"updated_at,omitempty" yaml:"updated_at,omitempty"`
}

// ContentRecord is the central entity flowing through the pipeline: one
// discovered item (paper, tool, product, or social post) in the common
// schema all collectors normalize into.
type ContentRecord struct {
	// Title is the item title as reported by the source.
	Title string `json:"title" yaml:"title"`

	// Description is a short summary. May be empty.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Links holds every URL associated with the record. The first link is
	// the primary one; paper and code links follow. Never empty once a
	// record leaves normalization.
	Links []string `json:"links" yaml:"links"`

	// Type selects formatting and scoring behavior.
	Type ContentType `json:"type" yaml:"type"`

	// Metrics holds repository popularity signals, zero-valued when the
	// record has no associated repository.
	Metrics Metrics `json:"metrics" yaml:"metrics"`

	// Citations is the citation count extracted from the description, 0
	// when none was found.
	Citations int `json:"citations" yaml:"citations"`

	// Authors lists the item authors in source order, when known.
	Authors []string `json:"authors,omitempty" yaml:"authors,omitempty"`

	// Venue is the publication venue, when known.
	Venue string `json:"venue,omitempty" yaml:"venue,omitempty"`

	// Classification flags derived by the normalizer from link hosts.
	IsSocial   bool `json:"is_social" yaml:"is_social"`
	IsResearch bool `json:"is_research" yaml:"is_research"`
	HasCode    bool `json:"has_code" yaml:"has_code"`

	// RelevanceScore is the source-reported search relevance, clamped to
	// [0, 1] by the normalizer. Defaults to 0.
	RelevanceScore float64 `json:"relevance_score" yaml:"relevance_score"`

	// PublishedDate is the publication date, when known.
	PublishedDate time.Time `json:"published_date,omitempty" yaml:"published_date,omitempty"`

	// ImpactScore is computed by the scorer and is zero until it has run.
	// Once set it is immutable for the lifetime of the record within a run.
	ImpactScore float64 `json:"impact_score" yaml:"impact_score"`
}

// PrimaryLink returns the record's first link, or "" when the record has
// none (only possible before normalization).
func (r ContentRecord) PrimaryLink() string {
	if len(r.Links) == 0 {
		return ""
	}
	return r.Links[0]
}

// FirstLinkContaining returns the first link whose text contains any of
// the given substrings, or "" when none matches.
func (r ContentRecord) FirstLinkContaining(substrings ...string) string {
	for _, link := range r.Links {
		for _, s := range substrings {
			if strings.Contains(link, s) {
				return link
			}
		}
	}
	return ""
}

// ReferenceDate returns the single timestamp representing the record's
// age: the published date, else the repository update time, else the
// repository creation time. Returns the zero time when none is known, in
// which case the scorer substitutes its stale-content sentinel.
func (r ContentRecord) ReferenceDate() time.Time {
	switch {
	case !r.PublishedDate.IsZero():
		return r.PublishedDate
	case !r.Metrics.UpdatedAt.IsZero():
		return r.Metrics.UpdatedAt
	case !r.Metrics.CreatedAt.IsZero():
		return r.Metrics.CreatedAt
	default:
		return time.Time{}
	}
}
