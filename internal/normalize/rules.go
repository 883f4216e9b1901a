// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize maps raw collector records into the common schema,
// applies the extraction rule table, and deduplicates by URL.
// See docs/ARCHITECTURE § Normalization.
package normalize

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/pdiddy/curator/pkg/types"
)

// RepoURLRe matches a code-hosting repository URL in owner/repo form.
// Shared with the collectors, which use it to parse metrics lookups.
var RepoURLRe = regexp.MustCompile(`https?://github\.com/[^/\s)\]]+/[^/\s)\],#?]+`)

// Rule is one named extraction applied uniformly to every record. Adding
// a pattern is configuration, not new code paths.
type Rule struct {
	Name    string
	Pattern *regexp.Regexp

	// FirstOnly stops after the first match in the haystack.
	FirstOnly bool

	// Text builds the haystack the pattern is applied to.
	Text func(rec *types.ContentRecord) string

	// Apply folds one match into the record.
	Apply func(rec *types.ContentRecord, match []string)
}

// DefaultRules returns the extraction rule table: repository links from
// every text and URL field, and citation counts from the description
// (first matching pattern wins).
func DefaultRules() []Rule {
	rules := []Rule{
		{
			Name:    "repo-links",
			Pattern: RepoURLRe,
			Text:    fullText,
			Apply: func(rec *types.ContentRecord, match []string) {
				addLink(rec, cleanRepoURL(match[0]))
				rec.HasCode = true
			},
		},
	}

	citationPatterns := []string{
		`(?i)cited by (\d+)`,
		`(?i)(\d+)\s+citations`,
		`(?i)citations:\s*(\d+)`,
	}
	for i, p := range citationPatterns {
		rules = append(rules, Rule{
			Name:      "citations-" + strconv.Itoa(i),
			Pattern:   regexp.MustCompile(p),
			FirstOnly: true,
			Text:      func(rec *types.ContentRecord) string { return rec.Description },
			Apply: func(rec *types.ContentRecord, match []string) {
				if rec.Citations > 0 {
					return
				}
				if n, err := strconv.Atoi(match[1]); err == nil {
					rec.Citations = n
				}
			},
		})
	}

	return rules
}

// fullText joins the fields scanned for repository links.
func fullText(rec *types.ContentRecord) string {
	parts := make([]string, 0, len(rec.Links)+2)
	parts = append(parts, rec.Title, rec.Description)
	parts = append(parts, rec.Links...)
	return strings.Join(parts, " ")
}

// cleanRepoURL strips punctuation that regularly trails URLs embedded in
// prose (closing parens, periods, commas).
func cleanRepoURL(u string) string {
	return strings.TrimRight(u, ".,);")
}

// addLink appends a link unless the record already carries it.
func addLink(rec *types.ContentRecord, link string) {
	for _, l := range rec.Links {
		if l == link {
			return
		}
	}
	rec.Links = append(rec.Links, link)
}

func applyRules(rec *types.ContentRecord, rules []Rule) {
	for _, rule := range rules {
		text := rule.Text(rec)
		if rule.FirstOnly {
			if m := rule.Pattern.FindStringSubmatch(text); m != nil {
				rule.Apply(rec, m)
			}
			continue
		}
		for _, m := range rule.Pattern.FindAllStringSubmatch(text, -1) {
			rule.Apply(rec, m)
		}
	}
}
