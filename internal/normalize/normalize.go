// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"net/url"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/curator/pkg/types"
)

// socialHosts classify a record as social content.
var socialHosts = []string{
	"twitter.com",
	"x.com",
	"bsky.app",
	"mastodon.social",
	"reddit.com",
	"news.ycombinator.com",
}

// researchHosts classify a record as preprint or benchmark content.
var researchHosts = []string{
	"arxiv.org",
	"doi.org",
	"paperswithcode.com",
	"openreview.net",
	"semanticscholar.org",
}

// Normalize applies the rule table and host classification to every
// record. Records with no resolvable URL are dropped with a warning.
// Relevance scores are clamped to [0, 1].
func Normalize(records []types.ContentRecord, rules []Rule, log *zap.Logger) []types.ContentRecord {
	out := make([]types.ContentRecord, 0, len(records))
	for i := range records {
		rec := records[i]

		applyRules(&rec, rules)
		classify(&rec)

		if rec.RelevanceScore < 0 {
			rec.RelevanceScore = 0
		} else if rec.RelevanceScore > 1 {
			rec.RelevanceScore = 1
		}

		if len(rec.Links) == 0 {
			log.Warn("dropping record with no resolvable URL", zap.String("title", rec.Title))
			continue
		}

		out = append(out, rec)
	}
	return out
}

// classify sets the derived flags from link hosts. HasCode may already be
// set by the repo-links rule; a github.com host sets it as well.
func classify(rec *types.ContentRecord) {
	for _, link := range rec.Links {
		host := linkHost(link)
		if host == "" {
			continue
		}
		if hostMatchesAny(host, socialHosts) {
			rec.IsSocial = true
		}
		if hostMatchesAny(host, researchHosts) {
			rec.IsResearch = true
		}
		if hostMatchesAny(host, []string{"github.com"}) {
			rec.HasCode = true
		}
	}
}

// linkHost returns the lowercased host of a URL, or "" when unparsable.
func linkHost(link string) string {
	u, err := url.Parse(link)
	if err != nil {
		return ""
	}
	return strings.ToLower(u.Hostname())
}

// hostMatchesAny reports whether host equals or is a subdomain of any of
// the given domains (export.arxiv.org matches arxiv.org).
func hostMatchesAny(host string, domains []string) bool {
	for _, d := range domains {
		if host == d || strings.HasSuffix(host, "."+d) {
			return true
		}
	}
	return false
}
