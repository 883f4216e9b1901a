// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"net/url"
	"strings"

	"github.com/pdiddy/curator/pkg/types"
)

// Dedup collapses records that share any URL. The first record seen wins
// and keeps its metadata; later duplicates are dropped entirely, so the
// collector iteration order decides which copy survives. Returns the
// surviving records and the number removed.
func Dedup(records []types.ContentRecord) ([]types.ContentRecord, int) {
	seen := make(map[string]struct{})
	out := make([]types.ContentRecord, 0, len(records))
	removed := 0

	for _, rec := range records {
		if intersects(seen, rec.Links) {
			removed++
			continue
		}
		for _, link := range rec.Links {
			seen[canonicalURL(link)] = struct{}{}
		}
		out = append(out, rec)
	}
	return out, removed
}

func intersects(seen map[string]struct{}, links []string) bool {
	for _, link := range links {
		if _, ok := seen[canonicalURL(link)]; ok {
			return true
		}
	}
	return false
}

// canonicalURL normalizes a URL for dedup comparison: lowercased scheme
// and host, no fragment, no trailing slash. Unparsable URLs compare as
// their trimmed raw text.
func canonicalURL(link string) string {
	u, err := url.Parse(strings.TrimSpace(link))
	if err != nil || u.Host == "" {
		return strings.TrimRight(strings.TrimSpace(link), "/")
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	u.Fragment = ""
	return strings.TrimRight(u.String(), "/")
}
