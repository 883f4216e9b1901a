// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package format renders ranked records as markdown fragments and social
// posts. Rendering is pure: unknown fields render as empty strings,
// never as a null literal.
package format

import (
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/curator/pkg/types"
)

// maxPostRunes is the social network's post length cap.
const maxPostRunes = 280

// Fragment renders one record as a single markdown line. Papers become a
// table row; everything else, including unknown types, becomes a list
// item.
func Fragment(rec types.ContentRecord) string {
	if rec.Type.IsPaperLike() {
		paperLink := rec.FirstLinkContaining("arxiv.org", "doi.org")
		codeLink := rec.FirstLinkContaining("github.com")
		return fmt.Sprintf("| %s | %s | [Paper](%s) | [Code](%s) |",
			rec.Title, rec.Description, paperLink, codeLink)
	}

	return fmt.Sprintf("- [%s](%s) - %s [⭐%d]",
		rec.Title, rec.PrimaryLink(), rec.Description, rec.Metrics.Stars)
}

// Lines renders the records in order, one fragment per line.
func Lines(records []types.ContentRecord) string {
	fragments := make([]string, len(records))
	for i, rec := range records {
		fragments[i] = Fragment(rec)
	}
	return strings.Join(fragments, "\n")
}

// SocialPost renders a record as a short post with the configured
// hashtags, truncated with an ellipsis when over the length cap.
func SocialPost(rec types.ContentRecord, hashtags []string) string {
	post := fmt.Sprintf("📰 %s\n\n🔗 %s", rec.Title, rec.PrimaryLink())
	if len(hashtags) > 0 {
		post += "\n\n" + strings.Join(hashtags, " ")
	}
	return Truncate(post, maxPostRunes)
}

// Truncate shortens text to at most limit runes, replacing the tail with
// "..." when it does not fit.
func Truncate(text string, limit int) string {
	runes := []rune(text)
	if len(runes) <= limit {
		return text
	}
	return string(runes[:limit-3]) + "..."
}

// WriteTable writes ranked records as a human-readable table, used by the
// stage trace and the offline rank command.
func WriteTable(w io.Writer, records []types.ContentRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "No records.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-8s  %-7s  %-6s  %s\n",
		"Rank", "Title", "Type", "Stars", "Cites", "Impact")
	fmt.Fprintln(w, strings.Repeat("-", 92))

	for i, rec := range records {
		title := rec.Title
		if len(title) > 50 {
			title = title[:47] + "..."
		}
		fmt.Fprintf(w, "%-4d  %-50s  %-8s  %-7d  %-6d  %.2f\n",
			i+1, title, rec.Type, rec.Metrics.Stars, rec.Citations, rec.ImpactScore)
	}

	fmt.Fprintf(w, "\n%d records\n", len(records))
}
