// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"context"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/pdiddy/curator/internal/format"
	"github.com/pdiddy/curator/pkg/types"
)

// Publisher posts ranked items through the primary API, falling back to
// the legacy API on access-tier failures.
type Publisher struct {
	Primary  Poster
	Fallback Poster
	Hashtags []string
	TopN     int
	Log      *zap.Logger
}

// PostTop formats and posts the top-ranked records. Duplicate posts are
// skipped; a forbidden primary triggers the fallback per item; other
// failures count against the item without a fallback attempt. A
// forbidden response with no working fallback means no later item can
// succeed either, so it aborts the remaining posts. Otherwise returns
// an error only when every attempted item failed.
func (p *Publisher) PostTop(ctx context.Context, records []types.ContentRecord) error {
	n := p.TopN
	if n <= 0 {
		n = 3
	}
	items := records
	if len(items) > n {
		items = items[:n]
	}
	if len(items) == 0 {
		p.Log.Warn("no items to post")
		return nil
	}

	failed := 0
	for _, rec := range items {
		text := format.SocialPost(rec, p.Hashtags)
		err := p.postOne(ctx, text, rec.Title)
		switch {
		case err == nil:
		case IsForbidden(err):
			p.Log.Error("account tier cannot post, stopping", zap.Error(err))
			return fmt.Errorf("posting forbidden: %w", err)
		default:
			failed++
		}
	}

	if failed == len(items) {
		return fmt.Errorf("all %d posts failed", failed)
	}
	return nil
}

func (p *Publisher) postOne(ctx context.Context, text, title string) error {
	id, err := p.Primary.Post(ctx, text)
	switch {
	case err == nil:
		p.Log.Info("posted", zap.String("api", p.Primary.Name()),
			zap.String("id", id), zap.String("title", title))
		return nil
	case IsDuplicate(err):
		p.Log.Warn("skipping duplicate post", zap.String("title", title))
		return nil
	case !IsForbidden(err):
		p.Log.Error("post failed", zap.String("title", title), zap.Error(err))
		return err
	}

	// The access tier refused the call; the legacy API is the only recourse.
	if p.Fallback == nil {
		return err
	}
	p.Log.Warn("primary post forbidden, trying fallback",
		zap.String("api", p.Primary.Name()), zap.Error(err))

	id, ferr := p.Fallback.Post(ctx, text)
	switch {
	case ferr == nil:
		p.Log.Info("posted", zap.String("api", p.Fallback.Name()),
			zap.String("id", id), zap.String("title", title))
		return nil
	case IsDuplicate(ferr):
		p.Log.Warn("skipping duplicate post", zap.String("title", title))
		return nil
	}

	p.Log.Error("fallback post failed", zap.String("title", title), zap.Error(ferr))
	return ferr
}

// Engage replies to, reposts, and likes the single most relevant social
// post among the records. Records that are not social content are
// ignored; duplicate-engagement errors are a non-fatal skip.
func (p *Publisher) Engage(ctx context.Context, records []types.ContentRecord, replyText string) error {
	var target *types.ContentRecord
	for i := range records {
		if records[i].IsSocial {
			target = &records[i]
			break
		}
	}
	if target == nil {
		p.Log.Info("no social post found to engage with")
		return nil
	}

	postID := postIDFromLink(target.PrimaryLink())
	if postID == "" {
		p.Log.Warn("social post link carries no post id", zap.String("link", target.PrimaryLink()))
		return nil
	}

	if _, err := p.Primary.Reply(ctx, format.Truncate(replyText, 280), postID); err != nil && !IsDuplicate(err) {
		return fmt.Errorf("replying to %s: %w", postID, err)
	}
	if err := p.Primary.Repost(ctx, postID); err != nil && !IsDuplicate(err) {
		return fmt.Errorf("reposting %s: %w", postID, err)
	}
	if err := p.Primary.Like(ctx, postID); err != nil && !IsDuplicate(err) {
		return fmt.Errorf("liking %s: %w", postID, err)
	}

	p.Log.Info("engaged with post", zap.String("id", postID), zap.String("title", target.Title))
	return nil
}

// postIDFromLink extracts the trailing numeric id from a status URL
// (e.g. ".../status/1234567890"). Returns "" when the link has none.
func postIDFromLink(link string) string {
	const marker = "/status/"
	idx := strings.LastIndex(link, marker)
	if idx < 0 {
		return ""
	}
	id := link[idx+len(marker):]
	for i := 0; i < len(id); i++ {
		if id[i] < '0' || id[i] > '9' {
			id = id[:i]
			break
		}
	}
	return id
}
