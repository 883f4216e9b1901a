// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package publish posts top-ranked items to the social network, with a
// primary API, a legacy fallback, and engagement actions.
// See docs/ARCHITECTURE § Publishing.
package publish

import (
	"context"
	"strings"
)

// Poster is one posting API surface.
type Poster interface {
	Name() string

	// Post publishes text and returns the new post's id.
	Post(ctx context.Context, text string) (string, error)

	// Reply publishes text as a reply to an existing post.
	Reply(ctx context.Context, text, inReplyTo string) (string, error)

	// Repost re-shares an existing post.
	Repost(ctx context.Context, id string) error

	// Like favorites an existing post.
	Like(ctx context.Context, id string) error
}

// IsDuplicate reports whether an error means the content was already
// posted. Duplicates are a non-fatal skip, never a failure.
func IsDuplicate(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "duplicate")
}

// IsForbidden reports whether an error means the account's access tier
// cannot perform the call. Forbidden errors abort the publish step but
// not the run.
func IsForbidden(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "403") ||
		strings.Contains(msg, "forbidden") ||
		strings.Contains(msg, "access level")
}
