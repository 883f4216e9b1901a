// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package publish

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// API base URLs. Declared as vars so tests can substitute httptest
// servers.
var (
	xAPIBase      = "https://api.x.com/2"
	legacyAPIBase = "https://api.x.com/1.1"
)

// XClient is the primary poster, speaking the v2 JSON API.
type XClient struct {
	Client *http.Client
	Token  string
	UserID string
}

// Name returns the API identifier.
func (c *XClient) Name() string { return "x-v2" }

// Post publishes a new post.
func (c *XClient) Post(ctx context.Context, text string) (string, error) {
	return c.createPost(ctx, map[string]any{"text": text})
}

// Reply publishes text as a reply.
func (c *XClient) Reply(ctx context.Context, text, inReplyTo string) (string, error) {
	return c.createPost(ctx, map[string]any{
		"text":  text,
		"reply": map[string]string{"in_reply_to_tweet_id": inReplyTo},
	})
}

// Repost re-shares the post for the configured user.
func (c *XClient) Repost(ctx context.Context, id string) error {
	path := fmt.Sprintf("/users/%s/retweets", c.UserID)
	_, err := c.do(ctx, path, map[string]any{"tweet_id": id})
	return err
}

// Like favorites the post for the configured user.
func (c *XClient) Like(ctx context.Context, id string) error {
	path := fmt.Sprintf("/users/%s/likes", c.UserID)
	_, err := c.do(ctx, path, map[string]any{"tweet_id": id})
	return err
}

func (c *XClient) createPost(ctx context.Context, payload map[string]any) (string, error) {
	body, err := c.do(ctx, "/tweets", payload)
	if err != nil {
		return "", err
	}

	var pr struct {
		Data struct {
			ID string `json:"id"`
		} `json:"data"`
	}
	if err := json.Unmarshal(body, &pr); err != nil {
		return "", fmt.Errorf("parsing post response: %w", err)
	}
	if pr.Data.ID == "" {
		return "", fmt.Errorf("post response carried no id")
	}
	return pr.Data.ID, nil
}

func (c *XClient) do(ctx context.Context, path string, payload map[string]any) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, xAPIBase+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("posting API request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("posting API returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return body, nil
}

// LegacyClient is the fallback poster, speaking the v1.1 form-encoded
// API. Used when the primary API reports an insufficient access tier.
type LegacyClient struct {
	Client *http.Client
	Token  string
}

// Name returns the API identifier.
func (c *LegacyClient) Name() string { return "x-v1.1" }

// Post publishes a new status.
func (c *LegacyClient) Post(ctx context.Context, text string) (string, error) {
	return c.update(ctx, url.Values{"status": {text}})
}

// Reply publishes text as a reply to an existing status.
func (c *LegacyClient) Reply(ctx context.Context, text, inReplyTo string) (string, error) {
	return c.update(ctx, url.Values{
		"status":                {text},
		"in_reply_to_status_id": {inReplyTo},
	})
}

// Repost re-shares an existing status.
func (c *LegacyClient) Repost(ctx context.Context, id string) error {
	_, err := c.form(ctx, "/statuses/retweet/"+id+".json", url.Values{})
	return err
}

// Like favorites an existing status.
func (c *LegacyClient) Like(ctx context.Context, id string) error {
	_, err := c.form(ctx, "/favorites/create.json", url.Values{"id": {id}})
	return err
}

func (c *LegacyClient) update(ctx context.Context, params url.Values) (string, error) {
	body, err := c.form(ctx, "/statuses/update.json", params)
	if err != nil {
		return "", err
	}

	var sr struct {
		IDStr string `json:"id_str"`
	}
	if err := json.Unmarshal(body, &sr); err != nil {
		return "", fmt.Errorf("parsing status response: %w", err)
	}
	if sr.IDStr == "" {
		return "", fmt.Errorf("status response carried no id")
	}
	return sr.IDStr, nil
}

func (c *LegacyClient) form(ctx context.Context, path string, params url.Values) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, legacyAPIBase+path,
		bytes.NewReader([]byte(params.Encode())))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Authorization", "Bearer "+c.Token)

	resp, err := c.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("legacy API request: %w", err)
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1<<20))
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("legacy API returned HTTP %d: %s", resp.StatusCode, bytes.TrimSpace(body))
	}
	return body, nil
}
