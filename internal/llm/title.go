// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"fmt"
)

const titleSystemPrompt = `You are a technical writer specializing in making research content engaging while maintaining accuracy.
Your task is to rewrite titles to be more engaging while preserving technical accuracy and key terms.`

// PolishTitle asks the model for a more engaging version of a post title.
// Any failure, or an empty or overlong answer, falls back to the original
// title; a social post never blocks on the model.
func PolishTitle(ctx context.Context, c Completer, title string) string {
	prompt := fmt.Sprintf(`Make this article title more engaging while maintaining accuracy and professionalism.
Keep the same key information but make it more compelling:

Original: %s

Requirements:
- Keep it concise (max 100 characters)
- Maintain technical accuracy
- Keep key technical terms unchanged
- Don't use clickbait tactics`, title)

	polished, err := c.Complete(ctx, Request{
		Prompt:       prompt,
		SystemPrompt: titleSystemPrompt,
		MaxTokens:    100,
		Temperature:  0.7,
	})
	if err != nil || polished == "" || len([]rune(polished)) > 100 {
		return title
	}
	return polished
}
