// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package llm wraps the generative language API behind a narrow
// interface. The model is untrusted: callers own every correctness
// guarantee and must treat a nil or garbage completion as "keep the safe
// default".
package llm

import "context"

// Request holds one completion call's parameters.
type Request struct {
	Prompt       string
	SystemPrompt string
	MaxTokens    int32
	Temperature  float32
}

// Completer produces a text completion. An empty string with a nil error
// means the model declined to answer; callers fall back to their safe
// default either way.
type Completer interface {
	Complete(ctx context.Context, req Request) (string, error)
}

// CompleterFunc adapts a function to the Completer interface, used by
// tests to serve canned and adversarial completions.
type CompleterFunc func(ctx context.Context, req Request) (string, error)

// Complete calls f.
func (f CompleterFunc) Complete(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
