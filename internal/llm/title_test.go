// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package llm

import (
	"context"
	"errors"
	"strings"
	"testing"
)

func TestPolishTitle(t *testing.T) {
	tests := []struct {
		name     string
		answer   string
		err      error
		want     string
		original string
	}{
		{
			name:     "uses model answer",
			answer:   "Embodied World Models, Finally Practical",
			original: "An Approach to World Models",
			want:     "Embodied World Models, Finally Practical",
		},
		{
			name:     "error falls back",
			err:      errors.New("quota exceeded"),
			original: "Original Title",
			want:     "Original Title",
		},
		{
			name:     "empty answer falls back",
			answer:   "",
			original: "Original Title",
			want:     "Original Title",
		},
		{
			name:     "overlong answer falls back",
			answer:   strings.Repeat("long ", 30),
			original: "Original Title",
			want:     "Original Title",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := CompleterFunc(func(_ context.Context, req Request) (string, error) {
				if !strings.Contains(req.Prompt, tt.original) {
					t.Errorf("prompt does not carry the original title: %q", req.Prompt)
				}
				return tt.answer, tt.err
			})
			if got := PolishTitle(context.Background(), c, tt.original); got != tt.want {
				t.Errorf("PolishTitle = %q, want %q", got, tt.want)
			}
		})
	}
}
