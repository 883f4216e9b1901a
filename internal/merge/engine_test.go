// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/curator/internal/llm"
	"github.com/pdiddy/curator/pkg/types"
)

func writeDoc(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "README.md")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testEngine(t *testing.T, path string, completer llm.Completer) *Engine {
	t.Helper()
	e, err := NewEngine(types.MergeConfig{TargetPath: path}, completer, zap.NewNop())
	require.NoError(t, err)
	return e
}

func canned(answer string) llm.CompleterFunc {
	return func(_ context.Context, _ llm.Request) (string, error) {
		return answer, nil
	}
}

func TestValidateTarget(t *testing.T) {
	tests := []struct {
		name   string
		path   string
		errMsg string
	}{
		{"valid", "README.md", ""},
		{"valid nested", "docs/list.md", ""},
		{"empty", "", "empty"},
		{"tools directory", "tools/README.md", "tools directory"},
		{"not markdown", "notes.txt", "not a markdown document"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTarget(tt.path)
			if tt.errMsg == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestRunWritesAcceptedMerge(t *testing.T) {
	current := gateDoc
	merged := gateDoc + "\n- [new](https://github.com/d/d) - fresh [⭐5]\n"
	path := writeDoc(t, current)

	e := testEngine(t, path, canned(merged))
	changed, err := e.Run(context.Background(), "- [new](https://github.com/d/d) - fresh [⭐5]")
	require.NoError(t, err)
	assert.True(t, changed)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, merged, string(data))
}

func TestRunKeepsDocumentOnCompletionError(t *testing.T) {
	path := writeDoc(t, gateDoc)
	e := testEngine(t, path, llm.CompleterFunc(func(_ context.Context, _ llm.Request) (string, error) {
		return "", errors.New("model unavailable")
	}))

	changed, err := e.Run(context.Background(), "new stuff")
	require.NoError(t, err)
	assert.False(t, changed)

	data, _ := os.ReadFile(path)
	assert.Equal(t, gateDoc, string(data), "document must be untouched")
}

func TestRunKeepsDocumentOnEmptyCompletion(t *testing.T) {
	path := writeDoc(t, gateDoc)
	e := testEngine(t, path, canned(""))

	changed, err := e.Run(context.Background(), "new stuff")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestRunRejectsDestructiveCompletion(t *testing.T) {
	// An adversarial completion that discards most of the document must be
	// rejected by the gates, leaving the original in place.
	path := writeDoc(t, gateDoc)
	e := testEngine(t, path, canned("# Curated List\n\nAll gone."))

	changed, err := e.Run(context.Background(), "new stuff")
	require.NoError(t, err)
	assert.False(t, changed)

	data, _ := os.ReadFile(path)
	assert.Equal(t, gateDoc, string(data))
}

func TestRunRejectsCitationStrippingCompletion(t *testing.T) {
	path := writeDoc(t, gateDoc)
	stripped := strings.ReplaceAll(gateDoc, "github.com", "example.com") +
		strings.Repeat("filler ", 20)
	e := testEngine(t, path, canned(stripped))

	changed, err := e.Run(context.Background(), "new stuff")
	require.NoError(t, err)
	assert.False(t, changed)
}

func TestMergeEmptyCurrentDocument(t *testing.T) {
	path := writeDoc(t, "   \n")
	e := testEngine(t, path, canned("anything"))

	changed, err := e.Run(context.Background(), "new stuff")
	require.NoError(t, err)
	assert.False(t, changed, "an empty document cannot be merged into")
}

func TestRunMissingTarget(t *testing.T) {
	missing := filepath.Join(t.TempDir(), "README.md")
	e := testEngine(t, missing, canned("anything"))

	_, err := e.Run(context.Background(), "new stuff")
	require.Error(t, err)
}

func TestNewEngineRejectsBadTarget(t *testing.T) {
	_, err := NewEngine(types.MergeConfig{TargetPath: "tools/README.md"}, canned(""), zap.NewNop())
	require.Error(t, err)
}

func TestMergePromptCarriesSections(t *testing.T) {
	var seen llm.Request
	path := writeDoc(t, gateDoc)
	e, err := NewEngine(types.MergeConfig{
		TargetPath: path,
		Sections:   map[string]string{"tools": "## Tools & Libraries"},
	}, llm.CompleterFunc(func(_ context.Context, req llm.Request) (string, error) {
		seen = req
		return "", nil
	}), zap.NewNop())
	require.NoError(t, err)

	_, err = e.Run(context.Background(), "new stuff")
	require.NoError(t, err)

	assert.Contains(t, seen.Prompt, "## Tools & Libraries")
	assert.Contains(t, seen.Prompt, "new stuff")
	assert.NotEmpty(t, seen.SystemPrompt)
	assert.Equal(t, int32(4000), seen.MaxTokens)
}
