// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package gitops

import (
	"errors"
	"strings"
	"testing"
)

// mockExecutor records commands and serves scripted outputs.
type mockExecutor struct {
	outputs map[string]string
	fails   map[string]error
	calls   []string
}

func (m *mockExecutor) Run(dir, name string, args ...string) (string, error) {
	key := name + " " + strings.Join(args, " ")
	m.calls = append(m.calls, key)
	if err, ok := m.fails[key]; ok {
		return "", err
	}
	return m.outputs[key], nil
}

func TestOpenRejectsNonRepo(t *testing.T) {
	exec := &mockExecutor{
		fails: map[string]error{"git rev-parse --git-dir": errors.New("not a git repository")},
	}
	if _, err := open("/tmp/nowhere", exec); err == nil {
		t.Fatal("expected error outside a working tree")
	}
}

func TestHasChanges(t *testing.T) {
	tests := []struct {
		name      string
		porcelain string
		want      bool
	}{
		{"dirty", " M README.md\n", true},
		{"clean", "", false},
		{"whitespace only", "  \n", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			exec := &mockExecutor{outputs: map[string]string{
				"git status --porcelain": tt.porcelain,
			}}
			r, err := open(".", exec)
			if err != nil {
				t.Fatalf("open: %v", err)
			}
			got, err := r.HasChanges()
			if err != nil {
				t.Fatalf("HasChanges: %v", err)
			}
			if got != tt.want {
				t.Errorf("HasChanges = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestCommitAndPush(t *testing.T) {
	exec := &mockExecutor{outputs: map[string]string{
		"git status --porcelain": " M README.md\n",
	}}
	r, err := open(".", exec)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	err = r.CommitAndPush([]string{"README.md"}, "Update curated list", "origin", "main")
	if err != nil {
		t.Fatalf("CommitAndPush: %v", err)
	}

	want := []string{
		"git rev-parse --git-dir",
		"git status --porcelain",
		"git add -- README.md",
		"git commit -m Update curated list",
		"git push origin main",
	}
	if len(exec.calls) != len(want) {
		t.Fatalf("calls = %v", exec.calls)
	}
	for i, w := range want {
		if exec.calls[i] != w {
			t.Errorf("calls[%d] = %q, want %q", i, exec.calls[i], w)
		}
	}
}

func TestCommitAndPushCleanTreeIsNoOp(t *testing.T) {
	exec := &mockExecutor{outputs: map[string]string{
		"git status --porcelain": "",
	}}
	r, err := open(".", exec)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	if err := r.CommitAndPush([]string{"README.md"}, "msg", "origin", "main"); err != nil {
		t.Fatalf("CommitAndPush: %v", err)
	}
	for _, call := range exec.calls {
		if strings.HasPrefix(call, "git commit") || strings.HasPrefix(call, "git push") {
			t.Errorf("clean tree must not commit or push, saw %q", call)
		}
	}
}

func TestCommitAndPushPushFailure(t *testing.T) {
	exec := &mockExecutor{
		outputs: map[string]string{"git status --porcelain": " M README.md\n"},
		fails:   map[string]error{"git push origin main": errors.New("remote rejected")},
	}
	r, err := open(".", exec)
	if err != nil {
		t.Fatalf("open: %v", err)
	}

	err = r.CommitAndPush([]string{"README.md"}, "msg", "origin", "main")
	if err == nil {
		t.Fatal("expected push failure to surface")
	}
	if !strings.Contains(err.Error(), "origin/main") {
		t.Errorf("err = %v, should name the push destination", err)
	}
}
