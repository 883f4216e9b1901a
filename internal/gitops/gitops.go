// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package gitops commits and pushes the updated document. It shells out
// to the git binary; version control is an external collaborator, not
// pipeline logic.
package gitops

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

// executor abstracts command execution for testing.
type executor interface {
	Run(dir, name string, args ...string) (string, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (o *osExecutor) Run(dir, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = dir

	var out bytes.Buffer
	cmd.Stdout = &out
	cmd.Stderr = &out
	if err := cmd.Run(); err != nil {
		return out.String(), fmt.Errorf("%s %s: %w: %s", name, strings.Join(args, " "), err, strings.TrimSpace(out.String()))
	}
	return out.String(), nil
}

var defaultExec executor = &osExecutor{}

// Repo wraps git operations on one working tree.
type Repo struct {
	dir  string
	exec executor
}

// Open verifies dir is inside a git working tree and returns a Repo.
func Open(dir string) (*Repo, error) {
	return open(dir, defaultExec)
}

func open(dir string, exec executor) (*Repo, error) {
	r := &Repo{dir: dir, exec: exec}
	if _, err := r.exec.Run(dir, "git", "rev-parse", "--git-dir"); err != nil {
		return nil, fmt.Errorf("%s is not a git working tree: %w", dir, err)
	}
	return r, nil
}

// HasChanges reports whether the working tree has staged, unstaged, or
// untracked changes.
func (r *Repo) HasChanges() (bool, error) {
	out, err := r.exec.Run(r.dir, "git", "status", "--porcelain")
	if err != nil {
		return false, fmt.Errorf("checking git status: %w", err)
	}
	return strings.TrimSpace(out) != "", nil
}

// CommitAndPush stages the given paths, commits with the message, and
// pushes to remote/branch. A clean tree is a no-op, not an error.
func (r *Repo) CommitAndPush(paths []string, message, remote, branch string) error {
	changed, err := r.HasChanges()
	if err != nil {
		return err
	}
	if !changed {
		return nil
	}

	addArgs := append([]string{"add", "--"}, paths...)
	if _, err := r.exec.Run(r.dir, "git", addArgs...); err != nil {
		return fmt.Errorf("staging changes: %w", err)
	}

	if _, err := r.exec.Run(r.dir, "git", "commit", "-m", message); err != nil {
		return fmt.Errorf("committing: %w", err)
	}

	if _, err := r.exec.Run(r.dir, "git", "push", remote, branch); err != nil {
		return fmt.Errorf("pushing to %s/%s: %w", remote, branch, err)
	}
	return nil
}
