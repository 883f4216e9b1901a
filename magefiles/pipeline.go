//go:build mage

package main

import (
	"os"
	"os/exec"
	"path/filepath"

	"github.com/magefile/mage/mg"
)

// Update builds the binary and runs the full curation pipeline.
func Update() error {
	mg.Deps(Build)
	return runBinary("update")
}

// Post builds the binary and posts the latest discoveries.
func Post() error {
	mg.Deps(Build)
	return runBinary("post")
}

// Rank builds the binary and prints the latest ranked discovery set.
func Rank() error {
	mg.Deps(Build)
	return runBinary("rank")
}

func runBinary(args ...string) error {
	cmd := exec.Command(filepath.Join(binDir, binName), args...)
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	cmd.Stdin = os.Stdin
	return cmd.Run()
}
