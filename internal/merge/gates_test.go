// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"errors"
	"strings"
	"testing"
)

const gateDoc = `# Curated List

| Paper | Notes | Links | Code |
| --- | --- | --- | --- |
| A | first | [Paper](https://arxiv.org/abs/1) | [Code](https://github.com/a/a) |
| B | second | [Paper](https://doi.org/10.1/b) | [Code](https://github.com/b/b) |

## Tools
- [tool](https://github.com/c/c) - handy [⭐10]
`

func TestCheckGatesIdentityPasses(t *testing.T) {
	if err := CheckGates(gateDoc, gateDoc); err != nil {
		t.Errorf("merging a document into itself must pass, got %v", err)
	}
}

func TestCheckGatesGrowthPasses(t *testing.T) {
	merged := gateDoc + "\n- [new](https://github.com/d/d) - fresh [⭐5]\n"
	if err := CheckGates(gateDoc, merged); err != nil {
		t.Errorf("adding content must pass, got %v", err)
	}
}

func TestCheckGatesContentLoss(t *testing.T) {
	merged := gateDoc[:len(gateDoc)/3]
	err := CheckGates(gateDoc, merged)
	if !errors.Is(err, ErrContentLoss) {
		t.Errorf("err = %v, want content-loss rejection", err)
	}
}

func TestCheckGatesContentLossOddLength(t *testing.T) {
	// 5 bytes against an 11-byte document sits below the half-size
	// threshold even though integer halving would round it in.
	current := strings.Repeat("a", 11)
	merged := strings.Repeat("a", 5)
	if err := CheckGates(current, merged); !errors.Is(err, ErrContentLoss) {
		t.Errorf("err = %v, want content-loss rejection", err)
	}

	// 6 bytes is at least half and passes.
	if err := CheckGates(current, strings.Repeat("a", 6)); err != nil {
		t.Errorf("err = %v, keeping half the document must pass", err)
	}
}

func TestCheckGatesCitationLoss(t *testing.T) {
	// Keep the length up but strip the reference links: five of the six
	// domain substrings disappear.
	merged := strings.NewReplacer(
		"https://arxiv.org/abs/1", "https://example.com/1",
		"https://doi.org/10.1/b", "https://example.com/2",
		"https://github.com/a/a", "https://example.com/3",
		"https://github.com/b/b", "https://example.com/4",
		"https://github.com/c/c", "https://example.com/5",
	).Replace(gateDoc) + strings.Repeat("padding ", 10)

	err := CheckGates(gateDoc, merged)
	if !errors.Is(err, ErrCitationLoss) {
		t.Errorf("err = %v, want citation-loss rejection", err)
	}
}

func TestCheckGatesCitationLossBoundary(t *testing.T) {
	current := strings.Repeat("github.com ", 10)
	// 7 of 10 references remain: exactly at the 0.7 floor, passes.
	merged := strings.Repeat("github.com ", 7) + strings.Repeat("x", len(current))
	if err := CheckGates(current, merged); err != nil {
		t.Errorf("70%% retention must pass, got %v", err)
	}

	// 6 of 10 is below the floor.
	merged = strings.Repeat("github.com ", 6) + strings.Repeat("x", len(current))
	if err := CheckGates(current, merged); !errors.Is(err, ErrCitationLoss) {
		t.Errorf("err = %v, want citation-loss rejection", err)
	}
}

func TestCheckGatesStructureLoss(t *testing.T) {
	merged := strings.ReplaceAll(gateDoc, "| --- | --- | --- | --- |", "") +
		strings.Repeat("padding text to keep length ", 5)
	err := CheckGates(gateDoc, merged)
	if !errors.Is(err, ErrStructureLoss) {
		t.Errorf("err = %v, want structure-loss rejection", err)
	}
}

func TestCheckGatesNoTableInOriginal(t *testing.T) {
	current := "# List\n\n- [a](https://github.com/a/a)\n"
	merged := current + "- [b](https://github.com/b/b)\n"
	if err := CheckGates(current, merged); err != nil {
		t.Errorf("structure gate only applies when the original has a table, got %v", err)
	}
}
