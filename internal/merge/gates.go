// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"fmt"
	"strings"
)

// referenceDomains are the substrings counted by the citation-loss gate.
var referenceDomains = []string{"github.com", "arxiv.org", "doi.org"}

// tableSeparator marks a markdown table separator row.
const tableSeparator = "| ---"

// Gate rejection reasons. The engine logs the reason and reverts to the
// original document; callers can branch on the class with errors.Is.
var (
	ErrContentLoss   = fmt.Errorf("merged content lost more than half the document")
	ErrCitationLoss  = fmt.Errorf("merged content lost too many reference links")
	ErrStructureLoss = fmt.Errorf("merged content lost table formatting")
)

// CheckGates applies the deterministic acceptance gates to a candidate
// merged document. The gates are the system's sole correctness safety
// net: the merge decision itself is delegated to a non-deterministic
// external call. Merging a document into itself always passes.
func CheckGates(current, merged string) error {
	if float64(len(merged)) < 0.5*float64(len(current)) {
		return fmt.Errorf("%w: %d < 0.5*%d bytes", ErrContentLoss, len(merged), len(current))
	}

	currentRefs := countReferences(current)
	mergedRefs := countReferences(merged)
	if float64(mergedRefs) < 0.7*float64(currentRefs) {
		return fmt.Errorf("%w: %d of %d remain", ErrCitationLoss, mergedRefs, currentRefs)
	}

	if strings.Contains(current, tableSeparator) && !strings.Contains(merged, tableSeparator) {
		return ErrStructureLoss
	}

	return nil
}

// countReferences counts occurrences of every reference domain.
func countReferences(text string) int {
	total := 0
	for _, domain := range referenceDomains {
		total += strings.Count(text, domain)
	}
	return total
}
