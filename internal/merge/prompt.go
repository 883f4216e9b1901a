// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package merge

import (
	"fmt"
	"sort"
	"strings"
)

// curatorSystemPrompt is the fixed curation instruction. The document
// structure rules here are load-bearing: the acceptance gates assume the
// model was told to preserve tables, lists, and section headers.
const curatorSystemPrompt = `You are an expert curator for a curated resource list. Your task is to maintain a high-quality, focused list of the most impactful and relevant resources.

Rules for Content Structure:
1. Maintain Existing Format
   - Keep the exact table structure for papers: | Name | Description | Paper | Code |
   - Keep the list format for tools and products: - [Name](link) - Description [⭐Stars]
   - Preserve all existing sections and their hierarchy
   - Keep the table headers and alignment exactly as they are

2. Content Organization
   - Place papers in the appropriate paper sections
   - Place tools in the open source projects section
   - Place products in the companies section
   - Create new subsections only if truly needed

3. Quality Standards
   - Each entry must be directly related to the list topic
   - Papers must have either arxiv/doi links or code implementations
   - Tools must have active repositories
   - Descriptions should be technical and concise

4. When Merging Content
   - Add new high-impact content in the appropriate sections
   - Keep entries organized alphabetically within sections
   - Remove outdated or less relevant content
   - Preserve foundational papers and tools
   - Maintain table alignment and formatting`

// mergePrompt builds the user prompt for one merge call.
func mergePrompt(current, newContent string, sections map[string]string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Here is the current content:\n%s\n\n", current)
	fmt.Fprintf(&b, "Here is the new content to analyze and potentially merge:\n%s\n\n", newContent)

	if len(sections) > 0 {
		b.WriteString("The document sections are:\n")
		for _, header := range sortedHeaders(sections) {
			fmt.Fprintf(&b, "- %s\n", header)
		}
		b.WriteString("\n")
	}

	b.WriteString(`Please analyze both the current and new content. Your task is to:
1. Add relevant new content to appropriate sections
2. Maintain exact table and list formatting
3. Keep entries organized alphabetically within sections
4. Remove less impactful content if needed
5. Preserve the structure and hierarchy

Return the complete merged document. Focus on maintaining a high-quality, well-organized list while preserving the exact formatting.`)

	return b.String()
}

func sortedHeaders(sections map[string]string) []string {
	headers := make([]string, 0, len(sections))
	for _, h := range sections {
		headers = append(headers, h)
	}
	sort.Strings(headers)
	return headers
}

// DefaultSections maps section keys to the headers the stock document
// layout uses. Overridden by configuration.
func DefaultSections() map[string]string {
	return map[string]string{
		"foundation_models": "## Foundation Models & World Models",
		"perception":        "## Perception & Understanding",
		"learning":          "## Learning & Control",
		"simulation":        "## Simulation & Environments",
		"hardware":          "## Hardware & Platforms",
		"datasets":          "## Datasets & Benchmarks",
		"companies":         "## Companies & Research Labs",
	}
}
