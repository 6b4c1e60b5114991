package genai

import (
	"fmt"
	"strings"

	"github.com/fwojciec/diffscope"
)

// CommitPrompt renders a DiffAnalysis as a structured prompt asking the
// model for a conventional commit message.
func CommitPrompt(analysis *diffscope.DiffAnalysis) string {
	var b strings.Builder

	b.WriteString("# Change Analysis\n\n")
	b.WriteString("## Overall Summary\n")
	b.WriteString(analysis.OverallSummary)
	b.WriteString("\n\n")

	b.WriteString("## Change Characteristics\n")
	fmt.Fprintf(&b, "- Change pattern: %s\n", analysis.Pattern)
	fmt.Fprintf(&b, "- Change scope: %s\n", analysis.Scope)
	fmt.Fprintf(&b, "- Affected declarations: %d\n\n", analysis.AffectedNodeCount())

	b.WriteString("## File Changes\n\n")
	for _, fa := range analysis.FileAnalyses {
		fmt.Fprintf(&b, "### %s\n", fa.Path)
		fmt.Fprintf(&b, "Change type: %s\n", fa.KindLabel)
		fmt.Fprintf(&b, "Summary: %s\n", fa.Summary)

		if len(fa.AffectedNodes) > 0 {
			b.WriteString("\nAffected structures:\n")
			for _, n := range fa.AffectedNodes {
				visibility := ""
				if n.IsPublic {
					visibility = " [public]"
				}
				fmt.Fprintf(&b, "- %s `%s` (lines %d-%d)%s\n", n.Kind, n.Name, n.StartLine, n.EndLine, visibility)
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("## Commit Message Guidelines\n")
	b.WriteString("- Generate a structured commit message based on the analysis above\n")
	b.WriteString("- Use the Conventional Commits format\n")
	b.WriteString("- Summarize the main purpose and impact of the change\n")
	b.WriteString("- Mention the main affected structures in the body\n")
	b.WriteString("- Respond with the commit message only, no surrounding prose\n")

	return b.String()
}
