package render

import (
	"fmt"
	"strings"

	"piodisasm/internal/analysis"
	"piodisasm/internal/disasm"
)

// SummaryMarkdown formats a program summary as markdown for glamour.
func SummaryMarkdown(sum analysis.Summary) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", sum.Name)
	fmt.Fprintf(&b, "```\n; %d instructions, %d labels, %d findings\n```\n\n",
		sum.Instructions, len(sum.Labels), len(sum.Findings))

	if len(sum.Ops) > 0 {
		b.WriteString("## Instructions\n\n")
		b.WriteString("| Mnemonic | Count |\n|---|---|\n")
		for _, oc := range sum.Ops {
			fmt.Fprintf(&b, "| %s | %d |\n", oc.Op, oc.Count)
		}
		b.WriteString("\n")
	}

	if len(sum.Labels) > 0 {
		b.WriteString("## Labels\n\n")
		for _, addr := range sum.Labels {
			fmt.Fprintf(&b, "- `%s`\n", disasm.LabelName(addr))
		}
		b.WriteString("\n")
	}

	b.WriteString("## Findings\n\n")
	if len(sum.Findings) == 0 {
		b.WriteString("No findings.\n")
		return b.String()
	}
	for _, f := range sum.Findings {
		fmt.Fprintf(&b, "- `%#x` **%s**: %s\n", f.Addr, f.Kind, f.Message)
	}
	return b.String()
}
