package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/designlint/designlint/internal/domain"
)

// RenderHistory formats lint run history for terminal output.
func RenderHistory(document string, entries []domain.RunEntry) string {
	if len(entries) == 0 {
		return "  " + dimStyle.Render("No lint history found.") + "\n"
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Lint History") + "  " + dimStyle.Render(document) + "\n")
	b.WriteString("  " + faintStyle.Render(strings.Repeat("─", 50)) + "\n\n")

	for _, e := range entries {
		hash := e.Revision
		if len(hash) > 7 {
			hash = hash[:7]
		}
		if hash == "" {
			hash = "·······"
		}

		ts := e.Timestamp
		if len(ts) > 10 {
			ts = ts[:10]
		}

		color := success
		if e.Issues > 0 {
			color = danger
		}
		issues := lipgloss.NewStyle().Foreground(color).Render(plural(e.Issues, "issue"))

		line := fmt.Sprintf("  %s  %s  %s", dimStyle.Render(ts), faintStyle.Render(hash), issues)
		if e.Ignored > 0 {
			line += "  " + dimStyle.Render(fmt.Sprintf("%d ignored", e.Ignored))
		}

		b.WriteString(line)
		b.WriteString("\n")
	}

	return b.String()
}
