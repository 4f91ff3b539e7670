package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/designlint/designlint/internal/domain"
)

var (
	sectionHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(accent)
	ignoredItemStyle   = lipgloss.NewStyle().Foreground(dim)
	hintStyle          = lipgloss.NewStyle().Foreground(dim).Italic(true)
)

// RenderIgnored lists ignored diagnostics grouped by category. names maps
// node identifiers to layer names and may be nil; when set, identifiers
// missing from it are flagged.
func RenderIgnored(ignored domain.IgnoreSet, names map[string]string) string {
	if len(ignored) == 0 {
		return "  " + dimStyle.Render("No ignored errors.") + "\n"
	}

	groups := make(map[domain.Category][]string)
	var malformed []string
	for _, key := range ignored.Keys() {
		id, cat, err := domain.ParseIgnoreKey(key)
		if err != nil {
			malformed = append(malformed, key)
			continue
		}
		groups[cat] = append(groups[cat], id)
	}

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString("  " + titleStyle.Render("Ignored Errors") + "  " + dimStyle.Render(fmt.Sprintf("(%d)", len(ignored))) + "\n")

	for _, cat := range domain.ValidCategories {
		renderIgnoredSection(&b, string(cat), groups[cat], names)
	}
	renderIgnoredSection(&b, "unrecognized", malformed, nil)

	b.WriteString("\n")
	b.WriteString("  " + hintStyle.Render("Run designlint ignore clear to lint every layer again."))
	b.WriteString("\n")
	return b.String()
}

func renderIgnoredSection(b *strings.Builder, title string, ids []string, names map[string]string) {
	if len(ids) == 0 {
		return
	}

	b.WriteString("\n")
	b.WriteString(fmt.Sprintf("  %s %s\n",
		sectionHeaderStyle.Render(title),
		dimStyle.Render(fmt.Sprintf("(%d)", len(ids))),
	))

	for _, id := range ids {
		line := fmt.Sprintf("    %s %s", ignoredItemStyle.Render("○"), id)
		if name, ok := names[id]; ok {
			line += "  " + faintStyle.Render(name)
		} else if names != nil {
			line += "  " + failStyle.Render("not in document")
		}
		b.WriteString(line + "\n")
	}
}
