package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/designlint/designlint/internal/domain"
)

// ── Warm palette ──
var (
	accent  = lipgloss.Color("#D97706") // amber
	fg      = lipgloss.Color("#E8E6E3") // warm light gray
	dim     = lipgloss.Color("#6B7280") // muted gray
	faint   = lipgloss.Color("#3F3F46") // very dim
	success = lipgloss.Color("#22C55E") // green
	danger  = lipgloss.Color("#EF4444") // red
	warning = lipgloss.Color("#F59E0B") // amber-yellow
	info    = lipgloss.Color("#8B949E") // soft blue-gray
)

var (
	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(accent).
			Align(lipgloss.Center)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accent).
			Padding(1, 4).
			Align(lipgloss.Center).
			Width(68)

	categoryColors = map[domain.Category]lipgloss.Color{
		domain.CategoryFill:      danger,
		domain.CategoryStroke:    lipgloss.Color("#FB923C"), // orange
		domain.CategoryEffects:   lipgloss.Color("#A78BFA"), // violet
		domain.CategoryText:      warning,
		domain.CategoryComponent: info,
		domain.CategoryRadius:    lipgloss.Color("#38BDF8"), // sky
	}

	dimStyle      = lipgloss.NewStyle().Foreground(dim)
	faintStyle    = lipgloss.NewStyle().Foreground(faint)
	passStyle     = lipgloss.NewStyle().Foreground(success)
	failStyle     = lipgloss.NewStyle().Foreground(danger)
	errorTagStyle = lipgloss.NewStyle().Foreground(danger).Bold(true)
	valueStyle    = lipgloss.NewStyle().Foreground(fg)
	typeStyle     = lipgloss.NewStyle().Foreground(dim)
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(fg)
	separatorLine = faintStyle.Render(strings.Repeat("─", 64))
)

// RenderReport formats a lint report as the selection tree with each node's
// diagnostics beneath it.
func RenderReport(report domain.Report) string {
	var b strings.Builder

	// ── Header ──
	title := headerStyle.Render("designlint")
	docLine := titleStyle.Render(report.Document)
	issues := report.IssueCount()
	countLine := passStyle.Render("no issues")
	if issues > 0 {
		countLine = failStyle.Render(plural(issues, "issue"))
	}
	if report.Ignored > 0 {
		countLine += dimStyle.Render(fmt.Sprintf("  ·  %d ignored", report.Ignored))
	}
	header := title + "\n" + docLine + "\n\n" + countLine
	if rev := revisionLine(report); rev != "" {
		header += "\n" + dimStyle.Render(rev)
	}
	b.WriteString(boxStyle.Render(header))
	b.WriteString("\n\n")

	// ── Tree ──
	byNode := report.DiagnosticsByNode()
	for _, node := range report.Tree {
		renderNode(&b, node, byNode, "  ", "")
	}

	b.WriteString("\n")
	b.WriteString("  " + separatorLine)
	b.WriteString("\n\n")

	// ── Summary ──
	if issues == 0 {
		b.WriteString("  " + passStyle.Render("All layers use shared styles.") + "\n")
	} else {
		renderSummary(&b, report.CountByCategory())
	}

	b.WriteString("\n")
	return b.String()
}

func revisionLine(report domain.Report) string {
	if report.Revision == "" {
		return ""
	}
	rev := report.Revision
	if len(rev) > 7 {
		rev = rev[:7]
	}
	if report.Modified {
		return "rev " + rev + " (modified)"
	}
	return "rev " + rev
}

func renderNode(b *strings.Builder, node domain.SerializedNode, byNode map[string][]domain.Diagnostic, indent, branch string) {
	diags := byNode[node.ID]
	name := titleStyle.Render(node.Name)
	if len(diags) > 0 {
		name = failStyle.Render(node.Name)
	}
	fmt.Fprintf(b, "%s%s%s  %s\n", indent, faintStyle.Render(branch), name, typeStyle.Render(string(node.Type)))

	childIndent := indent
	switch branch {
	case "├─ ":
		childIndent += faintStyle.Render("│  ")
	case "└─ ":
		childIndent += "   "
	}

	pad := "   "
	if len(node.Children) > 0 {
		pad = faintStyle.Render("│  ")
	}
	for _, d := range diags {
		renderDiagnostic(b, childIndent+pad, d)
	}

	for i, child := range node.Children {
		next := "├─ "
		if i == len(node.Children)-1 {
			next = "└─ "
		}
		renderNode(b, child, byNode, childIndent, next)
	}
}

func renderDiagnostic(b *strings.Builder, indent string, d domain.Diagnostic) {
	line := fmt.Sprintf("%s%s %s  %s", indent, errorTagStyle.Render("✗"), categoryTag(d.Category), dimStyle.Render(d.Message))
	if d.CurrentValue != "" {
		line += "  " + valueStyle.Render(d.CurrentValue)
	}
	b.WriteString(line + "\n")
}

func renderSummary(b *strings.Builder, counts map[domain.Category]int) {
	b.WriteString("  " + titleStyle.Render("Issues"))
	for _, cat := range domain.ValidCategories {
		n := counts[cat]
		if n == 0 {
			continue
		}
		b.WriteString("  ")
		b.WriteString(lipgloss.NewStyle().Foreground(categoryColor(cat)).Bold(true).Render(fmt.Sprintf("%d %s", n, cat)))
	}
	b.WriteString("\n")
}

func categoryTag(cat domain.Category) string {
	return lipgloss.NewStyle().Foreground(categoryColor(cat)).Render(padRight(string(cat), 9))
}

func categoryColor(cat domain.Category) lipgloss.Color {
	if c, ok := categoryColors[cat]; ok {
		return c
	}
	return fg
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func padRight(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
