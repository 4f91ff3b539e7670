package tui_test

import (
	"strings"
	"testing"

	"github.com/designlint/designlint/internal/adapters/outbound/tui"
	"github.com/designlint/designlint/internal/domain"
	"github.com/stretchr/testify/assert"
)

func indexOf(s, sub string) int { return strings.Index(s, sub) }

func sampleReport() domain.Report {
	return domain.Report{
		Document: "Card",
		Revision: "0123456789abcdef0123456789abcdef01234567",
		Modified: true,
		Tree: []domain.SerializedNode{{
			Name: "Card", Type: domain.NodeFrame, ID: "1:1",
			Children: []domain.SerializedNode{
				{Name: "Background", Type: domain.NodeRectangle, ID: "1:2"},
				{Name: "Title", Type: domain.NodeText, ID: "1:3"},
			},
		}},
		Records: []domain.FlatRecord{
			{NodeID: "1:2", Diagnostics: []domain.Diagnostic{
				{NodeID: "1:2", Category: domain.CategoryFill, Message: "Missing fill style", CurrentValue: "#F5F5F5"},
				{NodeID: "1:2", Category: domain.CategoryRadius, Message: "Incorrect border radius", CurrentValue: "5"},
			}},
			{NodeID: "1:3", Diagnostics: []domain.Diagnostic{}},
			{NodeID: "1:1", Diagnostics: []domain.Diagnostic{}, ChildIDs: []string{"1:2", "1:3"}},
		},
		Ignored: 1,
	}
}

func TestRenderReport_Header(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "designlint")
	assert.Contains(t, output, "Card")
	assert.Contains(t, output, "2 issues")
	assert.Contains(t, output, "1 ignored")
	assert.Contains(t, output, "rev 0123456 (modified)")
}

func TestRenderReport_TreeAndDiagnostics(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "Background")
	assert.Contains(t, output, "RECTANGLE")
	assert.Contains(t, output, "Missing fill style")
	assert.Contains(t, output, "#F5F5F5")
	assert.Contains(t, output, "Incorrect border radius")
	assert.Less(t, indexOf(output, "Background"), indexOf(output, "Missing fill style"))
	assert.Less(t, indexOf(output, "Missing fill style"), indexOf(output, "Title"))
}

func TestRenderReport_Summary(t *testing.T) {
	output := tui.RenderReport(sampleReport())
	assert.Contains(t, output, "1 fill")
	assert.Contains(t, output, "1 radius")
}

func TestRenderReport_Clean(t *testing.T) {
	r := domain.Report{
		Document: "Clean",
		Tree:     []domain.SerializedNode{{Name: "Panel", Type: domain.NodeFrame, ID: "3:1"}},
		Records:  []domain.FlatRecord{{NodeID: "3:1", Diagnostics: []domain.Diagnostic{}}},
	}
	output := tui.RenderReport(r)
	assert.Contains(t, output, "no issues")
	assert.Contains(t, output, "All layers use shared styles.")
	assert.NotContains(t, output, "rev ")
}
