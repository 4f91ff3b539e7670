// Package lint checks design nodes for visual properties that are not bound
// to a shared style and flattens node trees into per-node lint records.
package lint

import (
	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/domain/format"
)

// Rule checks one property category of a node. Check appends to diags and
// returns the extended slice.
type Rule interface {
	Category() domain.Category
	Description() string
	Check(node *domain.Node, diags []domain.Diagnostic) []domain.Diagnostic
}

type checkFunc func(node *domain.Node, diags []domain.Diagnostic) []domain.Diagnostic

type funcRule struct {
	category    domain.Category
	description string
	check       checkFunc
}

func (r funcRule) Category() domain.Category { return r.category }
func (r funcRule) Description() string       { return r.description }
func (r funcRule) Check(node *domain.Node, diags []domain.Diagnostic) []domain.Diagnostic {
	return r.check(node, diags)
}

var (
	FillRule Rule = funcRule{
		category:    domain.CategoryFill,
		description: "fills must reference a fill style",
		check:       CheckFills,
	}
	StrokeRule Rule = funcRule{
		category:    domain.CategoryStroke,
		description: "strokes must reference a stroke style",
		check:       CheckStrokes,
	}
	EffectRule Rule = funcRule{
		category:    domain.CategoryEffects,
		description: "effects must reference an effect style",
		check:       CheckEffects,
	}
	TextRule Rule = funcRule{
		category:    domain.CategoryText,
		description: "text must reference a text style",
		check:       CheckType,
	}
	ComponentRule Rule = funcRule{
		category:    domain.CategoryComponent,
		description: "components must come from a shared library",
		check:       CheckComponent,
	}
)

// RadiusRule returns the corner-radius rule for the given allowed scale.
func RadiusRule(allowed []float64) Rule {
	return funcRule{
		category:    domain.CategoryRadius,
		description: "corner radii must be on the radius scale",
		check: func(node *domain.Node, diags []domain.Diagnostic) []domain.Diagnostic {
			return CheckRadius(node, diags, allowed)
		},
	}
}

func newDiagnostic(node *domain.Node, category domain.Category, message, value string) domain.Diagnostic {
	return domain.Diagnostic{
		NodeID:       node.ID,
		Category:     category,
		Message:      message,
		CurrentValue: value,
	}
}

// CheckFills reports an unbound fill. Image fills are exempt.
func CheckFills(node *domain.Node, diags []domain.Diagnostic) []domain.Diagnostic {
	if len(node.Fills) == 0 {
		return diags
	}
	if node.FillStyleID != "" || node.Fills[0].Type == domain.PaintImage {
		return diags
	}
	return append(diags, newDiagnostic(node, domain.CategoryFill,
		"Missing fill style", format.Fill(node.Fills)))
}

// CheckStrokes reports an unbound stroke.
func CheckStrokes(node *domain.Node, diags []domain.Diagnostic) []domain.Diagnostic {
	if len(node.Strokes) == 0 || node.StrokeStyleID != "" {
		return diags
	}
	return append(diags, newDiagnostic(node, domain.CategoryStroke,
		"Missing stroke style", format.Stroke(node)))
}

// CheckEffects reports unbound effects, valued by the last declared effect.
func CheckEffects(node *domain.Node, diags []domain.Diagnostic) []domain.Diagnostic {
	if len(node.Effects) == 0 || node.EffectStyleID != "" {
		return diags
	}
	return append(diags, newDiagnostic(node, domain.CategoryEffects,
		"Missing effects style", format.Effects(node.Effects)))
}

// CheckType reports a text node without a text style.
func CheckType(node *domain.Node, diags []domain.Diagnostic) []domain.Diagnostic {
	if node.TextStyleID != "" {
		return diags
	}
	return append(diags, newDiagnostic(node, domain.CategoryText,
		"Missing text style", format.Typography(node)))
}

// CheckComponent reports a component that is local to the document.
func CheckComponent(node *domain.Node, diags []domain.Diagnostic) []domain.Diagnostic {
	if node.Remote {
		return diags
	}
	return append(diags, newDiagnostic(node, domain.CategoryComponent,
		"Component isn't from library", ""))
}

type corner struct {
	message string
	value   func(*domain.Node) float64
}

// corners are checked in this order; only the first violation is reported.
var corners = []corner{
	{"Incorrect Top Left Radius", func(n *domain.Node) float64 { return n.TopLeftRadius }},
	{"Incorrect top right radius", func(n *domain.Node) float64 { return n.TopRightRadius }},
	{"Incorrect bottom left radius", func(n *domain.Node) float64 { return n.BottomLeftRadius }},
	{"Incorrect bottom right radius", func(n *domain.Node) float64 { return n.BottomRightRadius }},
}

// CheckRadius reports a corner radius outside allowed. Mixed corners are
// checked one by one and at most one diagnostic is appended.
func CheckRadius(node *domain.Node, diags []domain.Diagnostic, allowed []float64) []domain.Diagnostic {
	if !node.CornerRadius.Mixed {
		if contains(allowed, node.CornerRadius.Value) {
			return diags
		}
		return append(diags, newDiagnostic(node, domain.CategoryRadius,
			"Incorrect border radius", format.Number(node.CornerRadius.Value)))
	}

	for _, c := range corners {
		v := c.value(node)
		if !contains(allowed, v) {
			return append(diags, newDiagnostic(node, domain.CategoryRadius, c.message, format.Number(v)))
		}
	}
	return diags
}

func contains(values []float64, v float64) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
