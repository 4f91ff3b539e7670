// Package format renders paints, effects and numbers as the display strings
// reported in diagnostics.
package format

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/designlint/designlint/internal/domain"
	"github.com/designlint/designlint/internal/domain/color"
)

// Number formats v the way the host UI prints numbers: no trailing zeros,
// no exponent for ordinary magnitudes.
func Number(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// Paint formats a single paint entry.
func Paint(p domain.Paint) string {
	switch p.Type {
	case domain.PaintSolid:
		return color.Hex24(p.Color)
	case domain.PaintImage:
		return "Image - " + p.ImageHash
	default:
		stops := make([]string, 0, len(p.GradientStops))
		for _, s := range p.GradientStops {
			stops = append(stops, color.Hex24(s.Color))
		}
		return p.Type + " " + strings.Join(stops, ",")
	}
}

// Paints formats every paint entry in declaration order.
func Paints(paints []domain.Paint) []string {
	values := make([]string, 0, len(paints))
	for _, p := range paints {
		values = append(values, Paint(p))
	}
	return values
}

// Fill returns the formatted value of the first paint only. Later entries
// are formatted but not reported.
func Fill(paints []domain.Paint) string {
	values := Paints(paints)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// EffectLabel returns the display name of an effect type. Unknown types are
// reported as background blurs.
func EffectLabel(effectType string) string {
	switch effectType {
	case domain.EffectDropShadow:
		return "Drop Shadow"
	case domain.EffectInnerShadow:
		return "Inner Shadow"
	case domain.EffectLayerBlur:
		return "Layer Blur"
	default:
		return "Background Blur"
	}
}

// Effect formats one effect. Effects with a color are shadows and include
// the color and offset.
func Effect(e domain.Effect) string {
	label := EffectLabel(e.Type)
	if e.Color == nil {
		return fmt.Sprintf("%s %spx", label, Number(e.Radius))
	}
	return fmt.Sprintf("%s %s %spx X: %s, Y: %s",
		label, color.Hex24(*e.Color), Number(e.Radius),
		Number(e.Offset.X), Number(e.Offset.Y))
}

// EffectList formats effects in paint order: the last declared effect comes
// first.
func EffectList(effects []domain.Effect) []string {
	values := make([]string, 0, len(effects))
	for i := len(effects) - 1; i >= 0; i-- {
		values = append(values, Effect(effects[i]))
	}
	return values
}

// Effects returns the representative value of an effect list: the last
// declared effect.
func Effects(effects []domain.Effect) string {
	values := EffectList(effects)
	if len(values) == 0 {
		return ""
	}
	return values[0]
}

// Typography formats a text node's font settings.
func Typography(n *domain.Node) string {
	return fmt.Sprintf("%s %s / %s (%s line-height)",
		n.FontName.Family, n.FontName.Style, Number(n.FontSize), LineHeight(n.LineHeight))
}

// LineHeight formats a line height value; AUTO line heights have no value.
func LineHeight(lh domain.LineHeight) string {
	if lh.Value == nil {
		return "Auto"
	}
	return Number(*lh.Value)
}

// Stroke formats a node's stroke as "<paint> / <weight> / <align>".
func Stroke(n *domain.Node) string {
	return fmt.Sprintf("%s / %s / %s", Fill(n.Strokes), Number(n.StrokeWeight), n.StrokeAlign)
}
