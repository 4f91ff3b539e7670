package lint

import "github.com/designlint/designlint/internal/domain"

// Dispatcher maps node types to the rules that apply to them. Types without
// an entry produce no diagnostics.
type Dispatcher struct {
	rules map[domain.NodeType][]Rule
}

// NewDispatcher builds the rule table for cfg, dropping disabled rules.
func NewDispatcher(cfg domain.Config) *Dispatcher {
	cfg = cfg.WithDefaults()
	radius := RadiusRule(cfg.AllowedRadii)

	table := map[domain.NodeType][]Rule{
		domain.NodeRectangle: {FillRule, radius, StrokeRule, EffectRule},
		domain.NodeText:      {TextRule, FillRule, EffectRule, StrokeRule},
		domain.NodeComponent: {ComponentRule},

		// Containers, vector shapes and instances are rule-free.
		domain.NodeEllipse:   nil,
		domain.NodePolygon:   nil,
		domain.NodeStar:      nil,
		domain.NodeLine:      nil,
		domain.NodeBooleanOp: nil,
		domain.NodeFrame:     nil,
		domain.NodeVector:    nil,
		domain.NodeGroup:     nil,
		domain.NodeInstance:  nil,
	}

	d := &Dispatcher{rules: make(map[domain.NodeType][]Rule, len(table))}
	for t, rules := range table {
		var enabled []Rule
		for _, r := range rules {
			if !cfg.IsRuleDisabled(r.Category()) {
				enabled = append(enabled, r)
			}
		}
		d.rules[t] = enabled
	}
	return d
}

// RulesFor returns the rules applied to nodes of type t, in order.
func (d *Dispatcher) RulesFor(t domain.NodeType) []Rule {
	return d.rules[t]
}

// Diagnose runs every applicable rule on node. The result is never nil.
func (d *Dispatcher) Diagnose(node *domain.Node) []domain.Diagnostic {
	diags := []domain.Diagnostic{}
	for _, r := range d.rules[node.Type] {
		diags = r.Check(node, diags)
	}
	return diags
}
