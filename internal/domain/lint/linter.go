package lint

import "github.com/designlint/designlint/internal/domain"

// Linter flattens node trees into per-node lint records.
type Linter struct {
	dispatch *Dispatcher
	isolate  bool
}

// New creates a Linter configured by cfg.
func New(cfg domain.Config) *Linter {
	return &Linter{
		dispatch: NewDispatcher(cfg),
		isolate:  cfg.IsolateSiblingChildren,
	}
}

// Diagnose returns the diagnostics for a single node.
func (l *Linter) Diagnose(node *domain.Node) []domain.Diagnostic {
	return l.dispatch.Diagnose(node)
}

// levelFrame is one sibling list being flattened.
type levelFrame struct {
	nodes []*domain.Node
	next  int
	// childIDs accumulates the children of every node on this level.
	childIDs []string
	// parents are result indices of records on this level that have children.
	parents []int
	// owner is emitted once the level is done, after its descendants.
	owner *domain.FlatRecord
}

// Lint flattens nodes into records ordered children-before-parent, siblings
// in input order. Instances are leaves.
//
// Unless sibling children are isolated, every record on one level that has
// children lists the children of all nodes on that level.
func (l *Linter) Lint(nodes []*domain.Node) []domain.FlatRecord {
	result := []domain.FlatRecord{}
	stack := []*levelFrame{{nodes: nodes}}

	for len(stack) > 0 {
		f := stack[len(stack)-1]

		if f.next == len(f.nodes) {
			stack = stack[:len(stack)-1]
			l.closeLevel(result, f)
			if f.owner != nil {
				result = append(result, *f.owner)
				parent := stack[len(stack)-1]
				parent.parents = append(parent.parents, len(result)-1)
			}
			continue
		}

		n := f.nodes[f.next]
		f.next++
		if n == nil {
			continue
		}

		rec := domain.FlatRecord{NodeID: n.ID, Diagnostics: l.dispatch.Diagnose(n)}
		if !n.HasChildren() || n.IsOpaque() {
			result = append(result, rec)
			continue
		}

		ids := childIDs(n)
		f.childIDs = append(f.childIDs, ids...)
		if l.isolate {
			rec.ChildIDs = ids
		}
		stack = append(stack, &levelFrame{nodes: n.Children, owner: &rec})
	}

	return result
}

func (l *Linter) closeLevel(result []domain.FlatRecord, f *levelFrame) {
	if l.isolate {
		return
	}
	for _, i := range f.parents {
		result[i].ChildIDs = append([]string{}, f.childIDs...)
	}
}

func childIDs(n *domain.Node) []string {
	ids := make([]string, 0, len(n.Children))
	for _, c := range n.Children {
		if c != nil {
			ids = append(ids, c.ID)
		}
	}
	return ids
}

// Diagnostics collects every diagnostic from records in order.
func Diagnostics(records []domain.FlatRecord) []domain.Diagnostic {
	var all []domain.Diagnostic
	for _, r := range records {
		all = append(all, r.Diagnostics...)
	}
	return all
}
