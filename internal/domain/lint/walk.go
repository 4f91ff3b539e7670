package lint

import "github.com/designlint/designlint/internal/domain"

// Walk visits roots and their descendants in pre-order using an explicit
// stack. Instances are visited but never descended into. Returning false
// from visit skips the node's children.
func Walk(roots []*domain.Node, visit func(node *domain.Node) bool) {
	stack := make([]*domain.Node, 0, len(roots))
	for i := len(roots) - 1; i >= 0; i-- {
		stack = append(stack, roots[i])
	}

	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == nil {
			continue
		}
		if !visit(n) || n.IsOpaque() {
			continue
		}
		for i := len(n.Children) - 1; i >= 0; i-- {
			stack = append(stack, n.Children[i])
		}
	}
}

// Traverse visits every lintable node under roots and returns roots, which
// become the snapshot a session re-lints on refresh.
func Traverse(roots []*domain.Node, visit func(node *domain.Node)) []*domain.Node {
	Walk(roots, func(n *domain.Node) bool {
		if visit != nil {
			visit(n)
		}
		return true
	})
	return roots
}
