package lint

import "github.com/designlint/designlint/internal/domain"

// Serialize projects nodes onto their nested display form. It follows the
// full structure, instance children included.
func Serialize(nodes []*domain.Node) []domain.SerializedNode {
	out := make([]domain.SerializedNode, 0, len(nodes))
	for _, n := range nodes {
		if n == nil {
			continue
		}
		sn := domain.SerializedNode{Name: n.Name, Type: n.Type, ID: n.ID}
		if n.HasChildren() {
			sn.Children = Serialize(n.Children)
		}
		out = append(out, sn)
	}
	return out
}
