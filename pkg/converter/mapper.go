package converter

import "github.com/aretw0/dag2langgraph/pkg/domain"

// MapNodes projects validated nodes into the runtime node table.
// Insertion order equals node order; ids are already unique.
func MapNodes(nodes []domain.Node) *domain.NodeTable {
	table := domain.NewNodeTable(len(nodes))
	for _, n := range nodes {
		table.Set(n.ID, domain.OutputNode{Type: n.Kind, Name: n.Name})
	}
	return table
}

// MapEdges projects validated edges into runtime edges, preserving order.
// The runtime evaluates conditional branches in authoring order.
// Only present conditions are carried; booleans are rendered as "true"/"false".
func MapEdges(edges []domain.Edge) []domain.OutputEdge {
	out := make([]domain.OutputEdge, 0, len(edges))
	for _, e := range edges {
		item := domain.OutputEdge{Source: e.Source, Target: e.Target}
		if label, ok := e.Condition.Label(); ok {
			item.Condition = &label
		}
		out = append(out, item)
	}
	return out
}
