package converter

import "github.com/aretw0/dag2langgraph/pkg/domain"

// Convert validates raw and maps it to the runtime graph format.
// The result is deterministic: equal inputs encode to identical bytes.
func Convert(raw any) (*domain.OutputGraph, error) {
	g, err := Validate(raw)
	if err != nil {
		return nil, err
	}
	return Project(g), nil
}

// Project maps an already validated graph to the runtime graph format.
func Project(g *domain.ValidatedGraph) *domain.OutputGraph {
	return &domain.OutputGraph{
		Nodes:      MapNodes(g.Nodes),
		Edges:      MapEdges(g.Edges),
		EntryPoint: g.EntryPoint,
	}
}
