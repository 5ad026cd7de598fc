package dsl

import (
	"maps"

	"github.com/aretw0/dag2langgraph/pkg/converter"
	"github.com/aretw0/dag2langgraph/pkg/domain"
)

// Builder manages the graph construction.
type Builder struct {
	entry string
	order []string
	nodes map[string]*NodeBuilder
	edges []map[string]any
}

// New creates a new graph builder.
func New() *Builder {
	return &Builder{
		nodes: make(map[string]*NodeBuilder),
	}
}

// Entry sets the entry point. It may name a node added later.
func (b *Builder) Entry(id string) *Builder {
	b.entry = id
	return b
}

// Add creates a new node in the graph.
// If the node already exists, it returns the existing builder.
func (b *Builder) Add(id string) *NodeBuilder {
	if nb, ok := b.nodes[id]; ok {
		return nb
	}
	nb := &NodeBuilder{
		id:      id,
		builder: b,
	}
	b.nodes[id] = nb
	b.order = append(b.order, id)
	return nb
}

// Document returns the graph in decoded document form: nodes in the order
// they were added and edges in the order they were declared. An empty entry
// point is left out.
func (b *Builder) Document() map[string]any {
	nodes := make([]any, 0, len(b.order))
	for _, id := range b.order {
		nodes = append(nodes, b.nodes[id].document())
	}
	edges := make([]any, 0, len(b.edges))
	for _, e := range b.edges {
		edges = append(edges, maps.Clone(e))
	}

	doc := map[string]any{
		"nodes": nodes,
		"edges": edges,
	}
	if b.entry != "" {
		doc["entry_point"] = b.entry
	}
	return doc
}

// Build validates the graph and maps it to the runtime format.
func (b *Builder) Build() (*domain.OutputGraph, error) {
	return converter.Convert(b.Document())
}
