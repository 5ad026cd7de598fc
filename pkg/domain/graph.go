package domain

import (
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ValidatedGraph is a graph whose invariants hold: unique node ids, a resolvable
// entry point, resolvable edge endpoints and no cycles.
// Nodes and Edges keep the order in which they were authored.
type ValidatedGraph struct {
	Nodes      []Node
	Edges      []Edge
	EntryPoint string
}

// OutputNode is the runtime view of a node, keyed by id in the NodeTable.
type OutputNode struct {
	Type NodeKind `json:"type"`
	Name string   `json:"name"`
}

// NodeTable maps node ids to their runtime view.
// It encodes in insertion order, which equals the authored node order.
type NodeTable = orderedmap.OrderedMap[string, OutputNode]

// NewNodeTable returns an empty NodeTable sized for n nodes.
func NewNodeTable(n int) *NodeTable {
	return orderedmap.New[string, OutputNode](n)
}

// OutputEdge is the runtime view of an edge.
// A nil Condition is omitted from the encoded form; its absence is meaningful.
type OutputEdge struct {
	Source    string  `json:"source"`
	Target    string  `json:"target"`
	Condition *string `json:"condition,omitempty"`
}

// OutputGraph is the terminal artifact handed to the graph-execution runtime.
type OutputGraph struct {
	Nodes      *NodeTable   `json:"nodes"`
	Edges      []OutputEdge `json:"edges"`
	EntryPoint string       `json:"entry_point"`
}
