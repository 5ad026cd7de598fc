package dsl

import "github.com/aretw0/dag2langgraph/pkg/domain"

// NodeBuilder provides a fluent API for configuring a node.
type NodeBuilder struct {
	id      string
	kind    domain.NodeKind
	name    string
	builder *Builder
}

// Function marks the node as a function node invoking name.
func (n *NodeBuilder) Function(name string) *NodeBuilder {
	n.kind = domain.NodeKindFunction
	n.name = name
	return n
}

// Tool marks the node as a tool node invoking name.
func (n *NodeBuilder) Tool(name string) *NodeBuilder {
	n.kind = domain.NodeKindTool
	n.name = name
	return n
}

// Go adds an unconditional edge to the target node.
func (n *NodeBuilder) Go(target string) *NodeBuilder {
	return n.edge(target, nil, false)
}

// Branch adds an edge to the target node labeled with condition.
func (n *NodeBuilder) Branch(condition string, target string) *NodeBuilder {
	return n.edge(target, condition, true)
}

// When adds an edge to the target node labeled with a boolean condition.
func (n *NodeBuilder) When(condition bool, target string) *NodeBuilder {
	return n.edge(target, condition, true)
}

// Add is a shortcut to the parent builder, for chaining node declarations.
func (n *NodeBuilder) Add(id string) *NodeBuilder {
	return n.builder.Add(id)
}

func (n *NodeBuilder) edge(target string, condition any, labeled bool) *NodeBuilder {
	e := map[string]any{
		"source": n.id,
		"target": target,
	}
	if labeled {
		e["condition"] = condition
	}
	n.builder.edges = append(n.builder.edges, e)
	return n
}

// document renders the node as decoded input. Unset kinds and names are
// omitted and rejected by validation.
func (n *NodeBuilder) document() map[string]any {
	doc := map[string]any{"id": n.id}
	if n.kind != "" {
		doc["type"] = string(n.kind)
	}
	if n.name != "" {
		doc["name"] = n.name
	}
	return doc
}
