package domain

// NodeKind classifies an execution unit.
type NodeKind string

const (
	// NodeKindFunction is a plain function step.
	NodeKindFunction NodeKind = "function"
	// NodeKindTool executes an external side-effect (tool).
	NodeKindTool NodeKind = "tool"
)

// ParseNodeKind returns the kind named by s and whether s is a known kind.
// Matching is exact: "Function" or " tool" are rejected.
func ParseNodeKind(s string) (NodeKind, bool) {
	switch NodeKind(s) {
	case NodeKindFunction, NodeKindTool:
		return NodeKind(s), true
	}
	return "", false
}

// Node is a validated execution unit. Nodes are immutable once validated.
type Node struct {
	ID   string   `json:"id" yaml:"id"`
	Kind NodeKind `json:"type" yaml:"type"`
	Name string   `json:"name" yaml:"name"`
}
