package converter

import (
	"github.com/aretw0/dag2langgraph/pkg/domain"
)

// Document keys.
const (
	keyEntryPoint = "entry_point"
	keyNodes      = "nodes"
	keyEdges      = "edges"

	keyID        = "id"
	keyType      = "type"
	keyName      = "name"
	keySource    = "source"
	keyTarget    = "target"
	keyCondition = "condition"
)

var (
	errMissingEntryPoint = domain.NewValidationError(domain.KindMissingEntryPoint)
	errInvalidStructure  = domain.NewValidationError(domain.KindInvalidStructure)
)

// Validate checks the shape and referential integrity of raw and confirms that
// its edges form a DAG.
//
// Checks run in a fixed order and the first failure wins:
//
//  1. raw is an object
//  2. entry_point is a non-empty string (domain.KindMissingEntryPoint)
//  3. nodes and edges are sequences
//  4. every node has a non-empty string id, a known type and a non-empty string name
//  5. node ids are unique
//  6. entry_point names a node
//  7. every edge has non-empty string endpoints naming known nodes and, if the
//     condition key is present, a null, string or boolean condition
//  8. the edges contain no cycle
//
// Any failure other than step 2 is domain.KindInvalidStructure.
func Validate(raw any) (*domain.ValidatedGraph, error) {
	doc, ok := asObject(raw)
	if !ok {
		return nil, errInvalidStructure
	}

	entryPoint, ok := nonEmptyString(doc, keyEntryPoint)
	if !ok {
		return nil, errMissingEntryPoint
	}

	rawNodes, ok := asSequence(doc[keyNodes])
	if !ok {
		return nil, errInvalidStructure
	}
	rawEdges, ok := asSequence(doc[keyEdges])
	if !ok {
		return nil, errInvalidStructure
	}

	nodes := make([]domain.Node, 0, len(rawNodes))
	seen := make(map[string]struct{}, len(rawNodes))
	for _, rn := range rawNodes {
		node, err := decodeNode(rn)
		if err != nil {
			return nil, err
		}
		if _, dup := seen[node.ID]; dup {
			return nil, errInvalidStructure
		}
		seen[node.ID] = struct{}{}
		nodes = append(nodes, node)
	}

	if _, ok := seen[entryPoint]; !ok {
		return nil, errInvalidStructure
	}

	edges := make([]domain.Edge, 0, len(rawEdges))
	for _, re := range rawEdges {
		edge, err := decodeEdge(re, seen)
		if err != nil {
			return nil, err
		}
		edges = append(edges, edge)
	}

	if HasCycle(nodes, edges) {
		return nil, errInvalidStructure
	}

	return &domain.ValidatedGraph{
		Nodes:      nodes,
		Edges:      edges,
		EntryPoint: entryPoint,
	}, nil
}

func decodeNode(v any) (domain.Node, error) {
	obj, ok := asObject(v)
	if !ok {
		return domain.Node{}, errInvalidStructure
	}
	id, ok := nonEmptyString(obj, keyID)
	if !ok {
		return domain.Node{}, errInvalidStructure
	}
	typ, _ := obj[keyType].(string)
	kind, ok := domain.ParseNodeKind(typ)
	if !ok {
		return domain.Node{}, errInvalidStructure
	}
	name, ok := nonEmptyString(obj, keyName)
	if !ok {
		return domain.Node{}, errInvalidStructure
	}
	return domain.Node{ID: id, Kind: kind, Name: name}, nil
}

func decodeEdge(v any, known map[string]struct{}) (domain.Edge, error) {
	obj, ok := asObject(v)
	if !ok {
		return domain.Edge{}, errInvalidStructure
	}
	source, ok := nonEmptyString(obj, keySource)
	if !ok {
		return domain.Edge{}, errInvalidStructure
	}
	target, ok := nonEmptyString(obj, keyTarget)
	if !ok {
		return domain.Edge{}, errInvalidStructure
	}
	if _, ok := known[source]; !ok {
		return domain.Edge{}, errInvalidStructure
	}
	if _, ok := known[target]; !ok {
		return domain.Edge{}, errInvalidStructure
	}
	cond, err := decodeCondition(obj)
	if err != nil {
		return domain.Edge{}, err
	}
	return domain.Edge{Source: source, Target: target, Condition: cond}, nil
}

// decodeCondition narrows the optional condition to the Absent/String/Bool union.
// String content is deliberately not interpreted; the empty string is a valid label.
func decodeCondition(obj map[string]any) (domain.Condition, error) {
	raw, present := obj[keyCondition]
	if !present {
		return domain.NoCondition(), nil
	}
	switch c := raw.(type) {
	case nil:
		return domain.NoCondition(), nil
	case string:
		return domain.StringCondition(c), nil
	case bool:
		return domain.BoolCondition(c), nil
	default:
		return domain.Condition{}, errInvalidStructure
	}
}
