package converter_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dag2langgraph/pkg/converter"
	"github.com/aretw0/dag2langgraph/pkg/domain"
)

func node(id, typ, name string) map[string]any {
	return map[string]any{"id": id, "type": typ, "name": name}
}

func edge(source, target string) map[string]any {
	return map[string]any{"source": source, "target": target}
}

func condEdge(source, target string, cond any) map[string]any {
	e := edge(source, target)
	e["condition"] = cond
	return e
}

func doc(entry any, nodes, edges any) map[string]any {
	return map[string]any{"entry_point": entry, "nodes": nodes, "edges": edges}
}

func sampleDAG() map[string]any {
	return doc("start",
		[]any{
			node("start", "function", "StartFn"),
			node("toolA", "tool", "ToolA"),
			node("end", "function", "EndFn"),
		},
		[]any{
			edge("start", "toolA"),
			condEdge("toolA", "end", "ok"),
		},
	)
}

func TestValidate_Sample(t *testing.T) {
	g, err := converter.Validate(sampleDAG())
	require.NoError(t, err)

	assert.Equal(t, "start", g.EntryPoint)
	assert.Equal(t, []domain.Node{
		{ID: "start", Kind: domain.NodeKindFunction, Name: "StartFn"},
		{ID: "toolA", Kind: domain.NodeKindTool, Name: "ToolA"},
		{ID: "end", Kind: domain.NodeKindFunction, Name: "EndFn"},
	}, g.Nodes)
	require.Len(t, g.Edges, 2)
	assert.False(t, g.Edges[0].Condition.IsPresent())
	label, ok := g.Edges[1].Condition.Label()
	assert.True(t, ok)
	assert.Equal(t, "ok", label)
}

func TestValidate_MissingEntryPoint(t *testing.T) {
	nodes := []any{node("start", "function", "StartFn")}

	tests := []struct {
		name string
		raw  map[string]any
	}{
		{"absent", map[string]any{"nodes": nodes, "edges": []any{}}},
		{"empty", doc("", nodes, []any{})},
		{"null", doc(nil, nodes, []any{})},
		{"not a string", doc(42.0, nodes, []any{})},
		{"boolean", doc(true, nodes, []any{})},
		// entry_point is checked before nodes and edges.
		{"absent with broken nodes", map[string]any{"nodes": "nope"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := converter.Validate(tt.raw)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrMissingEntryPoint)
			assert.NotErrorIs(t, err, domain.ErrInvalidStructure)
			assert.Equal(t, domain.MissingEntryPointMessage, err.Error())
		})
	}
}

func TestValidate_InvalidStructure(t *testing.T) {
	valid := func() []any {
		return []any{node("a", "function", "A"), node("b", "tool", "B")}
	}

	tests := []struct {
		name string
		raw  any
	}{
		{"nil document", nil},
		{"list document", []any{}},
		{"scalar document", "start"},
		{"nodes missing", map[string]any{"entry_point": "a", "edges": []any{}}},
		{"edges missing", map[string]any{"entry_point": "a", "nodes": valid()}},
		{"nodes not a sequence", doc("a", map[string]any{}, []any{})},
		{"edges not a sequence", doc("a", valid(), "a->b")},
		{"node not an object", doc("a", []any{"a"}, []any{})},
		{"node id missing", doc("a", []any{map[string]any{"type": "function", "name": "A"}}, []any{})},
		{"node id empty", doc("a", []any{node("", "function", "A")}, []any{})},
		{"node id not a string", doc("a", []any{map[string]any{"id": 1.0, "type": "function", "name": "A"}}, []any{})},
		{"node type missing", doc("a", []any{map[string]any{"id": "a", "name": "A"}}, []any{})},
		{"node type unknown", doc("a", []any{node("a", "llm", "A")}, []any{})},
		{"node type wrong case", doc("a", []any{node("a", "Function", "A")}, []any{})},
		{"node type not a string", doc("a", []any{map[string]any{"id": "a", "type": []any{"tool"}, "name": "A"}}, []any{})},
		{"node name missing", doc("a", []any{map[string]any{"id": "a", "type": "tool"}}, []any{})},
		{"node name empty", doc("a", []any{node("a", "tool", "")}, []any{})},
		{"entry point dangling", doc("nonexistent", valid(), []any{})},
		{"edge not an object", doc("a", valid(), []any{"a"})},
		{"edge source missing", doc("a", valid(), []any{map[string]any{"target": "b"}})},
		{"edge target empty", doc("a", valid(), []any{edge("a", "")})},
		{"edge source not a string", doc("a", valid(), []any{map[string]any{"source": true, "target": "b"}})},
		{"edge target dangling", doc("a", valid(), []any{edge("a", "ghost")})},
		{"edge source dangling", doc("a", valid(), []any{edge("ghost", "b")})},
		{"edge condition number", doc("a", valid(), []any{condEdge("a", "b", 1.0)})},
		{"edge condition object", doc("a", valid(), []any{condEdge("a", "b", map[string]any{"op": "eq"})})},
		{"edge condition list", doc("a", valid(), []any{condEdge("a", "b", []any{"ok"})})},
		{"two node cycle", doc("a", valid(), []any{edge("a", "b"), edge("b", "a")})},
		{"self loop", doc("a", valid(), []any{edge("a", "a")})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g, err := converter.Validate(tt.raw)
			assert.Nil(t, g)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidStructure)
			assert.Equal(t, domain.InvalidStructureMessage, err.Error())
		})
	}
}

func TestValidate_DuplicateIDAnywhere(t *testing.T) {
	ids := []string{"a", "b", "c", "d", "e"}
	for i := range ids {
		for j := i + 1; j < len(ids); j++ {
			nodes := make([]any, 0, len(ids))
			for k, id := range ids {
				if k == j {
					id = ids[i]
				}
				nodes = append(nodes, node(id, "function", "Fn"))
			}
			_, err := converter.Validate(doc("a", nodes, []any{}))
			assert.ErrorIs(t, err, domain.ErrInvalidStructure, "duplicate of index %d at index %d", i, j)
		}
	}
}

func TestValidate_Conditions(t *testing.T) {
	raw := doc("s",
		[]any{node("s", "function", "S"), node("t", "tool", "T")},
		[]any{
			edge("s", "t"),
			condEdge("s", "t", nil),
			condEdge("s", "t", "x > 1"),
			condEdge("s", "t", ""),
			condEdge("s", "t", true),
			condEdge("s", "t", false),
		},
	)

	g, err := converter.Validate(raw)
	require.NoError(t, err)

	kinds := make([]domain.ConditionKind, 0, len(g.Edges))
	for _, e := range g.Edges {
		kinds = append(kinds, e.Condition.Kind())
	}
	assert.Equal(t, []domain.ConditionKind{
		domain.ConditionAbsent,
		domain.ConditionAbsent,
		domain.ConditionString,
		domain.ConditionString,
		domain.ConditionBool,
		domain.ConditionBool,
	}, kinds)
}

func TestValidate_ExtraKeysIgnored(t *testing.T) {
	raw := sampleDAG()
	raw["version"] = "1"
	raw["nodes"].([]any)[0].(map[string]any)["metadata"] = map[string]any{"owner": "ops"}

	_, err := converter.Validate(raw)
	assert.NoError(t, err)
}
