package mcp

import (
	"context"
	"errors"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aretw0/dag2langgraph"
	"github.com/aretw0/dag2langgraph/pkg/codec"
)

func callRequest(name string, args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.Len(t, res.Content, 1)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content, got %T", res.Content[0])
	return text.Text
}

func TestHandleConvert(t *testing.T) {
	s := NewServer(dag2langgraph.New(), nil)

	res, err := s.handleConvert(context.Background(), callRequest("convert_dag", map[string]any{
		"dag":    exampleDocument,
		"indent": float64(0),
	}))
	require.NoError(t, err)

	assert.False(t, res.IsError)
	assert.Equal(t,
		`{"nodes":{"start":{"type":"function","name":"StartFn"},"toolA":{"type":"tool","name":"ToolA"},"end":{"type":"function","name":"EndFn"}},"edges":[{"source":"start","target":"toolA"},{"source":"toolA","target":"end","condition":"ok"}],"entry_point":"start"}`+"\n",
		resultText(t, res))
}

func TestHandleConvert_YAML(t *testing.T) {
	s := NewServer(dag2langgraph.New(), nil)
	doc := "entry_point: a\nnodes:\n  - {id: a, type: tool, name: A}\nedges: []\n"

	res, err := s.handleConvert(context.Background(), callRequest("convert_dag", map[string]any{
		"dag":    doc,
		"format": "yaml",
	}))
	require.NoError(t, err)

	assert.False(t, res.IsError)
	assert.Contains(t, resultText(t, res), `"entry_point": "a"`)
}

func TestHandleConvert_ToolErrors(t *testing.T) {
	tests := []struct {
		name     string
		args     map[string]any
		contains string
	}{
		{
			name:     "missing dag argument",
			args:     map[string]any{},
			contains: "dag",
		},
		{
			name:     "missing entry point",
			args:     map[string]any{"dag": `{"nodes": [], "edges": []}`},
			contains: "missing_entry_point: Entry point not specified.",
		},
		{
			name:     "cycle",
			args:     map[string]any{"dag": `{"entry_point": "a", "nodes": [{"id": "a", "type": "function", "name": "A"}], "edges": [{"source": "a", "target": "a"}]}`},
			contains: "invalid_structure: Invalid DAG structure or cycles detected.",
		},
		{
			name:     "malformed input",
			args:     map[string]any{"dag": `{`},
			contains: "invalid JSON input",
		},
		{
			name:     "unknown format",
			args:     map[string]any{"dag": exampleDocument, "format": "xml"},
			contains: "xml",
		},
		{
			name:     "indent out of range",
			args:     map[string]any{"dag": exampleDocument, "indent": float64(12)},
			contains: "indent",
		},
	}

	s := NewServer(dag2langgraph.New(), nil)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res, err := s.handleConvert(context.Background(), callRequest("convert_dag", tt.args))
			require.NoError(t, err)
			assert.True(t, res.IsError)
			assert.Contains(t, resultText(t, res), tt.contains)
		})
	}
}

func TestHandleValidate(t *testing.T) {
	s := NewServer(dag2langgraph.New(), nil)

	res, err := s.handleValidate(context.Background(), callRequest("validate_dag", map[string]any{"dag": exampleDocument}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	assert.Equal(t, "valid", resultText(t, res))

	res, err = s.handleValidate(context.Background(), callRequest("validate_dag", map[string]any{
		"dag": `{"entry_point": "ghost", "nodes": [], "edges": []}`,
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, resultText(t, res), "invalid_structure")
}

type brokenConverter struct{}

func (brokenConverter) ConvertDocument(context.Context, []byte, codec.Format, int) ([]byte, error) {
	return nil, errors.New("boom")
}

func (brokenConverter) Validate(context.Context, []byte, codec.Format) error {
	return errors.New("boom")
}

func TestHandleConvert_ServerFault(t *testing.T) {
	s := NewServer(brokenConverter{}, nil)

	res, err := s.handleConvert(context.Background(), callRequest("convert_dag", map[string]any{"dag": exampleDocument}))

	assert.Nil(t, res)
	assert.ErrorContains(t, err, "boom")
}
