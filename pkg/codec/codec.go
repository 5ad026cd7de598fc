// Package codec decodes DAG documents into the generic form consumed by the
// converter and encodes converted graphs for the runtime.
//
// Decoding is deliberately untyped: the converter's guarded checks own every
// shape decision, so this package only turns bytes into maps, slices and scalars.
package codec

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/aretw0/dag2langgraph/pkg/domain"
)

// Format names a document syntax.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultIndent matches the indentation of the reference JSON output.
const DefaultIndent = 2

// ErrUnsupportedFormat is returned for unknown format names.
var ErrUnsupportedFormat = errors.New("unsupported format")

// DecodeError reports input that is not well-formed in its declared format.
type DecodeError struct {
	Format Format
	Err    error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("invalid %s input: %v", strings.ToUpper(string(e.Format)), e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// ParseFormat resolves a user supplied format name.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, s)
	}
}

// FormatFromPath infers the format from a file extension.
// Anything that is not .yaml or .yml, including "-" for stdin, is JSON.
func FormatFromPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode parses data into maps, slices and scalars.
func Decode(data []byte, format Format) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &DecodeError{Format: format, Err: errors.New("empty document")}
	}

	var v any
	switch format {
	case FormatJSON:
		if err := json.Unmarshal(data, &v); err != nil {
			return nil, &DecodeError{Format: format, Err: err}
		}
		return v, nil
	case FormatYAML:
		if err := yaml.Unmarshal(data, &v); err != nil {
			return nil, &DecodeError{Format: format, Err: err}
		}
		return normalize(v), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}

// normalize rewrites YAML mappings with non-string keys (e.g. `1: x`) to
// map[string]any so they look like their JSON equivalent.
func normalize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		for k, child := range t {
			t[k] = normalize(child)
		}
		return t
	case map[any]any:
		m := make(map[string]any, len(t))
		for k, child := range t {
			m[fmt.Sprint(k)] = normalize(child)
		}
		return m
	case []any:
		for i, child := range t {
			t[i] = normalize(child)
		}
		return t
	default:
		return v
	}
}

// wireGraph is OutputGraph with the node table pre-encoded, so that every
// field shares the same escaping.
type wireGraph struct {
	Nodes      json.RawMessage     `json:"nodes"`
	Edges      []domain.OutputEdge `json:"edges"`
	EntryPoint string              `json:"entry_point"`
}

// Encode renders g as JSON. indent is the number of spaces per level; zero
// produces compact output. Non-ASCII text and HTML characters are written as-is.
func Encode(g *domain.OutputGraph, indent int) ([]byte, error) {
	if indent < 0 {
		return nil, fmt.Errorf("indent must not be negative, got %d", indent)
	}

	nodes, err := encodeNodes(g.Nodes)
	if err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}

	var buf bytes.Buffer
	enc := newEncoder(&buf)
	if indent > 0 {
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(wireGraph{Nodes: nodes, Edges: g.Edges, EntryPoint: g.EntryPoint}); err != nil {
		return nil, fmt.Errorf("failed to encode graph: %w", err)
	}
	return buf.Bytes(), nil
}

// encodeNodes writes the node table pair by pair in insertion order.
func encodeNodes(t *domain.NodeTable) (json.RawMessage, error) {
	var buf bytes.Buffer
	enc := newEncoder(&buf)

	buf.WriteByte('{')
	if t != nil {
		for pair := t.Oldest(); pair != nil; pair = pair.Next() {
			if buf.Len() > 1 {
				buf.WriteByte(',')
			}
			if err := enc.Encode(pair.Key); err != nil {
				return nil, err
			}
			buf.Truncate(buf.Len() - 1) // Encode appends a newline
			buf.WriteByte(':')
			if err := enc.Encode(pair.Value); err != nil {
				return nil, err
			}
			buf.Truncate(buf.Len() - 1)
		}
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func newEncoder(buf *bytes.Buffer) *json.Encoder {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	return enc
}
