/*
Package dag2langgraph converts DAG descriptions into the graph format consumed by a
LangGraph-style execution runtime.

A DAG description names an entry point, a list of nodes (each a "function" or a "tool")
and a list of edges, optionally labelled with a string or boolean condition. Conversion
validates the description, rejects cycles with Kahn's algorithm and projects it into a node
table, an ordered edge list and the entry point.

# Concept

The validation and mapping core lives in pkg/converter and is a set of pure functions. This
package wraps it in a Converter that hosts (the CLI, the HTTP server, the MCP server) share:
it decodes documents, memoizes results in an optional ports.ResultCache, and reports every
outcome through domain.ConversionHooks.

# Errors

Every rejected document yields a *domain.DagValidationError with one of two fixed messages:

  - "Entry point not specified." when entry_point is absent, empty or not a string.
  - "Invalid DAG structure or cycles detected." for every other failure.

Use errors.Is with domain.ErrMissingEntryPoint or domain.ErrInvalidStructure to tell them apart.
Malformed bytes are reported as *codec.DecodeError instead.

# Usage

	conv := dag2langgraph.New()
	out, err := conv.ConvertDocument(ctx, data, codec.FormatJSON, codec.DefaultIndent)
	if errors.Is(err, domain.ErrMissingEntryPoint) {
		// Ask the author to designate a start node
	}
*/
package dag2langgraph
