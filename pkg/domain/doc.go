/*
Package domain contains the data model shared by the converter, its adapters and its hosts.

It defines the validated form of a DAG description (Node, Edge, ValidatedGraph), the
runtime-facing output (OutputGraph, NodeTable, OutputEdge) and the two validation error
kinds. The package is kept pure and free of I/O, following Hexagonal Architecture principles.

# Key Entities

  - Node: An execution unit, either a function or a tool.
  - Edge: A directed link between two nodes, optionally guarded by a Condition.
  - ValidatedGraph: A graph whose structural invariants and acyclicity have been checked.
  - OutputGraph: The node table, edge list and entry point consumed by the runtime.
  - DagValidationError: The typed failure returned for every rejected input.
*/
package domain
