// Package converter validates DAG descriptions and maps them onto the runtime graph format.
//
// The pipeline has three stages that run strictly in sequence:
//
//   - Validate decodes an untrusted document (as produced by encoding/json or
//     gopkg.in/yaml.v3 into an any) through a fixed sequence of guarded checks.
//   - HasCycle runs Kahn's algorithm over the validated node and edge set.
//   - MapNodes and MapEdges project the validated graph into the output shape.
//
// Convert composes the three. Every function is pure: no I/O, no logging and no
// package-level state, so they are safe for concurrent use.
//
// Every failure is a *domain.DagValidationError carrying one of two fixed messages.
// The first violation wins; errors are never aggregated.
package converter
