package converter

import "github.com/aretw0/dag2langgraph/pkg/domain"

// HasCycle reports whether edges contain a directed cycle over nodes, using
// Kahn's algorithm in O(nodes + edges). A self-loop counts as a cycle.
//
// Every edge endpoint must name one of nodes; Validate guarantees this and
// HasCycle does not re-check it.
func HasCycle(nodes []domain.Node, edges []domain.Edge) bool {
	inDegree := make(map[string]int, len(nodes))
	adjacency := make(map[string][]string, len(nodes))
	for _, n := range nodes {
		inDegree[n.ID] = 0
	}
	for _, e := range edges {
		inDegree[e.Target]++
		adjacency[e.Source] = append(adjacency[e.Source], e.Target)
	}

	queue := make([]string, 0, len(nodes))
	for _, n := range nodes {
		if inDegree[n.ID] == 0 {
			queue = append(queue, n.ID)
		}
	}

	visited := 0
	for head := 0; head < len(queue); head++ {
		visited++
		for _, next := range adjacency[queue[head]] {
			inDegree[next]--
			if inDegree[next] == 0 {
				queue = append(queue, next)
			}
		}
	}

	return visited < len(nodes)
}
