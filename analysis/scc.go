package analysis

import (
	"sort"

	"github.com/albertocavalcante/go-modgraph/graph"
)

// StronglyConnectedComponents computes the SCCs of the graph with an
// iterative Tarjan pass. Singleton components are the common case; a
// component with more than one member is a dependency cycle.
//
// Edges whose endpoints are missing from the node set are ignored, so a
// graph with dangling edges (hidden transients, malformed input) analyzes
// the same as one without them. Components and their members come back
// sorted, making the output independent of map iteration order.
func StronglyConnectedComponents(g *graph.Graph) [][]string {
	adj := adjacency(g)

	ids := make([]string, 0, len(g.Nodes))
	for id := range g.Nodes {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	t := &tarjanState{
		adj:     adj,
		index:   make(map[string]int, len(ids)),
		lowlink: make(map[string]int, len(ids)),
		onStack: make(map[string]bool, len(ids)),
	}
	for _, id := range ids {
		if _, seen := t.index[id]; !seen {
			t.connect(id)
		}
	}

	for _, comp := range t.components {
		sort.Strings(comp)
	}
	sort.Slice(t.components, func(i, j int) bool {
		return t.components[i][0] < t.components[j][0]
	})
	return t.components
}

// adjacency builds sorted successor lists from the edge set, dropping
// edges with a missing endpoint.
func adjacency(g *graph.Graph) map[string][]string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.From]; !ok {
			continue
		}
		if _, ok := g.Nodes[e.To]; !ok {
			continue
		}
		adj[e.From] = append(adj[e.From], e.To)
	}
	for _, succ := range adj {
		sort.Strings(succ)
	}
	return adj
}

type tarjanState struct {
	adj        map[string][]string
	index      map[string]int
	lowlink    map[string]int
	onStack    map[string]bool
	stack      []string
	next       int
	components [][]string
}

// tarjanFrame is one suspended visit on the explicit DFS stack. The
// traversal is iterative because input cycles can be as deep as the node
// count, which is exactly when the callstack variant falls over.
type tarjanFrame struct {
	id    string
	child int
}

func (t *tarjanState) connect(root string) {
	frames := []tarjanFrame{{id: root}}

	t.index[root] = t.next
	t.lowlink[root] = t.next
	t.next++
	t.stack = append(t.stack, root)
	t.onStack[root] = true

	for len(frames) > 0 {
		f := &frames[len(frames)-1]
		succ := t.adj[f.id]

		if f.child < len(succ) {
			next := succ[f.child]
			f.child++

			if _, seen := t.index[next]; !seen {
				t.index[next] = t.next
				t.lowlink[next] = t.next
				t.next++
				t.stack = append(t.stack, next)
				t.onStack[next] = true
				frames = append(frames, tarjanFrame{id: next})
			} else if t.onStack[next] {
				if t.index[next] < t.lowlink[f.id] {
					t.lowlink[f.id] = t.index[next]
				}
			}
			continue
		}

		// All successors visited: pop a component if this is its root,
		// then propagate the lowlink to the parent frame.
		if t.lowlink[f.id] == t.index[f.id] {
			var comp []string
			for {
				w := t.stack[len(t.stack)-1]
				t.stack = t.stack[:len(t.stack)-1]
				t.onStack[w] = false
				comp = append(comp, w)
				if w == f.id {
					break
				}
			}
			t.components = append(t.components, comp)
		}

		finished := *f
		frames = frames[:len(frames)-1]
		if len(frames) > 0 {
			parent := &frames[len(frames)-1]
			if t.lowlink[finished.id] < t.lowlink[parent.id] {
				t.lowlink[parent.id] = t.lowlink[finished.id]
			}
		}
	}
}
