package analysis

import (
	"sort"

	"github.com/albertocavalcante/go-modgraph/graph"
)

// condensation is the DAG formed by collapsing each strongly-connected
// component into a single node. It is acyclic by construction, which is
// what makes every traversal below safe regardless of cycles in the
// underlying graph.
type condensation struct {
	// members lists the underlying node ids per component.
	members [][]string

	// comp maps node id to its component index.
	comp map[string]int

	// succ and pred are deduplicated component adjacency lists.
	// Self-loops (edges within one component) are excluded.
	succ [][]int
	pred [][]int
}

// condense builds the condensation of g from its SCCs.
func condense(g *graph.Graph, components [][]string) *condensation {
	c := &condensation{
		members: components,
		comp:    make(map[string]int, len(g.Nodes)),
		succ:    make([][]int, len(components)),
		pred:    make([][]int, len(components)),
	}
	for i, comp := range components {
		for _, id := range comp {
			c.comp[id] = i
		}
	}

	succSeen := make([]map[int]bool, len(components))
	for _, e := range g.Edges {
		from, ok := c.comp[e.From]
		if !ok {
			continue
		}
		to, ok := c.comp[e.To]
		if !ok || from == to {
			continue
		}
		if succSeen[from] == nil {
			succSeen[from] = make(map[int]bool)
		}
		if succSeen[from][to] {
			continue
		}
		succSeen[from][to] = true
		c.succ[from] = append(c.succ[from], to)
		c.pred[to] = append(c.pred[to], from)
	}

	for i := range c.succ {
		sort.Ints(c.succ[i])
		sort.Ints(c.pred[i])
	}
	return c
}

// size returns the number of underlying nodes in component i.
func (c *condensation) size(i int) int {
	return len(c.members[i])
}

// depths computes the dependency depth of every component: 0 for leaves
// (no outgoing condensation edges), otherwise 1 + the deepest direct
// successor. Components are processed in reverse topological order via
// Kahn's queue, so each depth is final when read.
func (c *condensation) depths() []int {
	n := len(c.members)
	depth := make([]int, n)

	// outstanding[i] counts unprocessed successors of i; a component is
	// ready once every component it depends on has its depth.
	outstanding := make([]int, n)
	var queue []int
	for i := 0; i < n; i++ {
		outstanding[i] = len(c.succ[i])
		if outstanding[i] == 0 {
			queue = append(queue, i)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, s := range c.succ[cur] {
			if d := depth[s] + 1; d > depth[cur] {
				depth[cur] = d
			}
		}
		for _, p := range c.pred[cur] {
			outstanding[p]--
			if outstanding[p] == 0 {
				queue = append(queue, p)
			}
		}
	}
	return depth
}

// reachableSize returns the number of underlying nodes in all components
// reachable from start along the given adjacency, excluding start's own
// members. The visited set collapses diamonds: a component reached via
// several paths is counted once.
func (c *condensation) reachableSize(start int, adjOf func(int) []int) int {
	visited := map[int]bool{start: true}
	queue := []int{start}
	total := 0

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adjOf(cur) {
			if visited[next] {
				continue
			}
			visited[next] = true
			total += c.size(next)
			queue = append(queue, next)
		}
	}
	return total
}

// neighborSize returns the number of underlying nodes in the immediate
// neighbors of component i, same-component members excluded.
func (c *condensation) neighborSize(neighbors []int) int {
	total := 0
	for _, n := range neighbors {
		total += c.size(n)
	}
	return total
}
