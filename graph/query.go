package graph

import "sort"

// Get returns the node with the given id, or nil if not found.
func (g *Graph) Get(id string) *Node {
	return g.Nodes[id]
}

// Contains returns true if the graph has a node with the given id.
func (g *Graph) Contains(id string) bool {
	_, ok := g.Nodes[id]
	return ok
}

// DirectDependencies returns the ids this node depends on directly,
// sorted. Edges whose target was filtered out of the node set are
// dropped.
func (g *Graph) DirectDependencies(id string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.From != id {
			continue
		}
		if _, ok := g.Nodes[e.To]; !ok {
			continue
		}
		out = append(out, e.To)
	}
	sort.Strings(out)
	return out
}

// DirectDependents returns the ids that depend on this node directly,
// sorted, skipping dangling edges.
func (g *Graph) DirectDependents(id string) []string {
	var out []string
	for _, e := range g.Edges {
		if e.To != id {
			continue
		}
		if _, ok := g.Nodes[e.From]; !ok {
			continue
		}
		out = append(out, e.From)
	}
	sort.Strings(out)
	return out
}

// TransitiveDependencies returns every id reachable from the given node
// via dependency edges, in breadth-first order. The visited set makes
// the walk terminate on cycles and count diamond-shared nodes once.
func (g *Graph) TransitiveDependencies(id string) []string {
	return g.traverse(id, func(e Edge) (string, string) { return e.From, e.To })
}

// TransitiveDependents returns every id that can reach the given node,
// in breadth-first order (closest dependents first).
func (g *Graph) TransitiveDependents(id string) []string {
	return g.traverse(id, func(e Edge) (string, string) { return e.To, e.From })
}

// traverse walks from start along edges oriented by direction, which maps
// an edge to its (source, destination) for the walk.
func (g *Graph) traverse(start string, direction func(Edge) (string, string)) []string {
	adj := make(map[string][]string, len(g.Nodes))
	for _, e := range g.Edges {
		src, dst := direction(e)
		if _, ok := g.Nodes[src]; !ok {
			continue
		}
		if _, ok := g.Nodes[dst]; !ok {
			continue
		}
		adj[src] = append(adj[src], dst)
	}
	for _, next := range adj {
		sort.Strings(next)
	}

	var result []string
	visited := map[string]bool{start: true}
	queue := []string{start}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range adj[cur] {
			if visited[next] {
				continue
			}
			visited[next] = true
			result = append(result, next)
			queue = append(queue, next)
		}
	}
	return result
}

// Roots returns the ids of nodes nothing depends on, sorted.
func (g *Graph) Roots() []string {
	hasDependent := make(map[string]bool, len(g.Nodes))
	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.From]; !ok {
			continue
		}
		hasDependent[e.To] = true
	}

	var roots []string
	for id := range g.Nodes {
		if !hasDependent[id] {
			roots = append(roots, id)
		}
	}
	sort.Strings(roots)
	return roots
}

// Leaves returns the ids of nodes with no dependencies, sorted.
func (g *Graph) Leaves() []string {
	hasDependency := make(map[string]bool, len(g.Nodes))
	for _, e := range g.Edges {
		if _, ok := g.Nodes[e.To]; !ok {
			continue
		}
		hasDependency[e.From] = true
	}

	var leaves []string
	for id := range g.Nodes {
		if !hasDependency[id] {
			leaves = append(leaves, id)
		}
	}
	sort.Strings(leaves)
	return leaves
}

// CountByKind returns how many nodes of each kind the graph holds.
func (g *Graph) CountByKind() map[NodeKind]int {
	counts := make(map[NodeKind]int)
	for _, n := range g.Nodes {
		counts[n.Kind]++
	}
	return counts
}
