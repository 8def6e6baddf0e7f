package graph

import "sort"

// GraphDiff describes the differences between two graph snapshots.
//
// This is useful for:
//   - Reviewing how a refactor moved module boundaries before merging it
//   - CI checks that flag new edges into guarded modules
//   - Auditing dependency drift between two revisions of a workspace
//
// Both snapshots must have been built with identical construction flags
// (sub-target inclusion, transient hiding, augmentation, id discipline);
// comparing graphs built differently yields false positives, which is a
// caller contract violation rather than something Diff corrects.
type GraphDiff struct {
	// AddedNodes are node ids present in the new graph only.
	AddedNodes []string `json:"added_nodes,omitempty"`

	// RemovedNodes are node ids present in the old graph only.
	RemovedNodes []string `json:"removed_nodes,omitempty"`

	// AddedEdges are edge keys ("from->to") present in the new graph only.
	AddedEdges []string `json:"added_edges,omitempty"`

	// RemovedEdges are edge keys present in the old graph only.
	RemovedEdges []string `json:"removed_edges,omitempty"`
}

// IsEmpty returns true if the snapshots are identical.
func (d *GraphDiff) IsEmpty() bool {
	return len(d.AddedNodes) == 0 &&
		len(d.RemovedNodes) == 0 &&
		len(d.AddedEdges) == 0 &&
		len(d.RemovedEdges) == 0
}

// TotalChanges returns the number of differing nodes and edges.
func (d *GraphDiff) TotalChanges() int {
	return len(d.AddedNodes) + len(d.RemovedNodes) + len(d.AddedEdges) + len(d.RemovedEdges)
}

// Diff computes the set differences between two snapshots: added means
// present in to but not from, removed the reverse. Nil graphs are
// treated as empty, and results are sorted for consistent output.
//
// Diff is symmetric by construction: Diff(a, b).AddedNodes equals
// Diff(b, a).RemovedNodes, and likewise for edges.
func Diff(from, to *Graph) *GraphDiff {
	diff := &GraphDiff{}

	fromNodes := nodeIDSet(from)
	toNodes := nodeIDSet(to)
	diff.AddedNodes = setDifference(toNodes, fromNodes)
	diff.RemovedNodes = setDifference(fromNodes, toNodes)

	fromEdges := edgeKeySet(from)
	toEdges := edgeKeySet(to)
	diff.AddedEdges = setDifference(toEdges, fromEdges)
	diff.RemovedEdges = setDifference(fromEdges, toEdges)

	return diff
}

func nodeIDSet(g *Graph) map[string]bool {
	if g == nil {
		return nil
	}
	ids := make(map[string]bool, len(g.Nodes))
	for id := range g.Nodes {
		ids[id] = true
	}
	return ids
}

func edgeKeySet(g *Graph) map[string]bool {
	if g == nil {
		return nil
	}
	keys := make(map[string]bool, len(g.Edges))
	for key := range g.Edges {
		keys[key] = true
	}
	return keys
}

// setDifference returns the members of a that are not in b, sorted.
func setDifference(a, b map[string]bool) []string {
	var out []string
	for k := range a {
		if !b[k] {
			out = append(out, k)
		}
	}
	sort.Strings(out)
	return out
}
