package graph

import (
	"fmt"
	"path"
	"sort"

	"github.com/albertocavalcante/go-modgraph/depinfo"
)

// NodeKind classifies a node in the dependency graph.
//
// Kinds form a closed set with a fixed upgrade precedence: merging may
// upgrade a node's kind when a later source reveals more about it, but an
// upgrade never reverses. The full old-kind x new-kind table lives in
// upgradeTable so every combination is covered explicitly.
type NodeKind int

const (
	// KindExternalModule is a dependency resolved from outside the
	// scanned tree (a remote package).
	KindExternalModule NodeKind = iota

	// KindContainer is a top-level buildable unit that owns sub-targets
	// and declares dependencies.
	KindContainer

	// KindInternalModule is a dependency whose source is owned and
	// editable within the scanned tree.
	KindInternalModule

	// KindSubTarget is a nested build unit inside a container, identified
	// as "container/subtarget".
	KindSubTarget
)

// kindNames maps kinds to their wire representation.
var kindNames = [...]string{
	KindExternalModule: "external_module",
	KindContainer:      "container",
	KindInternalModule: "internal_module",
	KindSubTarget:      "sub_target",
}

// String returns the wire name of the kind.
func (k NodeKind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return fmt.Sprintf("NodeKind(%d)", int(k))
	}
	return kindNames[k]
}

// MarshalText implements encoding.TextMarshaler so kinds serialize as
// their wire names in JSON output.
func (k NodeKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// upgradeTable is the total upgrade-precedence table: indexed by
// [currentKind][observedKind], it yields the resulting kind. Legal
// upgrades are ExternalModule -> InternalModule and
// Container -> InternalModule; everything else keeps the current kind.
// SubTarget identity is scoped to its container, so it never converts.
var upgradeTable = [4][4]NodeKind{
	KindExternalModule: {
		KindExternalModule: KindExternalModule,
		KindContainer:      KindContainer,
		KindInternalModule: KindInternalModule,
		KindSubTarget:      KindExternalModule,
	},
	KindContainer: {
		KindExternalModule: KindContainer,
		KindContainer:      KindContainer,
		KindInternalModule: KindInternalModule,
		KindSubTarget:      KindContainer,
	},
	KindInternalModule: {
		KindExternalModule: KindInternalModule,
		KindContainer:      KindInternalModule,
		KindInternalModule: KindInternalModule,
		KindSubTarget:      KindInternalModule,
	},
	KindSubTarget: {
		KindExternalModule: KindSubTarget,
		KindContainer:      KindSubTarget,
		KindInternalModule: KindSubTarget,
		KindSubTarget:      KindSubTarget,
	},
}

// Upgrade returns the kind that results from observing observed for a node
// currently classified as k.
func (k NodeKind) Upgrade(observed NodeKind) NodeKind {
	return upgradeTable[k][observed]
}

// Node is one entity in the dependency graph.
type Node struct {
	// ID uniquely identifies the node per (kind-space, identity) pair.
	// A container and a same-named module get distinct ids.
	ID string `json:"id"`

	// Name is the declared name with original casing, for display.
	Name string `json:"name"`

	// Kind classifies the node.
	Kind NodeKind `json:"kind"`

	// Transient is true while no source has declared this node as a
	// direct dependency of anything that references it. Once any source
	// marks the node explicit it stays explicit.
	Transient bool `json:"transient"`

	// Layer is the BFS distance from the nearest root, an advisory
	// attribute for renderers. Analysis ignores it.
	Layer int `json:"layer"`
}

// Edge is an ordered dependency pair: From depends on To.
// Edges are unique per (From, To); re-adding is a no-op.
type Edge struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Key returns the canonical edge key used for idempotence and diffing.
func (e Edge) Key() string {
	return e.From + "->" + e.To
}

// Graph is a merged dependency graph over containers, sub-targets, and
// modules. Nodes and Edges are keyed by their stable identifiers; edges
// may reference ids that are not present in Nodes when transient nodes
// were hidden, and every consumer must tolerate such dangling edges.
type Graph struct {
	// Nodes maps node id to node.
	Nodes map[string]*Node `json:"nodes"`

	// Edges maps edge key ("from->to") to edge.
	Edges map[string]Edge `json:"edges"`

	// StableIDs records which id discipline was used during
	// construction. Renderers use it to stamp the schema version.
	StableIDs bool `json:"-"`
}

// New returns an empty graph.
func New() *Graph {
	return &Graph{
		Nodes: make(map[string]*Node),
		Edges: make(map[string]Edge),
	}
}

// SchemaVersion returns the JSON schema discriminator for this graph:
// 2 for stable (path-independent) ids, 1 for legacy ids.
func (g *Graph) SchemaVersion() int {
	if g.StableIDs {
		return 2
	}
	return 1
}

// SortedNodes returns the nodes ordered by id, for deterministic output.
func (g *Graph) SortedNodes() []*Node {
	nodes := make([]*Node, 0, len(g.Nodes))
	for _, n := range g.Nodes {
		nodes = append(nodes, n)
	}
	sort.Slice(nodes, func(i, j int) bool { return nodes[i].ID < nodes[j].ID })
	return nodes
}

// SortedEdges returns the edges ordered by key, for deterministic output.
func (g *Graph) SortedEdges() []Edge {
	edges := make([]Edge, 0, len(g.Edges))
	for _, e := range g.Edges {
		edges = append(edges, e)
	}
	sort.Slice(edges, func(i, j int) bool { return edges[i].Key() < edges[j].Key() })
	return edges
}

// ModuleID returns the stable id for a module-like identity. Internal and
// external modules share one id space so that a kind upgrade rewrites the
// node in place instead of forking it.
func ModuleID(name string) string {
	return "module:" + depinfo.NormalizeName(name)
}

// ContainerID returns the id for a container discovered at the given
// path. The path disambiguates same-named containers in different
// directories; stable-id construction passes scan-root-relative paths so
// ids reproduce across machines, legacy construction passes absolute ones.
func ContainerID(name, relPath string) string {
	id := "container:" + depinfo.NormalizeName(name)
	if relPath != "" && relPath != "." {
		id += "@" + path.Clean(relPath)
	}
	return id
}

// SubTargetID returns the stable id for a sub-target, scoped by its
// container so target names only need to be unique per container.
func SubTargetID(containerName, targetName string) string {
	return "subtarget:" + depinfo.NormalizeName(containerName) + "/" + depinfo.NormalizeName(targetName)
}
