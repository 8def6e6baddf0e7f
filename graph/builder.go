package graph

import (
	"context"
	"log/slog"
	"path/filepath"

	"github.com/albertocavalcante/go-modgraph/depinfo"
	"github.com/albertocavalcante/go-modgraph/internal/logutil"
	"github.com/albertocavalcante/go-modgraph/resolve"
)

// Options configures graph construction. Two graphs are only comparable
// with Diff when they were built with identical Options.
type Options struct {
	// IncludeSubTargets adds one node per sub-target plus the edges that
	// route package dependencies to the targets that actually use them.
	IncludeSubTargets bool

	// HideTransient drops transient nodes from the finished graph and
	// bounds the augmentation walk to direct children. Edges touching a
	// hidden node are left dangling; consumers drop them on render.
	HideTransient bool

	// StableIDs derives container ids from scan-root-relative paths so
	// identical trees at different absolute locations produce identical
	// graphs. When false, ids embed Root for backward compatibility with
	// output produced before the stable discipline existed.
	StableIDs bool

	// Root is the scan root. Only legacy (non-stable) ids embed it.
	Root string

	// Resolver, when set, augments the graph with transitive
	// module-to-module edges discovered by an external resolution
	// command. Resolution failures are skipped, never fatal.
	Resolver resolve.Resolver

	// Logger receives debug output. Nil disables logging.
	Logger *slog.Logger
}

// Builder accumulates nodes and edges with idempotent, upgrade-only
// semantics. AddNode and AddEdge are the only mutation surface, which is
// what makes the merge order-independent: re-observing a node can only
// upgrade its kind or clear its transient flag, and re-adding an edge is
// a no-op.
type Builder struct {
	opts Options
	g    *Graph
	log  *slog.Logger

	// explicit is the union of every record's explicit declarations,
	// normalized. A reference is transient iff its target is in neither
	// explicit nor local.
	explicit map[string]bool

	// local holds identities that self-declare, i.e. modules owned by
	// the scanned tree.
	local map[string]bool
}

// NewBuilder creates a builder for the given options.
func NewBuilder(opts Options) *Builder {
	log := opts.Logger
	if log == nil {
		log = logutil.Discard()
	}
	return &Builder{
		opts:     opts,
		g:        New(),
		log:      log,
		explicit: make(map[string]bool),
		local:    make(map[string]bool),
	}
}

// AddNode inserts or updates the node with the given id. For an existing
// node only legal kind upgrades apply, and an explicit observation clears
// Transient for good; a transient observation never re-sets it.
func (b *Builder) AddNode(id, name string, kind NodeKind, transient bool) *Node {
	if existing, ok := b.g.Nodes[id]; ok {
		existing.Kind = existing.Kind.Upgrade(kind)
		if !transient {
			existing.Transient = false
		}
		return existing
	}
	n := &Node{ID: id, Name: name, Kind: kind, Transient: transient}
	b.g.Nodes[id] = n
	return n
}

// AddEdge records that from depends on to. Duplicate edges collapse.
// Neither endpoint needs to exist yet; the analysis layer ignores edges
// whose endpoints never materialize.
func (b *Builder) AddEdge(from, to string) {
	e := Edge{From: from, To: to}
	b.g.Edges[e.Key()] = e
}

// Graph returns the graph built so far.
func (b *Builder) Graph() *Graph {
	return b.g
}

// Build merges dependency records into a finished graph.
//
// The merge is a fold over the records: global identity sets are computed
// up front, then every record is applied through the idempotent AddNode /
// AddEdge surface, so feeding the same records in any order produces an
// identical graph.
func Build(ctx context.Context, records []depinfo.DependencyInfo, opts Options) *Graph {
	b := NewBuilder(opts)
	b.collectIdentities(records)

	for _, rec := range records {
		b.mergeRecord(rec)
	}

	if opts.Resolver != nil {
		b.augment(ctx, records)
	}

	b.assignLayers()

	if opts.HideTransient {
		b.dropTransient()
	}

	b.g.StableIDs = opts.StableIDs
	return b.g
}

// collectIdentities computes the global explicit set and the set of local
// (self-declared) identities before any node is created. Doing this as a
// separate pass is what keeps the merge independent of record order.
func (b *Builder) collectIdentities(records []depinfo.DependencyInfo) {
	for _, rec := range records {
		if rec.DeclaresSelf() {
			b.local[depinfo.NormalizeName(rec.Name)] = true
		}
		for _, dep := range rec.ExplicitDependencies {
			b.explicit[depinfo.NormalizeName(dep)] = true
		}
		for _, st := range rec.SubTargets {
			for _, dep := range st.PackageDependencies {
				b.explicit[depinfo.NormalizeName(dep)] = true
			}
		}
	}
}

// isTransient reports whether a reference to name carries no explicit
// declaration anywhere in scope. Local modules are never transient toward
// their owner, even on first discovery.
func (b *Builder) isTransient(name string) bool {
	norm := depinfo.NormalizeName(name)
	return !b.explicit[norm] && !b.local[norm]
}

// ownNodeID resolves the identity of the record itself and adds its node.
// Self-declaring records are the local module. A bare name-list record
// (a lockfile) for a local identity folds into that module too; a record
// with its own declarations or targets is a distinct container even when
// a local module shares its display name.
func (b *Builder) ownNodeID(rec depinfo.DependencyInfo) string {
	norm := depinfo.NormalizeName(rec.Name)
	bareNameList := len(rec.ExplicitDependencies) == 0 && len(rec.SubTargets) == 0
	if rec.DeclaresSelf() || (b.local[norm] && bareNameList) {
		id := ModuleID(rec.Name)
		b.AddNode(id, rec.Name, KindInternalModule, false)
		return id
	}
	id := ContainerID(rec.Name, b.containerPath(rec.Path))
	b.AddNode(id, rec.Name, KindContainer, false)
	return id
}

// containerPath returns the disambiguating path component for container
// ids. Stable mode uses the scan-root-relative path as-is; legacy mode
// reproduces the old absolute-path keying.
func (b *Builder) containerPath(relPath string) string {
	if relPath == "" {
		return ""
	}
	if b.opts.StableIDs {
		return relPath
	}
	return filepath.Join(b.opts.Root, relPath)
}

// mergeRecord applies one record: its own node, its dependency references,
// and optionally its sub-targets.
func (b *Builder) mergeRecord(rec depinfo.DependencyInfo) {
	ownID := b.ownNodeID(rec)
	selfNorm := depinfo.NormalizeName(rec.Name)

	for _, dep := range b.declaredRefs(rec, selfNorm) {
		b.addModuleRef(ownID, dep)
	}

	if b.opts.IncludeSubTargets {
		b.mergeSubTargets(ownID, rec)
	}
}

// declaredRefs merges the ordered dependency list with any explicit
// declarations that the list missed, dropping the self-declaration marker.
func (b *Builder) declaredRefs(rec depinfo.DependencyInfo, selfNorm string) []string {
	seen := make(map[string]bool, len(rec.Dependencies))
	refs := make([]string, 0, len(rec.Dependencies)+len(rec.ExplicitDependencies))
	for _, dep := range rec.Dependencies {
		norm := depinfo.NormalizeName(dep)
		if norm == selfNorm || seen[norm] {
			continue
		}
		seen[norm] = true
		refs = append(refs, dep)
	}
	for _, dep := range rec.ExplicitDependencies {
		norm := depinfo.NormalizeName(dep)
		if norm == selfNorm || seen[norm] {
			continue
		}
		seen[norm] = true
		refs = append(refs, dep)
	}
	return refs
}

// addModuleRef adds or upgrades the module node for a dependency
// reference and the edge pointing at it.
func (b *Builder) addModuleRef(fromID, dep string) {
	kind := KindExternalModule
	if b.local[depinfo.NormalizeName(dep)] {
		kind = KindInternalModule
	}
	depID := ModuleID(dep)
	b.AddNode(depID, dep, kind, b.isTransient(dep))
	b.AddEdge(fromID, depID)
}

// mergeSubTargets expands a record's sub-targets. Package dependencies
// are wired to the sub-target that imports them rather than the
// container, which keeps the blast radius honest: a leaf package change
// only reaches the targets that actually use it.
func (b *Builder) mergeSubTargets(ownerID string, rec depinfo.DependencyInfo) {
	for _, st := range rec.SubTargets {
		stID := SubTargetID(rec.Name, st.Name)
		b.AddNode(stID, st.Name, KindSubTarget, false)
		b.AddEdge(ownerID, stID)

		for _, sibling := range st.TargetDependencies {
			sibID := SubTargetID(rec.Name, sibling)
			b.AddNode(sibID, sibling, KindSubTarget, false)
			b.AddEdge(stID, sibID)
		}
		for _, pkg := range st.PackageDependencies {
			b.addModuleRef(stID, pkg)
		}
	}
}

// assignLayers computes the advisory Layer attribute: BFS distance from
// the root frontier (nodes nothing depends on). Distances are unique per
// node, so visit order does not affect the result.
func (b *Builder) assignLayers() {
	indegree := make(map[string]int, len(b.g.Nodes))
	for _, e := range b.g.Edges {
		if _, ok := b.g.Nodes[e.To]; ok {
			indegree[e.To]++
		}
	}

	forward := make(map[string][]string, len(b.g.Nodes))
	for _, e := range b.g.Edges {
		forward[e.From] = append(forward[e.From], e.To)
	}

	dist := make(map[string]int, len(b.g.Nodes))
	var queue []string
	for id := range b.g.Nodes {
		if indegree[id] == 0 {
			dist[id] = 0
			queue = append(queue, id)
		}
	}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, next := range forward[cur] {
			if _, ok := b.g.Nodes[next]; !ok {
				continue
			}
			if _, visited := dist[next]; visited {
				continue
			}
			dist[next] = dist[cur] + 1
			queue = append(queue, next)
		}
	}

	for id, n := range b.g.Nodes {
		n.Layer = dist[id]
	}
}

// dropTransient removes transient nodes from the node set. Their edges
// remain and dangle; renderers and analysis skip edges with missing
// endpoints.
func (b *Builder) dropTransient() {
	for id, n := range b.g.Nodes {
		if n.Transient {
			delete(b.g.Nodes, id)
		}
	}
}
