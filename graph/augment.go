package graph

import (
	"context"
	"path/filepath"

	"github.com/albertocavalcante/go-modgraph/depinfo"
	"github.com/albertocavalcante/go-modgraph/resolve"
)

// augment asks the external resolver for the real transitive module tree
// of every local module root and merges the discovered edges. The resolver
// is expected to deduplicate invocations by canonical root; on top of
// that, trees whose identity was already merged are skipped so converging
// roots do not double-merge.
//
// Resolution failures (missing tool, non-zero exit, malformed output)
// skip augmentation for that root and keep whatever edges were already
// known. They are never fatal.
func (b *Builder) augment(ctx context.Context, records []depinfo.DependencyInfo) {
	merged := make(map[string]bool)

	for _, rec := range records {
		if rec.Path == "" {
			continue
		}
		if !rec.DeclaresSelf() && !b.local[depinfo.NormalizeName(rec.Name)] {
			continue
		}

		dir := b.moduleDir(rec.Path)
		tree, err := b.opts.Resolver.Resolve(ctx, dir)
		if err != nil {
			b.log.Debug("augmentation skipped", "dir", dir, "error", err)
			continue
		}
		if tree == nil || tree.Identity == "" {
			continue
		}
		identity := depinfo.NormalizeName(tree.Identity)
		if merged[identity] {
			continue
		}
		merged[identity] = true
		b.mergeTree(tree)
	}
}

// moduleDir maps a record's manifest path to the working directory the
// resolution command runs in.
func (b *Builder) moduleDir(relPath string) string {
	dir := filepath.Dir(relPath)
	if b.opts.Root == "" {
		return dir
	}
	return filepath.Join(b.opts.Root, dir)
}

// mergeTree folds a resolved module tree into the graph with an explicit
// queue instead of recursion. Direct children of the root are explicit
// dependencies; anything deeper is transient. When transient nodes are
// hidden the walk stops descending past the direct children, which bounds
// both noise and work.
func (b *Builder) mergeTree(tree *resolve.ModuleTree) {
	rootID := ModuleID(tree.Identity)
	b.AddNode(rootID, tree.Identity, b.refKind(tree.Identity), b.isTransient(tree.Identity))

	type item struct {
		node  *resolve.ModuleTree
		id    string
		depth int
	}

	visited := map[string]bool{rootID: true}
	queue := []item{{node: tree, id: rootID, depth: 0}}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		for _, child := range cur.node.Dependencies {
			if child == nil || child.Identity == "" {
				continue
			}
			childID := ModuleID(child.Identity)
			depth := cur.depth + 1

			// Children of the root are directly declared; everything
			// reached deeper exists only because something explicit
			// pulled it in, unless a manifest elsewhere declares it.
			b.AddNode(childID, child.Identity, b.refKind(child.Identity), depth > 1 && b.isTransient(child.Identity))
			b.AddEdge(cur.id, childID)

			if visited[childID] {
				continue
			}
			visited[childID] = true

			if b.opts.HideTransient && depth > 1 {
				continue
			}
			queue = append(queue, item{node: child, id: childID, depth: depth})
		}
	}
}

// refKind classifies a module reference by name: local identities are
// internal, everything else external until proven otherwise.
func (b *Builder) refKind(name string) NodeKind {
	if b.local[depinfo.NormalizeName(name)] {
		return KindInternalModule
	}
	return KindExternalModule
}
