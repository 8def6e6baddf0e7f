// Package modgraph builds, analyzes, and compares dependency graphs for
// Bazel-style workspaces.
//
// The package ties together the lower layers: scan discovers manifests
// under a workspace root, manifest parses them into dependency records,
// graph folds records into a deterministic graph, analysis finds pinch
// points, and resolve augments local modules through an external command.
// Most callers only need BuildDir and Analyze:
//
//	g, err := modgraph.BuildDir(ctx, "/path/to/workspace")
//	if err != nil {
//		return err
//	}
//	result, err := modgraph.Analyze(g, modgraph.WithInternalOnly())
package modgraph

import (
	"context"

	"github.com/albertocavalcante/go-modgraph/analysis"
	"github.com/albertocavalcante/go-modgraph/depinfo"
	"github.com/albertocavalcante/go-modgraph/graph"
	"github.com/albertocavalcante/go-modgraph/scan"
)

// Build folds pre-collected dependency records into a graph. The result
// is independent of record order: merging the same records in any
// permutation yields the same graph.
func Build(ctx context.Context, records []depinfo.DependencyInfo, opts ...Option) (*graph.Graph, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return buildGraph(ctx, "", records, c), nil
}

// BuildDir scans a workspace root for manifests and builds its dependency
// graph. It returns ErrRootNotFound if root does not exist and
// ErrNothingToAnalyze if the tree holds no manifests.
func BuildDir(ctx context.Context, root string, opts ...Option) (*graph.Graph, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return buildDir(ctx, root, c)
}

func buildDir(ctx context.Context, root string, c *config) (*graph.Graph, error) {
	records, err := scan.Scan(root, scan.Options{
		ExcludeDirs: c.excludeDirs,
		Logger:      c.logger,
	})
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNothingToAnalyze
	}
	return buildGraph(ctx, root, records, c), nil
}

func buildGraph(ctx context.Context, root string, records []depinfo.DependencyInfo, c *config) *graph.Graph {
	return graph.Build(ctx, records, graph.Options{
		IncludeSubTargets: c.includeSubTargets,
		HideTransient:     c.hideTransient,
		StableIDs:         c.stableIDs,
		Root:              root,
		Resolver:          c.resolver,
		Logger:            c.log(),
	})
}

// Analyze runs pinch-point analysis over a built graph, scoring every
// non-transient node by how much of the graph depends on it and how much
// it pulls in.
func Analyze(g *graph.Graph, opts ...Option) (*analysis.Result, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	return analysis.Analyze(g, analysis.Options{
		InternalOnly: c.internalOnly,
		Thresholds:   c.thresholds,
	}), nil
}

// Diff reports the node and edge changes between two graphs. Both graphs
// must have been built with the same construction flags for the result to
// be meaningful.
func Diff(from, to *graph.Graph) *graph.GraphDiff {
	return graph.Diff(from, to)
}

// DiffDirs builds the graphs of two workspace roots with identical
// configuration and diffs them. It is the supported way to compare
// checkouts at different paths: both graphs use stable ids unless
// WithStableIDs(false) is given.
func DiffDirs(ctx context.Context, fromRoot, toRoot string, opts ...Option) (*graph.GraphDiff, error) {
	c, err := newConfig(opts)
	if err != nil {
		return nil, err
	}
	from, err := buildDir(ctx, fromRoot, c)
	if err != nil {
		return nil, err
	}
	to, err := buildDir(ctx, toRoot, c)
	if err != nil {
		return nil, err
	}
	return graph.Diff(from, to), nil
}
