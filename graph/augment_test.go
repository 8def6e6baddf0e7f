package graph

import (
	"context"
	"errors"
	"testing"

	"github.com/albertocavalcante/go-modgraph/depinfo"
	"github.com/albertocavalcante/go-modgraph/resolve"
)

// stubResolver returns canned trees keyed by directory.
type stubResolver struct {
	trees map[string]*resolve.ModuleTree
	calls []string
}

func (s *stubResolver) Resolve(_ context.Context, dir string) (*resolve.ModuleTree, error) {
	s.calls = append(s.calls, dir)
	tree, ok := s.trees[dir]
	if !ok {
		return nil, errors.New("no tree for " + dir)
	}
	return tree, nil
}

func augmentRecords() []depinfo.DependencyInfo {
	return []depinfo.DependencyInfo{
		{
			Path:                 "app/MODULE",
			Name:                 "app",
			Dependencies:         []string{"core"},
			ExplicitDependencies: []string{"app", "core"},
		},
		{
			Name: "vendor-thing",
			Path: "vendor/thing/MODULE",
		},
	}
}

func TestAugmentMergesResolvedTree(t *testing.T) {
	stub := &stubResolver{trees: map[string]*resolve.ModuleTree{
		"app": {
			Identity: "app",
			Dependencies: []*resolve.ModuleTree{
				{
					Identity: "core",
					Dependencies: []*resolve.ModuleTree{
						{Identity: "zlib"},
					},
				},
			},
		},
	}}

	g := Build(context.Background(), augmentRecords(), Options{StableIDs: true, Resolver: stub})

	// Only the local module's root is resolved; the plain container is not.
	if len(stub.calls) != 1 || stub.calls[0] != "app" {
		t.Errorf("resolver calls = %v, want [app]", stub.calls)
	}

	n, ok := g.Nodes["module:zlib"]
	if !ok {
		t.Fatal("augmentation did not add module:zlib")
	}
	if !n.Transient {
		t.Error("depth-2 discovery should be transient")
	}
	if _, ok := g.Edges["module:core->module:zlib"]; !ok {
		t.Error("missing augmented edge module:core->module:zlib")
	}
}

func TestAugmentFailureIsNotFatal(t *testing.T) {
	stub := &stubResolver{} // resolves nothing

	g := Build(context.Background(), augmentRecords(), Options{StableIDs: true, Resolver: stub})

	if _, ok := g.Nodes["module:app"]; !ok {
		t.Error("graph lost nodes after resolution failure")
	}
	if _, ok := g.Edges["module:app->module:core"]; !ok {
		t.Error("graph lost edges after resolution failure")
	}
}

func TestAugmentHideTransientBoundsWalk(t *testing.T) {
	deep := &resolve.ModuleTree{
		Identity: "app",
		Dependencies: []*resolve.ModuleTree{
			{
				Identity: "core",
				Dependencies: []*resolve.ModuleTree{
					{
						Identity: "zlib",
						Dependencies: []*resolve.ModuleTree{
							{Identity: "deepest"},
						},
					},
				},
			},
		},
	}
	stub := &stubResolver{trees: map[string]*resolve.ModuleTree{"app": deep}}

	g := Build(context.Background(), augmentRecords(), Options{
		StableIDs:     true,
		Resolver:      stub,
		HideTransient: true,
	})

	// Depth-2 children are recorded but not expanded, so depth-3 nodes
	// never appear, even as dangling edge endpoints.
	if _, ok := g.Edges["module:zlib->module:deepest"]; ok {
		t.Error("walk descended past direct children with HideTransient set")
	}
	if _, ok := g.Nodes["module:zlib"]; ok {
		t.Error("transient node survived HideTransient")
	}
	if _, ok := g.Edges["module:core->module:zlib"]; !ok {
		t.Error("edge to hidden transient child should remain")
	}
}

func TestAugmentTransientRespectsExplicitDeclarations(t *testing.T) {
	records := append(augmentRecords(), depinfo.DependencyInfo{
		Name:                 "other",
		Dependencies:         []string{"zlib"},
		ExplicitDependencies: []string{"other", "zlib"},
	})
	stub := &stubResolver{trees: map[string]*resolve.ModuleTree{
		"app": {
			Identity: "app",
			Dependencies: []*resolve.ModuleTree{
				{
					Identity: "core",
					Dependencies: []*resolve.ModuleTree{
						{Identity: "zlib"},
					},
				},
			},
		},
	}}

	g := Build(context.Background(), records, Options{StableIDs: true, Resolver: stub})

	n, ok := g.Nodes["module:zlib"]
	if !ok {
		t.Fatal("missing module:zlib")
	}
	if n.Transient {
		t.Error("zlib is explicitly declared elsewhere and must not be transient")
	}
}
