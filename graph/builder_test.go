package graph

import (
	"context"
	"testing"

	"github.com/albertocavalcante/go-modgraph/depinfo"
)

// Workspace used by most builder tests:
//
//	app  (local module)  -> core, protobuf
//	core (local module)  -> protobuf, zlib
//	app lockfile         -> protobuf, zlib, abseil (no edges known)
func testRecords() []depinfo.DependencyInfo {
	return []depinfo.DependencyInfo{
		{
			Path:                 "",
			Name:                 "app",
			Dependencies:         []string{"core", "protobuf"},
			ExplicitDependencies: []string{"app", "core", "protobuf"},
		},
		{
			Path:                 "lib/core",
			Name:                 "core",
			Dependencies:         []string{"protobuf", "zlib"},
			ExplicitDependencies: []string{"core", "protobuf", "zlib"},
		},
		{
			Path:         "",
			Name:         "app",
			Dependencies: []string{"protobuf", "zlib", "abseil"},
		},
	}
}

func assertGraphsEqual(t *testing.T, a, b *Graph) {
	t.Helper()

	an, bn := a.SortedNodes(), b.SortedNodes()
	if len(an) != len(bn) {
		t.Fatalf("node count mismatch: %d vs %d", len(an), len(bn))
	}
	for i := range an {
		if *an[i] != *bn[i] {
			t.Errorf("node mismatch: %+v vs %+v", *an[i], *bn[i])
		}
	}

	ae, be := a.SortedEdges(), b.SortedEdges()
	if len(ae) != len(be) {
		t.Fatalf("edge count mismatch: %d vs %d", len(ae), len(be))
	}
	for i := range ae {
		if ae[i] != be[i] {
			t.Errorf("edge mismatch: %v vs %v", ae[i], be[i])
		}
	}
}

func TestBuildMergeIdempotent(t *testing.T) {
	ctx := context.Background()
	records := testRecords()

	once := Build(ctx, records, Options{StableIDs: true})
	twice := Build(ctx, append(testRecords(), testRecords()...), Options{StableIDs: true})

	assertGraphsEqual(t, once, twice)
}

func TestBuildOrderIndependent(t *testing.T) {
	ctx := context.Background()
	records := testRecords()

	forward := Build(ctx, records, Options{StableIDs: true})

	reversed := make([]depinfo.DependencyInfo, 0, len(records))
	for i := len(records) - 1; i >= 0; i-- {
		reversed = append(reversed, records[i])
	}
	backward := Build(ctx, reversed, Options{StableIDs: true})

	assertGraphsEqual(t, forward, backward)
}

func TestBuildClassifiesNodes(t *testing.T) {
	g := Build(context.Background(), testRecords(), Options{StableIDs: true})

	tests := []struct {
		id        string
		kind      NodeKind
		transient bool
	}{
		{"module:app", KindInternalModule, false},
		{"module:core", KindInternalModule, false},
		{"module:protobuf", KindExternalModule, false},
		{"module:zlib", KindExternalModule, false},
		// Only the lockfile knows about abseil, so it is transient.
		{"module:abseil", KindExternalModule, true},
	}

	if len(g.Nodes) != len(tests) {
		t.Errorf("expected %d nodes, got %d", len(tests), len(g.Nodes))
	}
	for _, tt := range tests {
		n, ok := g.Nodes[tt.id]
		if !ok {
			t.Errorf("missing node %s", tt.id)
			continue
		}
		if n.Kind != tt.kind {
			t.Errorf("%s: kind = %v, want %v", tt.id, n.Kind, tt.kind)
		}
		if n.Transient != tt.transient {
			t.Errorf("%s: transient = %v, want %v", tt.id, n.Transient, tt.transient)
		}
	}
}

func TestBuildEdges(t *testing.T) {
	g := Build(context.Background(), testRecords(), Options{StableIDs: true})

	want := []string{
		"module:app->module:core",
		"module:app->module:protobuf",
		"module:app->module:zlib",
		"module:app->module:abseil",
		"module:core->module:protobuf",
		"module:core->module:zlib",
	}
	if len(g.Edges) != len(want) {
		t.Errorf("expected %d edges, got %d", len(want), len(g.Edges))
	}
	for _, key := range want {
		if _, ok := g.Edges[key]; !ok {
			t.Errorf("missing edge %s", key)
		}
	}
}

func TestTransientClearedByLaterExplicit(t *testing.T) {
	lockfile := depinfo.DependencyInfo{
		Name:         "app",
		Dependencies: []string{"zlib"},
	}
	manifest := depinfo.DependencyInfo{
		Name:                 "app",
		Dependencies:         []string{"zlib"},
		ExplicitDependencies: []string{"app", "zlib"},
	}

	for name, records := range map[string][]depinfo.DependencyInfo{
		"lockfile first": {lockfile, manifest},
		"manifest first": {manifest, lockfile},
	} {
		t.Run(name, func(t *testing.T) {
			g := Build(context.Background(), records, Options{StableIDs: true})
			n, ok := g.Nodes["module:zlib"]
			if !ok {
				t.Fatal("missing node module:zlib")
			}
			if n.Transient {
				t.Error("zlib should be explicit once any source declares it")
			}
		})
	}
}

func TestAddNodeNeverDowngrades(t *testing.T) {
	b := NewBuilder(Options{})

	b.AddNode("module:x", "x", KindInternalModule, false)
	n := b.AddNode("module:x", "x", KindExternalModule, true)

	if n.Kind != KindInternalModule {
		t.Errorf("kind downgraded to %v", n.Kind)
	}
	if n.Transient {
		t.Error("transient flag re-set after explicit observation")
	}
}

func TestKindUpgradeOrderIndependent(t *testing.T) {
	// core is referenced by app and self-declares in its own record; it
	// must end internal whichever record merges first.
	appFirst := []depinfo.DependencyInfo{
		{
			Name:                 "app",
			Dependencies:         []string{"core"},
			ExplicitDependencies: []string{"app", "core"},
		},
		{
			Name:                 "core",
			ExplicitDependencies: []string{"core"},
		},
	}
	coreFirst := []depinfo.DependencyInfo{appFirst[1], appFirst[0]}

	for name, records := range map[string][]depinfo.DependencyInfo{
		"app first":  appFirst,
		"core first": coreFirst,
	} {
		t.Run(name, func(t *testing.T) {
			g := Build(context.Background(), records, Options{StableIDs: true})
			n, ok := g.Nodes["module:core"]
			if !ok {
				t.Fatal("missing node module:core")
			}
			if n.Kind != KindInternalModule {
				t.Errorf("kind = %v, want %v", n.Kind, KindInternalModule)
			}
		})
	}
}

func TestSameNameContainerAndModuleStayDistinct(t *testing.T) {
	records := []depinfo.DependencyInfo{
		{
			Name:                 "core",
			Path:                 "modules/core",
			ExplicitDependencies: []string{"core"},
		},
		{
			Name:                 "core",
			Path:                 "vendor/core",
			ExplicitDependencies: []string{"zlib"},
		},
	}

	g := Build(context.Background(), records, Options{StableIDs: true})

	if _, ok := g.Nodes["module:core"]; !ok {
		t.Error("missing internal module node")
	}
	if _, ok := g.Nodes["container:core@vendor/core"]; !ok {
		t.Errorf("missing container node; have %v", g.SortedNodes())
	}
}

func TestNodeKindUpgradeTable(t *testing.T) {
	tests := []struct {
		cur, observed, want NodeKind
	}{
		{KindExternalModule, KindInternalModule, KindInternalModule},
		{KindExternalModule, KindContainer, KindContainer},
		{KindExternalModule, KindSubTarget, KindExternalModule},
		{KindContainer, KindInternalModule, KindInternalModule},
		{KindContainer, KindExternalModule, KindContainer},
		{KindInternalModule, KindExternalModule, KindInternalModule},
		{KindInternalModule, KindContainer, KindInternalModule},
		{KindSubTarget, KindInternalModule, KindSubTarget},
	}

	for _, tt := range tests {
		if got := tt.cur.Upgrade(tt.observed); got != tt.want {
			t.Errorf("%v.Upgrade(%v) = %v, want %v", tt.cur, tt.observed, got, tt.want)
		}
	}
}

func TestBuildContainerWithoutSelfDeclaration(t *testing.T) {
	records := []depinfo.DependencyInfo{
		{
			Path:         "vendor/thing",
			Name:         "thing",
			Dependencies: []string{"zlib"},
		},
	}
	g := Build(context.Background(), records, Options{StableIDs: true})

	n, ok := g.Nodes["container:thing@vendor/thing"]
	if !ok {
		t.Fatalf("missing container node; have %v", g.SortedNodes())
	}
	if n.Kind != KindContainer {
		t.Errorf("kind = %v, want %v", n.Kind, KindContainer)
	}
}

func TestBuildSubTargets(t *testing.T) {
	records := []depinfo.DependencyInfo{
		{
			Name:                 "core",
			ExplicitDependencies: []string{"core"},
			SubTargets: []depinfo.SubTarget{
				{
					Name:                "corelib",
					PackageDependencies: []string{"protobuf"},
				},
				{
					Name:               "coretest",
					TargetDependencies: []string{"corelib"},
				},
			},
		},
	}

	g := Build(context.Background(), records, Options{StableIDs: true, IncludeSubTargets: true})

	for _, id := range []string{"subtarget:core/corelib", "subtarget:core/coretest"} {
		n, ok := g.Nodes[id]
		if !ok {
			t.Fatalf("missing sub-target node %s", id)
		}
		if n.Kind != KindSubTarget {
			t.Errorf("%s: kind = %v, want %v", id, n.Kind, KindSubTarget)
		}
	}

	want := []string{
		"module:core->subtarget:core/corelib",
		"module:core->subtarget:core/coretest",
		"subtarget:core/coretest->subtarget:core/corelib",
		"subtarget:core/corelib->module:protobuf",
	}
	for _, key := range want {
		if _, ok := g.Edges[key]; !ok {
			t.Errorf("missing edge %s", key)
		}
	}

	// Package deps land on the importing target, not the container.
	if _, ok := g.Edges["module:core->module:protobuf"]; ok {
		t.Error("package dependency should not be attached to the container")
	}

	// Without the flag, sub-targets stay collapsed.
	flat := Build(context.Background(), records, Options{StableIDs: true})
	if _, ok := flat.Nodes["subtarget:core/corelib"]; ok {
		t.Error("sub-target node present without IncludeSubTargets")
	}
}

func TestBuildHideTransient(t *testing.T) {
	g := Build(context.Background(), testRecords(), Options{StableIDs: true, HideTransient: true})

	if _, ok := g.Nodes["module:abseil"]; ok {
		t.Error("transient node survived HideTransient")
	}
	// The dangling edge is kept; consumers skip it.
	if _, ok := g.Edges["module:app->module:abseil"]; !ok {
		t.Error("edge to hidden node should remain")
	}
}

func TestBuildLayers(t *testing.T) {
	g := Build(context.Background(), testRecords(), Options{StableIDs: true})

	want := map[string]int{
		"module:app":      0,
		"module:core":     1,
		"module:protobuf": 1,
		"module:zlib":     1,
		"module:abseil":   1,
	}
	for id, layer := range want {
		if g.Nodes[id].Layer != layer {
			t.Errorf("%s: layer = %d, want %d", id, g.Nodes[id].Layer, layer)
		}
	}
}

func TestStableVersusLegacyIDs(t *testing.T) {
	records := []depinfo.DependencyInfo{
		{Path: "lib/thing", Name: "thing"},
	}

	stable := Build(context.Background(), records, Options{StableIDs: true, Root: "/home/a/src"})
	if _, ok := stable.Nodes["container:thing@lib/thing"]; !ok {
		t.Errorf("stable id missing; have %v", stable.SortedNodes())
	}
	if stable.SchemaVersion() != 2 {
		t.Errorf("stable schema version = %d, want 2", stable.SchemaVersion())
	}

	legacy := Build(context.Background(), records, Options{Root: "/home/a/src"})
	if _, ok := legacy.Nodes["container:thing@/home/a/src/lib/thing"]; !ok {
		t.Errorf("legacy id missing; have %v", legacy.SortedNodes())
	}
	if legacy.SchemaVersion() != 1 {
		t.Errorf("legacy schema version = %d, want 1", legacy.SchemaVersion())
	}
}
