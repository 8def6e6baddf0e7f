package graph

import (
	"reflect"
	"testing"

	"github.com/albertocavalcante/go-modgraph/depinfo"
)

// Diamond with an extra leaf:
//
//	app -> core -> zlib
//	app -> util -> zlib
func diamondRecords() []depinfo.DependencyInfo {
	return []depinfo.DependencyInfo{
		{
			Name:                 "app",
			Dependencies:         []string{"core", "util"},
			ExplicitDependencies: []string{"app", "core", "util"},
		},
		{
			Name:                 "core",
			Dependencies:         []string{"zlib"},
			ExplicitDependencies: []string{"core", "zlib"},
		},
		{
			Name:                 "util",
			Dependencies:         []string{"zlib"},
			ExplicitDependencies: []string{"util", "zlib"},
		},
	}
}

func TestDirectQueries(t *testing.T) {
	g := buildFrom(t, diamondRecords())

	if got, want := g.DirectDependencies("module:app"), []string{"module:core", "module:util"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DirectDependencies(app) = %v, want %v", got, want)
	}
	if got, want := g.DirectDependents("module:zlib"), []string{"module:core", "module:util"}; !reflect.DeepEqual(got, want) {
		t.Errorf("DirectDependents(zlib) = %v, want %v", got, want)
	}
	if got := g.DirectDependencies("module:zlib"); got != nil {
		t.Errorf("DirectDependencies(zlib) = %v, want nil", got)
	}
}

func TestTransitiveQueriesCountDiamondOnce(t *testing.T) {
	g := buildFrom(t, diamondRecords())

	deps := g.TransitiveDependencies("module:app")
	if want := []string{"module:core", "module:util", "module:zlib"}; !reflect.DeepEqual(deps, want) {
		t.Errorf("TransitiveDependencies(app) = %v, want %v", deps, want)
	}

	dependents := g.TransitiveDependents("module:zlib")
	if want := []string{"module:core", "module:util", "module:app"}; !reflect.DeepEqual(dependents, want) {
		t.Errorf("TransitiveDependents(zlib) = %v, want %v", dependents, want)
	}
}

func TestTransitiveQueriesTerminateOnCycles(t *testing.T) {
	g := buildFrom(t, []depinfo.DependencyInfo{
		{
			Name:                 "a",
			Dependencies:         []string{"b"},
			ExplicitDependencies: []string{"a", "b"},
		},
		{
			Name:                 "b",
			Dependencies:         []string{"a"},
			ExplicitDependencies: []string{"b", "a"},
		},
	})

	if got, want := g.TransitiveDependencies("module:a"), []string{"module:b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("TransitiveDependencies(a) = %v, want %v", got, want)
	}
	if got, want := g.TransitiveDependents("module:a"), []string{"module:b"}; !reflect.DeepEqual(got, want) {
		t.Errorf("TransitiveDependents(a) = %v, want %v", got, want)
	}
}

func TestRootsAndLeaves(t *testing.T) {
	g := buildFrom(t, diamondRecords())

	if got, want := g.Roots(), []string{"module:app"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Roots() = %v, want %v", got, want)
	}
	if got, want := g.Leaves(), []string{"module:zlib"}; !reflect.DeepEqual(got, want) {
		t.Errorf("Leaves() = %v, want %v", got, want)
	}
}

func TestCountByKind(t *testing.T) {
	g := buildFrom(t, testRecords())

	counts := g.CountByKind()
	if counts[KindInternalModule] != 2 {
		t.Errorf("internal modules = %d, want 2", counts[KindInternalModule])
	}
	if counts[KindExternalModule] != 3 {
		t.Errorf("external modules = %d, want 3", counts[KindExternalModule])
	}
}
