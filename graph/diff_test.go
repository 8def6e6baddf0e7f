package graph

import (
	"context"
	"reflect"
	"testing"

	"github.com/albertocavalcante/go-modgraph/depinfo"
)

func buildFrom(t *testing.T, records []depinfo.DependencyInfo) *Graph {
	t.Helper()
	return Build(context.Background(), records, Options{StableIDs: true})
}

func TestDiffIdenticalGraphs(t *testing.T) {
	a := buildFrom(t, testRecords())
	b := buildFrom(t, testRecords())

	d := Diff(a, b)
	if !d.IsEmpty() {
		t.Errorf("expected empty diff, got %+v", d)
	}
	if d.TotalChanges() != 0 {
		t.Errorf("TotalChanges() = %d, want 0", d.TotalChanges())
	}
}

func TestDiffAddedAndRemoved(t *testing.T) {
	before := buildFrom(t, []depinfo.DependencyInfo{
		{
			Name:                 "app",
			Dependencies:         []string{"zlib"},
			ExplicitDependencies: []string{"app", "zlib"},
		},
	})
	after := buildFrom(t, []depinfo.DependencyInfo{
		{
			Name:                 "app",
			Dependencies:         []string{"protobuf"},
			ExplicitDependencies: []string{"app", "protobuf"},
		},
	})

	d := Diff(before, after)

	if want := []string{"module:protobuf"}; !reflect.DeepEqual(d.AddedNodes, want) {
		t.Errorf("AddedNodes = %v, want %v", d.AddedNodes, want)
	}
	if want := []string{"module:zlib"}; !reflect.DeepEqual(d.RemovedNodes, want) {
		t.Errorf("RemovedNodes = %v, want %v", d.RemovedNodes, want)
	}
	if want := []string{"module:app->module:protobuf"}; !reflect.DeepEqual(d.AddedEdges, want) {
		t.Errorf("AddedEdges = %v, want %v", d.AddedEdges, want)
	}
	if want := []string{"module:app->module:zlib"}; !reflect.DeepEqual(d.RemovedEdges, want) {
		t.Errorf("RemovedEdges = %v, want %v", d.RemovedEdges, want)
	}
	if d.TotalChanges() != 4 {
		t.Errorf("TotalChanges() = %d, want 4", d.TotalChanges())
	}
}

func TestDiffSymmetry(t *testing.T) {
	a := buildFrom(t, testRecords())
	b := buildFrom(t, testRecords()[:2])

	ab := Diff(a, b)
	ba := Diff(b, a)

	if !reflect.DeepEqual(ab.AddedNodes, ba.RemovedNodes) {
		t.Errorf("AddedNodes %v != reverse RemovedNodes %v", ab.AddedNodes, ba.RemovedNodes)
	}
	if !reflect.DeepEqual(ab.RemovedNodes, ba.AddedNodes) {
		t.Errorf("RemovedNodes %v != reverse AddedNodes %v", ab.RemovedNodes, ba.AddedNodes)
	}
	if !reflect.DeepEqual(ab.AddedEdges, ba.RemovedEdges) {
		t.Errorf("AddedEdges %v != reverse RemovedEdges %v", ab.AddedEdges, ba.RemovedEdges)
	}
	if !reflect.DeepEqual(ab.RemovedEdges, ba.AddedEdges) {
		t.Errorf("RemovedEdges %v != reverse AddedEdges %v", ab.RemovedEdges, ba.AddedEdges)
	}
}

func TestDiffNilGraphs(t *testing.T) {
	g := buildFrom(t, testRecords())

	d := Diff(nil, nil)
	if !d.IsEmpty() {
		t.Errorf("Diff(nil, nil) = %+v, want empty", d)
	}

	d = Diff(nil, g)
	if len(d.AddedNodes) != len(g.Nodes) || len(d.RemovedNodes) != 0 {
		t.Errorf("Diff(nil, g) = %+v", d)
	}

	d = Diff(g, nil)
	if len(d.RemovedNodes) != len(g.Nodes) || len(d.AddedNodes) != 0 {
		t.Errorf("Diff(g, nil) = %+v", d)
	}
}
