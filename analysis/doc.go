// Package analysis finds pinch points: nodes whose change forces
// disproportionately wide recompilation across a dependency graph.
//
// Naive transitive counting has two classic failure modes on real build
// graphs. Cycles make a recursive dependent walk run forever, and
// diamonds (one node reached via several paths) double-count shared
// sub-dependencies. Both disappear on the strongly-connected-component
// condensation: cycles collapse into single components, the result is a
// DAG, and reachability with a visited-set counts every component once.
//
// The package computes, per node, direct and transitive dependent and
// dependency counts, dependency depth, cycle size, and two derived
// scores:
//
//   - impact: transitive dependents weighted up by depth, ranking nodes
//     whose change invalidates the most build stages;
//   - vulnerability: transitive dependencies, ranking nodes most exposed
//     to churn below them.
//
// Analysis is a pure function of the graph. It performs no I/O, ignores
// edges with missing endpoints, and produces deterministically ordered
// output.
package analysis
