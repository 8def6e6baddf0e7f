// Package graph builds and represents the merged dependency graph of a
// multi-module workspace.
//
// The graph is constructed by folding normalized dependency records
// (package depinfo) through a Builder whose only mutation operations,
// AddNode and AddEdge, are idempotent: re-adding a node applies at most a
// legal kind upgrade or clears its transient flag, and re-adding an edge
// is a no-op. Because the global identity sets are computed before any
// node exists, the finished graph is independent of record order.
//
// # Identity
//
// Node ids are composite: the kind space ("module:", "container:",
// "subtarget:") plus the case-normalized name, plus a scan-root-relative
// path for containers. A container and a same-named module therefore
// never collapse into one node, while an external module later
// discovered to be local upgrades in place. With stable ids enabled, the
// same tree produces the same ids on any machine, which is what makes
// two snapshots diffable.
//
// # Transience
//
// A node is transient while nothing in scope declares it directly. The
// flag is monotonic: one explicit observation clears it for the rest of
// the merge, no matter how many lockfile-derived sources mention the
// node afterwards.
package graph
