// Package depinfo defines the normalized dependency record that format
// parsers produce and the graph builder consumes.
//
// A DependencyInfo describes one discovered container: its declared name,
// where it was found, which names it references, and which of those
// references are explicit (directly declared rather than inherited from a
// lockfile). The graph builder merges many of these records, possibly from
// different sources describing the same entity, into a single graph.
package depinfo

import "strings"

// DependencyInfo is the normalized record for one discovered container
// (a project, a package manifest, or a lockfile entry).
type DependencyInfo struct {
	// Path is the filesystem location the record was parsed from, relative
	// to the scan root. It disambiguates same-named entities; it is not
	// part of node identity on its own.
	Path string `json:"path"`

	// Name is the declared name. Matching is case-insensitive for
	// module-like identities; Name preserves the original casing for
	// display.
	Name string `json:"name"`

	// Dependencies lists referenced names in declaration order. Lockfile
	// sources populate this without knowing which references are explicit.
	Dependencies []string `json:"dependencies,omitempty"`

	// ExplicitDependencies holds the names this container directly
	// declares. It is authoritative for the explicit/transient
	// classification during the merge.
	ExplicitDependencies []string `json:"explicit_dependencies,omitempty"`

	// SubTargets lists nested build targets, populated only when the
	// caller requested target-level detail.
	SubTargets []SubTarget `json:"sub_targets,omitempty"`
}

// SubTarget is a nested build unit inside a container, such as a library
// target next to its test target.
type SubTarget struct {
	// Name is the target name, unique within its container.
	Name string `json:"name"`

	// PackageDependencies lists module names this target imports directly,
	// bypassing the container.
	PackageDependencies []string `json:"package_dependencies,omitempty"`

	// TargetDependencies lists sibling target names within the same
	// container that this target depends on.
	TargetDependencies []string `json:"target_dependencies,omitempty"`
}

// DeclaresSelf reports whether the record names itself in its own explicit
// dependency declarations. Such a record describes a local module rather
// than a bare container, even if a same-named container exists elsewhere.
func (d DependencyInfo) DeclaresSelf() bool {
	self := NormalizeName(d.Name)
	for _, dep := range d.ExplicitDependencies {
		if NormalizeName(dep) == self {
			return true
		}
	}
	return false
}

// NormalizeName converts a declared name into its case-insensitive
// identity form. Display code should use the original name, identity
// comparisons the normalized one.
func NormalizeName(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
