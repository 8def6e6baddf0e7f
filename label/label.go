// Package label parses dependency references as they appear in build
// files, such as "@rules_go//go:def", "//lib/core:core", or ":testlib".
//
// A parsed Ref classifies the reference: external references name a
// module repository, sibling references name another target in the same
// container. Values are validated at construction; the zero Ref is not
// meaningful.
package label

import (
	"fmt"
	"regexp"
	"strings"
)

var repoNameRegex = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9._-]*$`)

// Ref is a parsed dependency reference.
type Ref struct {
	// Repo is the external repository name from an "@repo" prefix.
	// Empty for references local to the current workspace.
	Repo string

	// Package is the package path between "//" and ":". Empty for
	// same-package references like ":target".
	Package string

	// Target is the target name. When a label omits it, the last
	// package path component is implied, matching build-tool semantics.
	Target string
}

// Parse parses a dependency label. Supported forms:
//
//	@repo//pkg:target   external, fully qualified
//	@repo//pkg          external, target implied
//	//pkg:target        workspace-local
//	:target             same-package sibling
func Parse(s string) (Ref, error) {
	if s == "" {
		return Ref{}, fmt.Errorf("empty label")
	}

	var ref Ref
	rest := s

	if strings.HasPrefix(rest, "@") {
		slash := strings.Index(rest, "//")
		if slash < 0 {
			// "@repo" alone refers to the repo's root target.
			ref.Repo = rest[1:]
			rest = ""
		} else {
			ref.Repo = rest[1:slash]
			rest = rest[slash:]
		}
		if !repoNameRegex.MatchString(ref.Repo) {
			return Ref{}, fmt.Errorf("invalid repository name %q in label %q", ref.Repo, s)
		}
	}

	switch {
	case rest == "":
		ref.Target = ref.Repo
	case strings.HasPrefix(rest, "//"):
		rest = rest[2:]
		if colon := strings.Index(rest, ":"); colon >= 0 {
			ref.Package = rest[:colon]
			ref.Target = rest[colon+1:]
		} else {
			ref.Package = rest
			if idx := strings.LastIndex(rest, "/"); idx >= 0 {
				ref.Target = rest[idx+1:]
			} else {
				ref.Target = rest
			}
		}
	case strings.HasPrefix(rest, ":"):
		ref.Target = rest[1:]
	default:
		return Ref{}, fmt.Errorf("label %q must start with '@', '//', or ':'", s)
	}

	if ref.Target == "" {
		return Ref{}, fmt.Errorf("label %q has no target", s)
	}
	return ref, nil
}

// IsExternal reports whether the reference names an external module
// repository.
func (r Ref) IsExternal() bool {
	return r.Repo != ""
}

// IsSibling reports whether the reference names a target in the same
// package.
func (r Ref) IsSibling() bool {
	return r.Repo == "" && r.Package == ""
}

// ModuleName returns the module identity an external reference resolves
// to, or empty for local references.
func (r Ref) ModuleName() string {
	return r.Repo
}

// String reassembles the canonical label form.
func (r Ref) String() string {
	var sb strings.Builder
	if r.Repo != "" {
		sb.WriteString("@" + r.Repo)
	}
	if r.Package != "" || r.Repo != "" {
		sb.WriteString("//" + r.Package)
	}
	sb.WriteString(":" + r.Target)
	return sb.String()
}
