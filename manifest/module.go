// Package manifest parses Bazel workspace files into dependency records.
//
// It understands three inputs: MODULE.bazel manifests (bazel_dep declarations
// and overrides), BUILD.bazel files (rule targets with deps attributes), and
// MODULE.bazel.lock lockfiles (resolved module names with no edge structure).
// All three produce depinfo values that feed graph construction; the parsers
// carry no graph semantics of their own.
package manifest

import (
	"fmt"
	"os"

	"github.com/bazelbuild/buildtools/build"

	"github.com/albertocavalcante/go-modgraph/depinfo"
	"github.com/albertocavalcante/go-modgraph/internal/buildutil"
)

// ParseModuleFile reads and parses a MODULE.bazel file from disk.
// The returned record's Path is set to the file's path.
func ParseModuleFile(path string) (*depinfo.DependencyInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read module file: %w", err)
	}

	info, err := ParseModuleContent(string(data))
	if err != nil {
		return nil, err
	}
	info.Path = path
	return info, nil
}

// ParseModuleContent parses the content of a MODULE.bazel file into a
// dependency record.
//
// Every bazel_dep name becomes both a dependency and an explicit dependency.
// The module's own name is also added to the explicit set, so a record parsed
// from an in-tree manifest declares itself and is classified as a local
// module during graph construction. Modules pinned with local_path_override
// are added to the explicit set as well, since the override asserts they are
// present in the workspace.
func ParseModuleContent(content string) (*depinfo.DependencyInfo, error) {
	f, err := build.ParseModule("MODULE.bazel", []byte(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse MODULE.bazel: %w", err)
	}

	return extractDependencyInfo(f), nil
}

func extractDependencyInfo(f *build.File) *depinfo.DependencyInfo {
	info := &depinfo.DependencyInfo{}

	for _, stmt := range f.Stmt {
		call, ok := stmt.(*build.CallExpr)
		if !ok {
			continue
		}

		switch buildutil.FuncName(call) {
		case "module":
			info.Name = buildutil.String(call, "name")

		case "bazel_dep":
			name := buildutil.String(call, "name")
			if name == "" {
				continue
			}
			info.Dependencies = append(info.Dependencies, name)
			info.ExplicitDependencies = append(info.ExplicitDependencies, name)

		case "local_path_override":
			name := buildutil.String(call, "module_name")
			if name == "" {
				continue
			}
			info.ExplicitDependencies = append(info.ExplicitDependencies, name)
		}
	}

	// A manifest that names itself marks the module as locally present.
	if info.Name != "" {
		info.ExplicitDependencies = append(info.ExplicitDependencies, info.Name)
	}

	return info
}
