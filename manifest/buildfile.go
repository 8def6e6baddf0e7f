package manifest

import (
	"fmt"
	"os"

	"github.com/bazelbuild/buildtools/build"

	"github.com/albertocavalcante/go-modgraph/depinfo"
	"github.com/albertocavalcante/go-modgraph/internal/buildutil"
	"github.com/albertocavalcante/go-modgraph/label"
)

// ParseBuildFile reads and parses a BUILD.bazel file from disk.
func ParseBuildFile(path string) ([]depinfo.SubTarget, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read build file: %w", err)
	}

	return ParseBuildContent(string(data))
}

// ParseBuildContent parses the content of a BUILD.bazel file into sub-targets.
//
// Every top-level rule call carrying a name attribute becomes a sub-target.
// Entries in its deps attribute are classified by label form: references to
// external repositories (@repo//...) become package dependencies on the
// repository's module, and same-package references (:name) become sibling
// target dependencies. Labels into other workspace packages are skipped;
// cross-package structure is expressed through module manifests, not
// target deps.
func ParseBuildContent(content string) ([]depinfo.SubTarget, error) {
	f, err := build.ParseBuild("BUILD.bazel", []byte(content))
	if err != nil {
		return nil, fmt.Errorf("failed to parse BUILD.bazel: %w", err)
	}

	var targets []depinfo.SubTarget
	for _, stmt := range f.Stmt {
		call, ok := stmt.(*build.CallExpr)
		if !ok {
			continue
		}
		name := buildutil.String(call, "name")
		if name == "" {
			continue
		}

		st := depinfo.SubTarget{Name: name}
		for _, dep := range buildutil.StringList(call, "deps") {
			ref, err := label.Parse(dep)
			if err != nil {
				continue
			}
			switch {
			case ref.IsExternal():
				st.PackageDependencies = append(st.PackageDependencies, ref.ModuleName())
			case ref.IsSibling():
				st.TargetDependencies = append(st.TargetDependencies, ref.Target)
			}
		}
		targets = append(targets, st)
	}

	return targets, nil
}
