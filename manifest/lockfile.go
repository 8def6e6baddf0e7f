package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/albertocavalcante/go-modgraph/depinfo"
)

// lockfileDoc mirrors the subset of MODULE.bazel.lock this package reads.
// Registry file hash keys have the form
// <registry>/modules/<name>/<version>/MODULE.bazel or end in /source.json.
type lockfileDoc struct {
	Version            int               `json:"lockFileVersion"`
	RegistryFileHashes map[string]string `json:"registryFileHashes"`
}

// ParseLockfile reads a MODULE.bazel.lock file and returns a dependency
// record attributing every resolved module to the named owner.
//
// Lockfiles list the full transitive closure by name with no edge structure,
// so the record carries plain dependencies only. Entries that no manifest in
// the workspace declares explicitly surface as transient nodes in the graph.
func ParseLockfile(path, owner string) (*depinfo.DependencyInfo, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lockfile: %w", err)
	}

	var doc lockfileDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse lockfile: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for url := range doc.RegistryFileHashes {
		name := moduleNameFromURL(url)
		if name == "" || name == owner || seen[name] {
			continue
		}
		seen[name] = true
		names = append(names, name)
	}
	sort.Strings(names)

	return &depinfo.DependencyInfo{
		Path:         path,
		Name:         owner,
		Dependencies: names,
	}, nil
}

// moduleNameFromURL extracts the module name from a registry file URL,
// returning "" when the URL does not address a module directory.
func moduleNameFromURL(url string) string {
	const marker = "/modules/"
	i := strings.Index(url, marker)
	if i < 0 {
		return ""
	}
	rest := url[i+len(marker):]
	j := strings.IndexByte(rest, '/')
	if j <= 0 {
		return ""
	}
	return rest[:j]
}
