// Package scan discovers dependency manifests under a workspace root.
//
// A single filesystem walk collects MODULE.bazel manifests, BUILD.bazel
// target files, and MODULE.bazel.lock lockfiles, then assembles them into
// dependency records with workspace-relative paths. The walk is best
// effort: unparseable files are logged and skipped, and only a missing
// root is a hard error.
package scan

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"

	"github.com/albertocavalcante/go-modgraph/depinfo"
	"github.com/albertocavalcante/go-modgraph/internal/logutil"
	"github.com/albertocavalcante/go-modgraph/manifest"
)

// ErrRootNotFound is returned when the scan root does not exist or is not
// a directory.
var ErrRootNotFound = errors.New("scan root not found")

// DefaultExcludeDirs are directory names skipped during every scan.
var DefaultExcludeDirs = []string{".git", "bazel-*", "node_modules"}

// Options configures a workspace scan.
type Options struct {
	// ExcludeDirs holds additional directory name patterns to skip,
	// matched against the base name with filepath.Match semantics.
	ExcludeDirs []string

	// Logger receives per-file diagnostics. Nil disables logging.
	Logger *slog.Logger
}

// Scan walks root and returns one dependency record per discovered
// MODULE.bazel manifest, plus one record per lockfile attributed to the
// manifest beside it. BUILD.bazel targets are attached as sub-targets of
// the nearest enclosing module.
//
// Returned records carry root-relative paths, so graphs built from them
// are independent of where the workspace happens to be checked out.
func Scan(root string, opts Options) ([]depinfo.DependencyInfo, error) {
	fi, err := os.Stat(root)
	if err != nil || !fi.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrRootNotFound, root)
	}

	log := opts.Logger
	if log == nil {
		log = logutil.Discard()
	}
	excludes := append([]string{}, DefaultExcludeDirs...)
	excludes = append(excludes, opts.ExcludeDirs...)

	var moduleFiles, buildFiles, lockFiles []string
	err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			log.Debug("skipping unreadable entry", "path", path, "error", err)
			if d != nil && d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() {
			if path != root && excluded(d.Name(), excludes) {
				return filepath.SkipDir
			}
			return nil
		}
		switch d.Name() {
		case "MODULE.bazel":
			moduleFiles = append(moduleFiles, path)
		case "BUILD.bazel", "BUILD":
			buildFiles = append(buildFiles, path)
		case "MODULE.bazel.lock":
			lockFiles = append(lockFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", root, err)
	}

	records := make([]depinfo.DependencyInfo, 0, len(moduleFiles))
	byDir := make(map[string]int)
	for _, path := range moduleFiles {
		rec, err := manifest.ParseModuleFile(path)
		if err != nil {
			log.Debug("skipping module file", "path", path, "error", err)
			continue
		}
		if rec.Name == "" {
			log.Debug("skipping unnamed module file", "path", path)
			continue
		}
		rec.Path = relDir(root, path)
		byDir[filepath.Dir(path)] = len(records)
		records = append(records, *rec)
	}

	for _, path := range buildFiles {
		idx, ok := owningModule(root, filepath.Dir(path), byDir)
		if !ok {
			continue
		}
		targets, err := manifest.ParseBuildFile(path)
		if err != nil {
			log.Debug("skipping build file", "path", path, "error", err)
			continue
		}
		records[idx].SubTargets = append(records[idx].SubTargets, targets...)
	}
	for i := range records {
		sort.Slice(records[i].SubTargets, func(a, b int) bool {
			return records[i].SubTargets[a].Name < records[i].SubTargets[b].Name
		})
	}

	for _, path := range lockFiles {
		idx, ok := byDir[filepath.Dir(path)]
		if !ok {
			continue
		}
		rec, err := manifest.ParseLockfile(path, records[idx].Name)
		if err != nil {
			log.Debug("skipping lockfile", "path", path, "error", err)
			continue
		}
		rec.Path = records[idx].Path
		records = append(records, *rec)
	}

	return records, nil
}

// owningModule resolves the nearest module directory at or above dir.
func owningModule(root, dir string, byDir map[string]int) (int, bool) {
	for {
		if idx, ok := byDir[dir]; ok {
			return idx, true
		}
		if dir == root {
			return 0, false
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return 0, false
		}
		dir = parent
	}
}

// relDir returns path's directory relative to root, "." for the root
// itself.
func relDir(root, path string) string {
	rel, err := filepath.Rel(root, filepath.Dir(path))
	if err != nil {
		return "."
	}
	return rel
}

func excluded(name string, patterns []string) bool {
	for _, p := range patterns {
		if ok, _ := filepath.Match(p, name); ok {
			return true
		}
	}
	return false
}
