// Package resolve invokes an external package-manager command to discover
// the real transitive dependency tree of a module root.
//
// The graph builder treats resolution as best-effort: a missing tool, a
// non-zero exit, or malformed output all degrade to "no augmentation for
// this root". Implementations therefore report errors for the caller to
// log and skip, and never panic.
package resolve

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
)

// ModuleTree is the JSON shape the resolution command prints: one node
// per module identity with its resolved dependencies nested beneath it.
type ModuleTree struct {
	// Identity is the canonical module identity as the package manager
	// reports it.
	Identity string `json:"identity"`

	// Dependencies are the modules this one resolves against.
	Dependencies []*ModuleTree `json:"dependencies,omitempty"`
}

// Resolver produces the resolved module tree for a module root directory.
type Resolver interface {
	// Resolve runs resolution with dir as the working directory. A nil
	// tree with a nil error means the resolver had nothing to say.
	Resolve(ctx context.Context, dir string) (*ModuleTree, error)
}

// ErrEmptyCommand is returned by NewExecResolver when no argv is given.
var ErrEmptyCommand = errors.New("resolve: empty command")

// ExecResolver runs a configurable command line in the module root and
// parses its stdout as a ModuleTree. Each invocation is a synchronous
// blocking call with no internal timeout; callers bound it through ctx.
type ExecResolver struct {
	argv []string
}

// NewExecResolver creates a resolver that runs argv[0] with the remaining
// arguments.
func NewExecResolver(argv ...string) (*ExecResolver, error) {
	if len(argv) == 0 || argv[0] == "" {
		return nil, ErrEmptyCommand
	}
	return &ExecResolver{argv: append([]string(nil), argv...)}, nil
}

// Resolve runs the command in dir and decodes its output.
func (r *ExecResolver) Resolve(ctx context.Context, dir string) (*ModuleTree, error) {
	cmd := exec.CommandContext(ctx, r.argv[0], r.argv[1:]...)
	cmd.Dir = dir

	var stdout bytes.Buffer
	cmd.Stdout = &stdout

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("run %s in %s: %w", r.argv[0], dir, err)
	}

	var tree ModuleTree
	if err := json.Unmarshal(stdout.Bytes(), &tree); err != nil {
		return nil, fmt.Errorf("parse %s output: %w", r.argv[0], err)
	}
	if tree.Identity == "" {
		return nil, fmt.Errorf("parse %s output: missing identity", r.argv[0])
	}
	return &tree, nil
}
