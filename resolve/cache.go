package resolve

import (
	"context"
	"path/filepath"
	"sync"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/albertocavalcante/go-modgraph/depinfo"
)

// defaultCacheSize bounds the number of resolved trees kept per run.
// Workspaces have hundreds of module roots at most, so evictions are
// effectively a non-event; the bound exists so a pathological scan cannot
// hold every tree forever.
const defaultCacheSize = 512

// Cached wraps a Resolver with a shared invocation cache keyed by the
// canonical identity a root resolves to. Roots reached through different
// reference paths (symlinks, relative traversals) converge on a single
// underlying invocation, which is a correctness requirement: repeated
// resolution of the same root is slow and can return inconsistent trees.
//
// Cached is safe for concurrent use; concurrent lookups of different
// roots fold into the one shared cache.
type Cached struct {
	inner Resolver

	mu sync.Mutex
	// rootIdentity maps canonical root directory to the identity it
	// resolved to. It exists so a second reference path to an
	// already-resolved root is a cache hit, not a cache-key mismatch.
	rootIdentity map[string]string
	trees        *lru.Cache[string, *ModuleTree]

	// invocations counts calls that reached the inner resolver, for
	// cache behavior assertions in tests.
	invocations int
}

// NewCached wraps inner with the shared invocation cache.
func NewCached(inner Resolver) (*Cached, error) {
	trees, err := lru.New[string, *ModuleTree](defaultCacheSize)
	if err != nil {
		return nil, err
	}
	return &Cached{
		inner:        inner,
		rootIdentity: make(map[string]string),
		trees:        trees,
	}, nil
}

// Resolve returns the cached tree for dir's canonical root, invoking the
// inner resolver at most once per canonical identity.
func (c *Cached) Resolve(ctx context.Context, dir string) (*ModuleTree, error) {
	root := canonicalRoot(dir)

	c.mu.Lock()
	defer c.mu.Unlock()

	if identity, ok := c.rootIdentity[root]; ok {
		if tree, hit := c.trees.Get(identity); hit {
			return tree, nil
		}
	}

	c.invocations++
	tree, err := c.inner.Resolve(ctx, dir)
	if err != nil {
		return nil, err
	}
	if tree == nil {
		return nil, nil
	}

	identity := depinfo.NormalizeName(tree.Identity)
	c.rootIdentity[root] = identity
	c.trees.Add(identity, tree)
	return tree, nil
}

// Invocations returns how many calls reached the inner resolver.
func (c *Cached) Invocations() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.invocations
}

// canonicalRoot normalizes a working directory so equivalent reference
// paths share a cache key. Symlinks are resolved when possible; a path
// that cannot be resolved still gets a deterministic absolute form.
func canonicalRoot(dir string) string {
	if resolved, err := filepath.EvalSymlinks(dir); err == nil {
		dir = resolved
	}
	if abs, err := filepath.Abs(dir); err == nil {
		dir = abs
	}
	return filepath.Clean(dir)
}
