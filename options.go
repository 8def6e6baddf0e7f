package modgraph

import (
	"errors"
	"log/slog"

	"github.com/albertocavalcante/go-modgraph/analysis"
	"github.com/albertocavalcante/go-modgraph/internal/logutil"
	"github.com/albertocavalcante/go-modgraph/resolve"
)

// Option configures graph construction and analysis behavior.
type Option func(*config) error

// config holds all library configuration.
type config struct {
	includeSubTargets bool
	hideTransient     bool
	stableIDs         bool
	internalOnly      bool
	excludeDirs       []string
	resolver          resolve.Resolver
	thresholds        analysis.Thresholds

	// logger is the structured logger for debug/info output.
	// If nil, logging is disabled (silent mode).
	//
	// We use *slog.Logger rather than a custom interface because slog
	// separates frontend and backend: users can plug in any backend
	// (zap, zerolog, etc.) via slog handlers.
	logger *slog.Logger
}

func newConfig(opts []Option) (*config, error) {
	c := &config{stableIDs: true}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// WithSubTargets expands build-file targets into their own nodes, nested
// under the container that declares them.
func WithSubTargets() Option {
	return func(c *config) error {
		c.includeSubTargets = true
		return nil
	}
}

// WithHideTransient drops transient nodes from the finished graph and
// bounds augmentation walks to directly declared dependencies.
func WithHideTransient() Option {
	return func(c *config) error {
		c.hideTransient = true
		return nil
	}
}

// WithStableIDs controls node identity derivation. Stable ids (the
// default) key container nodes by workspace-relative path, so the same
// tree produces the same graph wherever it is checked out. Passing false
// restores the legacy absolute-path keying and is only useful for
// comparing against graphs serialized by older versions.
func WithStableIDs(stable bool) Option {
	return func(c *config) error {
		c.stableIDs = stable
		return nil
	}
}

// WithInternalOnly restricts pinch-point analysis to modules owned by the
// scanned workspace.
func WithInternalOnly() Option {
	return func(c *config) error {
		c.internalOnly = true
		return nil
	}
}

// WithExcludeDirs adds directory name patterns skipped during workspace
// scans, on top of the built-in defaults.
func WithExcludeDirs(patterns ...string) Option {
	return func(c *config) error {
		c.excludeDirs = append(c.excludeDirs, patterns...)
		return nil
	}
}

// WithAugmentation enables external-command augmentation: for every local
// module, argv is executed in the module's directory and must print a
// JSON dependency tree on stdout. Invocations are deduplicated by
// canonical module root. Command failures are logged and skipped, never
// fatal.
func WithAugmentation(argv ...string) Option {
	return func(c *config) error {
		exec, err := resolve.NewExecResolver(argv...)
		if err != nil {
			return err
		}
		cached, err := resolve.NewCached(exec)
		if err != nil {
			return err
		}
		c.resolver = cached
		return nil
	}
}

// WithResolver sets a custom resolver for augmentation. The resolver is
// used as given; wrap it in resolve.NewCached if invocation deduplication
// is wanted.
func WithResolver(r resolve.Resolver) Option {
	return func(c *config) error {
		c.resolver = r
		return nil
	}
}

// WithThresholds overrides the risk tier score boundaries used by Analyze.
func WithThresholds(t analysis.Thresholds) Option {
	return func(c *config) error {
		c.thresholds = t
		return nil
	}
}

// WithLogger sets a structured logger for diagnostics. If not set,
// logging is disabled (silent mode).
//
// Example:
//
//	modgraph.BuildDir(ctx, root, modgraph.WithLogger(slog.Default()))
func WithLogger(l *slog.Logger) Option {
	return func(c *config) error {
		c.logger = l
		return nil
	}
}

// validate checks the configuration for logical consistency.
func (c *config) validate() error {
	t := c.thresholds
	if t != (analysis.Thresholds{}) {
		if t.Critical < t.High || t.High < t.Medium {
			return errors.New("thresholds must be ordered critical >= high >= medium")
		}
	}
	return nil
}

// log returns the configured logger, or a no-op logger if none was set.
// Internal code can call logging methods without nil checks, and the
// library stays silent unless the caller opts in via WithLogger.
func (c *config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return logutil.Discard()
}
