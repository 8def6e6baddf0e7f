package modgraph

import (
	"errors"

	"github.com/albertocavalcante/go-modgraph/scan"
)

// ErrRootNotFound is returned when a workspace root passed to BuildDir or
// DiffDirs does not exist or is not a directory.
var ErrRootNotFound = scan.ErrRootNotFound

// ErrNothingToAnalyze is returned when a workspace root exists but contains
// no dependency manifests. Callers that treat an empty workspace as benign
// can match it with errors.Is and continue with an empty graph.
var ErrNothingToAnalyze = errors.New("no dependency manifests found")
