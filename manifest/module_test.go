package manifest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleModule = `module(
    name = "core",
    version = "1.2.0",
)

bazel_dep(name = "protobuf", version = "27.1")
bazel_dep(name = "zlib", version = "1.3", dev_dependency = True)

local_path_override(
    module_name = "util",
    path = "../util",
)
`

func TestParseModuleContent(t *testing.T) {
	info, err := ParseModuleContent(sampleModule)
	require.NoError(t, err)

	assert.Equal(t, "core", info.Name)
	assert.Equal(t, []string{"protobuf", "zlib"}, info.Dependencies)
	// bazel_deps, the overridden module, and the self-declaration marker.
	assert.Equal(t, []string{"protobuf", "zlib", "util", "core"}, info.ExplicitDependencies)
	assert.True(t, info.DeclaresSelf())
}

func TestParseModuleContentUnnamed(t *testing.T) {
	info, err := ParseModuleContent(`bazel_dep(name = "zlib", version = "1.3")`)
	require.NoError(t, err)

	assert.Empty(t, info.Name)
	assert.Equal(t, []string{"zlib"}, info.Dependencies)
	assert.False(t, info.DeclaresSelf())
}

func TestParseModuleContentInvalid(t *testing.T) {
	_, err := ParseModuleContent("module(name = ")
	assert.Error(t, err)
}

func TestParseModuleFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "MODULE.bazel")
	require.NoError(t, os.WriteFile(path, []byte(sampleModule), 0o644))

	info, err := ParseModuleFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, info.Path)
	assert.Equal(t, "core", info.Name)

	_, err = ParseModuleFile(filepath.Join(dir, "missing"))
	assert.Error(t, err)
}
