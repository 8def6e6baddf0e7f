package manifest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleBuild = `load("@rules_go//go:def.bzl", "go_library", "go_test")

go_library(
    name = "corelib",
    srcs = ["core.go"],
    deps = [
        "@protobuf//src:protos",
        "@zlib",
        "//other/pkg:helper",
    ],
)

go_test(
    name = "corelib_test",
    srcs = ["core_test.go"],
    deps = [":corelib"],
)

filegroup(
    srcs = ["data.txt"],
)
`

func TestParseBuildContent(t *testing.T) {
	targets, err := ParseBuildContent(sampleBuild)
	require.NoError(t, err)
	require.Len(t, targets, 2, "rules without a name attribute are skipped")

	lib := targets[0]
	assert.Equal(t, "corelib", lib.Name)
	// External labels map to module names; cross-package labels are
	// dropped, they are not module references.
	assert.Equal(t, []string{"protobuf", "zlib"}, lib.PackageDependencies)
	assert.Empty(t, lib.TargetDependencies)

	test := targets[1]
	assert.Equal(t, "corelib_test", test.Name)
	assert.Equal(t, []string{"corelib"}, test.TargetDependencies)
	assert.Empty(t, test.PackageDependencies)
}

func TestParseBuildContentInvalid(t *testing.T) {
	_, err := ParseBuildContent("go_library(name = ")
	assert.Error(t, err)
}
