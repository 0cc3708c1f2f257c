package version

import (
	"runtime/debug"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func withBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func TestGetVersionInfo_FromBuildInfo(t *testing.T) {
	withBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v1.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "0123456789abcdef"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}, true)

	info := GetVersionInfo()
	assert.Equal(t, "v1.4.0", info.Version)
	assert.Equal(t, "0123456", info.Revision)
	assert.Equal(t, "2026-01-02T03:04:05Z", info.BuiltAt)
	assert.NotEmpty(t, info.GoVersion)
}

func TestGetVersionInfo_LdflagsWin(t *testing.T) {
	orig := Version
	Version = "v9.9.9"
	t.Cleanup(func() { Version = orig })

	withBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "v1.0.0"}}, true)
	assert.Equal(t, "v9.9.9", GetVersionInfo().Version)
}

func TestGetVersionInfo_NoBuildInfo(t *testing.T) {
	withBuildInfo(t, nil, false)
	info := GetVersionInfo()
	assert.Equal(t, Version, info.Version)
	assert.Equal(t, "unknown", info.Revision)
}

func TestInfo_Format(t *testing.T) {
	info := Info{Version: "v1", Branch: "main", Revision: "abc", BuiltAt: "now", GoVersion: "go1.24"}
	assert.True(t, strings.HasPrefix(info.String(), "Version: v1"))

	js, err := info.JSON()
	require.NoError(t, err)
	assert.Contains(t, js, `"revision": "abc"`)
}
