package configpaths_test

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/cflee/planck/internal/configpaths"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfigDir(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("XDG lookup only applies off Windows")
	}
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	dir, err := configpaths.DefaultConfigDir()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "planck"), dir)

	p, err := configpaths.DefaultNamedConfigPath("replay", "yml")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("/tmp/xdg", "planck", "replay.yaml"), p)
}

func TestConfigCandidatePathsPrefersUserPath(t *testing.T) {

	type testCase struct {
		user string
		json bool
		yaml bool
		toml bool
	}

	testCases := []testCase{
		{user: "mine.toml", toml: true},
		{user: "mine.yml", yaml: true},
		{user: "mine.conf", json: true},
	}

	for _, tc := range testCases {
		t.Run(tc.user, func(t *testing.T) {
			j, y, tm := configpaths.ConfigCandidatePaths(tc.user)
			assert.Equal(t, tc.json, j[0] == tc.user)
			assert.Equal(t, tc.yaml, y[0] == tc.user)
			assert.Equal(t, tc.toml, tm[0] == tc.user)
		})
	}
}

func TestFindKeymap(t *testing.T) {
	t.Chdir(t.TempDir())
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	require.NoError(t, os.MkdirAll(filepath.Join(wd, "keymaps"), 0o755))
	want := filepath.Join(wd, "keymaps", "travel.yaml")
	require.NoError(t, os.WriteFile(want, []byte("name: travel\n"), 0o644))

	assert.Equal(t, want, configpaths.FindKeymap("travel"))
	assert.Equal(t, "cflee", configpaths.FindKeymap("cflee"))
	assert.Equal(t, "other.json", configpaths.FindKeymap("other.json"))
}
