package api_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vscroll/api"
)

//nolint:paralleltest // Modifies environment variables.
func TestGetConfigPath(t *testing.T) {
	tcs := map[string]struct {
		xdg  string
		home string
		want string
	}{
		"xdg config home": {
			xdg:  "/custom/config",
			home: "/test/home",
			want: "/custom/config/vscroll/config.yaml",
		},
		"home directory": {
			home: "/test/home",
			want: "/test/home/.config/vscroll/config.yaml",
		},
		"temp directory": {
			want: filepath.Join(os.TempDir(), "vscroll", "config.yaml"), //nolint:usetesting // Must match the host.
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Setenv("XDG_CONFIG_HOME", tc.xdg)
			t.Setenv("HOME", tc.home)

			assert.Equal(t, tc.want, api.GetConfigPath("config.yaml"))
		})
	}
}

func TestReadFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "trace.yaml")
	require.NoError(t, os.WriteFile(path, []byte("kind: ScrollTrace\n"), 0o600))

	data, err := api.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "kind: ScrollTrace\n", string(data))

	_, err = api.ReadFile(dir)
	require.ErrorIs(t, err, api.ErrIsDirectory)

	_, err = api.ReadFile(filepath.Join(dir, "missing.yaml"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestWriteIfNotExists(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	require.NoError(t, api.WriteIfNotExists(path, []byte("first")))
	require.NoError(t, api.WriteIfNotExists(path, []byte("second")))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first", string(data))

	require.ErrorIs(t, api.WriteIfNotExists(filepath.Dir(path), nil), api.ErrIsDirectory)
}

func TestWriteDefaultFile(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		existing string
		force    bool
		want     string
		backups  int
	}{
		"new file": {
			want: "default",
		},
		"keeps existing file": {
			existing: "custom",
			want:     "custom",
		},
		"force backs up existing file": {
			existing: "custom",
			force:    true,
			want:     "default",
			backups:  1,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			dir := t.TempDir()
			path := filepath.Join(dir, "config.yaml")

			if tc.existing != "" {
				require.NoError(t, os.WriteFile(path, []byte(tc.existing), 0o600))
			}

			require.NoError(t, api.WriteDefaultFile(path, []byte("default"), tc.force, "configuration"))

			data, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tc.want, string(data))

			backups, err := filepath.Glob(filepath.Join(dir, "config.yaml.*.old"))
			require.NoError(t, err)
			assert.Len(t, backups, tc.backups)
		})
	}
}
