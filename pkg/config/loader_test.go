package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vscroll/api/v1beta1/configs"
	"github.com/macropower/vscroll/api/v1beta1/traces"
	"github.com/macropower/vscroll/pkg/config"
	"github.com/macropower/vscroll/pkg/yaml"
)

const header = `apiVersion: vscroll.jacobcolvin.com/v1beta1
kind: Configuration
`

func TestLoaderValidate(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input  string
		errMsg string
	}{
		"minimal": {
			input: header,
		},
		"with grid": {
			input: header + `grid:
  rowCount: 24
  cellCount: 5
  cellWidth: 10
`,
		},
		"invalid yaml": {
			input:  header + "grid: [unclosed\n",
			errMsg: "']' not found",
		},
		"missing type meta": {
			input:  "grid:\n  rowCount: 1\n",
			errMsg: "apiVersion",
		},
		"unknown field": {
			input:  header + "theme: dark\n",
			errMsg: "theme",
		},
		"negative rows": {
			input:  header + "grid:\n  rowCount: -1\n",
			errMsg: "rowCount",
		},
		"empty": {
			input:  "",
			errMsg: config.ErrEmptyDocument.Error(),
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := config.NewLoaderFromBytes([]byte(tc.input), configs.New, configs.DefaultValidator)

			err := l.Validate()
			if tc.errMsg == "" {
				require.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
		})
	}
}

func TestLoaderLoad(t *testing.T) {
	t.Parallel()

	l := config.NewLoaderFromBytes([]byte(header+"grid:\n  rowCount: 24\n  cellCount: 5\n"),
		configs.New, configs.DefaultValidator)

	cfg, err := l.Load()
	require.NoError(t, err)

	assert.Equal(t, 24, cfg.Grid.RowCount)
	require.NotNil(t, cfg.Scrolling, "defaults should be applied")
	require.NotNil(t, cfg.UI)
	require.NotNil(t, cfg.UI.KeyBinds)
	assert.NotNil(t, cfg.UI.KeyBinds.Quit)
}

func TestLoaderLoadSkipsSchema(t *testing.T) {
	t.Parallel()

	l := config.NewLoaderFromBytes([]byte("grid:\n  rowCount: 3\n"), configs.New, configs.DefaultValidator)

	cfg, err := l.Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Grid.RowCount)

	_, err = l.LoadValid()
	require.Error(t, err)
}

func TestLoaderLoadValid(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		input  string
		errMsg string
	}{
		"valid": {
			input: `apiVersion: vscroll.jacobcolvin.com/v1beta1
kind: ScrollTrace
workspace: {rowCount: 10, cellCount: 2, cellWidth: 10, cellHeight: 10, width: 20, height: 50}
steps:
  - top: 30
`,
		},
		"step without action": {
			input: `apiVersion: vscroll.jacobcolvin.com/v1beta1
kind: ScrollTrace
workspace: {rowCount: 10, cellCount: 2}
steps:
  - name: idle
`,
			errMsg: "invalid ScrollTrace",
		},
		"configuration kind": {
			input:  header + "workspace: {rowCount: 1, cellCount: 1}\nsteps: []\n",
			errMsg: "kind",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			l := config.NewLoaderFromBytes([]byte(tc.input), traces.New, traces.DefaultValidator)

			tr, err := l.LoadValid()
			if tc.errMsg == "" {
				require.NoError(t, err)
				assert.Len(t, tr.Steps, 1)

				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.errMsg)
			assert.Nil(t, tr)
		})
	}
}

func TestLoaderErrorsCarrySource(t *testing.T) {
	t.Parallel()

	input := header + "grid:\n  rowCount: many\n"
	l := config.NewLoaderFromBytes([]byte(input), configs.New, configs.DefaultValidator)

	err := l.Validate()
	require.Error(t, err)

	var yamlErr *yaml.Error
	require.ErrorAs(t, err, &yamlErr)
	assert.Equal(t, []byte(input), yamlErr.Source)
}

func TestLoaderWithValidator(t *testing.T) {
	t.Parallel()

	l := config.NewLoaderFromBytes([]byte("grid: {}\n"), configs.New, configs.DefaultValidator,
		config.WithValidator(nil))

	require.NoError(t, l.Validate())
}

func TestNewLoaderFromFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	require.NoError(t, configs.WriteDefault(path, false))

	l, err := config.NewLoaderFromFile(path, configs.New, configs.DefaultValidator)
	require.NoError(t, err)
	assert.Equal(t, configs.DefaultYAML(), l.Data())

	cfg, err := l.LoadValid()
	require.NoError(t, err)
	assert.Equal(t, configs.DefaultGrid(), cfg.Grid)

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte(header+"grid: [\n"), 0o600))

	l, err = config.NewLoaderFromFile(bad, configs.New, configs.DefaultValidator)
	require.NoError(t, err)

	err = l.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad)

	_, err = config.NewLoaderFromFile(filepath.Join(dir, "missing.yaml"), configs.New, configs.DefaultValidator)
	require.Error(t, err)
}
