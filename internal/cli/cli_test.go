package cli_test

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vscroll/internal/cli"
	"github.com/macropower/vscroll/pkg/replay"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer

	cmd := cli.NewRootCmd()
	cmd.SetArgs(args)
	cmd.SetOut(&out)
	cmd.SetErr(io.Discard)
	cmd.SilenceErrors = true
	cmd.SilenceUsage = true

	err := cmd.ExecuteContext(t.Context())

	return out.String(), err
}

func TestCalc(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "calc",
		"--total", "100", "--item-size", "50", "--viewport", "300", "--offset", "3980", "-o", "json")
	require.NoError(t, err)

	var got cli.CalcOutput
	require.NoError(t, json.Unmarshal([]byte(out), &got))

	assert.Equal(t, 76, got.Window.StartIndex)
	assert.Equal(t, 12, got.Window.ItemCount)
	assert.Equal(t, 88, got.EndIndex)
	assert.InDelta(t, 3800, got.Window.VirtualItemSizeBefore, 0)
	assert.InDelta(t, 600, got.Window.VirtualItemSizeAfter, 0)
	assert.InDelta(t, 4700, got.MaxScrollPosition, 0)
	assert.Equal(t, 6, got.PageSize)
	assert.Equal(t, 3, got.OutlineCount)
}

func TestCalcErrors(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  error
		args []string
	}{
		"zero item size": {
			args: []string{"--total", "10", "--item-size", "0", "--viewport", "300"},
			err:  cli.ErrInvalidInput,
		},
		"negative total": {
			args: []string{"--total", "-1", "--item-size", "50", "--viewport", "300"},
			err:  cli.ErrInvalidInput,
		},
		"unknown output": {
			args: []string{"--total", "10", "--item-size", "50", "--viewport", "300", "-o", "xml"},
			err:  cli.ErrInvalidInput,
		},
		"missing viewport": {
			args: []string{"--total", "10", "--item-size", "50"},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, append([]string{"calc"}, tc.args...)...)
			require.Error(t, err)

			if tc.err != nil {
				require.ErrorIs(t, err, tc.err)
			}
		})
	}
}

func TestCalcYAML(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "calc",
		"--total", "200", "--item-size", "150", "--viewport", "600", "--offset", "900", "--outline", "1")
	require.NoError(t, err)

	assert.Contains(t, out, "startIndex: 5")
	assert.Contains(t, out, "outlineCount: 1")
	assert.Contains(t, out, "endIndex: 11")
}

func TestReplay(t *testing.T) {
	t.Parallel()

	out, err := execute(t, "replay", "testdata/trace.yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "76–88/100")
	assert.Contains(t, out, "4–12/200")

	out, err = execute(t, "replay", "testdata/trace.yaml", "-o", "yaml")
	require.NoError(t, err)
	assert.Contains(t, out, "failed: 0")
	assert.Contains(t, out, "name: jump")
}

func TestReplayFailures(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		err  error
		path string
	}{
		"failed expectation": {
			path: "testdata/failing.yaml",
			err:  replay.ErrFailed,
		},
		"missing file": {
			path: "testdata/missing.yaml",
			err:  os.ErrNotExist,
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			_, err := execute(t, "replay", tc.path)
			require.ErrorIs(t, err, tc.err)
		})
	}
}

func TestReplayGolden(t *testing.T) {
	t.Parallel()

	golden := filepath.Join(t.TempDir(), "trace.golden.yaml")

	_, err := execute(t, "replay", "testdata/trace.yaml", "--golden", golden, "--update")
	require.NoError(t, err)

	want, err := os.ReadFile(golden)
	require.NoError(t, err)
	assert.Contains(t, string(want), "start: 76")

	_, err = execute(t, "replay", "testdata/trace.yaml", "--golden", golden)
	require.NoError(t, err)

	changed := bytes.Replace(want, []byte("start: 76"), []byte("start: 75"), 1)
	require.NoError(t, os.WriteFile(golden, changed, 0o600))

	out, err := execute(t, "replay", "testdata/trace.yaml", "--golden", golden, "-o", "yaml")
	require.ErrorIs(t, err, cli.ErrGoldenMismatch)
	assert.Contains(t, out, "-      start: 75")
	assert.Contains(t, out, "+      start: 76")
}

func TestRunFrame(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "config.yaml")

	out, err := execute(t, "--config", configPath, "--width", "80", "--height", "24")
	require.NoError(t, err)

	assert.FileExists(t, configPath)
	assert.Contains(t, out, "rows 0–")
	assert.Contains(t, out, "00:00")

	out, err = execute(t, "run", "--config", configPath, "--width", "80", "--height", "24",
		"--rows", "4", "--groups", "2", "--vertical-grouping")
	require.NoError(t, err)
	assert.Contains(t, out, "rows 0–8/8")
}

func TestRunConfig(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		contains string
		args     []string
	}{
		"write config": {
			args: []string{"--write-config"},
		},
		"show config": {
			args:     []string{"--show-config"},
			contains: "kind: Configuration",
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			configPath := filepath.Join(t.TempDir(), "config.yaml")

			out, err := execute(t, append([]string{"--config", configPath}, tc.args...)...)
			require.NoError(t, err)
			assert.FileExists(t, configPath)
			assert.Contains(t, out, tc.contains)
		})
	}
}

func TestRunInvalidConfig(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte(`apiVersion: vscroll.jacobcolvin.com/v1beta1
kind: Configuration
grid:
  rowCount: -1
`), 0o600))

	_, err := execute(t, "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), configPath)
}

func TestRunInvalidGridFlags(t *testing.T) {
	t.Parallel()

	configPath := filepath.Join(t.TempDir(), "config.yaml")

	_, err := execute(t, "--config", configPath, "--rows", "-3")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "negative row count")
}
