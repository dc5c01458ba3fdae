package traces_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/macropower/vscroll/api/v1beta1"
	"github.com/macropower/vscroll/api/v1beta1/traces"
	"github.com/macropower/vscroll/pkg/scrolling"
	"github.com/macropower/vscroll/pkg/yaml"
)

const sampleTrace = `apiVersion: vscroll.jacobcolvin.com/v1beta1
kind: ScrollTrace
viewport:
  width: 600
  height: 300
workspace:
  rowCount: 100
  cellCount: 200
  cellWidth: 150
  cellHeight: 50
  width: 600
  height: 300
scrolling:
  renderDelay: immediate
steps:
  - name: jump
    top: 3980
    expect: vertical.startIndex == 76
  - sweep:
      axis: horizontal
      from: 0
      to: 300
      step: 150
  - window:
      x: 20
      y: 0
  - resize:
      width: 300
      height: 600
  - flush: true
`

func TestSchemaAcceptsSample(t *testing.T) {
	t.Parallel()

	var data any
	require.NoError(t, yaml.Unmarshal([]byte(sampleTrace), &data))
	require.NoError(t, traces.DefaultValidator.Validate(data))

	tr := traces.New()
	require.NoError(t, yaml.Unmarshal([]byte(sampleTrace), tr))
	require.NoError(t, tr.Validate())

	assert.Equal(t, traces.Kind, tr.GetKind())
	assert.Equal(t, 100, tr.Workspace.RowCount)
	assert.Equal(t, scrolling.Size{Width: 600, Height: 300}, tr.Workspace.ElementSize())
	require.Len(t, tr.Steps, 5)

	actions := []string{}
	for _, s := range tr.Steps {
		actions = append(actions, s.Action())
	}

	assert.Equal(t, []string{"scroll", "sweep", "window", "resize", "flush"}, actions)
	assert.True(t, tr.Scrolling.RenderDelay.Duration < 0)
}

func TestSchemaRejects(t *testing.T) {
	t.Parallel()

	tcs := map[string]string{
		"unknown step field": `apiVersion: vscroll.jacobcolvin.com/v1beta1
kind: ScrollTrace
workspace: {rowCount: 1, cellCount: 1, cellWidth: 1}
steps:
  - jump: 10
`,
		"bad sweep axis": `apiVersion: vscroll.jacobcolvin.com/v1beta1
kind: ScrollTrace
workspace: {rowCount: 1, cellCount: 1, cellWidth: 1}
steps:
  - sweep: {axis: diagonal, from: 0, to: 1, step: 1}
`,
		"missing steps": `apiVersion: vscroll.jacobcolvin.com/v1beta1
kind: ScrollTrace
workspace: {rowCount: 1, cellCount: 1, cellWidth: 1}
`,
		"wrong kind": `apiVersion: vscroll.jacobcolvin.com/v1beta1
kind: Configuration
workspace: {rowCount: 1, cellCount: 1, cellWidth: 1}
steps: []
`,
	}

	for name, input := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			var data any
			require.NoError(t, yaml.Unmarshal([]byte(input), &data))

			err := traces.DefaultValidator.Validate(data)
			require.Error(t, err)

			var yamlErr *yaml.Error
			assert.ErrorAs(t, err, &yamlErr)
		})
	}
}

func TestStepValidate(t *testing.T) {
	t.Parallel()

	top := 10.0

	tcs := map[string]struct {
		step traces.Step
		err  bool
	}{
		"scroll":       {step: traces.Step{Top: &top}},
		"scroll both":  {step: traces.Step{Top: &top, Left: &top}},
		"flush":        {step: traces.Step{Flush: true}},
		"no action":    {step: traces.Step{Name: "empty"}, err: true},
		"two actions":  {step: traces.Step{Top: &top, Flush: true}, err: true},
		"zero sweep":   {step: traces.Step{Sweep: &traces.Sweep{Axis: "vertical", To: 10}}, err: true},
		"unknown axis": {step: traces.Step{Sweep: &traces.Sweep{Axis: "z", To: 10, Step: 1}}, err: true},
		"sweep": {
			step: traces.Step{Sweep: &traces.Sweep{Axis: "vertical", To: 10, Step: 5}},
		},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := tc.step.Validate()
			if tc.err {
				require.ErrorIs(t, err, traces.ErrInvalidStep)
				return
			}

			require.NoError(t, err)
		})
	}
}

func TestSweepOffsets(t *testing.T) {
	t.Parallel()

	tcs := map[string]struct {
		sweep    traces.Sweep
		expected []float64
	}{
		"forward":      {sweep: traces.Sweep{From: 0, To: 100, Step: 50}, expected: []float64{0, 50, 100}},
		"backward":     {sweep: traces.Sweep{From: 100, To: 0, Step: 40}, expected: []float64{100, 60, 20}},
		"single":       {sweep: traces.Sweep{From: 5, To: 5, Step: 1}, expected: []float64{5}},
		"invalid step": {sweep: traces.Sweep{From: 0, To: 10}},
	}

	for name, tc := range tcs {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tc.expected, tc.sweep.Offsets())
		})
	}
}

func TestTraceValidate(t *testing.T) {
	t.Parallel()

	tr := traces.New()
	tr.Workspace.Grid = v1beta1.Grid{RowCount: 1, CellCount: 1, CellWidth: 1}
	require.NoError(t, tr.Validate())

	tr.Steps = append(tr.Steps, traces.Step{})
	require.ErrorIs(t, tr.Validate(), traces.ErrInvalidStep)

	tr.Kind = "Configuration"
	require.ErrorIs(t, tr.Validate(), v1beta1.ErrUnknownKind)
}
