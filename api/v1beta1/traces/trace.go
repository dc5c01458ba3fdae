// Package traces provides the ScrollTrace kind: a recorded sequence of
// scroll events replayed against a headless workspace.
package traces

import (
	"errors"
	"fmt"

	"github.com/invopop/jsonschema"

	_ "embed"

	"github.com/macropower/vscroll/api/v1beta1"
	"github.com/macropower/vscroll/pkg/scrolling"
	"github.com/macropower/vscroll/pkg/yaml"
)

//go:generate go run ../../../internal/schemagen -kind trace -o traces.v1beta1.json

// Kind is the kind of [Trace].
const Kind = "ScrollTrace"

var (
	//go:embed traces.v1beta1.json
	schemaJSON []byte

	// ValidKinds contains the valid kind values for traces.
	ValidKinds = []string{Kind}

	// DefaultValidator validates traces against the JSON schema.
	DefaultValidator = yaml.MustNewValidator("/traces.v1beta1.json", schemaJSON)

	ErrInvalidStep = errors.New("invalid step")

	_ v1beta1.Object = (*Trace)(nil)
)

// Trace is a scroll trace.
//
//nolint:recvcheck // Must satisfy the jsonschema interface.
type Trace struct {
	// Viewport is the ambient viewport size, used for unset workspace
	// dimensions.
	Viewport *scrolling.Size `json:"viewport,omitempty" jsonschema:"title=Viewport"`
	// Scrolling overrides the engine settings for this trace.
	Scrolling *v1beta1.Scrolling `json:"scrolling,omitempty" jsonschema:"title=Scrolling"`
	// Steps are replayed in order.
	Steps []Step `json:"steps" jsonschema:"title=Steps"`
	// Workspace is the grid and element size.
	Workspace        Workspace `json:"workspace" jsonschema:"title=Workspace"`
	v1beta1.TypeMeta `json:",inline"`
}

// Workspace is a grid with an element size. Unset (zero) dimensions fall
// back to the trace viewport.
type Workspace struct {
	v1beta1.Grid `json:",inline"`

	Width  float64 `json:"width,omitempty"  jsonschema:"title=Width,minimum=0"`
	Height float64 `json:"height,omitempty" jsonschema:"title=Height,minimum=0"`
}

// ElementSize returns the workspace element size.
func (w Workspace) ElementSize() scrolling.Size {
	return scrolling.Size{Width: w.Width, Height: w.Height}
}

// Point is an ambient scroll position.
type Point struct {
	X float64 `json:"x" jsonschema:"title=X"`
	Y float64 `json:"y" jsonschema:"title=Y"`
}

// Sweep scrolls one axis from From to To (inclusive) in increments of Step.
// A sweep from a larger to a smaller offset scrolls backwards.
type Sweep struct {
	Axis string  `json:"axis" jsonschema:"title=Axis,enum=vertical,enum=horizontal"`
	From float64 `json:"from" jsonschema:"title=From"`
	To   float64 `json:"to"   jsonschema:"title=To"`
	Step float64 `json:"step" jsonschema:"title=Step"`
}

// ScrollAxis returns the [scrolling.Axis] of the sweep.
func (s Sweep) ScrollAxis() (scrolling.Axis, error) {
	switch s.Axis {
	case scrolling.AxisVertical.String():
		return scrolling.AxisVertical, nil
	case scrolling.AxisHorizontal.String():
		return scrolling.AxisHorizontal, nil
	}

	return 0, fmt.Errorf("%w: unknown sweep axis %q", ErrInvalidStep, s.Axis)
}

// Offsets returns the offsets visited by the sweep.
func (s Sweep) Offsets() []float64 {
	if !(s.Step > 0) {
		return nil
	}

	var out []float64
	if s.From <= s.To {
		for v := s.From; v <= s.To; v += s.Step {
			out = append(out, v)
		}

		return out
	}

	for v := s.From; v >= s.To; v -= s.Step {
		out = append(out, v)
	}

	return out
}

// Step is one replay event. Exactly one of a scroll (Top and/or Left),
// Window, Sweep, Resize, or Flush must be set.
type Step struct {
	Top    *float64        `json:"top,omitempty"    jsonschema:"title=Top"`
	Left   *float64        `json:"left,omitempty"   jsonschema:"title=Left"`
	Window *Point          `json:"window,omitempty" jsonschema:"title=Window"`
	Sweep  *Sweep          `json:"sweep,omitempty"  jsonschema:"title=Sweep"`
	Resize *scrolling.Size `json:"resize,omitempty" jsonschema:"title=Resize"`
	// Name labels the step in results.
	Name string `json:"name,omitempty" jsonschema:"title=Name"`
	// Expect is a CEL expression that must evaluate to true after the step.
	Expect string `json:"expect,omitempty" jsonschema:"title=Expect"`
	// Flush delivers pending debounced renders.
	Flush bool `json:"flush,omitempty" jsonschema:"title=Flush"`
}

// Offset returns the scroll notification of a scroll step.
func (s Step) Offset() scrolling.ScrollOffset {
	return scrolling.ScrollOffset{Top: s.Top, Left: s.Left}
}

// Action names the kind of event.
func (s Step) Action() string {
	switch {
	case s.Top != nil || s.Left != nil:
		return "scroll"
	case s.Window != nil:
		return "window"
	case s.Sweep != nil:
		return "sweep"
	case s.Resize != nil:
		return "resize"
	case s.Flush:
		return "flush"
	}

	return ""
}

// Validate checks that exactly one action is set.
func (s Step) Validate() error {
	actions := 0
	if s.Top != nil || s.Left != nil {
		actions++
	}
	if s.Window != nil {
		actions++
	}
	if s.Sweep != nil {
		actions++
	}
	if s.Resize != nil {
		actions++
	}
	if s.Flush {
		actions++
	}

	if actions != 1 {
		return fmt.Errorf("%w: want exactly one action, got %d", ErrInvalidStep, actions)
	}

	if s.Sweep != nil {
		_, err := s.Sweep.ScrollAxis()
		if err != nil {
			return err
		}

		if !(s.Sweep.Step > 0) {
			return fmt.Errorf("%w: sweep step must be positive", ErrInvalidStep)
		}
	}

	return nil
}

// New creates an empty [Trace].
func New() *Trace {
	t := &Trace{TypeMeta: v1beta1.NewTypeMeta(Kind)}
	t.EnsureDefaults()

	return t
}

// EnsureDefaults initializes nil fields.
func (t *Trace) EnsureDefaults() {
	if t.Steps == nil {
		t.Steps = []Step{}
	}
}

// Validate checks the values that the schema cannot.
func (t *Trace) Validate() error {
	err := t.TypeMeta.Check(ValidKinds...)
	if err != nil {
		return fmt.Errorf("validate type: %w", err)
	}

	err = t.Workspace.Grid.Validate()
	if err != nil {
		return fmt.Errorf("validate workspace: %w", err)
	}

	for i, s := range t.Steps {
		err = s.Validate()
		if err != nil {
			return fmt.Errorf("steps[%d]: %w", i, err)
		}
	}

	return nil
}

func (t Trace) JSONSchemaExtend(jss *jsonschema.Schema) {
	v1beta1.ExtendSchemaWithEnums(jss, v1beta1.ValidAPIVersions, ValidKinds)
}

// Schema returns the embedded JSON schema.
func Schema() []byte {
	return append([]byte(nil), schemaJSON...)
}
