package expr

import (
	"github.com/google/cel-go/cel"
	"github.com/google/cel-go/common/types"
	"github.com/google/cel-go/common/types/ref"
	"github.com/google/cel-go/common/types/traits"
	"github.com/google/cel-go/ext"

	"github.com/macropower/vscroll/pkg/scrolling"
)

// Variable names declared by [WindowVariables].
const (
	VarVertical   = "vertical"
	VarHorizontal = "horizontal"
	VarStep       = "step"
)

var windowType = cel.MapType(cel.StringType, cel.DynType)

// WindowVariables declares the window and step variables.
func WindowVariables() cel.EnvOption {
	return cel.Lib(windowVars{})
}

type windowVars struct{}

func (windowVars) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		cel.Variable(VarVertical, windowType),
		cel.Variable(VarHorizontal, windowType),
		cel.Variable(VarStep, windowType),
	}
}

func (windowVars) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

// WindowValue converts a window into the map form used by expressions.
func WindowValue(state scrolling.WindowState, renders int) map[string]any {
	return map[string]any{
		"startIndex":             state.StartIndex,
		"itemCount":              state.ItemCount,
		"endIndex":               state.EndIndex(),
		"total":                  state.TotalItemCount(),
		"virtualItemCountBefore": state.VirtualItemCountBefore,
		"virtualItemCountAfter":  state.VirtualItemCountAfter,
		"outlineCountBefore":     state.OutlineCountBefore,
		"outlineCountAfter":      state.OutlineCountAfter,
		"virtualItemSizeBefore":  state.VirtualItemSizeBefore,
		"virtualItemSizeAfter":   state.VirtualItemSizeAfter,
		"outlineSizeBefore":      state.OutlineSizeBefore,
		"outlineSizeAfter":       state.OutlineSizeAfter,
		"prevPosition":           state.PrevPosition,
		"renders":                renders,
	}
}

type lib struct{}

func (lib) CompileOptions() []cel.EnvOption {
	return []cel.EnvOption{
		ext.Math(),
		ext.Strings(),
		ext.Lists(),

		// `windowEnd` returns the index one past the last rendered item.
		// Example: windowEnd(vertical) == 25.
		cel.Function("windowEnd",
			cel.Overload("window_end_map", []*cel.Type{windowType}, cel.IntType,
				cel.UnaryBinding(func(w ref.Val) ref.Val {
					start, count, err := windowBounds(w)
					if err != nil {
						return err
					}

					return types.Int(start + count)
				}),
			),
		),

		// `windowContains` reports whether the item at an index is rendered.
		// Example: windowContains(horizontal, 4).
		cel.Function("windowContains",
			cel.Overload("window_contains_map_int", []*cel.Type{windowType, cel.IntType}, cel.BoolType,
				cel.BinaryBinding(func(w, index ref.Val) ref.Val {
					start, count, err := windowBounds(w)
					if err != nil {
						return err
					}

					i, ok := index.(types.Int)
					if !ok {
						return types.NewErr("windowContains: invalid index")
					}

					return types.Bool(int64(i) >= start && int64(i) < start+count)
				}),
			),
		),
	}
}

func (lib) ProgramOptions() []cel.ProgramOption {
	return []cel.ProgramOption{}
}

func windowBounds(w ref.Val) (int64, int64, ref.Val) {
	m, ok := w.(traits.Mapper)
	if !ok {
		return 0, 0, types.NewErr("window: expected a map")
	}

	start, err := intField(m, "startIndex")
	if err != nil {
		return 0, 0, err
	}

	count, err := intField(m, "itemCount")
	if err != nil {
		return 0, 0, err
	}

	return start, count, nil
}

func intField(m traits.Mapper, name string) (int64, ref.Val) {
	v, found := m.Find(types.String(name))
	if !found {
		return 0, types.NewErr("window: missing field %q", name)
	}

	switch n := v.(type) {
	case types.Int:
		return int64(n), nil
	case types.Uint:
		return int64(n), nil //nolint:gosec // G115: window indexes are small.
	case types.Double:
		return int64(n), nil
	}

	return 0, types.NewErr("window: field %q is %s, not a number", name, v.Type().TypeName())
}
