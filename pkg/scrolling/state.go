package scrolling

import (
	"errors"
	"fmt"
)

// ErrInvariant indicates that a [WindowState] is internally inconsistent.
var ErrInvariant = errors.New("window invariant violated")

// Axis identifies a scrollable dimension.
type Axis int

const (
	// AxisVertical scrolls rows.
	AxisVertical Axis = iota
	// AxisHorizontal scrolls cells (columns).
	AxisHorizontal
)

func (a Axis) String() string {
	switch a {
	case AxisVertical:
		return "vertical"
	case AxisHorizontal:
		return "horizontal"
	}

	return fmt.Sprintf("axis(%d)", int(a))
}

// WindowState describes the rendered window of one axis.
//
// Items before StartIndex and after StartIndex+ItemCount are virtual: they
// are not rendered, and their space is reserved by VirtualItemSizeBefore and
// VirtualItemSizeAfter. Outline items are rendered items kept just outside
// the viewport as a scroll buffer; they are counted in ItemCount.
type WindowState struct {
	// PrevPosition is the quantized scroll offset of the last commit.
	PrevPosition float64 `json:"prevPosition" yaml:"prevPosition"`

	StartIndex int `json:"startIndex" yaml:"startIndex"`
	ItemCount  int `json:"itemCount"  yaml:"itemCount"`

	VirtualItemCountBefore int `json:"virtualItemCountBefore" yaml:"virtualItemCountBefore"`
	VirtualItemCountAfter  int `json:"virtualItemCountAfter"  yaml:"virtualItemCountAfter"`

	OutlineCountBefore int `json:"outlineCountBefore" yaml:"outlineCountBefore"`
	OutlineCountAfter  int `json:"outlineCountAfter"  yaml:"outlineCountAfter"`

	VirtualItemSizeBefore float64 `json:"virtualItemSizeBefore" yaml:"virtualItemSizeBefore"`
	VirtualItemSizeAfter  float64 `json:"virtualItemSizeAfter"  yaml:"virtualItemSizeAfter"`

	OutlineSizeBefore float64 `json:"outlineSizeBefore" yaml:"outlineSizeBefore"`
	OutlineSizeAfter  float64 `json:"outlineSizeAfter"  yaml:"outlineSizeAfter"`
}

// EndIndex returns the index one past the last rendered item.
func (s WindowState) EndIndex() int {
	return s.StartIndex + s.ItemCount
}

// TotalItemCount returns the number of logical items the window accounts for.
func (s WindowState) TotalItemCount() int {
	return s.VirtualItemCountBefore + s.ItemCount + s.VirtualItemCountAfter
}

// Contains reports whether the item at index is rendered.
func (s WindowState) Contains(index int) bool {
	return index >= s.StartIndex && index < s.EndIndex()
}

// Validate checks the window against the total item count of its axis.
func (s WindowState) Validate(totalItemCount int) error {
	if s.StartIndex != s.VirtualItemCountBefore {
		return fmt.Errorf("%w: start index %d != virtual item count before %d",
			ErrInvariant, s.StartIndex, s.VirtualItemCountBefore)
	}

	if got := s.TotalItemCount(); got != totalItemCount {
		return fmt.Errorf("%w: %d virtual before + %d rendered + %d virtual after = %d, want %d",
			ErrInvariant, s.VirtualItemCountBefore, s.ItemCount, s.VirtualItemCountAfter, got, totalItemCount)
	}

	for name, n := range map[string]int{
		"item count":                s.ItemCount,
		"virtual item count before": s.VirtualItemCountBefore,
		"virtual item count after":  s.VirtualItemCountAfter,
		"outline count before":      s.OutlineCountBefore,
		"outline count after":       s.OutlineCountAfter,
	} {
		if n < 0 {
			return fmt.Errorf("%w: negative %s %d", ErrInvariant, name, n)
		}
	}

	if s.OutlineCountBefore+s.OutlineCountAfter > s.ItemCount {
		return fmt.Errorf("%w: outline counts %d+%d exceed item count %d",
			ErrInvariant, s.OutlineCountBefore, s.OutlineCountAfter, s.ItemCount)
	}

	return nil
}
