// Package scrolling computes which part of a large virtual grid must be
// rendered while the grid is scrolled.
//
// Each scrollable axis (rows, cells) is driven by a [Controller] that owns a
// single [WindowState]. The state describes a contiguous window of rendered
// items, surrounded by "virtual" regions that are represented only by their
// size, so that scrollbars still report the full extent of the grid.
//
// A [Dispatcher] composes the vertical and horizontal controllers for a
// [Host], subscribes to the host's [Scrollable], and asks the host to render
// rows or cells whenever a controller commits a new window.
//
// Computation is synchronous. Windows are recomputed only when the scroll
// offset moves at least [AxisConfig.OutlineCount] items away from the last
// committed position, or when it reaches either end of the axis.
package scrolling
