package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/macropower/vscroll/api/v1beta1"
	"github.com/macropower/vscroll/pkg/scrolling"
	"github.com/macropower/vscroll/pkg/ui/styles"
)

// labelWidth is the width of the row label gutter.
const labelWidth = 8

// gridFrame is one frame of the visible part of a grid. All sizes and
// offsets are in terminal cells.
type gridFrame struct {
	rows  scrolling.WindowState
	cells scrolling.WindowState
	grid  v1beta1.Grid

	top, left     int
	width, height int
	rowHeight     int
	cellWidth     int
	totalRows     int
	totalCells    int
}

// slot describes the content of one row.
type slot struct {
	label  string
	group  int
	allDay bool
}

// rowSlot maps a row index to its group and time slot.
func (f gridFrame) rowSlot(row int) slot {
	g := f.grid
	if !g.VerticalGrouping || g.GroupCount == 0 {
		return slot{label: slotTime(row, g.RowCount)}
	}

	perGroup := g.RowCount
	if g.GroupedAllDayPanel {
		perGroup++
	}

	if perGroup == 0 {
		return slot{}
	}

	s := slot{group: row / perGroup}

	r := row % perGroup
	if g.GroupedAllDayPanel {
		if r == 0 {
			s.allDay = true
			s.label = "all-day"

			return s
		}

		r--
	}

	s.label = slotTime(r, g.RowCount)

	return s
}

// cellGroup maps a cell index to its group and day.
func (f gridFrame) cellGroup(cell int) (group, day int) {
	g := f.grid
	if g.VerticalGrouping || g.CellCount == 0 {
		return 0, cell
	}

	return cell / g.CellCount, cell % g.CellCount
}

// slotTime spreads rowCount slots over one day.
func slotTime(slot, rowCount int) string {
	if rowCount <= 0 {
		return ""
	}

	d := time.Duration(slot) * 24 * time.Hour / time.Duration(rowCount)

	return fmt.Sprintf("%02d:%02d", int(d.Hours()), int(d.Minutes())%60)
}

func dayName(day, cellCount int) string {
	if cellCount <= 7 {
		return time.Weekday((day + 1) % 7).String()[:3]
	}

	return fmt.Sprintf("d%d", day+1)
}

// header renders the column header line.
func (f gridFrame) header() string {
	var sb strings.Builder

	sb.WriteString(strings.Repeat(" ", labelWidth))
	f.eachSegment(func(cell, offset, width int) {
		if !f.cells.Contains(cell) {
			sb.WriteString(styles.MissingStyle.Render(styles.Fit(styles.Missing, width)))
			return
		}

		group, day := f.cellGroup(cell)

		label := "│" + dayName(day, f.grid.CellCount)
		if f.grid.GroupCount > 0 && !f.grid.VerticalGrouping {
			label += fmt.Sprintf(" G%d", group+1)
		}

		sb.WriteString(styles.HeaderStyle.Render(cut(label, f.cellWidth, offset, width)))
	})

	return sb.String()
}

// line renders the body line y, relative to the top of the grid.
func (f gridFrame) line(y int) string {
	var sb strings.Builder

	row := y / f.rowHeight
	first := y%f.rowHeight == 0

	if row >= f.totalRows {
		return ""
	}

	s := f.rowSlot(row)

	label := ""
	if first {
		label = s.label
	}

	labelStyle := styles.RowLabelStyle
	if s.allDay {
		labelStyle = styles.AllDayStyle
	}

	sb.WriteString(labelStyle.Render(styles.Fit(label, labelWidth)))

	f.eachSegment(func(cell, offset, width int) {
		if !f.rows.Contains(row) || !f.cells.Contains(cell) {
			sb.WriteString(styles.MissingStyle.Render(styles.Fit(styles.Missing, width)))
			return
		}

		group, _ := f.cellGroup(cell)
		if f.grid.VerticalGrouping {
			group = s.group
		}

		text := "│"
		if first {
			text += fmt.Sprintf("r%d c%d", row, cell)
		}

		sb.WriteString(styles.GroupStyle(group).Render(cut(text, f.cellWidth, offset, width)))
	})

	return sb.String()
}

// eachSegment calls fn for every cell that intersects the visible columns,
// with the visible offset into the cell and the visible width.
func (f gridFrame) eachSegment(fn func(cell, offset, width int)) {
	end := min(f.left+f.width, f.totalCells*f.cellWidth)

	for x := f.left; x < end; {
		cell := x / f.cellWidth
		offset := x - cell*f.cellWidth
		width := min((cell+1)*f.cellWidth, end) - x

		fn(cell, offset, width)

		x += width
	}
}

// View renders the header and body of the frame.
func (f gridFrame) View() string {
	if f.rowHeight <= 0 || f.cellWidth <= 0 {
		return ""
	}

	lines := make([]string, 0, f.height+1)
	lines = append(lines, f.header())

	for y := f.top; y < f.top+f.height; y++ {
		lines = append(lines, f.line(y))
	}

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// cut pads text to the cell width and returns the visible part.
func cut(text string, cellWidth, offset, width int) string {
	return ansi.Cut(styles.Fit(text, cellWidth), offset, offset+width)
}
