package uitest

// Size is a terminal size.
type Size struct {
	Width  int
	Height int
}

// Terminal sizes used by tests.
var (
	// Tiny fits only a few rows and cells.
	Tiny = Size{Width: 40, Height: 10}
	// Compact is the classic 80x24 terminal.
	Compact = Size{Width: 80, Height: 24}
	// Wide is a large display.
	Wide = Size{Width: 160, Height: 50}
)
