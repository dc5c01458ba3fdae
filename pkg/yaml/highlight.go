package yaml

import (
	"fmt"
	"io"

	"github.com/alecthomas/chroma/v2/quick"
)

const (
	// DefaultStyle is the chroma style used by [Highlight].
	DefaultStyle = "onedark"

	// FormatterNone disables colors.
	FormatterNone = "noop"
	// FormatterTerminal emits 256-color ANSI sequences.
	FormatterTerminal = "terminal256"
)

// Highlight writes source to w with YAML syntax highlighting.
func Highlight(w io.Writer, source []byte, formatter, style string) error {
	if style == "" {
		style = DefaultStyle
	}

	err := quick.Highlight(w, string(source), "yaml", formatter, style)
	if err != nil {
		return fmt.Errorf("highlight yaml: %w", err)
	}

	return nil
}
