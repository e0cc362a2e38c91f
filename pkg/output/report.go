// Package output renders held-back computation results for the terminal.
// It owns all presentation I/O; the computation core never writes output
// and the formatter never inspects registry state.
package output

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/mattn/go-runewidth"

	"github.com/ajxudir/heldback/pkg/heldback"
)

// ANSI sequences for the optional color mode.
const (
	colorReset = "\033[0m"
	colorBold  = "\033[1m"
	colorDim   = "\033[2m"
	colorCyan  = "\033[36m"
)

// Options configures report rendering.
//
// Fields:
//   - Color: Enables ANSI color output
type Options struct {
	// Color enables ANSI color output.
	Color bool
}

// PrintHeldBack writes the held-back report to a writer.
//
// It performs the following operations:
//   - Sorts holder names lexicographically for a stable report
//   - Pads each holder name to the common display width of the widest name
//   - Renders each violation as name@version {compat}
//
// Parameters:
//   - w: Destination writer
//   - m: The computed HoldMap
//   - opts: Rendering options
//
// Returns:
//   - error: Any write error
func PrintHeldBack(w io.Writer, m heldback.HoldMap, opts Options) error {
	holders := make([]string, 0, len(m))
	width := 0

	for holder := range m {
		holders = append(holders, holder)
		if hw := runewidth.StringWidth(holder); hw > width {
			width = hw
		}
	}
	sort.Strings(holders)

	for _, holder := range holders {
		parts := make([]string, 0, len(m[holder]))
		for _, violation := range m[holder] {
			parts = append(parts, formatViolation(violation, opts.Color))
		}

		name := holder
		if opts.Color {
			name = colorBold + name + colorReset
		}

		if _, err := fmt.Fprintf(w, "%s%s  %s\n", name, padding(holder, width), strings.Join(parts, "  ")); err != nil {
			return err
		}
	}

	return nil
}

// formatViolation renders one violation as name@version {compat}.
func formatViolation(v heldback.HeldBack, color bool) string {
	if !color {
		return fmt.Sprintf("%s@%s {%s}", v.Name, v.MaxVersion, v.Compat)
	}

	return fmt.Sprintf("%s@%s %s{%s}%s",
		v.Name,
		colorCyan+v.MaxVersion+colorReset,
		colorDim, v.Compat, colorReset)
}

// padding returns the spaces needed to bring a holder name to the
// common display width, accounting for wide Unicode characters.
func padding(holder string, width int) string {
	current := runewidth.StringWidth(holder)
	if current >= width {
		return ""
	}
	return strings.Repeat(" ", width-current)
}
