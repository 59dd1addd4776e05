// Package display holds the small amount of terminal-formatting code
// mavctl needs: plain fmt-based column alignment with fatih/color
// highlighting, not a TUI framework, matching the teacher CLI's approach
// of formatting output directly rather than through a display library.
package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

var (
	header = color.New(color.FgHiWhite, color.Bold)
	dim    = color.New(color.FgHiBlack)
	warn   = color.New(color.FgYellow)
)

// MessageTable prints one row per message: id, name, base/max payload
// length, and a yellow deprecation/WIP marker when applicable (a dimmed
// "-" otherwise).
func MessageTable(w io.Writer, rows [][5]string) {
	widths := [5]int{2, 4, 4, 3, 0}
	for _, r := range rows {
		for i, col := range r[:4] {
			if len(col) > widths[i] {
				widths[i] = len(col)
			}
		}
	}

	header.Fprintln(w, pad("ID", widths[0]), pad("NAME", widths[1]), pad("BASE", widths[2]), pad("MAX", widths[3]), "NOTE")
	for _, r := range rows {
		note := r[4]
		fmt.Fprint(w, pad(r[0], widths[0]), " ", pad(r[1], widths[1]), " ", pad(r[2], widths[2]), " ", pad(r[3], widths[3]), " ")
		if note != "" {
			warn.Fprintln(w, note)
		} else {
			dim.Fprintln(w, "-")
		}
	}
}

func pad(s string, width int) string {
	if len(s) >= width {
		return s
	}
	return s + strings.Repeat(" ", width-len(s))
}
