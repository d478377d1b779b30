package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wrap"
)

// TableOptions controls RenderTable.
type TableOptions struct {
	// Plain disables colors and bold headers.
	Plain bool
	// MaxCellWidth wraps longer cells onto extra lines. Zero means no limit.
	MaxCellWidth int
}

var headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#5f5fd7"))

const columnGap = "  "

// RenderTable writes rows under headers as aligned columns. Rows shorter than
// headers are padded with empty cells.
func RenderTable(w io.Writer, headers []string, rows [][]string, opts TableOptions) error {
	cells := make([][][]string, 0, len(rows)+1)
	cells = append(cells, splitRow(headers, len(headers), opts.MaxCellWidth))
	for _, row := range rows {
		cells = append(cells, splitRow(row, len(headers), opts.MaxCellWidth))
	}

	widths := make([]int, len(headers))
	for _, row := range cells {
		for c, lines := range row {
			for _, l := range lines {
				widths[c] = max(widths[c], lipgloss.Width(l))
			}
		}
	}

	var b strings.Builder
	for r, row := range cells {
		height := 1
		for _, lines := range row {
			height = max(height, len(lines))
		}
		for i := 0; i < height; i++ {
			var line strings.Builder
			for c, lines := range row {
				text := ""
				if i < len(lines) {
					text = lines[i]
				}
				if c < len(row)-1 {
					text += strings.Repeat(" ", widths[c]-lipgloss.Width(text)) + columnGap
				}
				line.WriteString(text)
			}
			out := strings.TrimRight(line.String(), " ")
			if !opts.Plain && r == 0 {
				out = headerStyle.Render(out)
			}
			b.WriteString(out)
			b.WriteByte('\n')
		}
	}
	_, err := fmt.Fprint(w, b.String())
	return err
}

func splitRow(row []string, n, maxWidth int) [][]string {
	out := make([][]string, n)
	for c := range out {
		cell := ""
		if c < len(row) {
			cell = SanitizeTerminal(row[c])
		}
		if maxWidth > 0 && lipgloss.Width(cell) > maxWidth {
			cell = wrap.String(cell, maxWidth)
		}
		out[c] = strings.Split(cell, "\n")
	}
	return out
}
