package output

import (
	"fmt"
	"io"

	"github.com/pranshuparmar/procfs/pkg/model"
)

var (
	colorResetShort   = "\033[0m"
	colorMagentaShort = "\033[35m"
	colorBoldShort    = "\033[2m"
	colorGreenShort   = "\033[32m"
)

// RenderShort prints the ancestry chain on one line: "init (pid 1) → sshd (pid 812)".
func RenderShort(w io.Writer, chain []model.TaskStat, colorEnabled bool) {
	for i, p := range chain {
		if i > 0 {
			if colorEnabled {
				fmt.Fprint(w, colorMagentaShort+" → "+colorResetShort)
			} else {
				fmt.Fprint(w, " → ")
			}
		}

		if colorEnabled {
			nameColor := ""
			if i == len(chain)-1 {
				nameColor = colorGreenShort
			}
			fmt.Fprintf(w, "%s%s%s (%spid %d%s)", nameColor, SanitizeTerminal(p.Comm), colorResetShort, colorBoldShort, p.PID, colorResetShort)
		} else {
			fmt.Fprintf(w, "%s (pid %d)", SanitizeTerminal(p.Comm), p.PID)
		}
	}
	fmt.Fprintln(w)
}
