package output

import (
	"fmt"
	"io"
	"strings"

	"github.com/pranshuparmar/procfs/pkg/model"
)

var (
	colorResetTree   = "\033[0m"
	colorMagentaTree = "\033[35m"
	colorGreenTree   = "\033[32m"
	colorBoldTree    = "\033[2m"
)

// childLimit caps how many children PrintTree lists before summarizing.
const childLimit = 10

// PrintTree draws chain (oldest ancestor first, target last) as an indented
// tree, followed by the target's children.
func PrintTree(w io.Writer, chain []model.TaskStat, children []model.TaskStat, colorEnabled bool) {
	colorReset := ""
	colorMagenta := ""
	colorGreen := ""
	colorBold := ""
	if colorEnabled {
		colorReset = colorResetTree
		colorMagenta = colorMagentaTree
		colorGreen = colorGreenTree
		colorBold = colorBoldTree
	}

	for i, p := range chain {
		prefix := strings.Repeat("  ", i)
		if i > 0 {
			prefix += colorMagenta + "└─ " + colorReset
		}
		cmdColor := ""
		if i == len(chain)-1 {
			// Highlight the target
			cmdColor = colorGreen
		}
		fmt.Fprintf(w, "%s%s%s%s (%spid %d%s)\n", prefix, cmdColor, SanitizeTerminal(p.Comm), colorReset, colorBold, p.PID, colorReset)
	}

	if len(children) == 0 {
		return
	}
	basePrefix := strings.Repeat("  ", len(chain))
	count := len(children)
	for i, child := range children {
		if i >= childLimit {
			fmt.Fprintf(w, "%s%s└─ %s... and %d more\n", basePrefix, colorMagenta, colorReset, count-childLimit)
			break
		}
		connector := "├─ "
		if i == count-1 {
			connector = "└─ "
		}
		fmt.Fprintf(w, "%s%s%s%s%s (%spid %d%s)\n", basePrefix, colorMagenta, connector, colorReset, SanitizeTerminal(child.Comm), colorBold, child.PID, colorReset)
	}
}
