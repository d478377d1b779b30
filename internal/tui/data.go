//go:build linux

package tui

import (
	"cmp"
	"fmt"
	"maps"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wrap"

	"github.com/pranshuparmar/procfs/internal/output"
	"github.com/pranshuparmar/procfs/internal/proc"
	"github.com/pranshuparmar/procfs/internal/source"
	"github.com/pranshuparmar/procfs/pkg/model"
)

type (
	tasksMsg  []taskRow
	portsMsg  []model.OpenPort
	detailMsg string
	errMsg    struct{ err error }
)

func (m MainModel) loadTasks() tea.Cmd {
	fsys := m.fsys
	return func() tea.Msg {
		stats, err := fsys.Snapshot()
		if err != nil {
			return errMsg{err}
		}
		up, err := fsys.Uptime()
		if err != nil {
			return errMsg{err}
		}

		selfPID := int32(os.Getpid())
		rows := make([]taskRow, 0, len(stats))
		for _, st := range stats {
			if st.PID == selfPID {
				continue
			}
			rows = append(rows, taskRow{stat: st, usage: proc.ComputeUsage(st, up)})
		}
		return tasksMsg(rows)
	}
}

func (m MainModel) loadPorts() tea.Cmd {
	fsys := m.fsys
	return func() tea.Msg {
		ports, err := fsys.OpenPorts()
		if err != nil {
			return errMsg{err}
		}
		return portsMsg(ports)
	}
}

func (m MainModel) loadDetail(pid int) tea.Cmd {
	fsys, width := m.fsys, m.width
	return func() tea.Msg {
		return detailMsg(buildDetail(fsys, pid, width))
	}
}

// buildDetail gathers everything about pid that can be read without
// special privileges. Sections that fail are reported inline.
func buildDetail(fsys proc.FS, pid, width int) string {
	var b strings.Builder
	wrapWidth := max(width-4, 40)

	section := func(title string) {
		b.WriteString("\n" + titleStyle.Render(title) + "\n")
	}
	failed := func(err error) {
		b.WriteString(errorStyle.Render(err.Error()) + "\n")
	}

	if chain, err := fsys.Ancestry(pid); err == nil {
		section("Ancestry")
		output.RenderShort(&b, chain, false)
		o := source.Detect(fsys, chain)
		fmt.Fprintf(&b, "Started by: %s", o.Type)
		if o.Name != "" {
			fmt.Fprintf(&b, " (%s)", output.SanitizeTerminal(o.Name))
		}
		b.WriteString("\n")
	}

	section("Status")
	if st, err := fsys.Status(pid); err != nil {
		failed(err)
	} else {
		fmt.Fprintf(&b, "Name: %s  State: %s  Threads: %d\n", output.SanitizeTerminal(st.Name), st.State, st.Threads)
		fmt.Fprintf(&b, "UID: %d/%d/%d/%d  GID: %d/%d/%d/%d\n",
			st.UID.Real, st.UID.Effective, st.UID.SavedSet, st.UID.Filesystem,
			st.GID.Real, st.GID.Effective, st.GID.SavedSet, st.GID.Filesystem)
		fmt.Fprintf(&b, "VmRSS: %d kB  VmSize: %d kB  VmSwap: %d kB\n", st.VMRSS, st.VMSize, st.VMSwap)
		if caps := st.CapEff.Names(); len(caps) > 0 {
			b.WriteString(wrap.String("CapEff: "+strings.Join(caps, " "), wrapWidth) + "\n")
		}
	}

	section("Command")
	if args, err := fsys.Cmdline(pid); err != nil {
		failed(err)
	} else {
		b.WriteString(wrap.String(output.SanitizeTerminal(strings.Join(args, " ")), wrapWidth) + "\n")
	}
	if exe, err := fsys.Exe(pid); err == nil {
		fmt.Fprintf(&b, "exe: %s\n", output.SanitizeTerminal(exe))
	}
	if cwd, err := fsys.Cwd(pid); err == nil {
		fmt.Fprintf(&b, "cwd: %s\n", output.SanitizeTerminal(cwd))
	}

	section("Descriptors")
	if fds, err := fsys.FDs(pid); err != nil {
		failed(err)
	} else {
		var rows [][]string
		for _, fd := range slices.Sorted(maps.Keys(fds)) {
			rows = append(rows, []string{strconv.Itoa(fd), fds[fd]})
		}
		if err := output.RenderTable(&b, []string{"FD", "TARGET"}, rows, output.TableOptions{Plain: true, MaxCellWidth: wrapWidth - 8}); err != nil {
			failed(err)
		}
	}
	return b.String()
}

func (m *MainModel) sortTasks() {
	slices.SortStableFunc(m.tasks, func(a, b taskRow) int {
		var c int
		switch m.sortCol {
		case "pid":
			c = cmp.Compare(a.stat.PID, b.stat.PID)
		case "ppid":
			c = cmp.Compare(a.stat.PPID, b.stat.PPID)
		case "name":
			c = strings.Compare(strings.ToLower(a.stat.Comm), strings.ToLower(b.stat.Comm))
		case "cpu":
			c = cmp.Compare(a.usage.CPUPercent, b.usage.CPUPercent)
		default:
			c = cmp.Compare(a.usage.RSSBytes, b.usage.RSSBytes)
		}
		if m.sortDesc {
			return -c
		}
		return c
	})
}

func (m *MainModel) sortPorts() {
	slices.SortStableFunc(m.ports, func(a, b model.OpenPort) int {
		var c int
		switch m.sortPortCol {
		case "pid":
			c = cmp.Compare(a.PID, b.PID)
		case "proto":
			c = strings.Compare(a.Protocol, b.Protocol)
		case "state":
			c = cmp.Compare(a.Socket.State, b.Socket.State)
		default:
			c = cmp.Compare(a.Socket.LocalPort, b.Socket.LocalPort)
		}
		if m.sortPortDesc {
			return -c
		}
		return c
	})
}

func (m *MainModel) filterTasks() {
	q := strings.ToLower(m.input.Value())
	m.filtered = m.filtered[:0]
	rows := make([]table.Row, 0, len(m.tasks))
	for _, t := range m.tasks {
		row := taskTableRow(t)
		if q != "" && !rowMatches(row, q) {
			continue
		}
		m.filtered = append(m.filtered, t)
		rows = append(rows, row)
	}
	m.table.SetRows(rows)
	if m.table.Cursor() >= len(rows) {
		m.table.SetCursor(max(len(rows)-1, 0))
	}
}

func (m *MainModel) filterPorts() {
	q := strings.ToLower(m.input.Value())
	m.shown = m.shown[:0]
	rows := make([]table.Row, 0, len(m.ports))
	for _, p := range m.ports {
		row := portTableRow(p)
		if q != "" && !rowMatches(row, q) {
			continue
		}
		m.shown = append(m.shown, p)
		rows = append(rows, row)
	}
	m.portTable.SetRows(rows)
	if m.portTable.Cursor() >= len(rows) {
		m.portTable.SetCursor(max(len(rows)-1, 0))
	}
}

func rowMatches(row table.Row, q string) bool {
	for _, cell := range row {
		if strings.Contains(strings.ToLower(cell), q) {
			return true
		}
	}
	return false
}

func taskTableRow(t taskRow) table.Row {
	return table.Row{
		strconv.Itoa(int(t.stat.PID)),
		strconv.Itoa(int(t.stat.PPID)),
		t.stat.State.String(),
		strconv.FormatInt(t.stat.NumThreads, 10),
		output.FormatBytes(t.usage.RSSBytes),
		fmt.Sprintf("%.1f", t.usage.CPUPercent),
		t.stat.Comm,
	}
}

func portTableRow(p model.OpenPort) table.Row {
	s := p.Socket
	return table.Row{
		strconv.Itoa(p.PID),
		p.Protocol,
		output.Endpoint(s.LocalIP, s.LocalPort),
		output.Endpoint(s.RemoteIP, s.RemotePort),
		proc.TCPStateName(s.State),
		strconv.FormatUint(s.Inode, 10),
	}
}

func (m MainModel) processColumns() []table.Column {
	return []table.Column{
		{Title: m.sortTitle("PID", "pid"), Width: 8},
		{Title: m.sortTitle("PPID", "ppid"), Width: 8},
		{Title: "State", Width: 13},
		{Title: "Thr", Width: 5},
		{Title: m.sortTitle("RSS", "rss"), Width: 11},
		{Title: m.sortTitle("CPU%", "cpu"), Width: 7},
		{Title: m.sortTitle("Name", "name"), Width: 24},
	}
}

func (m MainModel) portColumns() []table.Column {
	return []table.Column{
		{Title: m.sortPortTitle("PID", "pid"), Width: 8},
		{Title: m.sortPortTitle("Proto", "proto"), Width: 6},
		{Title: m.sortPortTitle("Local", "port"), Width: 30},
		{Title: "Remote", Width: 30},
		{Title: m.sortPortTitle("State", "state"), Width: 12},
		{Title: "Inode", Width: 10},
	}
}

func (m MainModel) sortTitle(title, col string) string {
	return withArrow(title, m.sortCol == col, m.sortDesc)
}

func (m MainModel) sortPortTitle(title, col string) string {
	return withArrow(title, m.sortPortCol == col, m.sortPortDesc)
}

func withArrow(title string, active, desc bool) string {
	switch {
	case !active:
		return title
	case desc:
		return title + " ↓"
	}
	return title + " ↑"
}

func (m MainModel) loadedAgo() string {
	if m.loadedAt.IsZero() {
		return "loading..."
	}
	return "snapshot " + m.loadedAt.Format(time.TimeOnly)
}
