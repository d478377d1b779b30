//go:build linux

package tui

import (
	"strconv"
	"time"

	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

var processSortCols = []string{"pid", "ppid", "rss", "cpu", "name"}
var portSortCols = []string{"port", "proto", "state", "pid"}

func (m MainModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		h := max(m.height-8, 3)
		m.table.SetHeight(h)
		m.portTable.SetHeight(h)
		m.viewport.Width = m.width
		m.viewport.Height = max(m.height-4, 3)
		return m, nil

	case tasksMsg:
		m.tasks = msg
		m.loadedAt = time.Now()
		m.sortTasks()
		m.filterTasks()
		return m, nil

	case portsMsg:
		m.ports = msg
		m.sortPorts()
		m.filterPorts()
		return m, nil

	case detailMsg:
		m.viewport.SetContent(string(msg))
		m.viewport.GotoTop()
		return m, nil

	case errMsg:
		m.statusMsg = msg.err.Error()
		return m, nil

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case tea.KeyMsg:
		if m.input.Focused() {
			return m.updateFilter(msg)
		}
		if m.state == stateDetail {
			return m.updateDetail(msg)
		}
		return m.updateList(msg)
	}
	return m, nil
}

func (m MainModel) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "r":
		m.statusMsg = ""
		return m, tea.Batch(m.loadTasks(), m.loadPorts())
	case "tab":
		if m.activeTab == tabProcesses {
			m.activeTab = tabPorts
		} else {
			m.activeTab = tabProcesses
		}
		return m, nil
	case "/":
		return m, m.input.Focus()
	case "s":
		m.cycleSort()
		return m, nil
	case "enter":
		pid, ok := m.selectedPID()
		if !ok {
			return m, nil
		}
		m.state = stateDetail
		m.viewport.SetContent("loading...")
		return m, m.loadDetail(pid)
	}

	var cmd tea.Cmd
	if m.activeTab == tabProcesses {
		m.table, cmd = m.table.Update(msg)
	} else {
		m.portTable, cmd = m.portTable.Update(msg)
	}
	return m, cmd
}

func (m MainModel) updateFilter(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.input.SetValue("")
		m.input.Blur()
	case "enter":
		m.input.Blur()
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		m.filterTasks()
		m.filterPorts()
		return m, cmd
	}
	m.filterTasks()
	m.filterPorts()
	return m, nil
}

func (m MainModel) updateDetail(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case "esc", "backspace":
		m.state = stateList
		return m, nil
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *MainModel) cycleSort() {
	if m.activeTab == tabProcesses {
		m.sortCol = next(processSortCols, m.sortCol)
		m.sortDesc = m.sortCol == "rss" || m.sortCol == "cpu"
		m.sortTasks()
		m.filterTasks()
		m.table.SetColumns(m.processColumns())
		return
	}
	m.sortPortCol = next(portSortCols, m.sortPortCol)
	m.sortPorts()
	m.filterPorts()
	m.portTable.SetColumns(m.portColumns())
}

func next(cols []string, cur string) string {
	for i, c := range cols {
		if c == cur {
			return cols[(i+1)%len(cols)]
		}
	}
	return cols[0]
}

func (m MainModel) selectedPID() (int, bool) {
	var row table.Row
	if m.activeTab == tabProcesses {
		row = m.table.SelectedRow()
	} else {
		row = m.portTable.SelectedRow()
	}
	if len(row) == 0 {
		return 0, false
	}
	pid, err := strconv.Atoi(row[0])
	return pid, err == nil
}
