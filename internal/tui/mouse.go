//go:build linux

package tui

import (
	"github.com/charmbracelet/bubbles/table"
	tea "github.com/charmbracelet/bubbletea"
)

// tableTop is the screen row of the table header: tabs, filter, border.
const tableTop = 3

// returns the column index at x cells, or -1 if not found.
func getColumnAtX(x int, cols []table.Column) int {
	currentX := 0
	for i, col := range cols {
		colWidth := col.Width + 2
		if x >= currentX && x < currentX+colWidth {
			return i
		}
		currentX += colWidth
	}
	return -1
}

func (m MainModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.state != stateList || msg.Action != tea.MouseActionPress {
		return m, nil
	}
	t := &m.table
	if m.activeTab == tabPorts {
		t = &m.portTable
	}
	switch msg.Button {
	case tea.MouseButtonWheelUp:
		t.MoveUp(1)
	case tea.MouseButtonWheelDown:
		t.MoveDown(1)
	case tea.MouseButtonLeft:
		if msg.Y == tableTop {
			m.handleHeaderClick(msg.X - 1)
		}
	}
	return m, nil
}

// handleHeaderClick sorts by the clicked column, flipping direction when it
// is already the sort column.
func (m *MainModel) handleHeaderClick(x int) {
	if m.activeTab == tabProcesses {
		byIndex := []string{"pid", "ppid", "", "", "rss", "cpu", "name"}
		i := getColumnAtX(x, m.table.Columns())
		if i < 0 || byIndex[i] == "" {
			return
		}
		if m.sortCol == byIndex[i] {
			m.sortDesc = !m.sortDesc
		} else {
			m.sortCol = byIndex[i]
			m.sortDesc = true
		}
		m.sortTasks()
		m.filterTasks()
		m.table.SetColumns(m.processColumns())
		return
	}

	byIndex := []string{"pid", "proto", "port", "", "state", ""}
	i := getColumnAtX(x, m.portTable.Columns())
	if i < 0 || byIndex[i] == "" {
		return
	}
	if m.sortPortCol == byIndex[i] {
		m.sortPortDesc = !m.sortPortDesc
	} else {
		m.sortPortCol = byIndex[i]
		m.sortPortDesc = false
	}
	m.sortPorts()
	m.filterPorts()
	m.portTable.SetColumns(m.portColumns())
}
