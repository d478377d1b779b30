//go:build linux

package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

func (m MainModel) View() string {
	if m.quitting {
		return ""
	}

	outerStyle := baseStyle.
		Width(max(m.width-2, 0)).
		Height(max(m.height-2, 0)).
		Padding(0, 1)

	if m.state == stateDetail {
		header := titleStyle.Render("Process detail") + "  " + footerStyle.UnsetBorderTop().Render("esc: back  ↑/↓: scroll  q: quit")
		return outerStyle.Render(lipgloss.JoinVertical(lipgloss.Left, header, m.viewport.View()))
	}

	status := "Mode: Navigation (Press / to filter)"
	if m.input.Focused() {
		status = "Mode: Filtering (Press Esc/Enter to stop)"
	}
	if m.statusMsg != "" {
		status = errorStyle.Render(m.statusMsg)
	}

	procTab := inactiveTabStyle.Render(fmt.Sprintf("Processes (%d)", len(m.filtered)))
	portTab := inactiveTabStyle.Render(fmt.Sprintf("Ports (%d)", len(m.shown)))
	body := m.table.View()
	if m.activeTab == tabProcesses {
		procTab = activeTabStyle.Render(fmt.Sprintf("Processes (%d)", len(m.filtered)))
	} else {
		portTab = activeTabStyle.Render(fmt.Sprintf("Ports (%d)", len(m.shown)))
		body = m.portTable.View()
	}
	tabs := lipgloss.JoinHorizontal(lipgloss.Top, procTab, " ", portTab, "  ", titleStyle.Render("procfs "+m.version))

	help := []string{"tab: switch", "/: filter", "s: sort", "enter: detail", "r: reload", "q: quit"}
	footer := footerStyle.Width(max(m.width-4, 0)).Render(
		status + "  " + m.loadedAgo() + "\n" + strings.Join(help, "  "))

	return outerStyle.Render(lipgloss.JoinVertical(lipgloss.Left,
		tabs,
		m.input.View(),
		body,
		footer,
	))
}
