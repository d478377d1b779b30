//go:build linux

package tui

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pranshuparmar/procfs/internal/proc"
)

func fixtureFS(t *testing.T) proc.FS {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"1/stat":   "1 (systemd) S 0 1 1 0 -1 0 0 0 0 0 10 10 0 0 20 0 1 0 100 0 300" + strings.Repeat(" 0", 15),
		"812/stat": "812 (sshd) S 1 812 812 0 -1 0 0 0 0 0 5 5 0 0 20 0 1 0 200 0 900" + strings.Repeat(" 0", 15),
		"uptime":   "100.00 50.00\n",
		"net/tcp": "  sl  local_address rem_address   st tx_queue rx_queue tr tm->when retrnsmt   uid  timeout inode\n" +
			"   0: 00000000:0016 00000000:0000 0A 00000000:00000000 00:00000000 00000000     0        0 555 1 0000000000000000 100 0 0 10 0\n",
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	require.NoError(t, os.MkdirAll(filepath.Join(root, "812", "fd"), 0o755))
	require.NoError(t, os.Symlink("socket:[555]", filepath.Join(root, "812", "fd", "3")))
	return proc.New(root, 0)
}

func key(s string) tea.KeyMsg {
	switch s {
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func loaded(t *testing.T) MainModel {
	t.Helper()
	m := InitialModel(fixtureFS(t), "test")
	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	m = next.(MainModel)

	next, _ = m.Update(m.loadTasks()())
	m = next.(MainModel)
	next, _ = m.Update(m.loadPorts()())
	return next.(MainModel)
}

func TestSnapshotLoad(t *testing.T) {
	m := loaded(t)
	require.Len(t, m.filtered, 2)
	// Sorted by RSS, largest first.
	assert.Equal(t, "sshd", m.filtered[0].stat.Comm)
	require.Len(t, m.shown, 1)
	assert.Equal(t, 812, m.shown[0].PID)
	assert.Equal(t, uint16(22), m.shown[0].Socket.LocalPort)
	assert.Contains(t, m.View(), "Processes (2)")
}

func TestReloadIsManual(t *testing.T) {
	m := loaded(t)

	_, cmd := m.Update(key("j"))
	if cmd != nil {
		_, isBatch := cmd().(tea.BatchMsg)
		assert.False(t, isBatch)
	}

	_, cmd = m.Update(key("r"))
	require.NotNil(t, cmd)
	batch, ok := cmd().(tea.BatchMsg)
	require.True(t, ok)
	assert.Len(t, batch, 2)
}

func TestTabAndFilter(t *testing.T) {
	m := loaded(t)

	next, _ := m.Update(key("tab"))
	m = next.(MainModel)
	assert.Equal(t, tabPorts, m.activeTab)
	assert.Contains(t, m.View(), "0.0.0.0:22")

	next, _ = m.Update(key("tab"))
	m = next.(MainModel)
	next, _ = m.Update(key("/"))
	m = next.(MainModel)
	require.True(t, m.input.Focused())
	for _, r := range "sys" {
		next, _ = m.Update(key(string(r)))
		m = next.(MainModel)
	}
	require.Len(t, m.filtered, 1)
	assert.Equal(t, "systemd", m.filtered[0].stat.Comm)

	next, _ = m.Update(key("esc"))
	m = next.(MainModel)
	assert.False(t, m.input.Focused())
	assert.Len(t, m.filtered, 2)
}

func TestSortCycle(t *testing.T) {
	m := loaded(t)
	next, _ := m.Update(key("s"))
	m = next.(MainModel)
	assert.Equal(t, "cpu", m.sortCol)

	next, _ = m.Update(key("s"))
	m = next.(MainModel)
	assert.Equal(t, "name", m.sortCol)
	assert.Equal(t, "sshd", m.filtered[0].stat.Comm)
	assert.Equal(t, "Name ↑", m.table.Columns()[6].Title)
}

func TestDetail(t *testing.T) {
	m := loaded(t)
	next, cmd := m.Update(key("enter"))
	m = next.(MainModel)
	require.NotNil(t, cmd)
	assert.Equal(t, stateDetail, m.state)

	msg := cmd()
	detail, ok := msg.(detailMsg)
	require.True(t, ok)
	assert.Contains(t, string(detail), "systemd (pid 1) → sshd (pid 812)")
	assert.Contains(t, string(detail), "Started by: systemd (systemd)")
	assert.Contains(t, string(detail), "socket:[555]")

	next, _ = m.Update(key("esc"))
	assert.Equal(t, stateList, next.(MainModel).state)
}

func TestDetailEscapesLinkTargets(t *testing.T) {
	fsys := fixtureFS(t)
	require.NoError(t, os.Symlink("/tmp/\x1b[31mevil", filepath.Join(fsys.Root(), "812", "exe")))
	require.NoError(t, os.Symlink("/srv/\x07bell", filepath.Join(fsys.Root(), "812", "cwd")))

	detail := buildDetail(fsys, 812, 120)
	assert.Contains(t, detail, `exe: /tmp/\x1b[31mevil`)
	assert.Contains(t, detail, `cwd: /srv/\x07bell`)
	assert.NotContains(t, detail, "\x1b[31mevil")
	assert.NotContains(t, detail, "\x07")
}
