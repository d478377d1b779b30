//go:build linux

package tui

import (
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/pranshuparmar/procfs/internal/proc"
	"github.com/pranshuparmar/procfs/pkg/model"
)

var (
	baseStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("#585858")) // Dark Gray

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")). // White
			Background(lipgloss.Color("#7D56F4")). // Purple
			Padding(0, 1)

	tableHeaderStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#5f5fd7")). // Purple/Blue
				Bold(true).
				Border(lipgloss.NormalBorder(), false, false, true, false).
				BorderForeground(lipgloss.Color("#585858")). // Dark Gray
				Padding(0, 1)

	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#5f5fd7")). // Purple/Blue
			Bold(true)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#767676")). // Dimmed Gray
			Border(lipgloss.NormalBorder(), true, false, false, false).
			BorderForeground(lipgloss.Color("#585858")). // Dark Gray
			Padding(0, 1)

	activeTabStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ffffff")). // White
			Background(lipgloss.Color("#22aa22")). // Green
			Padding(0, 1).
			Bold(true)

	inactiveTabStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("#ffffff")). // White
				Background(lipgloss.Color("#767676")). // Dimmed Gray
				Padding(0, 1)

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#ff5f5f")). // Soft red
			Bold(true)
)

type tab int

const (
	tabProcesses tab = iota
	tabPorts
)

type modelState int

const (
	stateList modelState = iota
	stateDetail
)

// MainModel browses one snapshot of /proc at a time. Nothing is re-read
// until the user asks for it with 'r'.
type MainModel struct {
	fsys proc.FS

	state     modelState
	activeTab tab
	table     table.Model
	portTable table.Model
	input     textinput.Model
	viewport  viewport.Model

	tasks    []taskRow
	filtered []taskRow
	ports    []model.OpenPort
	shown    []model.OpenPort

	sortCol      string
	sortDesc     bool
	sortPortCol  string
	sortPortDesc bool

	loadedAt  time.Time
	statusMsg string // transient status/error message shown in status line
	width     int
	height    int
	quitting  bool
	version   string
}

// taskRow is a stat record plus what the list derives from it.
type taskRow struct {
	stat  model.TaskStat
	usage proc.Usage
}

func newTable(cols []table.Column) table.Model {
	t := table.New(
		table.WithColumns(cols),
		table.WithFocused(true),
		table.WithHeight(20),
	)
	s := table.DefaultStyles()
	s.Header = tableHeaderStyle
	s.Selected = s.Selected.
		Foreground(lipgloss.Color("#ffffaf")). // Light Yellow
		Background(lipgloss.Color("#5f00d7")). // Purple
		Bold(false)
	t.SetStyles(s)
	return t
}

func InitialModel(fsys proc.FS, version string) MainModel {
	ti := textinput.New()
	ti.Placeholder = "Filter PID, name, state, port..."
	ti.CharLimit = 156
	ti.Width = 50
	ti.Prompt = "> "
	ti.PromptStyle = promptStyle
	ti.Blur()

	m := MainModel{
		fsys:        fsys,
		state:       stateList,
		activeTab:   tabProcesses,
		input:       ti,
		viewport:    viewport.New(0, 0),
		sortCol:     "rss",
		sortDesc:    true,
		sortPortCol: "port",
		version:     version,
	}
	m.table = newTable(m.processColumns())
	m.portTable = newTable(m.portColumns())
	return m
}

func Start(fsys proc.FS, version string) error {
	if os.Getenv("COLORTERM") == "" {
		os.Setenv("COLORTERM", "truecolor") //nolint:errcheck
	}

	p := tea.NewProgram(InitialModel(fsys, version), tea.WithAltScreen(), tea.WithMouseCellMotion())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running tui: %w", err)
	}
	return nil
}

func (m MainModel) Init() tea.Cmd {
	return tea.Batch(m.loadTasks(), m.loadPorts())
}
