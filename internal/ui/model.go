package ui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mdoksa76/event-planner/internal/category"
	"github.com/mdoksa76/event-planner/internal/config"
	"github.com/mdoksa76/event-planner/internal/dateutil"
	"github.com/mdoksa76/event-planner/internal/directory"
	"github.com/mdoksa76/event-planner/internal/logging"
	"github.com/mdoksa76/event-planner/internal/store"
)

type ViewMode int

const (
	ViewMonth ViewMode = iota
	ViewUpcoming
	ViewHelp
	ViewEditor
	ViewConfirmDelete
)

type tickMsg time.Time

type Model struct {
	cfg      *config.Config
	dir      *directory.Directory
	registry *category.Registry
	log      *logging.Logger
	watcher  *store.Watcher

	mode          ViewMode
	selectedDate  time.Time
	selectedEvent int

	width   int
	height  int
	message string

	editor editorState

	styles Styles
}

type Styles struct {
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Today    lipgloss.Style
	Weekend  lipgloss.Style
	Marker   lipgloss.Style
	Header   lipgloss.Style
	Help     lipgloss.Style
	Message  lipgloss.Style
	Error    lipgloss.Style
	Border   lipgloss.Style
}

func DefaultStyles() Styles {
	return Styles{
		Normal: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")),
		Selected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("235")).
			Background(lipgloss.Color("220")).
			Bold(true),
		Today: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true),
		Weekend: lipgloss.NewStyle().
			Foreground(lipgloss.Color("39")),
		Marker: lipgloss.NewStyle().
			Foreground(lipgloss.Color("40")),
		Header: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Bold(true).
			Underline(true),
		Help: lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")),
		Message: lipgloss.NewStyle().
			Foreground(lipgloss.Color("220")).
			Background(lipgloss.Color("235")).
			Padding(0, 1),
		Error: lipgloss.NewStyle().
			Foreground(lipgloss.Color("196")).
			Bold(true),
		Border: lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("238")),
	}
}

// NewModel builds the TUI over an already-loaded directory. A data-dir
// watcher keeps the directory current when day files change on disk.
func NewModel(cfg *config.Config, dir *directory.Directory, registry *category.Registry, log *logging.Logger) *Model {
	m := &Model{
		cfg:          cfg,
		dir:          dir,
		registry:     registry,
		log:          log,
		mode:         ViewMonth,
		selectedDate: dateutil.Normalize(time.Now()),
		styles:       DefaultStyles(),
	}

	watcher, err := store.NewWatcher(cfg.DataDir, func(dayKey string) {
		dir.ReloadDay(dayKey)
	})
	if err != nil {
		log.Error("watching data directory", err, "dir", cfg.DataDir)
	} else {
		m.watcher = watcher
	}

	return m
}

func (m *Model) Init() tea.Cmd {
	return m.tickCmd()
}

// tickCmd re-renders periodically so the today marker and the event list
// stay current without user input.
func (m *Model) tickCmd() tea.Cmd {
	return tea.Tick(30*time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tickMsg:
		return m, m.tickCmd()

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case ViewEditor:
		return m.updateEditor(msg)
	case ViewConfirmDelete:
		return m.updateConfirmDelete(msg)
	case ViewHelp, ViewUpcoming:
		switch msg.String() {
		case "q", "esc", "enter":
			m.mode = ViewMonth
		}
		return m, nil
	}

	m.message = ""

	switch msg.String() {
	case "q", "ctrl+c":
		if m.watcher != nil {
			m.watcher.Close()
		}
		return m, tea.Quit

	case "left", "h":
		m.moveSelection(-1)
	case "right", "l":
		m.moveSelection(1)
	case "down", "j":
		m.moveSelection(7)
	case "up", "k":
		m.moveSelection(-7)
	case "H", "pgup":
		m.selectedDate = m.selectedDate.AddDate(0, -1, 0)
		m.selectedEvent = 0
	case "L", "pgdown":
		m.selectedDate = m.selectedDate.AddDate(0, 1, 0)
		m.selectedEvent = 0
	case "t":
		m.selectedDate = dateutil.Normalize(time.Now())
		m.selectedEvent = 0

	case "tab":
		if count := m.dir.EventCount(m.selectedDate); count > 0 {
			m.selectedEvent = (m.selectedEvent + 1) % count
		}
	case "shift+tab":
		if count := m.dir.EventCount(m.selectedDate); count > 0 {
			m.selectedEvent = (m.selectedEvent - 1 + count) % count
		}

	case "n":
		m.openEditor(-1)
	case "e":
		if m.dir.EventCount(m.selectedDate) > 0 {
			m.openEditor(m.selectedEvent)
		}
	case "d":
		if m.dir.EventCount(m.selectedDate) > 0 {
			m.mode = ViewConfirmDelete
		}

	case "u":
		m.mode = ViewUpcoming
	case "?":
		m.mode = ViewHelp
	case "r":
		m.dir.LoadAll()
		m.message = "Reloaded"
	}

	return m, nil
}

func (m *Model) moveSelection(days int) {
	m.selectedDate = m.selectedDate.AddDate(0, 0, days)
	m.selectedEvent = 0
}

func (m *Model) updateConfirmDelete(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		if m.dir.DeleteEvent(m.selectedDate, m.selectedEvent) {
			m.message = "Event deleted"
		} else {
			m.message = "Delete failed"
		}
		if m.selectedEvent > 0 {
			m.selectedEvent--
		}
		m.mode = ViewMonth
	case "n", "N", "esc", "q":
		m.mode = ViewMonth
	}
	return m, nil
}
