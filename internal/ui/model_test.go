package ui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mdoksa76/event-planner/internal/category"
	"github.com/mdoksa76/event-planner/internal/config"
	"github.com/mdoksa76/event-planner/internal/dateutil"
	"github.com/mdoksa76/event-planner/internal/directory"
	"github.com/mdoksa76/event-planner/internal/event"
	"github.com/mdoksa76/event-planner/internal/logging"
	"github.com/mdoksa76/event-planner/internal/store"
)

func newTestModel(t *testing.T) *Model {
	t.Helper()

	cfg := config.DefaultConfig()
	cfg.DataDir = t.TempDir()

	s := store.New(cfg.DataDir, logging.Discard())
	dir := directory.New(s, logging.Discard())
	dir.LoadAll()

	m := NewModel(cfg, dir, category.NewRegistry(nil), logging.Discard())
	t.Cleanup(func() {
		if m.watcher != nil {
			m.watcher.Close()
		}
	})
	return m
}

func key(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestDayNavigation(t *testing.T) {
	m := newTestModel(t)
	start := m.selectedDate

	m.Update(key("l"))
	if got := m.selectedDate; !got.Equal(start.AddDate(0, 0, 1)) {
		t.Errorf("After l: got %v, want next day", got)
	}

	m.Update(key("j"))
	if got := m.selectedDate; !got.Equal(start.AddDate(0, 0, 8)) {
		t.Errorf("After j: got %v, want one week later", got)
	}

	m.Update(key("t"))
	if !dateutil.SameDay(m.selectedDate, time.Now()) {
		t.Errorf("After t: got %v, want today", m.selectedDate)
	}
}

func TestEditorAddsEvent(t *testing.T) {
	m := newTestModel(t)

	m.Update(key("n"))
	if m.mode != ViewEditor {
		t.Fatalf("Mode after n: got %v, want ViewEditor", m.mode)
	}

	for _, r := range "Dentist" {
		m.Update(key(string(r)))
	}
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != ViewMonth {
		t.Fatalf("Editor did not close: %q", m.editor.err)
	}

	events := m.dir.EventsForDay(m.selectedDate)
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].Title != "Dentist" {
		t.Errorf("Title: got %q, want %q", events[0].Title, "Dentist")
	}
	if got := events[0].TimeRange(); got != "09:00–10:00" {
		t.Errorf("Default time range: got %q", got)
	}
}

func TestEditorZeroLeadIsAnOverride(t *testing.T) {
	m := newTestModel(t)

	m.Update(key("n"))
	for _, r := range "Launch" {
		m.Update(key(string(r)))
	}
	if m.editor.lead != -1 {
		t.Fatalf("New event lead: got %d, want -1 (default)", m.editor.lead)
	}

	// Move focus to the lead field and step once off the default position.
	for i := 0; i < int(fieldLead-fieldTitle); i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyRight})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	events := m.dir.EventsForDay(m.selectedDate)
	if len(events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(events))
	}
	if events[0].NotificationMinutes == nil || *events[0].NotificationMinutes != 0 {
		t.Fatalf("Zero lead should persist as an override, got %v", events[0].NotificationMinutes)
	}

	// Reopening the editor shows the stored override, not the default.
	m.Update(key("e"))
	if m.editor.lead != 0 {
		t.Errorf("Editor lead after reopen: got %d, want 0", m.editor.lead)
	}

	// Stepping back below zero returns to the default position.
	for i := 0; i < int(fieldLead-fieldTitle); i++ {
		m.Update(tea.KeyMsg{Type: tea.KeyTab})
	}
	m.Update(tea.KeyMsg{Type: tea.KeyLeft})
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	events = m.dir.EventsForDay(m.selectedDate)
	if events[0].NotificationMinutes != nil {
		t.Errorf("Default position should clear the override, got %v", *events[0].NotificationMinutes)
	}
}

func TestEditorRejectsEmptyTitle(t *testing.T) {
	m := newTestModel(t)

	m.Update(key("n"))
	m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if m.mode != ViewEditor {
		t.Fatal("Editor should stay open on invalid input")
	}
	if m.editor.err != "Title is required" {
		t.Errorf("Error: got %q, want %q", m.editor.err, "Title is required")
	}
	if got := len(m.dir.EventsForDay(m.selectedDate)); got != 0 {
		t.Errorf("No event should be stored, got %d", got)
	}
}

func TestDeleteConfirmation(t *testing.T) {
	m := newTestModel(t)
	m.dir.AddEvent(m.selectedDate, event.Event{
		Title: "Gone soon",
		Start: dateutil.TimeOfDay{Hour: 9},
		End:   dateutil.TimeOfDay{Hour: 10},
	})

	m.Update(key("d"))
	if m.mode != ViewConfirmDelete {
		t.Fatalf("Mode after d: got %v, want ViewConfirmDelete", m.mode)
	}

	m.Update(key("n"))
	if got := m.dir.EventCount(m.selectedDate); got != 1 {
		t.Fatalf("Declined delete removed the event, count %d", got)
	}

	m.Update(key("d"))
	m.Update(key("y"))
	if got := m.dir.EventCount(m.selectedDate); got != 0 {
		t.Errorf("Confirmed delete left %d events", got)
	}
}

func TestViewRendersSelectedDay(t *testing.T) {
	m := newTestModel(t)
	m.width, m.height = 100, 30

	out := m.View()
	if out == "" {
		t.Fatal("Empty view")
	}
	if want := dateutil.FormatDayDisplay(m.selectedDate); !strings.Contains(out, want) {
		t.Errorf("View missing day header %q", want)
	}
}
