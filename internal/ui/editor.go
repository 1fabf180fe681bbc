package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mdoksa76/event-planner/internal/dateutil"
	"github.com/mdoksa76/event-planner/internal/event"
)

type editorField int

const (
	fieldTitle editorField = iota
	fieldStart
	fieldEnd
	fieldDescription
	fieldCategory
	fieldNotify
	fieldLead
	fieldCount
)

type editorState struct {
	// index is the position of the event being edited in the day's sorted
	// list, or -1 when creating a new one.
	index int
	focus editorField

	title       string
	start       string
	end         string
	description string
	categoryIdx int
	notify      bool

	// lead is the per-event notification lead in minutes; -1 means no
	// override, so the global default applies. Zero is a real override
	// meaning "at start time".
	lead int

	err string
}

// openEditor seeds the editor from the event at index, or with defaults when
// index is -1.
func (m *Model) openEditor(index int) {
	cats := m.registry.All()

	st := editorState{
		index:  index,
		start:  "09:00",
		end:    "10:00",
		notify: true,
		lead:   -1,
	}

	if index >= 0 {
		events := m.dir.EventsForDay(m.selectedDate)
		if index >= len(events) {
			return
		}
		ev := events[index]
		st.title = ev.Title
		st.start = ev.Start.Format()
		st.end = ev.End.Format()
		st.description = ev.Description
		st.notify = ev.ShowNotification
		if ev.NotificationMinutes != nil {
			st.lead = *ev.NotificationMinutes
		}
		for i, c := range cats {
			if c.ID == ev.Category {
				st.categoryIdx = i
				break
			}
		}
	}

	m.editor = st
	m.mode = ViewEditor
}

func (m *Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := &m.editor

	switch msg.String() {
	case "esc":
		m.mode = ViewMonth
		return m, nil

	case "enter":
		if m.saveEditor() {
			m.mode = ViewMonth
		}
		return m, nil

	case "tab", "down":
		st.focus = (st.focus + 1) % fieldCount
		return m, nil
	case "shift+tab", "up":
		st.focus = (st.focus - 1 + fieldCount) % fieldCount
		return m, nil
	}

	switch st.focus {
	case fieldCategory:
		switch msg.String() {
		case "left", "h":
			n := len(m.registry.All())
			st.categoryIdx = (st.categoryIdx - 1 + n) % n
		case "right", "l", " ":
			st.categoryIdx = (st.categoryIdx + 1) % len(m.registry.All())
		}

	case fieldNotify:
		if msg.String() == " " {
			st.notify = !st.notify
		}

	case fieldLead:
		switch msg.String() {
		case "left", "h", "-":
			switch {
			case st.lead > 0:
				st.lead -= 5
			case st.lead == 0:
				st.lead = -1
			}
		case "right", "l", "+", " ":
			switch {
			case st.lead < 0:
				st.lead = 0
			case st.lead < 60:
				st.lead += 5
			}
		}

	default:
		m.editText(msg)
	}
	return m, nil
}

// editText applies a key to whichever text field has focus.
func (m *Model) editText(msg tea.KeyMsg) {
	st := &m.editor

	field := map[editorField]*string{
		fieldTitle:       &st.title,
		fieldStart:       &st.start,
		fieldEnd:         &st.end,
		fieldDescription: &st.description,
	}[st.focus]
	if field == nil {
		return
	}

	switch msg.Type {
	case tea.KeyBackspace:
		if *field != "" {
			runes := []rune(*field)
			*field = string(runes[:len(runes)-1])
		}
	case tea.KeyRunes:
		*field += string(msg.Runes)
	case tea.KeySpace:
		*field += " "
	}
}

// saveEditor validates the form and writes the event through the directory.
// Returns false, leaving the editor open with an error, when the input does
// not form a valid event.
func (m *Model) saveEditor() bool {
	st := &m.editor

	start, err := dateutil.ParseTimeOfDay(st.start)
	if err != nil {
		st.err = fmt.Sprintf("Start: %v", err)
		return false
	}
	end, err := dateutil.ParseTimeOfDay(st.end)
	if err != nil {
		st.err = fmt.Sprintf("End: %v", err)
		return false
	}

	ev := event.Event{
		Title:            strings.TrimSpace(st.title),
		Start:            start,
		End:              end,
		Description:      st.description,
		Category:         m.registry.All()[st.categoryIdx].ID,
		ShowNotification: st.notify,
	}
	if st.lead >= 0 {
		lead := st.lead
		ev.NotificationMinutes = &lead
	}

	if err := ev.Validate(); err != nil {
		st.err = err.Error()
		return false
	}

	if st.index < 0 {
		m.dir.AddEvent(m.selectedDate, ev)
		m.message = "Event added"
	} else {
		if !m.dir.UpdateEvent(m.selectedDate, st.index, ev) {
			st.err = "Event no longer exists"
			return false
		}
		m.message = "Event updated"
	}
	m.selectedEvent = 0
	return true
}

func (m *Model) renderEditor() string {
	st := m.editor
	cats := m.registry.All()

	title := "New event"
	if st.index >= 0 {
		title = "Edit event"
	}

	notify := "off"
	if st.notify {
		notify = "on"
	}
	lead := "default"
	switch {
	case st.lead == 0:
		lead = "at start time"
	case st.lead > 0:
		lead = fmt.Sprintf("%d min", st.lead)
	}

	rows := []struct {
		field editorField
		label string
		value string
	}{
		{fieldTitle, "Title", st.title},
		{fieldStart, "Start", st.start},
		{fieldEnd, "End", st.end},
		{fieldDescription, "Description", st.description},
		{fieldCategory, "Category", cats[st.categoryIdx].Name},
		{fieldNotify, "Notify", notify},
		{fieldLead, "Lead time", lead},
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("%s on %s", title, dateutil.FormatDayDisplay(m.selectedDate))))
	b.WriteString("\n\n")

	for _, r := range rows {
		label := fmt.Sprintf("%-12s", r.label)
		value := r.value
		if r.field == st.focus {
			b.WriteString(m.styles.Selected.Render("> " + label + value))
		} else {
			b.WriteString(m.styles.Normal.Render("  " + label + value))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	if st.err != "" {
		b.WriteString(m.styles.Error.Render(st.err))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.Help.Render("tab next field · enter save · esc cancel"))
	return b.String()
}
