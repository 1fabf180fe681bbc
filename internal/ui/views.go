package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"

	"github.com/mdoksa76/event-planner/internal/dateutil"
	"github.com/mdoksa76/event-planner/internal/event"
)

const dayPanelWidth = 44

func (m *Model) View() string {
	switch m.mode {
	case ViewHelp:
		return m.renderHelp()
	case ViewUpcoming:
		return m.renderUpcoming()
	case ViewEditor:
		return m.renderEditor()
	}

	calendar := m.renderCalendar()
	day := m.renderDayPanel()

	body := lipgloss.JoinHorizontal(lipgloss.Top,
		m.styles.Border.Padding(0, 1).Render(calendar),
		" ",
		m.styles.Border.Padding(0, 1).Width(dayPanelWidth).Render(day),
	)

	var b strings.Builder
	b.WriteString(body)
	b.WriteString("\n")
	b.WriteString(m.renderStatusLine())
	return b.String()
}

// renderCalendar draws a month grid with the selected day highlighted and a
// marker under days that have events.
func (m *Model) renderCalendar() string {
	year, month := m.selectedDate.Year(), m.selectedDate.Month()
	today := dateutil.Normalize(time.Now())

	var b strings.Builder
	b.WriteString(m.styles.Header.Render(fmt.Sprintf("%s %d", month, year)))
	b.WriteString("\n")

	names := []string{"Su", "Mo", "Tu", "We", "Th", "Fr", "Sa"}
	offset := int(dateutil.FirstWeekday(year, month))
	if m.cfg.WeekStart == "monday" {
		names = []string{"Mo", "Tu", "We", "Th", "Fr", "Sa", "Su"}
		offset = (offset + 6) % 7
	}
	b.WriteString(m.styles.Help.Render(strings.Join(names, " ")))
	b.WriteString("\n")

	col := 0
	for i := 0; i < offset; i++ {
		b.WriteString("   ")
		col++
	}

	for day := 1; day <= dateutil.DaysInMonth(year, month); day++ {
		date := time.Date(year, month, day, 0, 0, 0, 0, time.Local)
		cell := fmt.Sprintf("%2d", day)

		style := m.styles.Normal
		switch {
		case dateutil.SameDay(date, m.selectedDate):
			style = m.styles.Selected
		case dateutil.SameDay(date, today):
			style = m.styles.Today
		case date.Weekday() == time.Saturday || date.Weekday() == time.Sunday:
			style = m.styles.Weekend
		}
		b.WriteString(style.Render(cell))

		if m.dir.HasEvents(date) {
			b.WriteString(m.styles.Marker.Render("."))
		} else {
			b.WriteString(" ")
		}

		col++
		if col%7 == 0 {
			b.WriteString("\n")
		}
	}
	if col%7 != 0 {
		b.WriteString("\n")
	}
	return b.String()
}

// renderDayPanel lists the selected day's events with their category colors.
func (m *Model) renderDayPanel() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render(dateutil.FormatDayDisplay(m.selectedDate)))
	b.WriteString("\n\n")

	events := m.dir.EventsForDay(m.selectedDate)
	if len(events) == 0 {
		b.WriteString(m.styles.Help.Render("No events. Press n to add one."))
		return b.String()
	}

	for i, ev := range events {
		b.WriteString(m.renderEvent(ev, i == m.selectedEvent))
	}
	return b.String()
}

func (m *Model) renderEvent(ev event.Event, selected bool) string {
	cat := m.registry.Lookup(ev.Category)
	dot := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render("●")

	line := fmt.Sprintf("%s  %s", ev.TimeRange(), ev.Title)
	if selected {
		line = m.styles.Selected.Render(line)
	} else {
		line = m.styles.Normal.Render(line)
	}

	var b strings.Builder
	b.WriteString(dot)
	b.WriteString(" ")
	b.WriteString(line)
	b.WriteString("\n")

	if selected && ev.Description != "" {
		wrapped := wordwrap.String(ev.Description, dayPanelWidth-6)
		for _, l := range strings.Split(wrapped, "\n") {
			b.WriteString("    ")
			b.WriteString(m.styles.Help.Render(l))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m *Model) renderUpcoming() string {
	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Upcoming events"))
	b.WriteString("\n\n")

	upcoming := m.dir.UpcomingEvents(20)
	if len(upcoming) == 0 {
		b.WriteString(m.styles.Help.Render("Nothing scheduled."))
		b.WriteString("\n")
	}

	lastDay := ""
	for _, u := range upcoming {
		if u.DayKey != lastDay {
			day, err := dateutil.ParseDayKey(u.DayKey)
			if err == nil {
				b.WriteString(m.styles.Today.Render(dateutil.FormatDayDisplay(day)))
				b.WriteString("\n")
			}
			lastDay = u.DayKey
		}
		cat := m.registry.Lookup(u.Event.Category)
		dot := lipgloss.NewStyle().Foreground(lipgloss.Color(cat.Color)).Render("●")
		fmt.Fprintf(&b, "  %s %s  %s\n", dot, u.Event.TimeRange(), u.Event.Title)
	}

	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("q/esc back"))
	return b.String()
}

func (m *Model) renderHelp() string {
	rows := []struct{ key, desc string }{
		{"h/j/k/l, arrows", "move by day or week"},
		{"H/L", "previous/next month"},
		{"t", "jump to today"},
		{"tab/shift+tab", "select event on the day"},
		{"n", "new event"},
		{"e", "edit selected event"},
		{"d", "delete selected event"},
		{"u", "upcoming events"},
		{"r", "reload from disk"},
		{"q", "quit"},
	}

	var b strings.Builder
	b.WriteString(m.styles.Header.Render("Keys"))
	b.WriteString("\n\n")
	for _, r := range rows {
		fmt.Fprintf(&b, "  %s  %s\n",
			m.styles.Today.Render(fmt.Sprintf("%-16s", r.key)),
			m.styles.Normal.Render(r.desc))
	}
	b.WriteString("\n")
	b.WriteString(m.styles.Help.Render("q/esc back"))
	return b.String()
}

func (m *Model) renderStatusLine() string {
	if m.mode == ViewConfirmDelete {
		events := m.dir.EventsForDay(m.selectedDate)
		title := ""
		if m.selectedEvent < len(events) {
			title = events[m.selectedEvent].Title
		}
		return m.styles.Error.Render(fmt.Sprintf("Delete %q? (y/n)", title))
	}
	if m.message != "" {
		return m.styles.Message.Render(m.message)
	}
	return m.styles.Help.Render("n new · e edit · d delete · u upcoming · ? help · q quit")
}
