package ics

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/emersion/go-ical"
	"github.com/google/uuid"

	"github.com/mdoksa76/event-planner/internal/dateutil"
	"github.com/mdoksa76/event-planner/internal/event"
)

// Entry pairs an event with the calendar day it belongs to.
type Entry struct {
	Day   time.Time
	Event event.Event
}

// Write encodes the entries as a VCALENDAR stream. Start and end times are
// local wall-clock times composed from the entry day and the event's
// time-of-day fields. An empty entry set produces a bare calendar envelope.
func Write(w io.Writer, entries []Entry) error {
	// The encoder refuses a calendar with no components, but exporting an
	// empty planner is valid.
	if len(entries) == 0 {
		return writeEmpty(w)
	}

	cal := ical.NewCalendar()
	cal.Props.SetText(ical.PropVersion, "2.0")
	cal.Props.SetText(ical.PropProductID, "-//event-planner//EN")

	for _, entry := range entries {
		cal.Children = append(cal.Children, toComponent(entry))
	}

	if err := ical.NewEncoder(w).Encode(cal); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

func writeEmpty(w io.Writer) error {
	envelope := strings.Join([]string{
		"BEGIN:VCALENDAR",
		"VERSION:2.0",
		"PRODID:-//event-planner//EN",
		"END:VCALENDAR",
		"",
	}, "\r\n")
	if _, err := io.WriteString(w, envelope); err != nil {
		return fmt.Errorf("encoding calendar: %w", err)
	}
	return nil
}

func toComponent(entry Entry) *ical.Component {
	day := dateutil.Normalize(entry.Day)
	ev := entry.Event

	start := day.Add(time.Duration(ev.Start.Minutes()) * time.Minute)
	end := day.Add(time.Duration(ev.End.Minutes()) * time.Minute)

	ve := ical.NewComponent(ical.CompEvent)
	ve.Props.SetText(ical.PropUID, uuid.New().String())
	ve.Props.SetText(ical.PropSummary, ev.Title)
	ve.Props.SetDateTime(ical.PropDateTimeStamp, time.Now())
	ve.Props.SetDateTime(ical.PropDateTimeStart, start)
	ve.Props.SetDateTime(ical.PropDateTimeEnd, end)

	if ev.Description != "" {
		ve.Props.SetText(ical.PropDescription, ev.Description)
	}
	if ev.Category != "" {
		ve.Props.SetText(ical.PropCategories, ev.Category)
	}
	return ve
}
