package directory

import (
	"testing"
	"time"

	"github.com/mdoksa76/event-planner/internal/dateutil"
	"github.com/mdoksa76/event-planner/internal/event"
	"github.com/mdoksa76/event-planner/internal/logging"
	"github.com/mdoksa76/event-planner/internal/store"
)

func newTestDirectory(t *testing.T) *Directory {
	t.Helper()
	s := store.New(t.TempDir(), logging.Discard())
	return New(s, logging.Discard())
}

func makeEvent(title string, startHour, startMinute, endHour, endMinute int) event.Event {
	return event.Event{
		Title:    title,
		Start:    dateutil.TimeOfDay{Hour: startHour, Minute: startMinute},
		End:      dateutil.TimeOfDay{Hour: endHour, Minute: endMinute},
		Category: "work",
	}
}

func TestAddEventKeepsSortOrder(t *testing.T) {
	d := newTestDirectory(t)
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	d.AddEvent(day, makeEvent("Late", 10, 0, 11, 0))
	d.AddEvent(day, makeEvent("Early", 9, 0, 9, 30))

	events := d.EventsForDay(day)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(events))
	}
	if events[0].Title != "Early" || events[1].Title != "Late" {
		t.Errorf("Wrong order: %s, %s", events[0].Title, events[1].Title)
	}
}

func TestAddEventStableOnTies(t *testing.T) {
	d := newTestDirectory(t)
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	d.AddEvent(day, makeEvent("First", 9, 0, 10, 0))
	d.AddEvent(day, makeEvent("Second", 9, 0, 9, 30))

	events := d.EventsForDay(day)
	if events[0].Title != "First" || events[1].Title != "Second" {
		t.Errorf("Tied events should keep insertion order: %s, %s", events[0].Title, events[1].Title)
	}
}

func TestTimeOfDayOnDateIsIgnored(t *testing.T) {
	d := newTestDirectory(t)

	morning := time.Date(2025, 6, 15, 8, 0, 0, 0, time.Local)
	evening := time.Date(2025, 6, 15, 22, 30, 0, 0, time.Local)

	d.AddEvent(morning, makeEvent("Meeting", 9, 0, 10, 0))

	if got := d.EventCount(evening); got != 1 {
		t.Errorf("Same calendar day should resolve to the same entry, got %d events", got)
	}
}

func TestEventsForDayDoesNotCreateEntry(t *testing.T) {
	d := newTestDirectory(t)
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	if events := d.EventsForDay(day); events != nil {
		t.Errorf("Expected nil for empty day, got %v", events)
	}
	if keys := d.DatesWithEvents(); len(keys) != 0 {
		t.Errorf("Read created an index entry: %v", keys)
	}
}

func TestUpdateEvent(t *testing.T) {
	d := newTestDirectory(t)
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	d.AddEvent(day, makeEvent("Old title", 9, 0, 10, 0))

	var updated []Signal
	d.Subscribe(EventUpdated, func(sig Signal) {
		updated = append(updated, sig)
	})

	ok := d.UpdateEvent(day, 0, makeEvent("New title", 14, 0, 15, 0))
	if !ok {
		t.Fatal("UpdateEvent failed")
	}

	events := d.EventsForDay(day)
	if len(events) != 1 || events[0].Title != "New title" {
		t.Errorf("Event not replaced: %+v", events)
	}

	if len(updated) != 1 {
		t.Fatalf("Expected 1 EventUpdated signal, got %d", len(updated))
	}
	if updated[0].PreviousTitle != "Old title" {
		t.Errorf("Signal should carry the pre-update title, got %q", updated[0].PreviousTitle)
	}
	if updated[0].DayKey != "2025-06-15" {
		t.Errorf("Wrong day key in signal: %q", updated[0].DayKey)
	}
}

func TestUpdateEventOutOfBounds(t *testing.T) {
	d := newTestDirectory(t)
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	d.AddEvent(day, makeEvent("Only", 9, 0, 10, 0))

	for _, index := range []int{-1, 1, 5} {
		if d.UpdateEvent(day, index, makeEvent("X", 1, 0, 2, 0)) {
			t.Errorf("UpdateEvent(%d) should fail", index)
		}
	}

	events := d.EventsForDay(day)
	if len(events) != 1 || events[0].Title != "Only" {
		t.Errorf("Failed update must leave the list unchanged: %+v", events)
	}
}

func TestDeleteEvent(t *testing.T) {
	d := newTestDirectory(t)
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	d.AddEvent(day, makeEvent("A", 9, 0, 10, 0))
	d.AddEvent(day, makeEvent("B", 11, 0, 12, 0))

	if !d.DeleteEvent(day, 0) {
		t.Fatal("DeleteEvent failed")
	}

	events := d.EventsForDay(day)
	if len(events) != 1 || events[0].Title != "B" {
		t.Errorf("Wrong events after delete: %+v", events)
	}
}

func TestDeleteEventOutOfBounds(t *testing.T) {
	d := newTestDirectory(t)
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	d.AddEvent(day, makeEvent("Only", 9, 0, 10, 0))

	for _, index := range []int{-1, 1, 99} {
		if d.DeleteEvent(day, index) {
			t.Errorf("DeleteEvent(%d) should fail", index)
		}
	}

	if got := d.EventCount(day); got != 1 {
		t.Errorf("Failed delete must leave the list unchanged, got %d events", got)
	}
}

func TestDeleteLastEventRemovesDay(t *testing.T) {
	d := newTestDirectory(t)
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	d.AddEvent(day, makeEvent("Only", 9, 0, 10, 0))
	if !d.DeleteEvent(day, 0) {
		t.Fatal("DeleteEvent failed")
	}

	if keys := d.DatesWithEvents(); len(keys) != 0 {
		t.Errorf("Empty day should be dropped from the index: %v", keys)
	}
	if d.HasEvents(day) {
		t.Error("HasEvents should be false after deleting the last event")
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	dataDir := t.TempDir()
	s := store.New(dataDir, logging.Discard())
	d := New(s, logging.Discard())

	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	d.AddEvent(day, makeEvent("Late", 10, 0, 11, 0))
	d.AddEvent(day, makeEvent("Early", 9, 0, 9, 30))

	// A fresh directory over the same store sees the same sorted events.
	reloaded := New(store.New(dataDir, logging.Discard()), logging.Discard())
	reloaded.LoadAll()

	events := reloaded.EventsForDay(day)
	if len(events) != 2 {
		t.Fatalf("Expected 2 events after reload, got %d", len(events))
	}
	if events[0].Title != "Early" || events[1].Title != "Late" {
		t.Errorf("Wrong order after reload: %s, %s", events[0].Title, events[1].Title)
	}
}

func TestLoadAllEmitsEvenWhenEmpty(t *testing.T) {
	d := newTestDirectory(t)

	fired := 0
	d.Subscribe(AllEventsLoaded, func(Signal) {
		fired++
	})

	d.LoadAll()
	if fired != 1 {
		t.Errorf("AllEventsLoaded should fire on an empty store, fired %d times", fired)
	}
}

func TestDayChangedSignal(t *testing.T) {
	d := newTestDirectory(t)
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	var keys []string
	handle := d.Subscribe(DayChanged, func(sig Signal) {
		keys = append(keys, sig.DayKey)
	})

	d.AddEvent(day, makeEvent("A", 9, 0, 10, 0))
	d.DeleteEvent(day, 0)

	if len(keys) != 2 || keys[0] != "2025-06-15" || keys[1] != "2025-06-15" {
		t.Errorf("Unexpected DayChanged signals: %v", keys)
	}

	d.Unsubscribe(handle)
	d.AddEvent(day, makeEvent("B", 9, 0, 10, 0))

	if len(keys) != 2 {
		t.Error("Handler fired after Unsubscribe")
	}
}

func TestUpcomingEvents(t *testing.T) {
	d := newTestDirectory(t)

	today := dateutil.Normalize(time.Now())
	d.AddEvent(today.AddDate(0, 0, 3), makeEvent("Third day", 9, 0, 10, 0))
	d.AddEvent(today.AddDate(0, 0, 1), makeEvent("First day late", 15, 0, 16, 0))
	d.AddEvent(today.AddDate(0, 0, 1), makeEvent("First day early", 8, 0, 9, 0))
	d.AddEvent(today.AddDate(0, 0, 2), makeEvent("Second day", 12, 0, 13, 0))
	d.AddEvent(today.AddDate(0, 0, -1), makeEvent("Yesterday", 9, 0, 10, 0))

	upcoming := d.UpcomingEvents(2)
	if len(upcoming) != 2 {
		t.Fatalf("Expected 2 entries, got %d", len(upcoming))
	}
	if upcoming[0].Event.Title != "First day early" || upcoming[1].Event.Title != "First day late" {
		t.Errorf("Wrong upcoming order: %s, %s", upcoming[0].Event.Title, upcoming[1].Event.Title)
	}
}

func TestStatistics(t *testing.T) {
	d := newTestDirectory(t)

	day1 := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)
	day2 := time.Date(2025, 6, 16, 0, 0, 0, 0, time.Local)

	work := makeEvent("A", 9, 0, 10, 0)
	fun := makeEvent("B", 11, 0, 12, 0)
	fun.Category = "fun"

	d.AddEvent(day1, work)
	d.AddEvent(day1, fun)
	d.AddEvent(day2, work)

	stats := d.Statistics()
	if stats.TotalEvents != 3 {
		t.Errorf("TotalEvents mismatch: got %d, want 3", stats.TotalEvents)
	}
	if stats.DaysWithEvents != 2 {
		t.Errorf("DaysWithEvents mismatch: got %d, want 2", stats.DaysWithEvents)
	}
	if stats.CategoryCount["work"] != 2 || stats.CategoryCount["fun"] != 1 {
		t.Errorf("CategoryCount mismatch: %v", stats.CategoryCount)
	}
}

func TestClearAll(t *testing.T) {
	d := newTestDirectory(t)
	day := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	d.AddEvent(day, makeEvent("A", 9, 0, 10, 0))

	fired := 0
	d.Subscribe(AllEventsLoaded, func(Signal) {
		fired++
	})

	d.ClearAll()

	if d.HasEvents(day) {
		t.Error("Directory should be empty after ClearAll")
	}
	if fired != 1 {
		t.Errorf("AllEventsLoaded should fire once, fired %d times", fired)
	}
}
