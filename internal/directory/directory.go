package directory

import (
	"sort"
	"sync"
	"time"

	"github.com/mdoksa76/event-planner/internal/dateutil"
	"github.com/mdoksa76/event-planner/internal/event"
	"github.com/mdoksa76/event-planner/internal/logging"
	"github.com/mdoksa76/event-planner/internal/store"
)

// SignalKind identifies the change notifications a Directory emits.
type SignalKind int

const (
	// AllEventsLoaded fires after LoadAll or ClearAll replaces the whole index.
	AllEventsLoaded SignalKind = iota
	// DayChanged fires after any mutation to one day's list; Signal.DayKey
	// names the day.
	DayChanged
	// EventUpdated fires after UpdateEvent, carrying the day key and the
	// title the event had before the update.
	EventUpdated
)

// Signal is the payload delivered to subscribers.
type Signal struct {
	Kind          SignalKind
	DayKey        string
	PreviousTitle string
}

// Handle identifies one subscription.
type Handle int

// Upcoming pairs an event with the day it belongs to.
type Upcoming struct {
	DayKey string
	Event  event.Event
}

// Stats aggregates the directory contents.
type Stats struct {
	TotalEvents    int
	DaysWithEvents int
	CategoryCount  map[string]int
}

type subscription struct {
	kind    SignalKind
	handler func(Signal)
}

// Directory owns the authoritative in-memory mapping from day key to that
// day's events, kept sorted by start time. All mutations go through it so
// sort order, persistence, and change signals stay consistent.
type Directory struct {
	store *store.Store
	log   *logging.Logger

	mu     sync.RWMutex
	days   map[string][]event.Event
	subs   map[Handle]subscription
	nextID Handle
}

// New creates an empty directory backed by the given store.
func New(s *store.Store, log *logging.Logger) *Directory {
	return &Directory{
		store: s,
		log:   log,
		days:  make(map[string][]event.Event),
		subs:  make(map[Handle]subscription),
	}
}

// Subscribe registers a handler for one signal kind and returns its handle.
// Handlers run synchronously after the triggering mutation completes.
func (d *Directory) Subscribe(kind SignalKind, handler func(Signal)) Handle {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	h := d.nextID
	d.subs[h] = subscription{kind: kind, handler: handler}
	return h
}

// Unsubscribe removes a subscription. Unknown handles are ignored.
func (d *Directory) Unsubscribe(h Handle) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.subs, h)
}

func (d *Directory) emit(sig Signal) {
	d.mu.RLock()
	var handlers []func(Signal)
	for _, sub := range d.subs {
		if sub.kind == sig.Kind {
			handlers = append(handlers, sub.handler)
		}
	}
	d.mu.RUnlock()

	for _, h := range handlers {
		h(sig)
	}
}

// LoadAll replaces the in-memory state with everything the store holds and
// emits AllEventsLoaded, even when the store was empty.
func (d *Directory) LoadAll() {
	raw := d.store.LoadAll()

	d.mu.Lock()
	d.days = make(map[string][]event.Event, len(raw))
	for dayKey, records := range raw {
		events := make([]event.Event, 0, len(records))
		for _, r := range records {
			ev, err := event.FromRecord(r)
			if err != nil {
				d.log.Error("skipping bad record", err, "day", dayKey, "title", r.Title)
				continue
			}
			events = append(events, ev)
		}
		if len(events) == 0 {
			continue
		}
		sortByStart(events)
		d.days[dayKey] = events
	}
	count := len(d.days)
	d.mu.Unlock()

	d.log.Info("events loaded", "days", count)
	d.emit(Signal{Kind: AllEventsLoaded})
}

// EventsForDay returns a copy of the day's events, or nothing. Reading never
// creates an index entry.
func (d *Directory) EventsForDay(date time.Time) []event.Event {
	dayKey := dateutil.DayKey(date)

	d.mu.RLock()
	defer d.mu.RUnlock()

	events := d.days[dayKey]
	if len(events) == 0 {
		return nil
	}
	out := make([]event.Event, len(events))
	copy(out, events)
	return out
}

// AddEvent appends an event to the given day, re-sorts, persists, and emits
// DayChanged.
func (d *Directory) AddEvent(date time.Time, ev event.Event) {
	dayKey := dateutil.DayKey(date)

	d.mu.Lock()
	d.days[dayKey] = append(d.days[dayKey], ev)
	sortByStart(d.days[dayKey])
	d.persistLocked(dayKey)
	d.mu.Unlock()

	d.emit(Signal{Kind: DayChanged, DayKey: dayKey})
}

// UpdateEvent replaces the event at index in the given day's sorted list.
// It reports false, leaving everything untouched, when the index is out of
// bounds. On success it emits DayChanged and then EventUpdated with the
// title the event had before the update, so notification state keyed by the
// old identity can be invalidated.
func (d *Directory) UpdateEvent(date time.Time, index int, ev event.Event) bool {
	dayKey := dateutil.DayKey(date)

	d.mu.Lock()
	events := d.days[dayKey]
	if index < 0 || index >= len(events) {
		d.mu.Unlock()
		d.log.Error("invalid event index", nil, "day", dayKey, "index", index)
		return false
	}

	previousTitle := events[index].Title
	events[index] = ev
	sortByStart(events)
	d.persistLocked(dayKey)
	d.mu.Unlock()

	d.emit(Signal{Kind: DayChanged, DayKey: dayKey})
	d.emit(Signal{Kind: EventUpdated, DayKey: dayKey, PreviousTitle: previousTitle})
	return true
}

// DeleteEvent removes the event at index in the given day's sorted list,
// dropping the day entirely when its list empties. Reports false on an
// out-of-bounds index.
func (d *Directory) DeleteEvent(date time.Time, index int) bool {
	dayKey := dateutil.DayKey(date)

	d.mu.Lock()
	events := d.days[dayKey]
	if index < 0 || index >= len(events) {
		d.mu.Unlock()
		d.log.Error("invalid event index", nil, "day", dayKey, "index", index)
		return false
	}

	d.days[dayKey] = append(events[:index], events[index+1:]...)
	if len(d.days[dayKey]) == 0 {
		delete(d.days, dayKey)
	}
	d.persistLocked(dayKey)
	d.mu.Unlock()

	d.emit(Signal{Kind: DayChanged, DayKey: dayKey})
	return true
}

// ReloadDay re-reads one day from the store, replacing its in-memory list.
// Used when a day file changes on disk behind the directory's back.
func (d *Directory) ReloadDay(dayKey string) {
	records := d.store.LoadDay(dayKey)

	d.mu.Lock()
	events := make([]event.Event, 0, len(records))
	for _, r := range records {
		ev, err := event.FromRecord(r)
		if err != nil {
			d.log.Error("skipping bad record", err, "day", dayKey, "title", r.Title)
			continue
		}
		events = append(events, ev)
	}
	if len(events) == 0 {
		delete(d.days, dayKey)
	} else {
		sortByStart(events)
		d.days[dayKey] = events
	}
	d.mu.Unlock()

	d.emit(Signal{Kind: DayChanged, DayKey: dayKey})
}

// HasEvents reports whether the given day has any events.
func (d *Directory) HasEvents(date time.Time) bool {
	return d.EventCount(date) > 0
}

// EventCount returns the number of events on the given day.
func (d *Directory) EventCount(date time.Time) int {
	dayKey := dateutil.DayKey(date)

	d.mu.RLock()
	defer d.mu.RUnlock()
	return len(d.days[dayKey])
}

// DatesWithEvents returns every day key with at least one event, ascending.
func (d *Directory) DatesWithEvents() []string {
	d.mu.RLock()
	keys := make([]string, 0, len(d.days))
	for k := range d.days {
		keys = append(keys, k)
	}
	d.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// UpcomingEvents walks days from today onward in ascending order and
// flattens their events, in per-day start order, until limit entries are
// collected. Day keys sort lexically, which matches date order.
func (d *Directory) UpcomingEvents(limit int) []Upcoming {
	todayKey := dateutil.DayKey(dateutil.Normalize(time.Now()))

	d.mu.RLock()
	defer d.mu.RUnlock()

	keys := make([]string, 0, len(d.days))
	for k := range d.days {
		if k >= todayKey {
			keys = append(keys, k)
		}
	}
	sort.Strings(keys)

	var out []Upcoming
	for _, dayKey := range keys {
		for _, ev := range d.days[dayKey] {
			out = append(out, Upcoming{DayKey: dayKey, Event: ev})
			if len(out) >= limit {
				return out
			}
		}
	}
	return out
}

// Statistics scans the whole index. Totals are small, so a full walk is fine.
func (d *Directory) Statistics() Stats {
	d.mu.RLock()
	defer d.mu.RUnlock()

	stats := Stats{
		DaysWithEvents: len(d.days),
		CategoryCount:  make(map[string]int),
	}
	for _, events := range d.days {
		stats.TotalEvents += len(events)
		for _, ev := range events {
			stats.CategoryCount[ev.Category]++
		}
	}
	return stats
}

// ClearAll wipes the index and the store, then emits AllEventsLoaded.
func (d *Directory) ClearAll() {
	d.mu.Lock()
	d.days = make(map[string][]event.Event)
	d.mu.Unlock()

	d.store.ClearAll()
	d.emit(Signal{Kind: AllEventsLoaded})
}

// persistLocked writes one day back to the store. Callers hold d.mu.
func (d *Directory) persistLocked(dayKey string) {
	events := d.days[dayKey]
	records := make([]event.Record, 0, len(events))
	for _, ev := range events {
		records = append(records, ev.ToRecord())
	}
	d.store.SaveDay(dayKey, records)
}

// sortByStart sorts events ascending by start minute. The sort is stable so
// events sharing a start time keep their insertion order.
func sortByStart(events []event.Event) {
	sort.SliceStable(events, func(i, j int) bool {
		return events[i].StartMinutes() < events[j].StartMinutes()
	})
}
