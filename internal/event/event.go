package event

import (
	"fmt"
	"strings"

	"github.com/mdoksa76/event-planner/internal/dateutil"
)

// Event is a single planned event on some day. Events are value objects: an
// edit replaces the whole record at its position in the day's list.
type Event struct {
	Title       string
	Start       dateutil.TimeOfDay
	End         dateutil.TimeOfDay
	Description string
	Category    string

	// ShowNotification opts this event in to pre-start notifications.
	ShowNotification bool
	// NotificationMinutes is the per-event lead time; nil means use the
	// global default.
	NotificationMinutes *int
}

// ValidationError describes why an event was rejected.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

var (
	ErrTitleRequired  = &ValidationError{Message: "Title is required"}
	ErrEndBeforeStart = &ValidationError{Message: "End time must be after start time"}
)

// Validate checks the event invariants: a non-blank title and a start time
// strictly before the end time.
func (e Event) Validate() error {
	if strings.TrimSpace(e.Title) == "" {
		return ErrTitleRequired
	}
	if e.Start.Minutes() >= e.End.Minutes() {
		return ErrEndBeforeStart
	}
	return nil
}

// StartMinutes returns the start time as minutes since midnight.
func (e Event) StartMinutes() int {
	return e.Start.Minutes()
}

// TimeRange renders the event's time span, e.g. "09:00–10:30".
func (e Event) TimeRange() string {
	return fmt.Sprintf("%s–%s", e.Start.Format(), e.End.Format())
}

// Overlaps reports whether the two events' half-open minute intervals
// [start, end) intersect.
func (e Event) Overlaps(other Event) bool {
	return e.Start.Minutes() < other.End.Minutes() && e.End.Minutes() > other.Start.Minutes()
}

// Record is the on-disk form of an event. Times are stored as zero-padded
// HH:MM text so the day files stay readable in any editor.
type Record struct {
	Title               string `json:"title"`
	StartTime           string `json:"startTime"`
	EndTime             string `json:"endTime"`
	Description         string `json:"description"`
	Category            string `json:"category"`
	ShowNotification    bool   `json:"showNotification"`
	NotificationMinutes *int   `json:"notificationMinutes"`
}

// ToRecord converts the event to its serialized form.
func (e Event) ToRecord() Record {
	return Record{
		Title:               e.Title,
		StartTime:           e.Start.Format(),
		EndTime:             e.End.Format(),
		Description:         e.Description,
		Category:            e.Category,
		ShowNotification:    e.ShowNotification,
		NotificationMinutes: e.NotificationMinutes,
	}
}

// FromRecord rebuilds an event from its serialized form. Records with
// unparseable times are rejected; absent optional fields keep their zero
// values (notifications off, nil lead override).
func FromRecord(r Record) (Event, error) {
	start, err := dateutil.ParseTimeOfDay(r.StartTime)
	if err != nil {
		return Event{}, fmt.Errorf("start time: %w", err)
	}
	end, err := dateutil.ParseTimeOfDay(r.EndTime)
	if err != nil {
		return Event{}, fmt.Errorf("end time: %w", err)
	}

	return Event{
		Title:               r.Title,
		Start:               start,
		End:                 end,
		Description:         r.Description,
		Category:            r.Category,
		ShowNotification:    r.ShowNotification,
		NotificationMinutes: r.NotificationMinutes,
	}, nil
}
