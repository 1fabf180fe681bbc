package notify

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/mdoksa76/event-planner/internal/dateutil"
	"github.com/mdoksa76/event-planner/internal/directory"
	"github.com/mdoksa76/event-planner/internal/event"
	"github.com/mdoksa76/event-planner/internal/logging"
)

// Notifier delivers a user-facing alert for an event. The scheduler's
// contract is to invoke it exactly once per qualifying notification window.
type Notifier interface {
	Notify(ev event.Event, leadMinutes int) error
}

// Settings provides the live notification preferences; they are re-read on
// every tick so preference changes take effect without a restart.
type Settings interface {
	NotificationsEnabled() bool
	DefaultLeadMinutes() int
}

// Scheduler polls the event directory and fires notifications for events
// entering their lead-time window. It has two states, stopped and running,
// and keeps a set of already-notified identities so each window fires once.
type Scheduler struct {
	dir      *directory.Directory
	settings Settings
	notifier Notifier
	log      *logging.Logger

	// now is the clock; replaced in tests.
	now func() time.Time

	// mu guards the fields below: ticks arrive on the cron goroutine while
	// edit signals arrive on whichever goroutine mutated the directory.
	mu       sync.Mutex
	cron     *cron.Cron
	running  bool
	sub      directory.Handle
	notified map[string]struct{}
}

// NewScheduler wires a scheduler to its collaborators. It starts stopped.
func NewScheduler(dir *directory.Directory, settings Settings, notifier Notifier, log *logging.Logger) *Scheduler {
	return &Scheduler{
		dir:      dir,
		settings: settings,
		notifier: notifier,
		log:      log,
		now:      time.Now,
		notified: make(map[string]struct{}),
	}
}

// Start transitions to running: one immediate evaluation, then a tick every
// 15 seconds. Calling Start while running is a no-op.
func (s *Scheduler) Start() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		return
	}
	s.running = true
	s.mu.Unlock()

	sub := s.dir.Subscribe(directory.EventUpdated, func(sig directory.Signal) {
		s.clearEventHistory(sig.DayKey, sig.PreviousTitle)
	})
	s.mu.Lock()
	s.sub = sub
	s.mu.Unlock()

	s.checkEvents(s.now())

	c := cron.New(cron.WithSeconds())
	if _, err := c.AddFunc("*/15 * * * * *", func() {
		s.checkEvents(s.now())
	}); err != nil {
		s.log.Error("arming notification timer", err)
	}
	c.Start()

	s.mu.Lock()
	s.cron = c
	s.mu.Unlock()

	s.log.Info("notification scheduler started")
}

// Stop transitions to stopped: the timer is cancelled and drained so no tick
// runs after Stop returns, the directory subscription is dropped, and the
// notified set is cleared. Stop is idempotent.
func (s *Scheduler) Stop() {
	s.mu.Lock()
	if !s.running {
		s.mu.Unlock()
		return
	}
	s.running = false
	c := s.cron
	s.cron = nil
	sub := s.sub
	s.sub = 0
	s.mu.Unlock()

	if c != nil {
		<-c.Stop().Done()
	}

	s.dir.Unsubscribe(sub)

	s.mu.Lock()
	s.notified = make(map[string]struct{})
	s.mu.Unlock()

	s.log.Info("notification scheduler stopped")
}

// Running reports the scheduler state.
func (s *Scheduler) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

// identity derives the de-duplication key for an event on a day. The hour
// and minute are deliberately unpadded, matching the historical key format,
// and two events with the same title and start time on one day share a key.
func identity(dayKey string, ev event.Event) string {
	return fmt.Sprintf("%s-%s-%d:%d", dayKey, ev.Title, ev.Start.Hour, ev.Start.Minute)
}

// checkEvents is one evaluation pass at the given wall-clock time.
func (s *Scheduler) checkEvents(now time.Time) {
	if !s.settings.NotificationsEnabled() {
		return
	}
	defaultLead := s.settings.DefaultLeadMinutes()

	today := dateutil.Normalize(now)
	todayKey := dateutil.DayKey(today)

	events := s.dir.EventsForDay(today)
	currentMinutes := now.Hour()*60 + now.Minute()

	s.mu.Lock()
	defer s.mu.Unlock()

	// Day rollover: forget identities from previous days.
	for id := range s.notified {
		if !strings.HasPrefix(id, todayKey+"-") {
			delete(s.notified, id)
		}
	}

	valid := make(map[string]struct{})
	for _, ev := range events {
		if !ev.ShowNotification {
			continue
		}

		id := identity(todayKey, ev)
		valid[id] = struct{}{}

		if _, done := s.notified[id]; done {
			continue
		}

		lead := defaultLead
		if ev.NotificationMinutes != nil {
			lead = *ev.NotificationMinutes
		}

		notifyAt := ev.StartMinutes() - lead
		if currentMinutes >= notifyAt && currentMinutes <= notifyAt+1 {
			if err := s.notifier.Notify(ev, lead); err != nil {
				s.log.Error("delivering notification", err, "title", ev.Title)
			}
			s.notified[id] = struct{}{}
			s.log.Debug("notified", "title", ev.Title, "lead", lead)
		}
	}

	// Forget identities for today's events that were deleted or had their
	// notification disabled, so a recreated event can fire again.
	for id := range s.notified {
		if strings.HasPrefix(id, todayKey+"-") {
			if _, ok := valid[id]; !ok {
				delete(s.notified, id)
			}
		}
	}
}

// clearEventHistory forgets every identity for the given title on the given
// day. Called when an event is edited so its new version can re-fire, even
// when the edit changed the start time.
func (s *Scheduler) clearEventHistory(dayKey, title string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	prefix := dayKey + "-" + title + "-"
	for id := range s.notified {
		if strings.HasPrefix(id, prefix) {
			delete(s.notified, id)
		}
	}
}
