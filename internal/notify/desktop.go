package notify

import (
	"fmt"
	"os/exec"

	"github.com/mdoksa76/event-planner/internal/event"
)

const notificationTitle = "📅 Event Planner"

// DesktopNotifier delivers alerts through a notify-send compatible command.
type DesktopNotifier struct {
	Command string
}

// NewDesktopNotifier returns a notifier using the given command, defaulting
// to notify-send.
func NewDesktopNotifier(command string) *DesktopNotifier {
	if command == "" {
		command = "notify-send"
	}
	return &DesktopNotifier{Command: command}
}

// Notify shows a persistent, critical-urgency desktop notification for the
// event so it does not auto-dismiss.
func (n *DesktopNotifier) Notify(ev event.Event, leadMinutes int) error {
	body := fmt.Sprintf("%s\nStarts at %s", ev.Title, ev.Start.Format())
	if leadMinutes > 0 {
		body += fmt.Sprintf(" (in %d minutes)", leadMinutes)
	}

	cmd := exec.Command(n.Command,
		"--urgency", "critical",
		"--app-name", "Event Planner",
		"--icon", "x-office-calendar",
		notificationTitle,
		body,
	)
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("notify command failed: %w", err)
	}
	return nil
}

// Available reports whether the notify command can be found.
func (n *DesktopNotifier) Available() bool {
	_, err := exec.LookPath(n.Command)
	return err == nil
}

// Body builds the notification body without sending anything; the TUI uses
// it for its in-app status line.
func Body(ev event.Event, leadMinutes int) string {
	body := fmt.Sprintf("%s starts at %s", ev.Title, ev.Start.Format())
	if leadMinutes > 0 {
		body += fmt.Sprintf(" (in %d minutes)", leadMinutes)
	}
	return body
}
