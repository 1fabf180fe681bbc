package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/mdoksa76/event-planner/internal/dateutil"
	"github.com/mdoksa76/event-planner/internal/ics"
)

var exportOutput string

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export all events as an iCalendar file",
	Long:  `Write every stored event as a VCALENDAR stream to stdout or a file.`,
	RunE:  runExport,
}

func init() {
	exportCmd.Flags().StringVarP(&exportOutput, "output", "o", "", "Write to file instead of stdout")
	rootCmd.AddCommand(exportCmd)
}

func runExport(cmd *cobra.Command, args []string) error {
	dir := openDirectory()

	var entries []ics.Entry
	for _, dayKey := range dir.DatesWithEvents() {
		day, err := dateutil.ParseDayKey(dayKey)
		if err != nil {
			return fmt.Errorf("bad day key %q: %w", dayKey, err)
		}
		for _, ev := range dir.EventsForDay(day) {
			entries = append(entries, ics.Entry{Day: day, Event: ev})
		}
	}

	out := os.Stdout
	if exportOutput != "" {
		f, err := os.Create(exportOutput)
		if err != nil {
			return err
		}
		defer f.Close()
		out = f
	}

	if err := ics.Write(out, entries); err != nil {
		return err
	}
	log.Info("exported events", "count", len(entries))
	return nil
}
