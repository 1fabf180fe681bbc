package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/mdoksa76/event-planner/internal/category"
	"github.com/mdoksa76/event-planner/internal/dateutil"
)

var listLimit int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List upcoming events and exit",
	Long:  `List events from today onward in a simple text format and exit.`,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 10, "Maximum number of events to show")
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, args []string) error {
	dir := openDirectory()
	registry := category.NewRegistry(cfg.CustomCategories)

	upcoming := dir.UpcomingEvents(listLimit)
	if len(upcoming) == 0 {
		fmt.Println("No upcoming events.")
		return nil
	}

	lastDay := ""
	for _, u := range upcoming {
		if u.DayKey != lastDay {
			day, err := dateutil.ParseDayKey(u.DayKey)
			if err != nil {
				return fmt.Errorf("bad day key %q: %w", u.DayKey, err)
			}
			fmt.Printf("%s:\n", day.Format(cfg.DateFormat))
			lastDay = u.DayKey
		}

		line := fmt.Sprintf("  %s  %s", u.Event.TimeRange(), u.Event.Title)
		if u.Event.Category != "" {
			line += fmt.Sprintf(" [%s]", registry.Lookup(u.Event.Category).Name)
		}
		fmt.Println(line)
	}
	return nil
}
