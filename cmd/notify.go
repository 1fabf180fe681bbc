package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/mdoksa76/event-planner/internal/notify"
	"github.com/mdoksa76/event-planner/internal/store"
)

var notifyCmd = &cobra.Command{
	Use:   "notify",
	Short: "Run the notification scheduler without the TUI",
	Long: `Watch the data directory and deliver desktop notifications for
upcoming events until interrupted. Useful as a user service.`,
	RunE: runNotify,
}

func init() {
	rootCmd.AddCommand(notifyCmd)
}

func runNotify(cmd *cobra.Command, args []string) error {
	if !cfg.EnableNotifications {
		return fmt.Errorf("notifications are disabled in the config")
	}

	dir := openDirectory()

	notifier := notify.NewDesktopNotifier(cfg.NotifyCommand)
	if !notifier.Available() {
		fmt.Fprintf(os.Stderr, "Warning: %q not found, notifications will fail\n", cfg.NotifyCommand)
	}

	// Pick up edits made by other processes while the daemon runs.
	watcher, err := store.NewWatcher(cfg.DataDir, dir.ReloadDay)
	if err != nil {
		log.Error("watching data directory", err, "dir", cfg.DataDir)
	} else {
		defer watcher.Close()
	}

	scheduler := notify.NewScheduler(dir, cfg, notifier, log)
	scheduler.Start()
	defer scheduler.Stop()

	log.Info("notification daemon running", "data_dir", cfg.DataDir)

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	<-sig

	log.Info("shutting down")
	return nil
}
