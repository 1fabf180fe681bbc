package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/mdoksa76/event-planner/internal/category"
	"github.com/mdoksa76/event-planner/internal/config"
	"github.com/mdoksa76/event-planner/internal/directory"
	"github.com/mdoksa76/event-planner/internal/logging"
	"github.com/mdoksa76/event-planner/internal/notify"
	"github.com/mdoksa76/event-planner/internal/store"
	"github.com/mdoksa76/event-planner/internal/ui"
)

var (
	cfgFile string
	dataDir string

	cfg *config.Config
	log *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:   "event-planner",
	Short: "A personal event planner with desktop notifications",
	Long: `Event-planner keeps per-day event files on disk and shows them in a
terminal calendar. A background scheduler delivers desktop notifications
shortly before each event starts.`,
	RunE: runTUI,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Path to config file")
	rootCmd.PersistentFlags().StringVar(&dataDir, "data-dir", "", "Directory holding per-day event files")
}

func initConfig() {
	path := cfgFile
	if path == "" {
		path = config.DefaultPath()
	}

	var err error
	cfg, err = config.Load(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	if dataDir != "" {
		cfg.DataDir = dataDir
	}

	log = logging.NewStderr(logging.ParseLevel(cfg.LogLevel))
}

// openDirectory wires the store and directory and loads everything from disk.
func openDirectory() *directory.Directory {
	s := store.New(cfg.DataDir, log)
	dir := directory.New(s, log)
	dir.LoadAll()
	return dir
}

func runTUI(cmd *cobra.Command, args []string) error {
	dir := openDirectory()

	notifier := notify.NewDesktopNotifier(cfg.NotifyCommand)
	if cfg.EnableNotifications && !notifier.Available() {
		fmt.Fprintf(os.Stderr, "Warning: %q not found, notifications will fail\n", cfg.NotifyCommand)
	}

	scheduler := notify.NewScheduler(dir, cfg, notifier, log)
	scheduler.Start()
	defer scheduler.Stop()

	registry := category.NewRegistry(cfg.CustomCategories)
	model := ui.NewModel(cfg, dir, registry, log)
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running program: %w", err)
	}
	return nil
}
