package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const (
	// Lead-time bounds recognized by the preferences surface. The scheduler
	// itself takes whatever the config hands it.
	MinNotificationMinutes = 5
	MaxNotificationMinutes = 60
	NotificationStep       = 5
)

// CustomCategory is a user-defined category persisted in the config file.
type CustomCategory struct {
	Name  string `yaml:"name"`
	Color string `yaml:"color"`
}

// Config is the application configuration.
type Config struct {
	// DataDir holds the per-day event files.
	DataDir string `yaml:"data_dir"`

	// EnableNotifications toggles the notification scheduler globally.
	EnableNotifications bool `yaml:"enable_notifications"`

	// NotificationMinutes is the default lead time, in minutes, for events
	// without a per-event override. Clamped to 5-60 in steps of 5.
	NotificationMinutes int `yaml:"notification_minutes"`

	// NotifyCommand is the program used to deliver desktop notifications.
	NotifyCommand string `yaml:"notify_command"`

	// WeekStart is "monday" or "sunday".
	WeekStart string `yaml:"week_start"`

	// TimeFormat and DateFormat are Go layouts used for display.
	TimeFormat string `yaml:"time_format"`
	DateFormat string `yaml:"date_format"`

	// CustomCategories extends the built-in category set.
	CustomCategories []CustomCategory `yaml:"custom_categories"`

	// LogLevel is "debug", "info" or "error".
	LogLevel string `yaml:"log_level"`
}

// DefaultConfig returns the in-memory defaults.
func DefaultConfig() *Config {
	return &Config{
		DataDir:             defaultDataDir(),
		EnableNotifications: true,
		NotificationMinutes: 10,
		NotifyCommand:       "notify-send",
		WeekStart:           "monday",
		TimeFormat:          "15:04",
		DateFormat:          "Jan 2, 2006",
		CustomCategories:    []CustomCategory{},
		LogLevel:            "info",
	}
}

// DefaultPath returns the standard config file location.
func DefaultPath() string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return filepath.Join(dir, "event-planner", "config.yaml")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".config", "event-planner", "config.yaml")
}

func defaultDataDir() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "event-planner")
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".local", "share", "event-planner")
}

// Normalize fills missing values and clamps the notification lead time into
// the recognized 5-60 range, rounded to a multiple of 5.
func (c *Config) Normalize() {
	if c.DataDir == "" {
		c.DataDir = defaultDataDir()
	}
	if c.NotifyCommand == "" {
		c.NotifyCommand = "notify-send"
	}
	switch c.WeekStart {
	case "monday", "sunday":
	default:
		c.WeekStart = "monday"
	}
	if c.TimeFormat == "" {
		c.TimeFormat = "15:04"
	}
	if c.DateFormat == "" {
		c.DateFormat = "Jan 2, 2006"
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.CustomCategories == nil {
		c.CustomCategories = []CustomCategory{}
	}

	if c.NotificationMinutes < MinNotificationMinutes {
		c.NotificationMinutes = MinNotificationMinutes
	}
	if c.NotificationMinutes > MaxNotificationMinutes {
		c.NotificationMinutes = MaxNotificationMinutes
	}
	c.NotificationMinutes -= c.NotificationMinutes % NotificationStep
	if c.NotificationMinutes < MinNotificationMinutes {
		c.NotificationMinutes = MinNotificationMinutes
	}
}

// NotificationsEnabled implements the scheduler's settings source.
func (c *Config) NotificationsEnabled() bool {
	return c.EnableNotifications
}

// DefaultLeadMinutes implements the scheduler's settings source.
func (c *Config) DefaultLeadMinutes() int {
	return c.NotificationMinutes
}

// Load reads the config file at path, writing a default file on first run.
func Load(path string) (*Config, error) {
	if path == "" {
		return nil, errors.New("config path is empty")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			cfg := DefaultConfig()
			if err := Save(path, cfg); err != nil {
				return cfg, err
			}
			return cfg, nil
		}
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.Normalize()

	return &cfg, nil
}

// Save writes the config atomically via a temp file and rename.
func Save(path string, cfg *Config) error {
	if path == "" {
		return errors.New("config path is empty")
	}
	if cfg == nil {
		return errors.New("config is nil")
	}

	cfg.Normalize()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".event-planner-config-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

// Save writes this config to path.
func (c *Config) Save(path string) error {
	return Save(path, c)
}
