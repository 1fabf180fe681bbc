package store

import (
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/mdoksa76/event-planner/internal/event"
	"github.com/mdoksa76/event-planner/internal/logging"
)

var dayKeyRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Store persists events as one JSON file per day under a data directory.
// Every failure degrades to "no events" or a false return; callers never see
// an error, only the log does.
type Store struct {
	dataDir string
	log     *logging.Logger
}

// New creates a store rooted at dataDir, creating the directory if needed.
func New(dataDir string, log *logging.Logger) *Store {
	s := &Store{dataDir: dataDir, log: log}
	if err := os.MkdirAll(dataDir, 0o755); err != nil {
		log.Error("creating data directory", err, "dir", dataDir)
	}
	return s
}

// Dir returns the data directory path.
func (s *Store) Dir() string {
	return s.dataDir
}

func (s *Store) dayPath(dayKey string) string {
	return filepath.Join(s.dataDir, dayKey+".json")
}

// LoadDay reads one day's records. A missing, empty, or malformed file yields
// an empty slice.
func (s *Store) LoadDay(dayKey string) []event.Record {
	path := s.dayPath(dayKey)

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Error("reading day file", err, "day", dayKey)
		}
		return nil
	}

	if strings.TrimSpace(string(data)) == "" {
		return nil
	}

	var records []event.Record
	if err := json.Unmarshal(data, &records); err != nil {
		s.log.Error("parsing day file", err, "day", dayKey)
		return nil
	}
	return records
}

// SaveDay writes one day's records, replacing the file atomically. An empty
// record list deletes the file so empty days never persist.
func (s *Store) SaveDay(dayKey string, records []event.Record) bool {
	path := s.dayPath(dayKey)

	if len(records) == 0 {
		if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			s.log.Error("deleting day file", err, "day", dayKey)
			return false
		}
		return true
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		s.log.Error("encoding day file", err, "day", dayKey)
		return false
	}

	tmp, err := os.CreateTemp(s.dataDir, "."+dayKey+"-*.tmp")
	if err != nil {
		s.log.Error("creating temp file", err, "day", dayKey)
		return false
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		s.log.Error("writing day file", err, "day", dayKey)
		return false
	}
	if err := tmp.Close(); err != nil {
		s.log.Error("closing day file", err, "day", dayKey)
		return false
	}
	if err := os.Rename(tmpName, path); err != nil {
		s.log.Error("replacing day file", err, "day", dayKey)
		return false
	}

	s.log.Debug("saved day file", "day", dayKey, "events", len(records))
	return true
}

// LoadAll scans the data directory and returns records for every valid day
// file. Files whose names are not exact YYYY-MM-DD.json are ignored, and one
// unreadable file never aborts the scan.
func (s *Store) LoadAll() map[string][]event.Record {
	out := make(map[string][]event.Record)

	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Error("reading data directory", err, "dir", s.dataDir)
		}
		return out
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		dayKey, ok := DayKeyFromFilename(entry.Name())
		if !ok {
			continue
		}
		if records := s.LoadDay(dayKey); len(records) > 0 {
			out[dayKey] = records
		}
	}

	s.log.Debug("loaded all days", "days", len(out))
	return out
}

// ClearAll deletes every valid day file.
func (s *Store) ClearAll() {
	entries, err := os.ReadDir(s.dataDir)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.log.Error("reading data directory", err, "dir", s.dataDir)
		}
		return
	}

	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if _, ok := DayKeyFromFilename(entry.Name()); !ok {
			continue
		}
		path := filepath.Join(s.dataDir, entry.Name())
		if err := os.Remove(path); err != nil {
			s.log.Error("deleting day file", err, "path", path)
		}
	}
}

// DayKeyFromFilename extracts the day key from a day-file name, rejecting
// anything that is not exactly YYYY-MM-DD.json.
func DayKeyFromFilename(name string) (string, bool) {
	dayKey, found := strings.CutSuffix(name, ".json")
	if !found || !dayKeyRe.MatchString(dayKey) {
		return "", false
	}
	return dayKey, true
}
