package activity

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

const timeLayout = "02/01/2006, 15:04:05"

// Entry is one line of the activity log.
type Entry struct {
	Time    time.Time
	Action  string
	Details string
}

// String formats the entry as "[timestamp] action: details".
func (e Entry) String() string {
	return fmt.Sprintf("[%s] %s: %s", e.Time.Format(timeLayout), e.Action, e.Details)
}

// Log is the in-memory activity log of a session.
type Log struct {
	mu      sync.Mutex
	entries []Entry
	now     func() time.Time
	sinks   []func(Entry)
}

// New creates an empty log.
func New() *Log {
	return &Log{now: time.Now}
}

// OnRecord registers a callback invoked for every new entry.
func (l *Log) OnRecord(fn func(Entry)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.sinks = append(l.sinks, fn)
}

// Record appends an entry.
func (l *Log) Record(action, details string) {
	l.mu.Lock()
	e := Entry{Time: l.now(), Action: action, Details: details}
	l.entries = append(l.entries, e)
	sinks := l.sinks
	l.mu.Unlock()

	for _, fn := range sinks {
		fn(e)
	}
}

// Recordf appends an entry with formatted details.
func (l *Log) Recordf(action, format string, a ...any) {
	l.Record(action, fmt.Sprintf(format, a...))
}

// Entries returns a copy of all entries in insertion order.
func (l *Log) Entries() []Entry {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]Entry, len(l.entries))
	copy(out, l.entries)
	return out
}

// Len returns the number of entries.
func (l *Log) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.entries)
}

// Text joins all entries with newlines.
func (l *Log) Text() string {
	entries := l.Entries()
	lines := make([]string, len(entries))
	for i, e := range entries {
		lines[i] = e.String()
	}
	return strings.Join(lines, "\n")
}

// ExportName returns the download file name for a log exported at t.
// Colons and periods of the ISO-8601 timestamp become hyphens.
func ExportName(t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z07:00")
	stamp = strings.NewReplacer(":", "-", ".", "-").Replace(stamp)
	return "regex-generator-log-" + stamp + ".txt"
}

// Export writes the log to dir and returns the file path.
func (l *Log) Export(dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create export directory: %w", err)
	}

	path := filepath.Join(dir, ExportName(l.now()))
	if err := os.WriteFile(path, []byte(l.Text()), 0644); err != nil {
		l.Record("Download failed", err.Error())
		return "", fmt.Errorf("failed to write log: %w", err)
	}

	l.Record("Hunt log preserved", "Log saved: "+filepath.Base(path))
	return path, nil
}
