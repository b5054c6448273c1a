package history

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/20uf/rexpress/internal/storage"
)

// MaxRecords bounds the history; the oldest record is evicted first.
const MaxRecords = 20

const timestampLayout = "02 Jan 2006 15:04:05"

var (
	ErrNotFound            = errors.New("history record not found")
	ErrMalformedStoredData = errors.New("malformed stored history")
)

// Record is one past generation.
type Record struct {
	ID          int64  `json:"id" yaml:"id"`
	Input       string `json:"input" yaml:"input"`
	Regex       string `json:"regex" yaml:"regex"`
	Description string `json:"description" yaml:"description"`
	Timestamp   string `json:"timestamp" yaml:"timestamp"`
}

// Logger receives anomalies; persistence problems never reach the caller.
type Logger interface {
	Record(action, details string)
}

// Store is the bounded, most-recent-first history with an optional active record.
type Store struct {
	records []Record
	active  int
	kv      storage.Store
	log     Logger
	now     func() time.Time
}

// Open loads the persisted history from kv.
func Open(kv storage.Store, log Logger) *Store {
	return &Store{
		records: Load(kv, log),
		active:  -1,
		kv:      kv,
		log:     log,
		now:     time.Now,
	}
}

// Load deserializes the history. Missing or malformed data yields an
// empty history and a log entry.
func Load(kv storage.Store, log Logger) []Record {
	records := []Record{}

	data, ok, err := kv.Get(storage.HistoryKey)
	if err != nil {
		log.Record("History load error", err.Error())
		return records
	}
	if !ok {
		log.Record("History load", "No saved history")
		return records
	}

	if err := json.Unmarshal([]byte(data), &records); err != nil {
		log.Record("History load error", fmt.Errorf("%w: %w", ErrMalformedStoredData, err).Error())
		return []Record{}
	}
	if records == nil {
		records = []Record{}
	}
	if len(records) > MaxRecords {
		records = records[:MaxRecords]
	}
	return records
}

// Add creates a record at the head, evicts beyond MaxRecords and persists.
func (s *Store) Add(input, regex, description string) Record {
	now := s.now()

	// Millisecond timestamps can collide on rapid inserts.
	id := now.UnixMilli()
	if len(s.records) > 0 && id <= s.records[0].ID {
		id = s.records[0].ID + 1
	}

	rec := Record{
		ID:          id,
		Input:       input,
		Regex:       regex,
		Description: description,
		Timestamp:   now.Format(timestampLayout),
	}

	s.records = append([]Record{rec}, s.records...)
	if len(s.records) > MaxRecords {
		s.records = s.records[:MaxRecords]
	}
	// The active record keeps pointing at the same entry.
	if s.active >= 0 {
		s.active++
		if s.active >= len(s.records) {
			s.active = -1
		}
	}

	s.persist()
	s.log.Record("Trophy added to collection", fmt.Sprintf("Stored: %q", truncate(input, 50)))
	return rec
}

// Get returns the record at index.
func (s *Store) Get(index int) (Record, error) {
	if index < 0 || index >= len(s.records) {
		return Record{}, fmt.Errorf("%w: index %d", ErrNotFound, index)
	}
	return s.records[index], nil
}

// Delete removes the record at index. Out-of-range indexes are ignored.
func (s *Store) Delete(index int) {
	if index < 0 || index >= len(s.records) {
		return
	}

	s.records = append(s.records[:index], s.records[index+1:]...)

	switch {
	case s.active == index:
		s.active = -1
	case s.active > index:
		s.active--
	}

	s.persist()
	s.log.Record("History deleted", fmt.Sprintf("Deleted item at index %d", index))
}

// Select marks the record at index as active.
func (s *Store) Select(index int) (Record, error) {
	rec, err := s.Get(index)
	if err != nil {
		return Record{}, err
	}
	s.active = index
	s.log.Record("History item loaded", "Pattern: "+rec.Regex)
	return rec, nil
}

// Active returns the active index, if any.
func (s *Store) Active() (int, bool) {
	return s.active, s.active >= 0
}

// Reset clears the active selection.
func (s *Store) Reset() {
	s.active = -1
}

// Records returns a copy of the history, most recent first.
func (s *Store) Records() []Record {
	out := make([]Record, len(s.records))
	copy(out, s.records)
	return out
}

// Len returns the number of records.
func (s *Store) Len() int {
	return len(s.records)
}

// persist writes the full history. Failures are logged and the previously
// stored value is left as it was.
func (s *Store) persist() {
	data, err := json.Marshal(s.records)
	if err != nil {
		s.log.Record("History save error", err.Error())
		return
	}
	if err := s.kv.Set(storage.HistoryKey, string(data)); err != nil {
		s.log.Record("History save error", err.Error())
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
