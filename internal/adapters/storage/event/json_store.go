package event

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	jsoniter "github.com/json-iterator/go"

	domain "diary/internal/domain/event"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// JSONStore implements Store over a single JSON file. The whole collection
// is held in memory and rewritten to disk after every mutation.
//
// A failed save leaves the in-memory collection mutated; the file keeps its
// previous contents. Callers see the error and can retry the operation.
type JSONStore struct {
	path   string
	events []domain.Event
}

// Compile-time check that *JSONStore satisfies Store.
var _ Store = (*JSONStore)(nil)

// NewJSONStore creates a JSONStore backed by the file at path and loads the
// existing collection.
// PRE: path is non-empty
// POST: store holds the file's events; an absent file yields an empty store
func NewJSONStore(path string) (*JSONStore, error) {
	s := &JSONStore{path: path}
	if err := s.load(); err != nil {
		return nil, err
	}
	return s, nil
}

// load reads the backing file. An absent file is not an error; unparseable
// content is ErrStorage; a structurally bad record is ErrMalformedRecord.
func (s *JSONStore) load() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			s.events = nil
			return nil
		}
		return fmt.Errorf("%w: read %s: %v", domain.ErrStorage, s.path, err)
	}

	var raw []map[string]any
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: parse %s: %v", domain.ErrStorage, s.path, err)
	}

	events := make([]domain.Event, 0, len(raw))
	for i, m := range raw {
		e, err := domain.FromMap(m)
		if err != nil {
			return fmt.Errorf("record %d in %s: %w", i, s.path, err)
		}
		events = append(events, e)
	}
	s.events = events
	return nil
}

// save rewrites the whole backing file. Writes go to a temp file in the same
// directory first, then rename over the target, so a crash mid-write never
// truncates the previous contents.
func (s *JSONStore) save() error {
	raw := make([]map[string]any, len(s.events))
	for i, e := range s.events {
		raw[i] = e.ToMap()
	}
	data, err := json.MarshalIndent(raw, "", "    ")
	if err != nil {
		return fmt.Errorf("%w: marshal events: %v", domain.ErrStorage, err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, ".events-*.json")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", domain.ErrStorage, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write %s: %v", domain.ErrStorage, tmpName, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close %s: %v", domain.ErrStorage, tmpName, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: rename to %s: %v", domain.ErrStorage, s.path, err)
	}
	return nil
}

// nextID computes max(existing ids)+1, or 1 for an empty store. Deleting the
// max id makes that id available again; this matches the documented id
// assignment scheme, it is not a monotonic counter.
func (s *JSONStore) nextID() int {
	maxID := 0
	for _, e := range s.events {
		if e.ID > maxID {
			maxID = e.ID
		}
	}
	return maxID + 1
}

// Add appends a new event and persists.
// PRE: date is validated by the caller; the store does not re-validate
// POST: returned event has a unique id and completed=false
func (s *JSONStore) Add(_ context.Context, title, importance, date string) (domain.Event, error) {
	e := domain.Event{
		ID:         s.nextID(),
		Title:      title,
		Importance: importance,
		Date:       date,
	}
	s.events = append(s.events, e)
	if err := s.save(); err != nil {
		return domain.Event{}, err
	}
	return e, nil
}

// Edit applies the update to the matching event and persists.
// PRE: none
// POST: only fields present in update change; ErrNotFound on miss
func (s *JSONStore) Edit(_ context.Context, id int, update domain.Update) (domain.Event, error) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Event{}, domain.ErrNotFound
	}
	s.events[i] = update.Apply(s.events[i])
	if err := s.save(); err != nil {
		return domain.Event{}, err
	}
	return s.events[i], nil
}

// Delete removes the matching event and persists.
// PRE: none
// POST: returns false and leaves the file untouched when the id is absent
func (s *JSONStore) Delete(_ context.Context, id int) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.events = append(s.events[:i], s.events[i+1:]...)
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

// MarkCompleted sets completed=true on the matching event and persists.
// PRE: none
// POST: idempotent; returns true whenever the id exists
func (s *JSONStore) MarkCompleted(_ context.Context, id int) (bool, error) {
	i := s.indexOf(id)
	if i < 0 {
		return false, nil
	}
	s.events[i].Completed = true
	if err := s.save(); err != nil {
		return false, err
	}
	return true, nil
}

// SortByDate stably sorts ascending by the date string and persists.
// Lexicographic order on YYYY-MM-DD strings is chronological order.
// PRE: none
// POST: the on-disk order changes permanently, not just the display order
func (s *JSONStore) SortByDate(_ context.Context) error {
	sort.SliceStable(s.events, func(i, j int) bool {
		return s.events[i].Date < s.events[j].Date
	})
	return s.save()
}

// GetByID returns the matching event via linear scan, first match wins.
// PRE: none
// POST: ErrNotFound when no event has the id
func (s *JSONStore) GetByID(_ context.Context, id int) (domain.Event, error) {
	i := s.indexOf(id)
	if i < 0 {
		return domain.Event{}, domain.ErrNotFound
	}
	return s.events[i], nil
}

// ListAll returns a copy of the collection in stored order.
func (s *JSONStore) ListAll(_ context.Context) ([]domain.Event, error) {
	out := make([]domain.Event, len(s.events))
	copy(out, s.events)
	return out, nil
}

// indexOf returns the index of the event with the id, or -1.
func (s *JSONStore) indexOf(id int) int {
	for i, e := range s.events {
		if e.ID == id {
			return i
		}
	}
	return -1
}
