package event

import (
	"errors"
	"fmt"
)

// DateFormat is the calendar date layout used everywhere in the app.
// Lexicographic order on strings in this layout matches chronological order.
const DateFormat = "2006-01-02"

// MaxTitleDisplayLength is the number of characters titles are truncated to
// when listed. Storage keeps the full title.
const MaxTitleDisplayLength = 30

// Sentinel errors shared by all storage backends.
var (
	ErrNotFound        = errors.New("event not found")
	ErrMalformedRecord = errors.New("malformed event record")
	ErrStorage         = errors.New("storage failure")
)

// Event represents one diary entry.
// INVARIANT: ID is positive and unique within a store; the store assigns it.
// Date is expected in DateFormat but the storage layer does not re-validate
// it; input validation is the CLI's job.
type Event struct {
	ID         int
	Title      string
	Importance string
	Date       string
	Completed  bool
}

// Update carries optional replacement values for an edit. A nil field means
// "leave unchanged"; a non-nil field overwrites, even with an empty string.
type Update struct {
	Title      *string
	Importance *string
	Date       *string
}

// Apply returns a copy of e with the non-nil fields of u applied.
// PRE: none
// POST: ID and Completed are never changed by an update
func (u Update) Apply(e Event) Event {
	if u.Title != nil {
		e.Title = *u.Title
	}
	if u.Importance != nil {
		e.Importance = *u.Importance
	}
	if u.Date != nil {
		e.Date = *u.Date
	}
	return e
}

// DisplayTitle returns the title truncated to MaxTitleDisplayLength
// characters for table rendering. Truncation counts runes, not bytes, so
// multi-byte titles keep 30 characters and are never cut mid-sequence.
func (e Event) DisplayTitle() string {
	r := []rune(e.Title)
	if len(r) > MaxTitleDisplayLength {
		return string(r[:MaxTitleDisplayLength])
	}
	return e.Title
}

// ToMap converts the event to its serialized mapping with the exact keys
// id, title, importance, date, completed.
// PRE: none
// POST: returned map has exactly five keys
func (e Event) ToMap() map[string]any {
	return map[string]any{
		"id":         e.ID,
		"title":      e.Title,
		"importance": e.Importance,
		"date":       e.Date,
		"completed":  e.Completed,
	}
}

// FromMap builds an Event from a serialized mapping.
// "completed" defaults to false when absent. A missing or wrongly typed
// id, title, importance, or date yields ErrMalformedRecord.
// PRE: m was produced by decoding a JSON object (numbers may be float64)
// POST: returns a fully populated Event or an error wrapping ErrMalformedRecord
func FromMap(m map[string]any) (Event, error) {
	id, err := intField(m, "id")
	if err != nil {
		return Event{}, err
	}
	title, err := stringField(m, "title")
	if err != nil {
		return Event{}, err
	}
	importance, err := stringField(m, "importance")
	if err != nil {
		return Event{}, err
	}
	date, err := stringField(m, "date")
	if err != nil {
		return Event{}, err
	}

	completed := false
	if v, ok := m["completed"]; ok {
		b, ok := v.(bool)
		if !ok {
			return Event{}, fmt.Errorf("%w: field %q is not a boolean", ErrMalformedRecord, "completed")
		}
		completed = b
	}

	return Event{
		ID:         id,
		Title:      title,
		Importance: importance,
		Date:       date,
		Completed:  completed,
	}, nil
}

// intField reads a required integer field. JSON decoding yields float64, so
// both int and integral float64 are accepted.
func intField(m map[string]any, key string) (int, error) {
	v, ok := m[key]
	if !ok {
		return 0, fmt.Errorf("%w: missing field %q", ErrMalformedRecord, key)
	}
	switch n := v.(type) {
	case int:
		return n, nil
	case float64:
		if n != float64(int(n)) {
			return 0, fmt.Errorf("%w: field %q is not an integer", ErrMalformedRecord, key)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%w: field %q is not an integer", ErrMalformedRecord, key)
	}
}

// stringField reads a required string field.
func stringField(m map[string]any, key string) (string, error) {
	v, ok := m[key]
	if !ok {
		return "", fmt.Errorf("%w: missing field %q", ErrMalformedRecord, key)
	}
	s, ok := v.(string)
	if !ok {
		return "", fmt.Errorf("%w: field %q is not a string", ErrMalformedRecord, key)
	}
	return s, nil
}
