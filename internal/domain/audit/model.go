package audit

import (
	"errors"
	"time"
)

// Action represents the mutation that occurred.
type Action string

const (
	ActionAdd      Action = "add"
	ActionEdit     Action = "edit"
	ActionDelete   Action = "delete"
	ActionComplete Action = "complete"
	ActionSort     Action = "sort"
)

// Entry is a single audit trail record. Entries are append-only and are
// written for inspection outside the program; nothing reads them back.
type Entry struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Action    Action    `json:"action"`
	EventID   int       `json:"event_id"` // 0 for collection-wide actions (sort)
	Detail    string    `json:"detail"`
}

// NewEntry creates an audit entry.
// PRE: id is non-empty, action is one of the Action constants
// POST: returns an Entry with the given timestamp and fields
func NewEntry(id string, ts time.Time, action Action, eventID int, detail string) Entry {
	return Entry{
		ID:        id,
		Timestamp: ts,
		Action:    action,
		EventID:   eventID,
		Detail:    detail,
	}
}

// Validate checks the entry's invariants.
// PRE: none
// POST: returns nil if valid, error describing the first violation otherwise
func (e Entry) Validate() error {
	if e.ID == "" {
		return errors.New("audit entry id is required")
	}
	if e.Action == "" {
		return errors.New("audit entry action is required")
	}
	if e.Timestamp.IsZero() {
		return errors.New("audit entry timestamp is required")
	}
	return nil
}
