package event

import (
	"context"

	domain "diary/internal/domain/event"
)

// Store persists diary events. It owns id assignment and the contractual
// record order (list output and the order persisted after a date sort).
type Store interface {
	// Add creates an event with the next id (max existing id + 1, or 1 when
	// empty), completed=false, and persists it.
	Add(ctx context.Context, title, importance, date string) (domain.Event, error)
	// Edit overwrites the fields present in update and persists. Returns
	// ErrNotFound when no event has the id.
	Edit(ctx context.Context, id int, update domain.Update) (domain.Event, error)
	// Delete removes the event with the id. Returns false (and leaves
	// storage untouched) when the id is absent.
	Delete(ctx context.Context, id int) (bool, error)
	// MarkCompleted sets completed=true. Idempotent; returns false on miss.
	MarkCompleted(ctx context.Context, id int) (bool, error)
	// SortByDate stably sorts the collection ascending by date string and
	// persists the new order.
	SortByDate(ctx context.Context) error
	// GetByID returns the event with the id, or ErrNotFound.
	GetByID(ctx context.Context, id int) (domain.Event, error)
	// ListAll returns all events in stored order.
	ListAll(ctx context.Context) ([]domain.Event, error)
}
