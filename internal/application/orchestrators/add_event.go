package orchestrators

import (
	"context"
	"fmt"
	"time"

	auditDomain "diary/internal/domain/audit"
	eventDomain "diary/internal/domain/event"
)

// EventStoreForAdd defines the store interface needed by AddEvent.
type EventStoreForAdd interface {
	Add(ctx context.Context, title, importance, date string) (eventDomain.Event, error)
}

// AddEventInput carries input for AddEvent. Date is expected in
// YYYY-MM-DD form; the CLI validates it before calling.
type AddEventInput struct {
	Title      string
	Importance string
	Date       string
}

// AddEventDeps holds dependencies for AddEvent.
type AddEventDeps struct {
	EventStore EventStoreForAdd
	AuditStore AuditStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteAddEvent creates a new event and records an audit entry.
// PRE: input.Date was validated by the caller
// POST: event persisted with completed=false and a store-assigned id
func ExecuteAddEvent(ctx context.Context, input AddEventInput, deps AddEventDeps) (eventDomain.Event, error) {
	e, err := deps.EventStore.Add(ctx, input.Title, input.Importance, input.Date)
	if err != nil {
		return eventDomain.Event{}, err
	}
	recordAudit(ctx, deps.AuditStore, deps.GenerateID, deps.Now,
		auditDomain.ActionAdd, e.ID, fmt.Sprintf("added %q on %s", e.DisplayTitle(), e.Date))
	return e, nil
}
