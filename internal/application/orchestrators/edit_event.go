package orchestrators

import (
	"context"
	"fmt"
	"time"

	auditDomain "diary/internal/domain/audit"
	eventDomain "diary/internal/domain/event"
)

// EventStoreForEdit defines the store interface needed by EditEvent.
type EventStoreForEdit interface {
	Edit(ctx context.Context, id int, update eventDomain.Update) (eventDomain.Event, error)
}

// EditEventInput carries input for EditEvent. Nil fields are left
// unchanged; a non-nil field overwrites, even with an empty string.
type EditEventInput struct {
	ID         int
	Title      *string
	Importance *string
	Date       *string
}

// EditEventDeps holds dependencies for EditEvent.
type EditEventDeps struct {
	EventStore EventStoreForEdit
	AuditStore AuditStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteEditEvent applies a partial update and records an audit entry.
// PRE: a non-nil input.Date was validated by the caller
// POST: only the provided fields change; ErrNotFound passes through untouched
func ExecuteEditEvent(ctx context.Context, input EditEventInput, deps EditEventDeps) (eventDomain.Event, error) {
	update := eventDomain.Update{
		Title:      input.Title,
		Importance: input.Importance,
		Date:       input.Date,
	}
	e, err := deps.EventStore.Edit(ctx, input.ID, update)
	if err != nil {
		return eventDomain.Event{}, err
	}
	recordAudit(ctx, deps.AuditStore, deps.GenerateID, deps.Now,
		auditDomain.ActionEdit, e.ID, fmt.Sprintf("edited %q", e.DisplayTitle()))
	return e, nil
}
