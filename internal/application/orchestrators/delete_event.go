package orchestrators

import (
	"context"
	"fmt"
	"time"

	auditDomain "diary/internal/domain/audit"
)

// EventStoreForDelete defines the store interface needed by DeleteEvent.
type EventStoreForDelete interface {
	Delete(ctx context.Context, id int) (bool, error)
}

// DeleteEventDeps holds dependencies for DeleteEvent.
type DeleteEventDeps struct {
	EventStore EventStoreForDelete
	AuditStore AuditStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteDeleteEvent removes an event and records an audit entry.
// PRE: none
// POST: returns false on miss with no state change and no audit entry
func ExecuteDeleteEvent(ctx context.Context, id int, deps DeleteEventDeps) (bool, error) {
	removed, err := deps.EventStore.Delete(ctx, id)
	if err != nil || !removed {
		return removed, err
	}
	recordAudit(ctx, deps.AuditStore, deps.GenerateID, deps.Now,
		auditDomain.ActionDelete, id, fmt.Sprintf("deleted event %d", id))
	return true, nil
}
