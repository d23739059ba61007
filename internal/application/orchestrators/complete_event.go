package orchestrators

import (
	"context"
	"fmt"
	"time"

	auditDomain "diary/internal/domain/audit"
)

// EventStoreForComplete defines the store interface needed by CompleteEvent.
type EventStoreForComplete interface {
	MarkCompleted(ctx context.Context, id int) (bool, error)
}

// CompleteEventDeps holds dependencies for CompleteEvent.
type CompleteEventDeps struct {
	EventStore EventStoreForComplete
	AuditStore AuditStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteCompleteEvent marks an event completed and records an audit entry.
// PRE: none
// POST: idempotent; returns false on miss with no audit entry
func ExecuteCompleteEvent(ctx context.Context, id int, deps CompleteEventDeps) (bool, error) {
	found, err := deps.EventStore.MarkCompleted(ctx, id)
	if err != nil || !found {
		return found, err
	}
	recordAudit(ctx, deps.AuditStore, deps.GenerateID, deps.Now,
		auditDomain.ActionComplete, id, fmt.Sprintf("completed event %d", id))
	return true, nil
}
