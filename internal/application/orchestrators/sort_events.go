package orchestrators

import (
	"context"
	"time"

	auditDomain "diary/internal/domain/audit"
)

// EventStoreForSort defines the store interface needed by SortEvents.
type EventStoreForSort interface {
	SortByDate(ctx context.Context) error
}

// SortEventsDeps holds dependencies for SortEvents.
type SortEventsDeps struct {
	EventStore EventStoreForSort
	AuditStore AuditStore
	GenerateID func() string
	Now        func() time.Time
}

// ExecuteSortEvents sorts the collection by date and records an audit entry.
// PRE: none
// POST: the persisted record order is ascending by date
func ExecuteSortEvents(ctx context.Context, deps SortEventsDeps) error {
	if err := deps.EventStore.SortByDate(ctx); err != nil {
		return err
	}
	recordAudit(ctx, deps.AuditStore, deps.GenerateID, deps.Now,
		auditDomain.ActionSort, 0, "sorted events by date")
	return nil
}
