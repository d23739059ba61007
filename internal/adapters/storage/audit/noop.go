package audit

import (
	"context"

	domain "diary/internal/domain/audit"
)

// NoopStore discards audit entries. Used when auditing is disabled.
type NoopStore struct{}

// Compile-time check that NoopStore satisfies Store.
var _ Store = NoopStore{}

// NewNoopStore creates a NoopStore.
func NewNoopStore() NoopStore {
	return NoopStore{}
}

// Append discards the entry.
func (NoopStore) Append(_ context.Context, _ domain.Entry) error {
	return nil
}
