package audit

import (
	"context"

	domain "diary/internal/domain/audit"
)

// Store records audit trail entries. Entries are append-only; the program
// never reads them back.
type Store interface {
	Append(ctx context.Context, e domain.Entry) error
}
