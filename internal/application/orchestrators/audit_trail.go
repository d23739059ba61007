package orchestrators

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	auditDomain "diary/internal/domain/audit"
)

// AuditStore defines the audit trail interface needed by the orchestrators.
type AuditStore interface {
	Append(ctx context.Context, e auditDomain.Entry) error
}

// recordAudit appends an audit entry for a completed mutation. Audit
// failures are logged and swallowed: the primary mutation already happened
// and must not be reported as failed.
// PRE: the mutation succeeded
// POST: one entry appended, or a warning logged
func recordAudit(ctx context.Context, store AuditStore, genID func() string, now func() time.Time, action auditDomain.Action, eventID int, detail string) {
	if store == nil {
		return
	}
	if genID == nil {
		genID = func() string { return uuid.New().String() }
	}
	if now == nil {
		now = time.Now
	}
	entry := auditDomain.NewEntry(genID(), now(), action, eventID, detail)
	if err := store.Append(ctx, entry); err != nil {
		slog.Warn("audit_append_failed",
			"action", string(action),
			"event_id", eventID,
			"error", err,
		)
	}
}
