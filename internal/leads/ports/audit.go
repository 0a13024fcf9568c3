package ports

import (
	"context"

	"leadtrack_backend/internal/audit"
)

// AuditLog records audit events for completed mutations. Implementations must
// never fail the caller; write failures are logged and swallowed.
type AuditLog interface {
	Append(ctx context.Context, entry audit.Entry)
}
