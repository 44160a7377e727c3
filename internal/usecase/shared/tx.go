package shared

import (
	"context"

	"petbooking/internal/infra/db"
)

// TxRunner runs a function inside a single database transaction. The scheduler
// depends on this interface rather than on pgx so its admission-control logic
// stays testable without a live database.
type TxRunner interface {
	// InTx begins a transaction, invokes fn with it, and commits when fn
	// returns nil. Any error rolls back. Retryable serialization failures are
	// retried with backoff before surfacing.
	InTx(ctx context.Context, fn func(tx db.DBTX) error) error
}
