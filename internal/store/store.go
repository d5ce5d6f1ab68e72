// ABOUTME: Audit store interface and entry types for lifecycle operations.
// ABOUTME: Records what was done to which software and how it turned out.

package store

import (
	"context"
	"time"
)

// OperationEntry is one audited lifecycle operation.
type OperationEntry struct {
	ID        string    // UUID v4, assigned on insert if empty
	Operation string    // "install", "uninstall", "update", "set_auto_update"
	Software  string    // canonical software name
	OK        bool      // whether the operation succeeded
	ErrorCode string    // envelope error code on failure, empty on success
	CreatedAt time.Time // when the operation completed
}

// OperationFilter narrows ListOperations results.
type OperationFilter struct {
	Software string     // only entries for this software, if set
	Since    *time.Time // only entries at or after this time
	Limit    int        // max entries to return; 0 means no limit
}

// AuditStore records and queries lifecycle operations.
type AuditStore interface {
	RecordOperation(ctx context.Context, e *OperationEntry) error
	ListOperations(ctx context.Context, f OperationFilter) ([]*OperationEntry, error)
	Close() error
}
