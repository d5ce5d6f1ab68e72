// Package store provides the SQLite-backed audit log for lifecycle operations.
//
// Every mutating lifecycle operation (install, uninstall, update,
// set_auto_update) is recorded as an OperationEntry with its outcome and, on
// failure, the envelope error code. Read-only operations are not audited.
//
// The store uses SQLite with WAL mode:
//
//	PRAGMA journal_mode=WAL;
//
// Use NewSQLiteStore(":memory:") in tests. The audit log is operational
// telemetry only: the installed-software registry itself is persisted by
// internal/registry, not here.
package store
