// Package lifecycle implements the software lifecycle operations.
//
// # State Machine
//
// Each package is in one of four conceptual states:
//
//	unknown   - not in the catalog
//	available - in the catalog, no installed record
//	installed - installed record exists, version == latest
//	outdated  - installed record exists, version != latest
//
// Operations are pure state transitions over the catalog and the persisted
// registry. "Install" means writing a record; nothing touches the operating
// system.
//
// # Envelope
//
// Every operation returns exactly one Result: {ok, data} on success or
// {ok: false, error: {code, message, hint?}} on failure, never both. The error
// codes form a closed set: software_not_found, already_installed,
// not_installed, up_to_date, invalid_input, registry_error, config_missing.
//
// # Ordering
//
// Input validation runs before any catalog or registry access, so
// invalid_input always precedes software_not_found. Names and tasks are
// canonicalized (trim + lowercase) before lookup.
//
// # Durability
//
// Mutating operations perform a load-mutate-save cycle against the registry
// file, serialized by a mutex; no registry state is cached across calls. A
// failed save reports registry_error and leaves the previous on-disk copy
// intact. Mutating operations are additionally recorded in the audit store
// when one is configured.
package lifecycle
