// Package catalog provides the fixed reference data for known software.
//
// The catalog is a read-only mapping from canonical lowercase software names
// to their metadata (description, latest version, category), plus a fixed
// table of task-based recommendations. The data ships embedded in the binary
// as YAML and is parsed once at startup.
//
// Lookups are case-insensitive: callers may pass any casing and surrounding
// whitespace, and the catalog canonicalizes before matching. A missing entry
// is reported as an absent result, not an error; callers decide the error
// kind (e.g. software_not_found at the service layer).
package catalog
