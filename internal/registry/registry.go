// ABOUTME: In-memory registry of installed software records.
// ABOUTME: Pure map operations; persistence lives in the file store.

package registry

import (
	"errors"
	"sort"
	"time"
)

// ErrNotFound is returned when a requested record does not exist.
var ErrNotFound = errors.New("record not found")

// Record is the installed-state record for one software package. Records are
// value types: mutations replace the whole record rather than editing in place.
type Record struct {
	Version       string    `json:"version"`
	InstalledDate time.Time `json:"installed_date"`
	AutoUpdate    bool      `json:"auto_update"`
}

// Registry maps canonical software names to their installed records.
// Every key must also exist in the catalog; the lifecycle service enforces
// that invariant since the registry has no catalog access.
type Registry struct {
	records map[string]Record
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{records: make(map[string]Record)}
}

// Get returns the record for name, if present.
func (r *Registry) Get(name string) (Record, bool) {
	rec, ok := r.records[name]
	return rec, ok
}

// Put inserts or replaces the record for name.
func (r *Registry) Put(name string, rec Record) {
	r.records[name] = rec
}

// Remove deletes the record for name. Returns true if it existed.
func (r *Registry) Remove(name string) bool {
	_, ok := r.records[name]
	delete(r.records, name)
	return ok
}

// Names returns the registered software names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.records))
	for name := range r.records {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of installed records.
func (r *Registry) Len() int {
	return len(r.records)
}
