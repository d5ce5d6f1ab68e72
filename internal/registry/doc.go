// Package registry persists the installed-software state.
//
// # Data Model
//
// A Registry maps canonical software names to Records (version, install
// timestamp, auto-update flag). Get/Put/Remove are pure in-memory operations;
// durability comes from the FileStore, which owns a single JSON document:
//
//	{
//	  "installed_software": {
//	    "python": {
//	      "version": "3.11.0",
//	      "installed_date": "2026-08-30T12:00:00Z",
//	      "auto_update": false
//	    }
//	  }
//	}
//
// # Durability
//
// Load treats an absent file as an empty registry and reports unparseable
// content as ErrCorrupt. Save writes the full document to a temp file in the
// same directory and renames it into place, so a failed save never damages
// the previous copy. The lifecycle service performs a load-mutate-save cycle
// per mutating operation; the registry itself holds no cross-call state.
package registry
