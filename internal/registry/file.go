// ABOUTME: JSON file persistence for the installed-software registry.
// ABOUTME: Loads the whole document and saves atomically via temp-then-rename.

package registry

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// ErrCorrupt indicates the persisted document exists but cannot be parsed.
var ErrCorrupt = errors.New("registry document corrupt")

// document is the persisted on-disk shape. The key names are part of the
// observable contract and must not change.
type document struct {
	InstalledSoftware map[string]Record `json:"installed_software"`
}

// FileStore persists a Registry as a single JSON document.
type FileStore struct {
	path   string
	logger *slog.Logger
}

// NewFileStore creates a file store for the given path. Parent directories
// are created on first save.
func NewFileStore(path string, logger *slog.Logger) *FileStore {
	if logger == nil {
		logger = slog.Default().With("component", "registry")
	}
	return &FileStore{path: path, logger: logger}
}

// Path returns the location of the persisted document.
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the persisted document. An absent file is a valid initial state
// and yields an empty registry. Unparseable content returns ErrCorrupt.
func (s *FileStore) Load() (*Registry, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return New(), nil
		}
		return nil, fmt.Errorf("reading registry %s: %w", s.path, err)
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrCorrupt, s.path, err)
	}

	r := New()
	for name, rec := range doc.InstalledSoftware {
		r.records[name] = rec
	}
	return r, nil
}

// Save serializes the registry and atomically replaces the persisted document.
// The write goes to a temp file in the same directory followed by a rename, so
// a failed save never corrupts the previous on-disk copy.
func (s *FileStore) Save(r *Registry) error {
	doc := document{InstalledSoftware: r.records}
	if doc.InstalledSoftware == nil {
		doc.InstalledSoftware = make(map[string]Record)
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("serializing registry: %w", err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating registry directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp registry file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing registry: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp registry file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing registry file: %w", err)
	}

	s.logger.Debug("registry saved", "path", s.path, "records", r.Len())
	return nil
}
