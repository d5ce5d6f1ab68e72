// ABOUTME: Lifecycle service implementing the software state machine over the
// ABOUTME: catalog and the persisted registry, one load-mutate-save cycle per call.

package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/2389/depot-gateway/internal/catalog"
	"github.com/2389/depot-gateway/internal/registry"
	"github.com/2389/depot-gateway/internal/store"
)

// State is the conceptual per-package lifecycle state.
type State string

const (
	StateUnknown   State = "unknown"   // not in the catalog
	StateAvailable State = "available" // in the catalog, not installed
	StateInstalled State = "installed" // installed at the latest version
	StateOutdated  State = "outdated"  // installed at a non-latest version
)

// Config holds the dependencies for the lifecycle service.
type Config struct {
	Catalog *catalog.Catalog
	Store   *registry.FileStore // nil means operations report config_missing
	Audit   store.AuditStore    // optional; nil disables auditing
	Logger  *slog.Logger
	Now     func() time.Time // defaults to time.Now
}

// Service implements the lifecycle operations. Each operation appears atomic
// to the caller: mutating calls serialize their load-mutate-save cycle behind
// a mutex, and a failed save leaves no partial mutation behind (the in-memory
// registry is discarded after every call).
type Service struct {
	catalog *catalog.Catalog
	files   *registry.FileStore
	audit   store.AuditStore
	logger  *slog.Logger
	now     func() time.Time

	mu sync.Mutex // serializes load-mutate-save cycles
}

// NewService creates a lifecycle service.
func NewService(cfg Config) (*Service, error) {
	if cfg.Catalog == nil {
		return nil, fmt.Errorf("catalog is required")
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default().With("component", "lifecycle")
	}
	now := cfg.Now
	if now == nil {
		now = time.Now
	}
	return &Service{
		catalog: cfg.Catalog,
		files:   cfg.Store,
		audit:   cfg.Audit,
		logger:  logger,
		now:     now,
	}, nil
}

// load reads the persisted registry, or reports why it could not.
func (s *Service) load() (*registry.Registry, Result, bool) {
	if s.files == nil {
		return nil, fail(CodeConfigMissing, "registry path is not configured"), false
	}
	reg, err := s.files.Load()
	if err != nil {
		s.logger.Error("registry load failed", "error", err)
		return nil, fail(CodeRegistryError, fmt.Sprintf("loading registry: %v", err)), false
	}
	return reg, Result{}, true
}

// record writes an audit entry for a mutating operation. Audit failures are
// logged, never surfaced to the caller.
func (s *Service) record(ctx context.Context, op, software string, res Result) {
	if s.audit == nil {
		return
	}
	e := &store.OperationEntry{
		Operation: op,
		Software:  software,
		OK:        res.OK,
		CreatedAt: s.now().UTC(),
	}
	if res.Error != nil {
		e.ErrorCode = res.Error.Code
	}
	if err := s.audit.RecordOperation(ctx, e); err != nil {
		s.logger.Warn("audit record failed", "operation", op, "software", software, "error", err)
	}
}

// State returns the conceptual lifecycle state of a package.
func (s *Service) State(name string) (State, error) {
	canonical := catalog.Canonicalize(name)
	entry, known := s.catalog.Lookup(canonical)
	if !known {
		return StateUnknown, nil
	}
	reg, res, loaded := s.load()
	if !loaded {
		return "", fmt.Errorf("%s", res.Error.Message)
	}
	rec, installed := reg.Get(canonical)
	switch {
	case !installed:
		return StateAvailable, nil
	case rec.Version == entry.LatestVersion:
		return StateInstalled, nil
	default:
		return StateOutdated, nil
	}
}

// Install transitions a package from available to installed at the catalog's
// latest version, with auto-update disabled.
func (s *Service) Install(ctx context.Context, name string) Result {
	if reason := validateName(name); reason != "" {
		return fail(CodeInvalidInput, reason)
	}
	canonical := catalog.Canonicalize(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.install(canonical)
	s.record(ctx, "install", canonical, res)
	return res
}

func (s *Service) install(name string) Result {
	entry, known := s.catalog.Lookup(name)
	if !known {
		return failHint(CodeSoftwareNotFound,
			fmt.Sprintf("software %q not found in catalog", name),
			"Use 'get_recommendations' or 'list_installed_software' to see known software")
	}

	reg, res, loaded := s.load()
	if !loaded {
		return res
	}
	if _, installed := reg.Get(name); installed {
		return failHint(CodeAlreadyInstalled,
			fmt.Sprintf("software %q is already installed", name),
			"Use 'update_software' to update to the latest version")
	}

	reg.Put(name, registry.Record{
		Version:       entry.LatestVersion,
		InstalledDate: s.now().UTC(),
		AutoUpdate:    false,
	})
	if err := s.files.Save(reg); err != nil {
		s.logger.Error("registry save failed", "operation", "install", "software", name, "error", err)
		return fail(CodeRegistryError, fmt.Sprintf("saving registry: %v", err))
	}

	s.logger.Info("software installed", "software", name, "version", entry.LatestVersion)
	return ok(map[string]any{
		"name":    name,
		"version": entry.LatestVersion,
		"status":  "installed",
	})
}

// Uninstall removes a package's installed record.
func (s *Service) Uninstall(ctx context.Context, name string) Result {
	if reason := validateName(name); reason != "" {
		return fail(CodeInvalidInput, reason)
	}
	canonical := catalog.Canonicalize(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.uninstall(canonical)
	s.record(ctx, "uninstall", canonical, res)
	return res
}

func (s *Service) uninstall(name string) Result {
	if _, known := s.catalog.Lookup(name); !known {
		return fail(CodeSoftwareNotFound, fmt.Sprintf("software %q not found in catalog", name))
	}

	reg, res, loaded := s.load()
	if !loaded {
		return res
	}
	if _, installed := reg.Get(name); !installed {
		return fail(CodeNotInstalled, fmt.Sprintf("software %q is not installed", name))
	}

	reg.Remove(name)
	if err := s.files.Save(reg); err != nil {
		s.logger.Error("registry save failed", "operation", "uninstall", "software", name, "error", err)
		return fail(CodeRegistryError, fmt.Sprintf("saving registry: %v", err))
	}

	s.logger.Info("software uninstalled", "software", name)
	return ok(map[string]any{
		"name":   name,
		"status": "uninstalled",
	})
}

// Update moves an installed package to the catalog's latest version.
func (s *Service) Update(ctx context.Context, name string) Result {
	if reason := validateName(name); reason != "" {
		return fail(CodeInvalidInput, reason)
	}
	canonical := catalog.Canonicalize(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.update(canonical)
	s.record(ctx, "update", canonical, res)
	return res
}

func (s *Service) update(name string) Result {
	entry, known := s.catalog.Lookup(name)
	if !known {
		return fail(CodeSoftwareNotFound, fmt.Sprintf("software %q not found in catalog", name))
	}

	reg, res, loaded := s.load()
	if !loaded {
		return res
	}
	rec, installed := reg.Get(name)
	if !installed {
		return failHint(CodeNotInstalled,
			fmt.Sprintf("software %q is not installed", name),
			"Install the software first using 'install_software'")
	}
	if rec.Version == entry.LatestVersion {
		return fail(CodeUpToDate,
			fmt.Sprintf("software %q is already up to date (v%s)", name, rec.Version))
	}

	oldVersion := rec.Version
	rec.Version = entry.LatestVersion
	reg.Put(name, rec)
	if err := s.files.Save(reg); err != nil {
		s.logger.Error("registry save failed", "operation", "update", "software", name, "error", err)
		return fail(CodeRegistryError, fmt.Sprintf("saving registry: %v", err))
	}

	s.logger.Info("software updated", "software", name, "from", oldVersion, "to", entry.LatestVersion)
	return ok(map[string]any{
		"name":        name,
		"old_version": oldVersion,
		"new_version": entry.LatestVersion,
		"status":      "updated",
	})
}

// SetAutoUpdate sets the auto-update flag on an installed package. The flag is
// inert metadata: no scheduler applies updates.
func (s *Service) SetAutoUpdate(ctx context.Context, name string, enabled bool) Result {
	if reason := validateName(name); reason != "" {
		return fail(CodeInvalidInput, reason)
	}
	canonical := catalog.Canonicalize(name)

	s.mu.Lock()
	defer s.mu.Unlock()

	res := s.setAutoUpdate(canonical, enabled)
	s.record(ctx, "set_auto_update", canonical, res)
	return res
}

func (s *Service) setAutoUpdate(name string, enabled bool) Result {
	if _, known := s.catalog.Lookup(name); !known {
		return fail(CodeSoftwareNotFound, fmt.Sprintf("software %q not found in catalog", name))
	}

	reg, res, loaded := s.load()
	if !loaded {
		return res
	}
	rec, installed := reg.Get(name)
	if !installed {
		return fail(CodeNotInstalled, fmt.Sprintf("software %q is not installed", name))
	}

	rec.AutoUpdate = enabled
	reg.Put(name, rec)
	if err := s.files.Save(reg); err != nil {
		s.logger.Error("registry save failed", "operation", "set_auto_update", "software", name, "error", err)
		return fail(CodeRegistryError, fmt.Sprintf("saving registry: %v", err))
	}

	status := "auto-update disabled"
	if enabled {
		status = "auto-update enabled"
	}
	return ok(map[string]any{
		"name":        name,
		"auto_update": enabled,
		"status":      status,
	})
}

// GetSoftwareInfo merges catalog metadata with the installed record, if any.
func (s *Service) GetSoftwareInfo(ctx context.Context, name string) Result {
	if reason := validateName(name); reason != "" {
		return fail(CodeInvalidInput, reason)
	}
	canonical := catalog.Canonicalize(name)

	entry, known := s.catalog.Lookup(canonical)
	if !known {
		return fail(CodeSoftwareNotFound, fmt.Sprintf("software %q not found in catalog", canonical))
	}

	reg, res, loaded := s.load()
	if !loaded {
		return res
	}

	data := map[string]any{
		"name":            canonical,
		"description":     entry.Description,
		"category":        entry.Category,
		"latest_version":  entry.LatestVersion,
		"current_version": nil,
		"installed":       false,
		"auto_update":     false,
	}
	if rec, installed := reg.Get(canonical); installed {
		data["current_version"] = rec.Version
		data["installed"] = true
		data["auto_update"] = rec.AutoUpdate
	}
	return ok(data)
}

// ListInstalled enumerates the registry joined with catalog descriptions.
// An empty list is success.
func (s *Service) ListInstalled(ctx context.Context) Result {
	reg, res, loaded := s.load()
	if !loaded {
		return res
	}

	rows := make([]map[string]any, 0, reg.Len())
	for _, name := range reg.Names() {
		rec, _ := reg.Get(name)
		entry, known := s.catalog.Lookup(name)
		if !known {
			// Registry keys must exist in the catalog; an externally edited
			// document can violate that. Skip rather than invent metadata.
			s.logger.Warn("registry record references unknown software", "software", name)
			continue
		}
		rows = append(rows, map[string]any{
			"name":        name,
			"version":     rec.Version,
			"description": entry.Description,
		})
	}

	return ok(map[string]any{
		"installed_software": rows,
		"count":              len(rows),
	})
}

// CheckUpdates filters installed records whose version differs from the
// catalog's latest version.
func (s *Service) CheckUpdates(ctx context.Context) Result {
	reg, res, loaded := s.load()
	if !loaded {
		return res
	}

	updates := make([]map[string]any, 0)
	for _, name := range reg.Names() {
		rec, _ := reg.Get(name)
		entry, known := s.catalog.Lookup(name)
		if !known {
			continue
		}
		if rec.Version != entry.LatestVersion {
			updates = append(updates, map[string]any{
				"name":            name,
				"current_version": rec.Version,
				"latest_version":  entry.LatestVersion,
			})
		}
	}

	return ok(map[string]any{
		"available_updates": updates,
		"count":             len(updates),
	})
}

// GetRecommendations returns the recommended software for a recognized task,
// with per-package catalog detail and installed status.
func (s *Service) GetRecommendations(ctx context.Context, task string) Result {
	if reason := validateTask(task); reason != "" {
		return fail(CodeInvalidInput, reason)
	}
	canonical := catalog.Canonicalize(task)

	names, known := s.catalog.Recommendations(canonical)
	if !known {
		return failHint(CodeSoftwareNotFound,
			fmt.Sprintf("task %q not found", canonical),
			"Available tasks: "+strings.Join(s.catalog.Tasks(), ", "))
	}

	reg, res, loaded := s.load()
	if !loaded {
		return res
	}

	details := make([]map[string]any, 0, len(names))
	for _, name := range names {
		entry, _ := s.catalog.Lookup(name)
		_, installed := reg.Get(name)
		details = append(details, map[string]any{
			"name":           name,
			"description":    entry.Description,
			"latest_version": entry.LatestVersion,
			"installed":      installed,
		})
	}

	return ok(map[string]any{
		"task":            canonical,
		"recommendations": names,
		"details":         details,
		"count":           len(names),
	})
}
