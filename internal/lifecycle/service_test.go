// ABOUTME: Tests for the lifecycle service: state transitions, error taxonomy,
// ABOUTME: idempotence, persistence, and end-to-end install scenarios.

package lifecycle

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/2389/depot-gateway/internal/catalog"
	"github.com/2389/depot-gateway/internal/registry"
	"github.com/2389/depot-gateway/internal/store"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	c, err := catalog.Load()
	require.NoError(t, err)

	files := registry.NewFileStore(filepath.Join(t.TempDir(), "software_registry.json"), nil)
	svc, err := NewService(Config{Catalog: c, Store: files})
	require.NoError(t, err)
	return svc
}

func requireOK(t *testing.T, res Result) map[string]any {
	t.Helper()
	require.True(t, res.OK, "expected success, got error: %+v", res.Error)
	require.Nil(t, res.Error)
	return res.Data
}

func requireCode(t *testing.T, res Result, code string) *ErrorInfo {
	t.Helper()
	require.False(t, res.OK)
	require.NotNil(t, res.Error)
	require.Nil(t, res.Data)
	assert.Equal(t, code, res.Error.Code)
	return res.Error
}

func TestInstall(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	data := requireOK(t, svc.Install(ctx, "python"))
	assert.Equal(t, "python", data["name"])
	assert.Equal(t, "3.11.0", data["version"])
	assert.Equal(t, "installed", data["status"])
}

func TestInstallScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	requireOK(t, svc.Install(ctx, "python"))
	requireCode(t, svc.Install(ctx, "python"), CodeAlreadyInstalled)
	requireOK(t, svc.Uninstall(ctx, "python"))
	requireCode(t, svc.Update(ctx, "python"), CodeNotInstalled)
}

func TestInstallUnknownSoftware(t *testing.T) {
	svc := newTestService(t)

	e := requireCode(t, svc.Install(context.Background(), "emacs"), CodeSoftwareNotFound)
	assert.NotEmpty(t, e.Hint)
}

func TestInstallInvalidInput(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	requireCode(t, svc.Install(ctx, ""), CodeInvalidInput)
	requireCode(t, svc.Install(ctx, "   "), CodeInvalidInput)

	long := make([]byte, 101)
	for i := range long {
		long[i] = 'a'
	}
	requireCode(t, svc.Install(ctx, string(long)), CodeInvalidInput)
}

func TestInstallCaseInsensitive(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	requireOK(t, svc.Install(ctx, "Python"))
	requireCode(t, svc.Install(ctx, "python"), CodeAlreadyInstalled)
	requireCode(t, svc.Install(ctx, "  PYTHON "), CodeAlreadyInstalled)
}

func TestUninstallIdempotence(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	requireOK(t, svc.Install(ctx, "git"))
	requireOK(t, svc.Uninstall(ctx, "git"))
	requireCode(t, svc.Uninstall(ctx, "git"), CodeNotInstalled)
}

func TestUninstallUnknownSoftware(t *testing.T) {
	svc := newTestService(t)
	requireCode(t, svc.Uninstall(context.Background(), "emacs"), CodeSoftwareNotFound)
}

func TestStateCoherenceAfterInstall(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	requireOK(t, svc.Install(ctx, "docker"))

	info := requireOK(t, svc.GetSoftwareInfo(ctx, "docker"))
	assert.Equal(t, true, info["installed"])
	assert.Equal(t, "25.0.1", info["current_version"])

	list := requireOK(t, svc.ListInstalled(ctx))
	rows := list["installed_software"].([]map[string]any)
	require.Len(t, rows, 1)
	assert.Equal(t, "docker", rows[0]["name"])
	assert.Equal(t, "Container platform", rows[0]["description"])
	assert.Equal(t, 1, list["count"])
}

func TestUpdateMonotonicity(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	requireOK(t, svc.Install(ctx, "nodejs"))

	// Force an outdated record the way a stale registry would look.
	reg, err := svc.files.Load()
	require.NoError(t, err)
	rec, ok := reg.Get("nodejs")
	require.True(t, ok)
	rec.Version = "20.0.0"
	reg.Put("nodejs", rec)
	require.NoError(t, svc.files.Save(reg))

	state, err := svc.State("nodejs")
	require.NoError(t, err)
	assert.Equal(t, StateOutdated, state)

	data := requireOK(t, svc.Update(ctx, "nodejs"))
	assert.Equal(t, "20.0.0", data["old_version"])
	assert.Equal(t, "21.6.0", data["new_version"])
	assert.Equal(t, "updated", data["status"])

	info := requireOK(t, svc.GetSoftwareInfo(ctx, "nodejs"))
	assert.Equal(t, "21.6.0", info["current_version"])

	requireCode(t, svc.Update(ctx, "nodejs"), CodeUpToDate)
}

func TestSetAutoUpdate(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	requireCode(t, svc.SetAutoUpdate(ctx, "git", true), CodeNotInstalled)

	requireOK(t, svc.Install(ctx, "git"))
	data := requireOK(t, svc.SetAutoUpdate(ctx, "git", true))
	assert.Equal(t, true, data["auto_update"])
	assert.Equal(t, "auto-update enabled", data["status"])

	// Idempotent: setting the same value again succeeds.
	requireOK(t, svc.SetAutoUpdate(ctx, "git", true))

	info := requireOK(t, svc.GetSoftwareInfo(ctx, "git"))
	assert.Equal(t, true, info["auto_update"])

	data = requireOK(t, svc.SetAutoUpdate(ctx, "git", false))
	assert.Equal(t, "auto-update disabled", data["status"])
}

func TestGetSoftwareInfoNotInstalled(t *testing.T) {
	svc := newTestService(t)

	info := requireOK(t, svc.GetSoftwareInfo(context.Background(), "mysql"))
	assert.Equal(t, "mysql", info["name"])
	assert.Equal(t, "8.3.0", info["latest_version"])
	assert.Equal(t, false, info["installed"])
	assert.Equal(t, false, info["auto_update"])
	assert.Nil(t, info["current_version"])
}

func TestListInstalledEmpty(t *testing.T) {
	svc := newTestService(t)

	data := requireOK(t, svc.ListInstalled(context.Background()))
	assert.Equal(t, 0, data["count"])
	assert.Empty(t, data["installed_software"])
}

func TestCheckUpdates(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	requireOK(t, svc.Install(ctx, "java"))
	requireOK(t, svc.Install(ctx, "postgresql"))

	data := requireOK(t, svc.CheckUpdates(ctx))
	assert.Equal(t, 0, data["count"])

	reg, err := svc.files.Load()
	require.NoError(t, err)
	rec, _ := reg.Get("java")
	rec.Version = "17.0.0"
	reg.Put("java", rec)
	require.NoError(t, svc.files.Save(reg))

	data = requireOK(t, svc.CheckUpdates(ctx))
	assert.Equal(t, 1, data["count"])
	updates := data["available_updates"].([]map[string]any)
	require.Len(t, updates, 1)
	assert.Equal(t, "java", updates[0]["name"])
	assert.Equal(t, "17.0.0", updates[0]["current_version"])
	assert.Equal(t, "21.0.1", updates[0]["latest_version"])
}

func TestGetRecommendationsScenario(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	data := requireOK(t, svc.GetRecommendations(ctx, "web development"))
	assert.Equal(t, "web development", data["task"])
	assert.Equal(t, []string{"python", "nodejs", "vscode", "git"}, data["recommendations"])
	assert.Equal(t, 4, data["count"])

	e := requireCode(t, svc.GetRecommendations(ctx, "quantum computing"), CodeSoftwareNotFound)
	assert.Contains(t, e.Hint, "Available tasks:")
	assert.Contains(t, e.Hint, "web development")
}

func TestGetRecommendationsInstalledFlag(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	requireOK(t, svc.Install(ctx, "docker"))

	data := requireOK(t, svc.GetRecommendations(ctx, "Containerization"))
	details := data["details"].([]map[string]any)
	require.Len(t, details, 2)
	assert.Equal(t, "docker", details[0]["name"])
	assert.Equal(t, true, details[0]["installed"])
	assert.Equal(t, "git", details[1]["name"])
	assert.Equal(t, false, details[1]["installed"])
}

func TestValidationPrecedesLookup(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	// Whitespace-only canonicalizes to "", which the catalog would also miss;
	// the envelope must report invalid_input, not software_not_found.
	requireCode(t, svc.Uninstall(ctx, "   "), CodeInvalidInput)
	requireCode(t, svc.GetSoftwareInfo(ctx, "   "), CodeInvalidInput)
	requireCode(t, svc.GetRecommendations(ctx, "   "), CodeInvalidInput)
}

func TestRegistryErrorOnCorruptDocument(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	require.NoError(t, os.WriteFile(svc.files.Path(), []byte("{broken"), 0o644))

	requireCode(t, svc.Install(ctx, "python"), CodeRegistryError)
	requireCode(t, svc.ListInstalled(ctx), CodeRegistryError)
	requireCode(t, svc.GetSoftwareInfo(ctx, "python"), CodeRegistryError)
}

func TestConfigMissingWithoutStore(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)
	svc, err := NewService(Config{Catalog: c})
	require.NoError(t, err)

	requireCode(t, svc.Install(context.Background(), "python"), CodeConfigMissing)
	requireCode(t, svc.ListInstalled(context.Background()), CodeConfigMissing)
}

func TestPersistenceAcrossServices(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "software_registry.json")

	svc, err := NewService(Config{Catalog: c, Store: registry.NewFileStore(path, nil)})
	require.NoError(t, err)
	requireOK(t, svc.Install(context.Background(), "vscode"))

	// A fresh service over the same file sees the installed state.
	svc2, err := NewService(Config{Catalog: c, Store: registry.NewFileStore(path, nil)})
	require.NoError(t, err)
	info := requireOK(t, svc2.GetSoftwareInfo(context.Background(), "vscode"))
	assert.Equal(t, true, info["installed"])
}

func TestInstalledDateFromClock(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)
	fixed := time.Date(2026, 8, 30, 9, 30, 0, 0, time.UTC)

	svc, err := NewService(Config{
		Catalog: c,
		Store:   registry.NewFileStore(filepath.Join(t.TempDir(), "r.json"), nil),
		Now:     func() time.Time { return fixed },
	})
	require.NoError(t, err)

	requireOK(t, svc.Install(context.Background(), "python"))

	reg, err := svc.files.Load()
	require.NoError(t, err)
	rec, ok := reg.Get("python")
	require.True(t, ok)
	assert.True(t, rec.InstalledDate.Equal(fixed))
}

func TestMutatingOperationsAudited(t *testing.T) {
	c, err := catalog.Load()
	require.NoError(t, err)
	audit, err := store.NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { audit.Close() })

	svc, err := NewService(Config{
		Catalog: c,
		Store:   registry.NewFileStore(filepath.Join(t.TempDir(), "r.json"), nil),
		Audit:   audit,
	})
	require.NoError(t, err)
	ctx := context.Background()

	requireOK(t, svc.Install(ctx, "python"))
	requireCode(t, svc.Update(ctx, "python"), CodeUpToDate)
	requireOK(t, svc.ListInstalled(ctx)) // read-only, not audited

	entries, err := audit.ListOperations(ctx, store.OperationFilter{})
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "update", entries[0].Operation)
	assert.Equal(t, "up_to_date", entries[0].ErrorCode)
	assert.Equal(t, "install", entries[1].Operation)
	assert.True(t, entries[1].OK)
}

func TestStateTransitions(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	state, err := svc.State("emacs")
	require.NoError(t, err)
	assert.Equal(t, StateUnknown, state)

	state, err = svc.State("python")
	require.NoError(t, err)
	assert.Equal(t, StateAvailable, state)

	requireOK(t, svc.Install(ctx, "python"))
	state, err = svc.State("Python")
	require.NoError(t, err)
	assert.Equal(t, StateInstalled, state)

	requireOK(t, svc.Uninstall(ctx, "python"))
	state, err = svc.State("python")
	require.NoError(t, err)
	assert.Equal(t, StateAvailable, state)
}
