package preset

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/HaokunYang123/routine-craft-bot-sub002/internal/reconcile"
	"github.com/HaokunYang123/routine-craft-bot-sub002/pkg/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dashboardYAML = `
surfaces:
  coach-dashboard:
    - [tasks, c-42]
    - [checkins, c-42]
    - [assignments, c-42]
  student-home:
    - [assignments, s-7]
`

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	path := writeFile(t, t.TempDir(), "presets.yaml", dashboardYAML)

	r, err := Load(log.NewNop(), path)
	require.NoError(t, err)

	assert.Equal(t, []string{"coach-dashboard", "student-home"}, r.Names())

	set, err := r.Lookup("coach-dashboard")
	require.NoError(t, err)
	assert.Equal(t, reconcile.Set{
		{"tasks", "c-42"},
		{"checkins", "c-42"},
		{"assignments", "c-42"},
	}, set)
}

func TestLoadJSON(t *testing.T) {
	path := writeFile(t, t.TempDir(), "presets.json", `{"surfaces":{"home":[["tasks","s-7"]]}}`)

	r, err := Load(log.NewNop(), path)
	require.NoError(t, err)

	set, err := r.Lookup("HOME")
	require.NoError(t, err)
	assert.Equal(t, reconcile.Set{{"tasks", "s-7"}}, set)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := Load(log.NewNop(), "")
	assert.ErrorIs(t, err, ErrEmptyPath)

	_, err = Load(log.NewNop(), filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)

	bad := writeFile(t, dir, "bad.yaml", "surfaces:\n  broken:\n    - [tasks, \"\"]\n")
	_, err = Load(log.NewNop(), bad)
	assert.ErrorIs(t, err, ErrInvalidPreset)
	assert.ErrorIs(t, err, reconcile.ErrEmptyToken)
}

func TestLookupUnknown(t *testing.T) {
	path := writeFile(t, t.TempDir(), "presets.yaml", dashboardYAML)
	r, err := Load(log.NewNop(), path)
	require.NoError(t, err)

	_, err = r.Lookup("nope")
	assert.ErrorIs(t, err, ErrPresetNotFound)
}

func TestLookupReturnsCopy(t *testing.T) {
	path := writeFile(t, t.TempDir(), "presets.yaml", dashboardYAML)
	r, err := Load(log.NewNop(), path)
	require.NoError(t, err)

	set, err := r.Lookup("student-home")
	require.NoError(t, err)
	set[0][0] = "mutated"

	again, err := r.Lookup("student-home")
	require.NoError(t, err)
	assert.Equal(t, reconcile.Set{{"assignments", "s-7"}}, again)
}

func TestReloadKeepsPreviousOnError(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "presets.yaml", dashboardYAML)
	r, err := Load(log.NewNop(), path)
	require.NoError(t, err)

	writeFile(t, dir, "presets.yaml", "surfaces:\n  broken:\n    - []\n")
	assert.Error(t, r.Reload())

	_, err = r.Lookup("coach-dashboard")
	assert.NoError(t, err)
}

func TestWatchReloads(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "presets.yaml", dashboardYAML)
	r, err := Load(log.NewNop(), path)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- r.Watch(ctx) }()

	// Give the watcher a moment to register the directory.
	time.Sleep(100 * time.Millisecond)
	writeFile(t, dir, "presets.yaml", "surfaces:\n  fresh:\n    - [tasks, c-1]\n")

	assert.Eventually(t, func() bool {
		_, err := r.Lookup("fresh")
		return err == nil
	}, 3*time.Second, 20*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
