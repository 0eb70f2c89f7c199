package status

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newManager(t *testing.T) (*Manager, string) {
	t.Helper()
	dir := t.TempDir()
	logger := zerolog.Nop()
	return New(dir, &logger), dir
}

func TestManager_WriteFileAtomic(t *testing.T) {
	ctx := context.Background()
	mgr, dir := newManager(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("old"), 0644))

	err := mgr.WriteFileAtomic(ctx, "f.txt", []byte("new content"))
	require.NoError(t, err)

	got, err := os.ReadFile(filepath.Join(dir, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "new content", string(got))

	// No temp file left behind
	_, err = os.Stat(filepath.Join(dir, "f.txt.tmp"))
	assert.True(t, os.IsNotExist(err))
}

func TestManager_ReadFile(t *testing.T) {
	ctx := context.Background()
	mgr, dir := newManager(t)

	// CRLF content must round-trip untouched
	raw := []byte("a\r\nb\r\n")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "crlf.js"), raw, 0644))

	got, err := mgr.ReadFile(ctx, "crlf.js")
	require.NoError(t, err)
	assert.Equal(t, raw, got)

	_, err = mgr.ReadFile(ctx, "missing.js")
	require.Error(t, err)
}

func TestManager_FileExists(t *testing.T) {
	ctx := context.Background()
	mgr, dir := newManager(t)

	exists, err := mgr.FileExists(ctx, "nope.txt")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "yes.txt"), []byte("x"), 0644))
	exists, err = mgr.FileExists(ctx, "yes.txt")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestManager_BackupAndRestore(t *testing.T) {
	ctx := context.Background()
	mgr, dir := newManager(t)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "f.txt"), []byte("original"), 0644))
	require.NoError(t, mgr.BackupFile(ctx, "f.txt"))

	require.NoError(t, mgr.WriteFileAtomic(ctx, "f.txt", []byte("patched")))

	require.NoError(t, mgr.RestoreFile(ctx, "f.txt"))
	got, err := os.ReadFile(filepath.Join(dir, "f.txt"))
	require.NoError(t, err)
	assert.Equal(t, "original", string(got))

	// Backup is consumed by restore
	err = mgr.RestoreFile(ctx, "f.txt")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "backup file does not exist")
}

func TestManager_BackupMissingFileIsNoop(t *testing.T) {
	ctx := context.Background()
	mgr, dir := newManager(t)

	require.NoError(t, mgr.BackupFile(ctx, "ghost.txt"))
	_, err := os.Stat(filepath.Join(dir, "ghost.txt.bak"))
	assert.True(t, os.IsNotExist(err))
}

func TestManager_TrackTarget(t *testing.T) {
	ctx := context.Background()
	mgr, _ := newManager(t)

	info := TargetInfo{
		Path:     "backend/validation.js",
		Patchset: "validation-suggestion-schemas",
		Status:   StatusPatched,
		Edits:    2,
	}
	mgr.TrackTarget(ctx, info.Path, info)

	targets, err := mgr.ListTargets(ctx)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, info, targets[0])

	// Re-tracking the same path overwrites, not appends
	info.Status = StatusConflict
	mgr.TrackTarget(ctx, info.Path, info)
	targets, err = mgr.ListTargets(ctx)
	require.NoError(t, err)
	require.Len(t, targets, 1)
	assert.Equal(t, StatusConflict, targets[0].Status)
}

func TestTargetStatus_String(t *testing.T) {
	assert.Equal(t, "pending", StatusPending.String())
	assert.Equal(t, "patched", StatusPatched.String())
	assert.Equal(t, "applied", StatusApplied.String())
	assert.Equal(t, "conflict", StatusConflict.String())
	assert.Equal(t, "error", StatusError.String())
	assert.Equal(t, "unknown", StatusUnknown.String())
}

func TestDefaultTargetFormatter(t *testing.T) {
	f := NewDefaultTargetFormatter()

	assert.Contains(t, f.FormatTarget("a.js", StatusPatched, 2), "a.js")
	assert.Contains(t, f.FormatTarget("a.js", StatusPatched, 2), "2 edits")
	assert.Contains(t, f.FormatTarget("a.js", StatusConflict, 0), "Conflict")
	assert.Contains(t, f.FormatProgress(1, 2), "1 of 2")
	assert.Contains(t, f.FormatProgress(2, 2), "All 2 target(s)")
	assert.Contains(t, f.FormatProgress(0, 0), "No targets")
	assert.Empty(t, f.FormatError(nil))
}
