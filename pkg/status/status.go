// Copyright 2025 ecomstack
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package status

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"sync"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 TargetStatus represents the state of a patch target on disk
type TargetStatus int

const (
	StatusUnknown  TargetStatus = iota
	StatusPending               // search blocks present, patch not yet applied
	StatusPatched               // file was rewritten during this run
	StatusApplied               // replacement blocks already present
	StatusConflict              // file matches neither the pristine nor the patched shape
	StatusError                 // target could not be read or written
)

// String returns a string representation of TargetStatus
func (s TargetStatus) String() string {
	switch s {
	case StatusPending:
		return "pending"
	case StatusPatched:
		return "patched"
	case StatusApplied:
		return "applied"
	case StatusConflict:
		return "conflict"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// 📄 TargetInfo contains metadata about a patch target
type TargetInfo struct {
	Path     string       // Relative path to the target file
	Patchset string       // Name of the patchset applied to it
	Status   TargetStatus // Current status
	Edits    int          // Number of edits applied
	Size     int64        // File size in bytes after the run
	DryRun   bool         // Whether the write was skipped
	Error    error        // Any error associated with this target
}

// 💾 FileManager handles all file system operations
type FileManager interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, path string, content []byte) error
	FileExists(ctx context.Context, path string) (bool, error)

	// Backup operations
	BackupFile(ctx context.Context, path string) error
	RestoreFile(ctx context.Context, path string) error
}

// 📈 StatusReporter tracks target status and reports progress
type StatusReporter interface {
	TrackTarget(ctx context.Context, path string, info TargetInfo)
	ListTargets(ctx context.Context) ([]TargetInfo, error)

	StartOperation(ctx context.Context, total int)
	UpdateProgress(ctx context.Context, processed int)
	FinishOperation(ctx context.Context)
}

// 🔧 Manager implements both FileManager and StatusReporter
type Manager struct {
	baseDir   string          // Base directory all target paths are relative to
	logger    *zerolog.Logger // Logger for status updates
	formatter TargetFormatter // Formatter for status messages

	mu      sync.RWMutex
	targets map[string]TargetInfo

	total     int
	processed int
}

// 🏭 New creates a new status manager
func New(baseDir string, logger *zerolog.Logger) *Manager {
	return &Manager{
		baseDir:   filepath.Clean(baseDir),
		logger:    logger,
		formatter: NewDefaultTargetFormatter(),
		targets:   make(map[string]TargetInfo),
	}
}

// 🔒 getAbsPath returns the absolute path for a given relative path
func (m *Manager) getAbsPath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(m.baseDir, path)
}

// FileManager interface implementation

func (m *Manager) ReadFile(ctx context.Context, path string) ([]byte, error) {
	content, err := os.ReadFile(m.getAbsPath(path))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) WriteFileAtomic(ctx context.Context, path string, content []byte) error {
	absPath := m.getAbsPath(path)
	tempPath := absPath + ".tmp"

	// Temp file lives next to the target so the rename stays on one filesystem
	if err := os.WriteFile(tempPath, content, 0644); err != nil {
		return errors.Errorf("writing temp file: %w", err)
	}

	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

func (m *Manager) FileExists(ctx context.Context, path string) (bool, error) {
	_, err := os.Stat(m.getAbsPath(path))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func (m *Manager) BackupFile(ctx context.Context, path string) error {
	absPath := m.getAbsPath(path)
	backupPath := absPath + ".bak"

	if _, err := os.Stat(absPath); os.IsNotExist(err) {
		return nil
	} else if err != nil {
		return errors.Errorf("checking file existence: %w", err)
	}

	if err := copyFile(absPath, backupPath); err != nil {
		return errors.Errorf("creating backup: %w", err)
	}

	return nil
}

func (m *Manager) RestoreFile(ctx context.Context, path string) error {
	absPath := m.getAbsPath(path)
	backupPath := absPath + ".bak"

	if _, err := os.Stat(backupPath); os.IsNotExist(err) {
		return errors.Errorf("backup file does not exist")
	} else if err != nil {
		return errors.Errorf("checking backup existence: %w", err)
	}

	if err := copyFile(backupPath, absPath); err != nil {
		return errors.Errorf("restoring from backup: %w", err)
	}

	if err := os.Remove(backupPath); err != nil {
		return errors.Errorf("removing backup: %w", err)
	}

	return nil
}

// StatusReporter interface implementation

func (m *Manager) TrackTarget(ctx context.Context, path string, info TargetInfo) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.targets[path] = info
	msg := m.formatter.FormatTarget(path, info.Status, info.Edits)
	if info.Error != nil {
		msg = m.formatter.FormatError(info.Error)
	}
	m.logger.Info().
		Str("path", path).
		Str("status", info.Status.String()).
		Int("edits", info.Edits).
		Msg(msg)
}

func (m *Manager) ListTargets(ctx context.Context) ([]TargetInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	targets := make([]TargetInfo, 0, len(m.targets))
	for _, info := range m.targets {
		targets = append(targets, info)
	}
	return targets, nil
}

func (m *Manager) StartOperation(ctx context.Context, total int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.total = total
	m.processed = 0
	m.logger.Debug().Int("total", total).Msg(m.formatter.FormatProgress(0, total))
}

func (m *Manager) UpdateProgress(ctx context.Context, processed int) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.processed = processed
	m.logger.Debug().
		Int("processed", processed).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(processed, m.total))
}

func (m *Manager) FinishOperation(ctx context.Context) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.logger.Debug().
		Int("processed", m.total).
		Int("total", m.total).
		Msg(m.formatter.FormatProgress(m.total, m.total))
}

// Helper functions

func copyFile(src, dst string) error {
	srcFile, err := os.Open(src)
	if err != nil {
		return errors.Errorf("opening source: %w", err)
	}
	defer srcFile.Close()

	dstFile, err := os.Create(dst)
	if err != nil {
		return errors.Errorf("creating destination: %w", err)
	}
	defer dstFile.Close()

	if _, err := io.Copy(dstFile, srcFile); err != nil {
		return errors.Errorf("copying content: %w", err)
	}

	return dstFile.Sync()
}
