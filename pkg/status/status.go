// Copyright 2025 walteh LLC
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
	"crypto/sha256"
	"encoding/hex"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
	"gitlab.com/tozd/go/errors"
)

// 📊 FileStatus is the outcome of a copy onto the active file
type FileStatus int

const (
	StatusUnknown   FileStatus = iota
	StatusNew                  // File didn't exist before the copy
	StatusModified             // File existed with different content
	StatusUnchanged            // File already had the same content
)

// String returns a string representation of FileStatus
func (s FileStatus) String() string {
	switch s {
	case StatusNew:
		return "new"
	case StatusModified:
		return "modified"
	case StatusUnchanged:
		return "unchanged"
	default:
		return "unknown"
	}
}

// 💾 FileManager is the filesystem surface used by the mode resolver
type FileManager interface {
	Path(name string) string
	Exists(ctx context.Context, name string) (bool, error)
	ReadFile(ctx context.Context, name string) ([]byte, error)
	WriteFileAtomic(ctx context.Context, name string, content []byte) error
	CopyFile(ctx context.Context, src, dst string) (FileStatus, error)
}

var _ FileManager = (*Manager)(nil)

// 🔧 Manager implements FileManager rooted at a snippets directory
type Manager struct {
	baseDir string
}

// 🏭 New creates a new manager for the given directory
func New(baseDir string) *Manager {
	return &Manager{
		baseDir: filepath.Clean(baseDir),
	}
}

// Dir returns the snippets directory
func (m *Manager) Dir() string {
	return m.baseDir
}

// Path returns the absolute path for a file name in the snippets directory
func (m *Manager) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(m.baseDir, name)
}

// 🔍 calculateChecksum generates a SHA-256 hash of the content
func calculateChecksum(content []byte) string {
	hash := sha256.Sum256(content)
	return hex.EncodeToString(hash[:])
}

func (m *Manager) Exists(ctx context.Context, name string) (bool, error) {
	_, err := os.Stat(m.Path(name))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, errors.Errorf("checking file existence: %w", err)
}

func (m *Manager) ReadFile(ctx context.Context, name string) ([]byte, error) {
	content, err := os.ReadFile(m.Path(name))
	if err != nil {
		return nil, errors.Errorf("reading file: %w", err)
	}
	return content, nil
}

func (m *Manager) WriteFileAtomic(ctx context.Context, name string, content []byte) error {
	absPath := m.Path(name)

	if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
		return errors.Errorf("creating parent directories: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(absPath), filepath.Base(absPath)+".*.tmp")
	if err != nil {
		return errors.Errorf("creating temp file: %w", err)
	}
	tempPath := tmp.Name()

	if _, err := tmp.Write(content); err != nil {
		tmp.Close()
		os.Remove(tempPath)
		return errors.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tempPath, 0644); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, absPath); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// 📋 CopyFile replaces dst with the exact bytes of src.
//
// An unchanged destination is not rewritten.
func (m *Manager) CopyFile(ctx context.Context, src, dst string) (FileStatus, error) {
	logger := zerolog.Ctx(ctx)

	content, err := m.ReadFile(ctx, src)
	if err != nil {
		return StatusUnknown, errors.Errorf("reading source: %w", err)
	}

	srcSum := calculateChecksum(content)
	fileStatus := StatusNew
	current, err := os.ReadFile(m.Path(dst))
	switch {
	case err == nil && calculateChecksum(current) == srcSum:
		fileStatus = StatusUnchanged
	case err == nil:
		fileStatus = StatusModified
	case !os.IsNotExist(err):
		return StatusUnknown, errors.Errorf("reading destination: %w", err)
	}

	logger.Debug().
		Str("src", m.Path(src)).
		Str("dst", m.Path(dst)).
		Str("checksum", srcSum).
		Stringer("status", fileStatus).
		Msg("copying snippet file")

	if fileStatus == StatusUnchanged {
		return fileStatus, nil
	}

	if err := m.WriteFileAtomic(ctx, dst, content); err != nil {
		return StatusUnknown, errors.Errorf("writing destination: %w", err)
	}

	return fileStatus, nil
}
