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

package operation

import (
	"os"
	"path/filepath"
	"sync"

	"gitlab.com/tozd/go/errors"
)

// BackupSuffix is appended to a file name for its backup copy
const BackupSuffix = ".bak"

// 💾 writeFile replaces the content of path. With atomic set the bytes
// go to a temp file in the same directory that is renamed over path.
func writeFile(path string, content []byte, perm os.FileMode, atomic bool) error {
	if !atomic {
		if err := os.WriteFile(path, content, perm); err != nil {
			return errors.Errorf("writing file: %w", err)
		}
		return nil
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
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
	if err := os.Chmod(tempPath, perm); err != nil {
		os.Remove(tempPath)
		return errors.Errorf("setting temp file mode: %w", err)
	}

	// Rename temp file to target (atomic operation)
	if err := os.Rename(tempPath, path); err != nil {
		os.Remove(tempPath) // Clean up temp file
		return errors.Errorf("renaming temp file: %w", err)
	}

	return nil
}

// 🗄️ backupFile stores the original bytes next to path
func backupFile(path string, original []byte, perm os.FileMode) error {
	return writeFile(path+BackupSuffix, original, perm, true)
}

// 🔒 pathLocks serializes work on the same file when jobs run in parallel
type pathLocks struct {
	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func (p *pathLocks) lock(path string) (unlock func()) {
	key, err := filepath.Abs(path)
	if err != nil {
		key = filepath.Clean(path)
	}

	p.mu.Lock()
	if p.locks == nil {
		p.locks = map[string]*sync.Mutex{}
	}
	m, ok := p.locks[key]
	if !ok {
		m = &sync.Mutex{}
		p.locks[key] = m
	}
	p.mu.Unlock()

	m.Lock()
	return m.Unlock
}
