package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ArchiveStore keeps copies of rendered queue exports on disk under a base
// directory so staff can retrieve past exports.
type ArchiveStore struct {
	baseDir string
}

// NewArchiveStore ensures the base directory exists and returns a handle.
func NewArchiveStore(baseDir string) (*ArchiveStore, error) {
	if baseDir == "" {
		baseDir = "./exports"
	}
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return nil, fmt.Errorf("create archive directory: %w", err)
	}
	return &ArchiveStore{baseDir: baseDir}, nil
}

// Save writes the given bytes to the provided relative path under the base dir.
func (s *ArchiveStore) Save(filename string, data []byte) (string, error) {
	path := s.resolve(filename)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return "", fmt.Errorf("prepare archive directory: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write archive file: %w", err)
	}
	return filename, nil
}

// CleanupOlderThan removes archived exports older than the provided TTL and
// returns the deleted names.
func (s *ArchiveStore) CleanupOlderThan(ttl time.Duration) ([]string, error) {
	cutoff := time.Now().Add(-ttl)
	deleted := make([]string, 0)
	err := filepath.WalkDir(s.baseDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			return err
		}
		if info.ModTime().After(cutoff) {
			return nil
		}
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			return err
		}
		rel, err := filepath.Rel(s.baseDir, path)
		if err != nil {
			rel = path
		}
		deleted = append(deleted, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("cleanup archive: %w", err)
	}
	return deleted, nil
}

// Path exposes the resolved absolute path for a stored file.
func (s *ArchiveStore) Path(filename string) string {
	return s.resolve(filename)
}

func (s *ArchiveStore) resolve(filename string) string {
	if filepath.IsAbs(filename) {
		return filename
	}
	return filepath.Join(s.baseDir, filename)
}
