package repository

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sync"

	appErrors "github.com/noah-isme/teacher-admin-api/pkg/errors"
	"github.com/noah-isme/teacher-admin-api/pkg/storage"
)

// SnapshotStore holds one serialized document under a fixed key.
// Read returns ErrSnapshotMissing when nothing has been written yet.
type SnapshotStore interface {
	Read(ctx context.Context) ([]byte, error)
	Write(ctx context.Context, payload []byte) error
}

// MemorySnapshotStore keeps the document in process memory.
type MemorySnapshotStore struct {
	mu      sync.RWMutex
	payload []byte
}

// NewMemorySnapshotStore constructs an empty in-memory store.
func NewMemorySnapshotStore() *MemorySnapshotStore {
	return &MemorySnapshotStore{}
}

// Read returns a copy of the stored payload.
func (s *MemorySnapshotStore) Read(ctx context.Context) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.payload == nil {
		return nil, appErrors.ErrSnapshotMissing
	}
	return append([]byte(nil), s.payload...), nil
}

// Write overwrites the stored payload.
func (s *MemorySnapshotStore) Write(ctx context.Context, payload []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.payload = append([]byte(nil), payload...)
	return nil
}

// FileSnapshotStore keeps the document as <key>.json under a data directory.
type FileSnapshotStore struct {
	files    *storage.LocalStorage
	filename string
}

// NewFileSnapshotStore wires a file store for the given key.
func NewFileSnapshotStore(files *storage.LocalStorage, key string) *FileSnapshotStore {
	return &FileSnapshotStore{files: files, filename: key + ".json"}
}

// Read loads the file contents.
func (s *FileSnapshotStore) Read(ctx context.Context) ([]byte, error) {
	data, err := s.files.Read(s.filename)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, appErrors.ErrSnapshotMissing
		}
		return nil, fmt.Errorf("read snapshot %s: %w", s.filename, err)
	}
	return data, nil
}

// Write atomically replaces the file.
func (s *FileSnapshotStore) Write(ctx context.Context, payload []byte) error {
	if err := s.files.WriteAtomic(s.filename, payload); err != nil {
		return fmt.Errorf("write snapshot %s: %w", s.filename, err)
	}
	return nil
}
