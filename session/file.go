package session

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hupe1980/agentcrew/core"
)

// FileStore persists each thread as a pretty-printed JSON document named
// <id>.json inside one directory.
type FileStore struct {
	dir string
}

// NewFileStore creates the directory if needed and returns a store over it.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create thread dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(id string) string {
	return filepath.Join(s.dir, id+".json")
}

// Save implements core.ThreadStore.
func (s *FileStore) Save(_ context.Context, t *core.Thread) error {
	data, err := encodeThread(t)
	if err != nil {
		return err
	}
	if err := os.WriteFile(s.path(t.ID), data, 0o644); err != nil {
		return fmt.Errorf("write thread %s: %w", t.ID, err)
	}
	return nil
}

// Load implements core.ThreadStore.
func (s *FileStore) Load(_ context.Context, id string) (*core.Thread, error) {
	data, err := os.ReadFile(s.path(id))
	if err != nil {
		return nil, fmt.Errorf("read thread %s: %w", id, err)
	}
	return decodeThread(data)
}

// List implements core.ThreadStore. Threads are listed newest first.
func (s *FileStore) List(ctx context.Context, limit int) ([]core.ThreadInfo, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("list threads: %w", err)
	}

	var infos []core.ThreadInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		id := strings.TrimSuffix(entry.Name(), ".json")
		t, err := s.Load(ctx, id)
		if err != nil {
			// skip unreadable documents instead of failing the listing
			continue
		}
		infos = append(infos, threadInfo(t))
	}
	sort.Slice(infos, func(i, j int) bool { return infos[i].CreatedAt.After(infos[j].CreatedAt) })
	if limit > 0 && len(infos) > limit {
		infos = infos[:limit]
	}
	return infos, nil
}

// Delete implements core.ThreadStore. Deleting a missing thread is a no-op.
func (s *FileStore) Delete(_ context.Context, id string) error {
	if err := os.Remove(s.path(id)); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("delete thread %s: %w", id, err)
	}
	return nil
}
