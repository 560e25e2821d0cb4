package storage

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"steamwatch/internal/inventory"
)

// 中文说明：
// 快照落盘：单个 JSON 文件保存最近一次成功抓取的库存。写入走同目录临时文件
// 再 rename，保证旧快照要么原样保留，要么被完整替换，不会出现半截文件。

// SnapshotStore persists the last fetched inventory snapshot as one JSON file.
type SnapshotStore struct {
	mu   sync.Mutex
	path string
}

// Open validates the path and returns a store. 文件不存在是合法的首跑状态。
func Open(path string) (*SnapshotStore, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage: snapshot path 不能为空")
	}
	dir := filepath.Dir(path)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("storage: create dir: %w", err)
		}
	}
	return &SnapshotStore{path: path}, nil
}

// Path 返回快照文件位置。
func (s *SnapshotStore) Path() string {
	return s.path
}

// Load reads the persisted snapshot. Returns (nil, nil) when no snapshot has
// been written yet.
func (s *SnapshotStore) Load() (*inventory.Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: read snapshot: %w", err)
	}
	var snap inventory.Snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("storage: parse snapshot: %w", err)
	}
	if snap.Items == nil {
		snap.Items = make(map[string]inventory.Item)
	}
	return &snap, nil
}

// Save replaces the persisted snapshot wholesale via temp file + rename.
func (s *SnapshotStore) Save(snap *inventory.Snapshot) error {
	if snap == nil {
		return fmt.Errorf("storage: snapshot 不能为空")
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("storage: marshal snapshot: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("storage: create temp: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("storage: write temp: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: close temp: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("storage: replace snapshot: %w", err)
	}
	return nil
}
