package objectstore

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/artem13815/cvdesk/pkg/config"
)

// Memory keeps objects in process. Used by tests and local runs without a bucket.
type Memory struct {
	mu      sync.RWMutex
	objects map[string][]byte
	cfg     config.StorageConfig
}

func NewMemory(cfg config.StorageConfig) *Memory {
	return &Memory{objects: map[string][]byte{}, cfg: cfg}
}

func (m *Memory) EnsureBucket(context.Context) error { return nil }
func (m *Memory) Ping(context.Context) error         { return nil }

func (m *Memory) Put(_ context.Context, key string, r io.Reader, _ int64, _ string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, r); err != nil {
		return fmt.Errorf("put object: %w", err)
	}
	m.mu.Lock()
	m.objects[key] = buf.Bytes()
	m.mu.Unlock()
	return nil
}

func (m *Memory) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	b, ok := m.objects[key]
	if !ok {
		return nil, fmt.Errorf("get object %s: not found", key)
	}
	return append([]byte(nil), b...), nil
}

func (m *Memory) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	delete(m.objects, key)
	m.mu.Unlock()
	return nil
}

func (m *Memory) PublicURL(key string) string { return publicURL(m.cfg, key) }

// Len reports how many objects are stored.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}
