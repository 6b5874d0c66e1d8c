package storage

import (
	"bytes"
	"context"
	"io"
	"sort"
	"sync"
)

// MemoryStorage keeps objects in process memory. It backs dev mode when no
// bucket is configured.
type MemoryStorage struct {
	mu      sync.Mutex
	objects map[string]memoryObject
}

type memoryObject struct {
	data        []byte
	contentType string
}

// NewMemoryStorage creates an empty in-memory store.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{objects: map[string]memoryObject{}}
}

func (m *MemoryStorage) PutObject(_ context.Context, objectKey string, body io.Reader, _ int64, contentType string) error {
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.objects[objectKey] = memoryObject{data: buf.Bytes(), contentType: contentType}
	return nil
}

func (m *MemoryStorage) DeleteObject(_ context.Context, objectKey string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.objects[objectKey]; !ok {
		return ErrObjectNotFound
	}
	delete(m.objects, objectKey)
	return nil
}

// Keys lists the stored object keys in order.
func (m *MemoryStorage) Keys() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	keys := make([]string, 0, len(m.objects))
	for k := range m.objects {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// ContentType returns the content type an object was stored with.
func (m *MemoryStorage) ContentType(objectKey string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	obj, ok := m.objects[objectKey]
	return obj.contentType, ok
}
