package probe

import (
	"fmt"
	"strings"
	"sync"
)

// MemoryWorkspace is an in-memory Workspace for tests of the framework
// itself. It has no backing paths, so Env.Path fails for environments built
// on it.
type MemoryWorkspace struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewMemoryWorkspace creates an empty in-memory workspace.
func NewMemoryWorkspace() *MemoryWorkspace {
	return &MemoryWorkspace{data: make(map[string][]byte)}
}

// Get retrieves a scratch object. Returns nil for an absent key.
func (w *MemoryWorkspace) Get(key string) ([]byte, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	data, ok := w.data[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(data))
	copy(out, data)
	return out, nil
}

// Put stores a scratch object at key.
func (w *MemoryWorkspace) Put(key string, data []byte) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	stored := make([]byte, len(data))
	copy(stored, data)
	w.data[key] = stored
	return nil
}

// Delete removes the object at key.
func (w *MemoryWorkspace) Delete(key string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	delete(w.data, key)
	return nil
}

// Exists reports whether key holds an object.
func (w *MemoryWorkspace) Exists(key string) (bool, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	_, ok := w.data[key]
	return ok, nil
}

// List returns all keys with the given prefix.
func (w *MemoryWorkspace) List(prefix string) ([]string, error) {
	w.mu.RLock()
	defer w.mu.RUnlock()

	var keys []string
	for key := range w.data {
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}
	return keys, nil
}

// Size returns the number of stored objects (for tests).
func (w *MemoryWorkspace) Size() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.data)
}

// String returns a debug string representation.
func (w *MemoryWorkspace) String() string {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return fmt.Sprintf("MemoryWorkspace{items: %d}", len(w.data))
}
