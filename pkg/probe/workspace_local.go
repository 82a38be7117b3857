package probe

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// LocalWorkspace is a Workspace rooted at a real directory. Probes receive
// its root through Env.Dir so scratch objects double as stat/utimensat
// subjects.
type LocalWorkspace struct {
	root string
}

// NewLocalWorkspace creates (if needed) and wraps the scratch directory.
func NewLocalWorkspace(root string) (*LocalWorkspace, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch directory: %w", err)
	}
	return &LocalWorkspace{root: root}, nil
}

// Root returns the scratch directory.
func (w *LocalWorkspace) Root() string {
	return w.root
}

func (w *LocalWorkspace) path(key string) string {
	return filepath.Join(w.root, filepath.FromSlash(key))
}

// Put stores a scratch object at key, creating parent directories as needed.
func (w *LocalWorkspace) Put(key string, data []byte) error {
	p := w.path(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for key %s: %w", key, err)
	}
	if err := os.WriteFile(p, data, 0o644); err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

// Get retrieves a scratch object. Returns nil for an absent key.
func (w *LocalWorkspace) Get(key string) ([]byte, error) {
	data, err := os.ReadFile(w.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	return data, nil
}

// Delete removes the object at key.
func (w *LocalWorkspace) Delete(key string) error {
	err := os.Remove(w.path(key))
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

// Exists reports whether key holds an object.
func (w *LocalWorkspace) Exists(key string) (bool, error) {
	_, err := os.Lstat(w.path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to stat key %s: %w", key, err)
	}
	return true, nil
}

// List returns all keys under the root with the given prefix.
func (w *LocalWorkspace) List(prefix string) ([]string, error) {
	var keys []string
	err := filepath.Walk(w.root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			if os.IsPermission(err) {
				return filepath.SkipDir
			}
			return err
		}
		if info.IsDir() {
			return nil
		}
		rel, err := filepath.Rel(w.root, path)
		if err != nil {
			return fmt.Errorf("failed to get relative path: %w", err)
		}
		key := filepath.ToSlash(rel)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk scratch directory: %w", err)
	}
	return keys, nil
}

// Cleanup removes the scratch directory and everything in it. Probes leave
// their droppings behind; cleanup is the runner's job unless keep-scratch is
// requested.
func (w *LocalWorkspace) Cleanup() error {
	if err := os.RemoveAll(w.root); err != nil {
		return fmt.Errorf("failed to remove scratch directory: %w", err)
	}
	return nil
}

// String returns a debug string representation.
func (w *LocalWorkspace) String() string {
	return fmt.Sprintf("LocalWorkspace{root: %s}", w.root)
}
