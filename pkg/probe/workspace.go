package probe

// Workspace is the scratch-object store backing a probe run. Probes that
// only need byte payloads go through this interface; probes that hand paths
// to system calls use the path-backed local implementation via Env.Path.
type Workspace interface {
	// Get retrieves a scratch object by key. Returns nil if absent.
	Get(key string) ([]byte, error)

	// Put stores a scratch object at key.
	Put(key string, data []byte) error

	// Delete removes the object at key. Removing an absent key is not an
	// error.
	Delete(key string) error

	// Exists reports whether key holds an object.
	Exists(key string) (bool, error)

	// List returns all keys with the given prefix.
	List(prefix string) ([]string, error)
}
