package storage

import "fmt"

// NewStore builds an uninitialized store for the given backend kind.
func NewStore(kind, path string) (Store, error) {
	switch kind {
	case "", "memory":
		return NewMemoryStore(), nil
	case "file":
		if path == "" {
			return nil, fmt.Errorf("file backend requires a directory path")
		}
		return NewFileStore(path), nil
	case "sqlite":
		if path == "" {
			return nil, fmt.Errorf("sqlite backend requires a database path")
		}
		return NewSQLiteStore(path), nil
	default:
		return nil, fmt.Errorf("unsupported store backend: %s", kind)
	}
}

func CloseIfSupported(store Store) error {
	closer, ok := store.(interface{ Close() error })
	if !ok {
		return nil
	}
	return closer.Close()
}
