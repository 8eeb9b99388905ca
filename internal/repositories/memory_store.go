package repositories

import (
	"sync"
)

// MemoryStore keeps collections in process memory. It backs tests and the
// STORAGE_DRIVER=memory mode used on a single till without a database.
type MemoryStore struct {
	mu   sync.Mutex
	data map[string][]byte
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string][]byte)}
}

func (s *MemoryStore) Read(key string, dest interface{}) (bool, error) {
	s.mu.Lock()
	raw, ok := s.data[key]
	s.mu.Unlock()
	if !ok {
		return false, nil
	}
	return decodeCollection(key, raw, dest)
}

func (s *MemoryStore) Write(key string, value interface{}) error {
	raw, err := encodeCollection(key, value)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data[key] = raw
	s.mu.Unlock()
	return nil
}

// Atomically holds the store lock for the whole of fn and applies the
// staged writes only when fn succeeds.
func (s *MemoryStore) Atomically(fn func(tx CollectionStore) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx := &memoryTx{parent: s, staged: make(map[string][]byte)}
	if err := fn(tx); err != nil {
		return err
	}
	for key, raw := range tx.staged {
		s.data[key] = raw
	}
	return nil
}

// PutRaw stores an undecoded document, e.g. data imported from a browser export.
func (s *MemoryStore) PutRaw(key string, raw []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = append([]byte(nil), raw...)
}

// memoryTx is the view handed to Atomically callbacks. The parent lock is
// already held.
type memoryTx struct {
	parent *MemoryStore
	staged map[string][]byte
}

func (t *memoryTx) Read(key string, dest interface{}) (bool, error) {
	raw, ok := t.staged[key]
	if !ok {
		raw, ok = t.parent.data[key]
	}
	if !ok {
		return false, nil
	}
	return decodeCollection(key, raw, dest)
}

func (t *memoryTx) Write(key string, value interface{}) error {
	raw, err := encodeCollection(key, value)
	if err != nil {
		return err
	}
	t.staged[key] = raw
	return nil
}

func (t *memoryTx) Atomically(fn func(tx CollectionStore) error) error {
	return fn(t)
}
