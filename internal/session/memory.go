package session

import "sync"

// MemoryStorage is a Storage backed by a map.
type MemoryStorage struct {
	mutex sync.RWMutex
	items map[string]string
}

// GetItem implements Storage.
func (s *MemoryStorage) GetItem(key string) (string, bool, error) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()

	value, exists := s.items[key]

	return value, exists, nil
}

// SetItem implements Storage.
func (s *MemoryStorage) SetItem(key string, value string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	if s.items == nil {
		s.items = make(map[string]string)
	}

	s.items[key] = value

	return nil
}

// RemoveItem implements Storage.
func (s *MemoryStorage) RemoveItem(key string) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	delete(s.items, key)

	return nil
}

func NewMemoryStorage(items map[string]string) *MemoryStorage {
	copied := make(map[string]string, len(items))
	for k, v := range items {
		copied[k] = v
	}

	return &MemoryStorage{items: copied}
}

var _ Storage = &MemoryStorage{}
