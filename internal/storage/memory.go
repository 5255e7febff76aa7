package storage

import (
	"sync"

	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// MemoryStore keeps the encoded record in memory, for tests and --no-store runs
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (*domain.Income, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, nil
	}
	return decode("memory", s.data)
}

func (s *MemoryStore) Save(income domain.Income) error {
	data, err := encode(income)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}
