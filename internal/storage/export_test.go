package storage

import (
	"time"

	"gorm.io/gorm/clause"
)

// SetRaw replaces the stored bytes as is
func (s *MemoryStore) SetRaw(data []byte) {
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
}

// PutRaw stores an arbitrary value under key, bypassing encoding
func (s *SQLiteStore) PutRaw(key, value string) error {
	row := StoredValue{Key: key, Value: value, UpdatedAt: time.Now()}
	return s.db.Clauses(clause.OnConflict{UpdateAll: true}).Create(&row).Error
}
