package storage

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/rgehrsitz/mokesciai/internal/domain"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

// StoredValue is one key/value row
type StoredValue struct {
	Key       string `gorm:"primaryKey;size:128"`
	Value     string `gorm:"type:text;not null"`
	UpdatedAt time.Time
}

// SQLiteStore keeps the income JSON in a key/value table
type SQLiteStore struct {
	db *gorm.DB
}

// NewSQLiteStore opens (and migrates) the database at dsn. A dsn starting
// with "file:" is passed through as is, anything else is a file path.
func NewSQLiteStore(dsn string) (*SQLiteStore, error) {
	if !isURI(dsn) {
		if err := os.MkdirAll(filepath.Dir(dsn), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create %s: %w", filepath.Dir(dsn), err)
		}
	}
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite %s: %w", dsn, err)
	}
	return NewSQLiteStoreWithDB(db)
}

// NewSQLiteStoreWithDB uses an existing connection
func NewSQLiteStoreWithDB(db *gorm.DB) (*SQLiteStore, error) {
	if err := db.AutoMigrate(&StoredValue{}); err != nil {
		return nil, fmt.Errorf("failed to migrate stored values: %w", err)
	}
	return &SQLiteStore{db: db}, nil
}

func isURI(dsn string) bool {
	return len(dsn) >= 5 && dsn[:5] == "file:"
}

func (s *SQLiteStore) Load() (*domain.Income, error) {
	var row StoredValue
	err := s.db.Where(&StoredValue{Key: IncomeKey}).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", IncomeKey, err)
	}
	return decode("sqlite:"+IncomeKey, []byte(row.Value))
}

func (s *SQLiteStore) Save(income domain.Income) error {
	data, err := encode(income)
	if err != nil {
		return err
	}
	row := StoredValue{Key: IncomeKey, Value: string(data), UpdatedAt: time.Now()}
	err = s.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&row).Error
	if err != nil {
		return fmt.Errorf("failed to save %s: %w", IncomeKey, err)
	}
	return nil
}

// Close releases the underlying connection
func (s *SQLiteStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
