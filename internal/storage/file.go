package storage

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// FileStore keeps the income as a JSON file in a directory
type FileStore struct {
	Dir string
}

// NewFileStore creates a store writing to dir/tax-calculator-income.json
func NewFileStore(dir string) *FileStore {
	return &FileStore{Dir: dir}
}

// Path is the file the income is stored in
func (s *FileStore) Path() string {
	return filepath.Join(s.Dir, IncomeKey+".json")
}

func (s *FileStore) Load() (*domain.Income, error) {
	data, err := os.ReadFile(s.Path())
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Path(), err)
	}
	return decode(s.Path(), data)
}

// Save writes to a temp file and renames it over the old record
func (s *FileStore) Save(income domain.Income) error {
	data, err := encode(income)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("failed to create %s: %w", s.Dir, err)
	}

	tmp, err := os.CreateTemp(s.Dir, IncomeKey+"-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", tmp.Name(), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", tmp.Name(), err)
	}
	if err := os.Rename(tmp.Name(), s.Path()); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.Path(), err)
	}
	return nil
}
