package storage

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/config"
	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// IncomeKey is the fixed key the income record is stored under
const IncomeKey = "tax-calculator-income"

// Store persists the single Income record
type Store interface {
	// Load returns nil, nil when nothing has been stored yet
	Load() (*domain.Income, error)
	Save(income domain.Income) error
}

// DecodeError reports a stored record that could not be parsed
type DecodeError struct {
	Source string
	Cause  error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("malformed income record in %s: %v", e.Source, e.Cause)
}

func (e *DecodeError) Unwrap() error {
	return e.Cause
}

func decode(source string, data []byte) (*domain.Income, error) {
	var income domain.Income
	if err := json.Unmarshal(data, &income); err != nil {
		return nil, &DecodeError{Source: source, Cause: err}
	}
	return &income, nil
}

func encode(income domain.Income) ([]byte, error) {
	data, err := json.MarshalIndent(income, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode income: %w", err)
	}
	return data, nil
}

// LoadOrDefault returns the stored income, or the defaults when nothing is
// stored or the stored record cannot be read. Failures are logged, never returned.
func LoadOrDefault(store Store, logger calculation.Logger) domain.Income {
	if logger == nil {
		logger = calculation.NopLogger{}
	}
	if store == nil {
		return domain.DefaultIncome()
	}

	income, err := store.Load()
	if err != nil {
		logger.Warnf("could not load saved income, using defaults: %v", err)
		return domain.DefaultIncome()
	}
	if income == nil {
		logger.Debugf("no saved income, using defaults")
		return domain.DefaultIncome()
	}
	if !income.Year.Valid() {
		logger.Warnf("saved income has unsupported year %d, using %d", int(income.Year), int(domain.DefaultYear))
		income.Year = domain.DefaultYear
	}
	return *income
}

// Open creates the store selected by settings
func Open(settings config.Settings) (Store, error) {
	switch settings.Store {
	case config.StoreMemory:
		return NewMemoryStore(), nil
	case config.StoreSQLite:
		return NewSQLiteStore(filepath.Join(settings.StorePath, "mokesciai.db"))
	case config.StoreFile, "":
		return NewFileStore(settings.StorePath), nil
	default:
		return nil, fmt.Errorf("unknown store %q", settings.Store)
	}
}
