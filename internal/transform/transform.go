package transform

import (
	"fmt"

	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// IncomeTransform is one composable change to an income record. Transforms
// never modify their input; Apply returns a new record.
type IncomeTransform interface {
	// Apply returns a copy of base with the change applied
	Apply(base domain.Income) (domain.Income, error)

	// Name returns a short identifier (e.g., "move_extra")
	Name() string

	// Description returns a human-readable description of the change
	Description() string

	// Validate checks the parameters against base without applying them
	Validate(base domain.Income) error
}

// ApplyTransforms applies transforms in order, each one receiving the output
// of the previous one.
func ApplyTransforms(base domain.Income, transforms []IncomeTransform) (domain.Income, error) {
	current := base
	for i, t := range transforms {
		if t == nil {
			return base, fmt.Errorf("transform at index %d is nil", i)
		}
		if err := t.Validate(current); err != nil {
			return base, fmt.Errorf("transform %s validation failed: %w", t.Name(), err)
		}
		next, err := t.Apply(current)
		if err != nil {
			return base, fmt.Errorf("transform %s failed: %w", t.Name(), err)
		}
		current = next
	}
	return current, nil
}

// TransformError represents an error that occurred during transformation.
type TransformError struct {
	TransformName string
	Operation     string
	Reason        string
	Err           error
}

func (e *TransformError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("transform %s (%s): %s: %v", e.TransformName, e.Operation, e.Reason, e.Err)
	}
	return fmt.Sprintf("transform %s (%s): %s", e.TransformName, e.Operation, e.Reason)
}

func (e *TransformError) Unwrap() error {
	return e.Err
}
