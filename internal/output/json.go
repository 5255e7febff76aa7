package output

import (
	"encoding/json"

	"github.com/rgehrsitz/mokesciai/internal/domain"
)

// JSONFormatter serializes the tax summary as pretty-printed JSON.
type JSONFormatter struct{}

func (j JSONFormatter) Name() string { return "json" }

func (j JSONFormatter) Format(summary *domain.TaxSummary) ([]byte, error) {
	return json.MarshalIndent(summary, "", "  ")
}
