package compare

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// JSONFormatter formats comparison results as JSON
type JSONFormatter struct {
	Pretty bool
	Indent int // spaces per level when Pretty, 2 when zero
}

// Format returns the comparison set as JSON terminated by a newline, so it
// prints like the table and CSV output
func (jf *JSONFormatter) Format(compSet *ComparisonSet) (string, error) {
	if compSet == nil {
		return "", errors.New("no comparison to format")
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if jf.Pretty {
		indent := jf.Indent
		if indent <= 0 {
			indent = 2
		}
		enc.SetIndent("", strings.Repeat(" ", indent))
	}
	if err := enc.Encode(compSet); err != nil {
		return "", fmt.Errorf("failed to encode comparison: %w", err)
	}
	return buf.String(), nil
}
