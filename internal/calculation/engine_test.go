package calculation

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	lines []string
}

func (r *recordingLogger) log(level, format string, args ...any) {
	r.lines = append(r.lines, level+" "+fmt.Sprintf(format, args...))
}

func (r *recordingLogger) Debugf(format string, args ...any) { r.log("DEBUG", format, args...) }
func (r *recordingLogger) Infof(format string, args ...any)  { r.log("INFO", format, args...) }
func (r *recordingLogger) Warnf(format string, args ...any)  { r.log("WARN", format, args...) }
func (r *recordingLogger) Errorf(format string, args ...any) { r.log("ERROR", format, args...) }

func (r *recordingLogger) has(prefix, substr string) bool {
	for _, l := range r.lines {
		if strings.HasPrefix(l, prefix) && strings.Contains(l, substr) {
			return true
		}
	}
	return false
}

func TestEngine_SetLogger(t *testing.T) {
	e := NewEngine()
	_, ok := e.Logger.(NopLogger)
	assert.True(t, ok)

	rec := &recordingLogger{}
	e.SetLogger(rec)
	assert.Same(t, rec, e.Logger)

	e.SetLogger(nil)
	_, ok = e.Logger.(NopLogger)
	assert.True(t, ok, "nil should restore the no-op logger")
}

func TestEngine_Calculate(t *testing.T) {
	rec := &recordingLogger{}
	e := NewEngine()
	e.SetLogger(rec)

	summary, err := e.Calculate(domain.DefaultIncome())
	require.NoError(t, err)
	require.NotNil(t, summary)

	assert.True(t, rec.has("INFO", "PSD below annual minimum 965.75"))
	assert.True(t, rec.has("DEBUG", "employment: gross=0.00"))
}

func TestEngine_CalculateWarnsAboutMBLimit(t *testing.T) {
	rec := &recordingLogger{}
	e := &Engine{Logger: rec}

	in := domain.DefaultIncome()
	in.MBMonthly = d("9000")
	_, err := e.Calculate(in)
	require.NoError(t, err)
	assert.True(t, rec.has("WARN", "9000.00/month"))
}

func TestEngine_CalculateRejectsUnsupportedYear(t *testing.T) {
	e := &Engine{} // zero value works without a logger
	in := domain.DefaultIncome()
	in.Year = 2031

	_, err := e.Calculate(in)
	var yearErr *UnsupportedYearError
	require.True(t, errors.As(err, &yearErr))
	assert.Contains(t, err.Error(), "2031")
}
