package main

import (
	"fmt"
	"io"
	"log"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/config"
	"github.com/rgehrsitz/mokesciai/internal/storage"
	"github.com/rgehrsitz/mokesciai/internal/tui"
)

// fileLogger writes debug output to a file; the terminal belongs to the UI
type fileLogger struct {
	l *log.Logger
}

func (f fileLogger) Debugf(format string, args ...any) { f.l.Printf("DEBUG: "+format, args...) }
func (f fileLogger) Infof(format string, args ...any)  { f.l.Printf("INFO: "+format, args...) }
func (f fileLogger) Warnf(format string, args ...any)  { f.l.Printf("WARN: "+format, args...) }
func (f fileLogger) Errorf(format string, args ...any) { f.l.Printf("ERROR: "+format, args...) }

func main() {
	settings := config.LoadSettings()

	var logger calculation.Logger = calculation.NopLogger{}
	if settings.Debug {
		f, err := tea.LogToFile("mokesciai-debug.log", "")
		if err != nil {
			fmt.Printf("Error opening debug log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger = fileLogger{l: log.Default()}
	}

	store, err := storage.Open(settings)
	if err != nil {
		fmt.Printf("Error opening store: %v\n", err)
		os.Exit(1)
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	// Create the Bubble Tea program
	p := tea.NewProgram(
		tui.NewModel(store, logger),
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	if _, err := p.Run(); err != nil {
		fmt.Printf("Error running TUI: %v\n", err)
		os.Exit(1)
	}
}
