package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"runtime/debug"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/config"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/storage"
)

// simpleCLILogger implements calculation.Logger using the standard log package
type simpleCLILogger struct{}

func (simpleCLILogger) Debugf(format string, args ...any) { log.Printf("DEBUG: "+format, args...) }
func (simpleCLILogger) Infof(format string, args ...any)  { log.Printf("INFO: "+format, args...) }
func (simpleCLILogger) Warnf(format string, args ...any)  { log.Printf("WARN: "+format, args...) }
func (simpleCLILogger) Errorf(format string, args ...any) { log.Printf("ERROR: "+format, args...) }

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "mokesciai %s (commit %s, built %s)\n", version, commit, date)
			if info := buildInfo(); info != "" {
				fmt.Fprintln(cmd.OutOrStdout(), info)
			}
		},
	}
}

func buildInfo() string {
	if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
		return bi.String()
	}
	return ""
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mokesciai",
		Short: "Lithuanian tax calculator",
		Long: "Calculates GPM, VSD and PSD for employment, individual activity (IV),\n" +
			"MB income and MB dividends, and finds the split of extra income with the lowest tax.",
		SilenceUsage: true,
	}
	root.AddCommand(calculateCmd())
	root.AddCommand(optimizeCmd())
	root.AddCommand(compareCmd())
	root.AddCommand(grossUpCmd())
	root.AddCommand(ratesCmd())
	root.AddCommand(validateCmd())
	root.AddCommand(versionCmd())
	return root
}

// addStoreFlags registers the flags shared by commands that read or write
// the saved income
func addStoreFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("no-store", false, "Do not read or write the saved income")
	cmd.Flags().String("store", "", "Storage backend: file, sqlite or memory (default from MOKESCIAI_STORE)")
	cmd.Flags().Bool("debug", false, "Enable debug logging")
}

// session is what a command needs to load, calculate and save an income
type session struct {
	logger calculation.Logger
	store  storage.Store
}

func (s *session) Close() {
	if c, ok := s.store.(io.Closer); ok {
		if err := c.Close(); err != nil {
			s.logger.Warnf("failed to close store: %v", err)
		}
	}
}

func openSession(cmd *cobra.Command) (*session, error) {
	settings := config.LoadSettings()

	debugMode, _ := cmd.Flags().GetBool("debug")
	var logger calculation.Logger = calculation.NopLogger{}
	if debugMode || settings.Debug {
		logger = simpleCLILogger{}
	}
	s := &session{logger: logger}

	if noStore, _ := cmd.Flags().GetBool("no-store"); noStore {
		return s, nil
	}
	if kind, _ := cmd.Flags().GetString("store"); kind != "" {
		settings.Store = config.StoreKind(strings.ToLower(kind))
	}
	store, err := storage.Open(settings)
	if err != nil {
		return nil, fmt.Errorf("failed to open store: %w", err)
	}
	logger.Debugf("using %s store at %s", settings.Store, settings.StorePath)
	s.store = store
	return s, nil
}

// baseIncome reads the profile when one is given, otherwise the saved
// income, otherwise the defaults
func (s *session) baseIncome(args []string) (domain.Income, error) {
	if len(args) > 0 {
		parser := config.NewInputParser()
		income, err := parser.LoadFromFile(args[0])
		if err != nil {
			return domain.Income{}, err
		}
		for _, w := range parser.Warnings(income) {
			s.logger.Warnf("%s", w)
		}
		return *income, nil
	}
	return storage.LoadOrDefault(s.store, s.logger), nil
}

func (s *session) save(income domain.Income) error {
	if s.store == nil {
		return nil
	}
	if err := s.store.Save(income); err != nil {
		return fmt.Errorf("failed to save income: %w", err)
	}
	return nil
}

// parseAmount reads a non-negative amount flag; a decimal comma is accepted
func parseAmount(name, value string) (decimal.Decimal, error) {
	v, err := decimal.NewFromString(strings.ReplaceAll(strings.TrimSpace(value), ",", "."))
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid --%s %q: %w", name, value, err)
	}
	if v.IsNegative() {
		return decimal.Zero, fmt.Errorf("--%s cannot be negative", name)
	}
	return v, nil
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
