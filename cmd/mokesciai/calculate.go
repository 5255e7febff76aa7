package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/config"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/output"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [profile]",
		Short: "Calculate taxes for an income",
		Long: "Calculates the yearly taxes of every income source. The income comes from the\n" +
			"profile file when given, otherwise from the saved income. Flags override both.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			income, err := s.baseIncome(args)
			if err != nil {
				return err
			}
			income, err = applyIncomeFlags(cmd, income)
			if err != nil {
				return err
			}
			if err := config.NewInputParser().ValidateIncome(&income); err != nil {
				return err
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			f := output.GetFormatterByName(outputFormat)
			if f == nil {
				return fmt.Errorf("unknown format %q, available: %s",
					outputFormat, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			engine := calculation.NewEngine()
			engine.SetLogger(s.logger)
			summary, err := engine.Calculate(income)
			if err != nil {
				return err
			}

			if dir, _ := cmd.Flags().GetString("output-dir"); dir != "" {
				if err := os.MkdirAll(dir, 0o755); err != nil {
					return fmt.Errorf("failed to create %s: %w", dir, err)
				}
				path, err := output.WriteFormatted(f, summary, dir, output.Extension(f))
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
			} else {
				data, err := f.Format(summary)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), string(data))
			}

			return s.save(income)
		},
	}

	cmd.Flags().Int("year", int(domain.DefaultYear), "Tax year")
	cmd.Flags().String("monthly", "0", "Gross monthly employment income")
	cmd.Flags().String("iv", "0", "Monthly individual activity (IV) income")
	cmd.Flags().String("mb", "0", "Monthly MB income")
	cmd.Flags().String("dividends", "0", "Monthly MB profit paid as dividends")
	cmd.Flags().Bool("pension", true, "Pension accumulation (+3% VSD)")
	cmd.Flags().Bool("no-profit-tax", false, "MB is in its first 12 months (no profit tax)")
	cmd.Flags().Bool("reduced-profit-tax", true, "MB revenue is under 300 000 EUR (reduced profit tax rate)")
	cmd.Flags().StringP("format", "f", "console", "Output format: "+strings.Join(output.AvailableFormatterNames(), ", "))
	cmd.Flags().String("output-dir", "", "Write the report to a file in this directory instead of stdout")
	addStoreFlags(cmd)
	return cmd
}

// applyIncomeFlags overrides the fields whose flags were set explicitly
func applyIncomeFlags(cmd *cobra.Command, income domain.Income) (domain.Income, error) {
	flags := cmd.Flags()

	if flags.Changed("year") {
		year, _ := flags.GetInt("year")
		income.Year = domain.Year(year)
	}

	amounts := []struct {
		name  string
		field *decimal.Decimal
	}{
		{"monthly", &income.Monthly},
		{"iv", &income.IVMonthly},
		{"mb", &income.MBMonthly},
		{"dividends", &income.MBDividendsMonthly},
	}
	for _, a := range amounts {
		if !flags.Changed(a.name) {
			continue
		}
		raw, _ := flags.GetString(a.name)
		v, err := parseAmount(a.name, raw)
		if err != nil {
			return income, err
		}
		*a.field = v
	}

	toggles := []struct {
		name  string
		field *bool
	}{
		{"pension", &income.PensionAccumulation},
		{"no-profit-tax", &income.MBNoProfitTax},
		{"reduced-profit-tax", &income.MBUseReducedProfitTaxRate},
	}
	for _, tg := range toggles {
		if flags.Changed(tg.name) {
			*tg.field, _ = flags.GetBool(tg.name)
		}
	}
	return income, nil
}
