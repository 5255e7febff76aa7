package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/mokesciai/internal/breakeven"
	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/config"
	"github.com/rgehrsitz/mokesciai/internal/domain"
)

func grossUpCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "gross-up [profile]",
		Short: "Find the gross income that gives a target net income",
		Long: "Searches the monthly gross of one source that brings the net income of the\n" +
			"whole profile to --net per month. The other sources keep their amounts.\n" +
			"The saved income is never changed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rawNet, _ := cmd.Flags().GetString("net")
			target, err := parseAmount("net", rawNet)
			if err != nil {
				return err
			}
			rawSource, _ := cmd.Flags().GetString("source")
			source, err := domain.ParseIncomeSource(rawSource)
			if err != nil {
				return err
			}

			s, err := openSession(cmd)
			if err != nil {
				return err
			}
			defer s.Close()

			income, err := s.baseIncome(args)
			if err != nil {
				return err
			}
			if err := config.NewInputParser().ValidateIncome(&income); err != nil {
				return err
			}

			engine := calculation.NewEngine()
			engine.SetLogger(s.logger)
			result, err := breakeven.NewDefaultSolver(engine).Solve(cmd.Context(), breakeven.Request{
				Base:             income,
				Source:           source,
				TargetNetMonthly: target,
			})
			if err != nil {
				return err
			}

			format, _ := cmd.Flags().GetString("format")
			switch format {
			case "", "console":
				fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
			case "json":
				text, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), text)
			default:
				return fmt.Errorf("unknown format %q, available: console, json", format)
			}
			return nil
		},
	}
	cmd.Flags().String("net", "", "Target net income per month (required)")
	cmd.Flags().String("source", string(domain.SourceEmployment), "Source whose gross is searched: employment, iv, mb or mbDividends")
	cmd.Flags().StringP("format", "f", "console", "Output format: console or json")
	_ = cmd.MarkFlagRequired("net")
	addStoreFlags(cmd)
	return cmd
}
