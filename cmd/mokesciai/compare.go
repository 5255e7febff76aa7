package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/mokesciai/internal/calculation"
	"github.com/rgehrsitz/mokesciai/internal/compare"
	"github.com/rgehrsitz/mokesciai/internal/config"
	"github.com/rgehrsitz/mokesciai/internal/transform"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [profile]",
		Short: "Compare the income against what-if scenarios",
		Long: "Calculates the income and alternatives derived from it, such as moving all\n" +
			"extra income to one source or using another year's rates.\n\n" +
			transform.GetTemplateHelp(transform.CreateBuiltInTemplates()),
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
			if err := config.NewInputParser().ValidateIncome(&income); err != nil {
				return err
			}

			engine := calculation.NewEngine()
			engine.SetLogger(s.logger)
			with, _ := cmd.Flags().GetStringArray("with")
			var scenarios []string
			for _, w := range with {
				// a transform spec may itself contain commas
				if strings.Contains(w, ":") {
					scenarios = append(scenarios, w)
				} else {
					scenarios = append(scenarios, transform.ParseTemplateList(w)...)
				}
			}

			set, err := compare.NewCompareEngine(engine).Compare(cmd.Context(), income, compare.CompareOptions{
				BaseScenarioName: "current",
				Scenarios:        scenarios,
			})
			if err != nil {
				return err
			}
			if len(args) > 0 {
				set.ProfilePath = args[0]
			}

			outputFormat, _ := cmd.Flags().GetString("format")
			switch outputFormat {
			case "table", "console", "":
				fmt.Fprint(cmd.OutOrStdout(), (&compare.TableFormatter{}).Format(set))
			case "compact":
				fmt.Fprintln(cmd.OutOrStdout(), (&compare.TableFormatter{}).FormatCompact(set))
			case "csv":
				out, err := (&compare.CSVFormatter{}).Format(set)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			case "json":
				out, err := (&compare.JSONFormatter{Pretty: true}).Format(set)
				if err != nil {
					return err
				}
				fmt.Fprint(cmd.OutOrStdout(), out)
			default:
				return fmt.Errorf("unknown format %q, available: table, compact, csv, json", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringArray("with", nil, "Template names (comma separated) or transform specs like set_income:source=iv,amount=1500 (repeatable)")
	cmd.Flags().StringP("format", "f", "table", "Output format: table, compact, csv, json")
	addStoreFlags(cmd)
	return cmd
}
