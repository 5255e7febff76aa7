package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/mokesciai/internal/config"
	"github.com/rgehrsitz/mokesciai/internal/domain"
	"github.com/rgehrsitz/mokesciai/internal/output"
)

func ratesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rates",
		Short: "Print the tax rates of a year",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			year, _ := cmd.Flags().GetInt("year")
			text, err := output.FormatRates(domain.Year(year))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), text)
			return nil
		},
	}
	cmd.Flags().Int("year", int(domain.DefaultYear), "Tax year")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [profile]",
		Short: "Validate an income profile",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parser := config.NewInputParser()
			income, err := parser.LoadFromFile(args[0])
			if err != nil {
				return err
			}
			for _, w := range parser.Warnings(income) {
				fmt.Fprintf(cmd.OutOrStdout(), "Warning: %s\n", w)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Income profile %s is valid\n", args[0])
			return nil
		},
	}
}
