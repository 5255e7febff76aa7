package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/rgehrsitz/mokesciai/internal/config"
	"github.com/rgehrsitz/mokesciai/internal/optimizer"
	"github.com/rgehrsitz/mokesciai/internal/output"
)

func optimizeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "optimize [profile]",
		Short: "Find the split of extra income with the lowest tax",
		Long: "Distributes extra monthly income across IV, MB income and MB dividends and\n" +
			"reports the split with the lowest annual tax. Employment income stays as is.\n" +
			"The saved income only changes with --apply.",
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

			extra := income.ExtraMonthly()
			if cmd.Flags().Changed("extra") {
				raw, _ := cmd.Flags().GetString("extra")
				if extra, err = parseAmount("extra", raw); err != nil {
					return err
				}
			}

			opts := optimizer.DefaultOptions()
			if steps, _ := cmd.Flags().GetInt("steps"); steps > 0 {
				opts.StepsPerAxis = steps
			}
			opts.Progress = func(done, total int) {
				if done == total || done%50 == 0 {
					s.logger.Debugf("optimizer: %d/%d rows", done, total)
				}
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			result, err := optimizer.Optimize(ctx, extra, income, opts)
			if errors.Is(err, context.Canceled) {
				return fmt.Errorf("optimization cancelled")
			}
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), output.FormatAllocation(result))

			apply, _ := cmd.Flags().GetBool("apply")
			if !apply || !result.Applied {
				return nil
			}
			if s.store == nil {
				return fmt.Errorf("--apply needs a store, remove --no-store")
			}
			if err := s.save(result.Income); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Allocation applied and saved.")
			return nil
		},
	}

	cmd.Flags().String("extra", "", "Extra monthly income to distribute (default: current IV + MB + dividends)")
	cmd.Flags().Bool("apply", false, "Save the optimized allocation as the current income")
	cmd.Flags().Int("steps", 0, "Grid points per axis (default 400)")
	addStoreFlags(cmd)
	return cmd
}
