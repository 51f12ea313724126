package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/aggregate"
	"github.com/cleared-dev/fintrack/internal/model"
)

func newChartCommand(opts *rootOptions) *cobra.Command {
	var kind string
	var months int

	cmd := &cobra.Command{
		Use:   "chart",
		Short: "Show the category breakdown and monthly series",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			k := model.Kind(kind)
			if !k.Valid() {
				return fmt.Errorf("invalid --type %q: must be income or expense", kind)
			}
			if !cmd.Flags().Changed("months") {
				months = opts.cfg.Display.SeriesMonths
			}

			svc, closeStore, err := opts.openLedger(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			txns := svc.All()
			if len(txns) == 0 {
				fmt.Fprintln(out, "No transaction data available")
				return nil
			}

			fmt.Fprintf(out, "%s by category\n", k.Label())
			shares := aggregate.Breakdown(txns, k)
			if len(shares) == 0 {
				fmt.Fprintf(out, "  No %s data to display\n", kind)
			} else {
				tw := newTable(out)
				for _, s := range shares {
					fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", s.Category, money(s.Amount), percent(s.Percentage), bar(s.Percentage))
				}
				if err := tw.Flush(); err != nil {
					return err
				}
			}

			fmt.Fprintln(out, "\nMonthly overview")
			tw := newTable(out)
			fmt.Fprintln(tw, "  MONTH\tINCOME\tEXPENSES\tNET")
			for _, m := range aggregate.MonthlySeries(txns, months) {
				fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\n", m.Month, money(m.Income), money(m.Expenses), money(m.Net()))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", string(model.KindExpense), "income or expense")
	cmd.Flags().IntVar(&months, "months", aggregate.DefaultSeriesMonths, "most recent months to show, 0 for all")

	return cmd
}
