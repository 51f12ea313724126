package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/exchange"
	"github.com/cleared-dev/fintrack/internal/insight"
	"github.com/cleared-dev/fintrack/internal/model"
)

func newSummaryCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show overall income, expenses and savings",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeStore, err := opts.openLedger(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			res := svc.View(model.DefaultFilter(), now())
			totals := res.Overall
			size, err := exchange.DataSize(svc.All())
			if err != nil {
				return err
			}

			tw := newTable(cmd.OutOrStdout())
			fmt.Fprintf(tw, "Total Income\t%s\n", money(totals.TotalIncome))
			fmt.Fprintf(tw, "Total Expenses\t%s\n", money(totals.TotalExpenses))
			fmt.Fprintf(tw, "Net Income\t%s\n", money(totals.NetIncome))
			fmt.Fprintf(tw, "Savings Rate\t%s (%s)\n", percent(totals.SavingsRate()), insight.BandSavings(totals.SavingsRate()))
			printer.Fprintf(tw, "Transactions\t%d\n", totals.Count)
			fmt.Fprintf(tw, "Data Size\t%s\n", exchange.FormatSize(size))
			return tw.Flush()
		},
	}
}
