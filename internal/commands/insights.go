package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/aggregate"
	"github.com/cleared-dev/fintrack/internal/insight"
	"github.com/cleared-dev/fintrack/internal/model"
)

func newInsightsCommand(opts *rootOptions) *cobra.Command {
	var month string

	cmd := &cobra.Command{
		Use:   "insights",
		Short: "Compare a month with the one before it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ref := now()
			if month != "" {
				t, err := time.Parse(model.MonthFormat, month)
				if err != nil {
					return fmt.Errorf("invalid --month %q: want YYYY-MM", month)
				}
				ref = t
			}

			svc, closeStore, err := opts.openLedger(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			if svc.Len() == 0 {
				fmt.Fprintln(out, "No data available for insights. Add some transactions to see your financial insights.")
				return nil
			}

			r := svc.View(model.DefaultFilter(), ref).Insights
			fmt.Fprintf(out, "Financial insights for %s (compared with %s)\n\n", r.Month, r.LastMonth)

			tw := newTable(out)
			fmt.Fprintf(tw, "Income Trend\t%s\t%s this month, %s last month\n",
				trend(r.IncomeChangePct), money(r.Current.TotalIncome), money(r.Last.TotalIncome))
			fmt.Fprintf(tw, "Expense Trend\t%s\t%s this month, %s last month\n",
				trend(r.ExpenseChangePct), money(r.Current.TotalExpenses), money(r.Last.TotalExpenses))
			fmt.Fprintf(tw, "Savings Rate\t%s\t%s %s\n", percent(r.SavingsRate), bar(r.SavingsRate), r.SavingsBand)
			fmt.Fprintf(tw, "Budget Utilization\t%s\t%s %s\n", percent(r.BudgetUtilization), bar(r.BudgetUtilization), r.BudgetBand)
			if err := tw.Flush(); err != nil {
				return err
			}

			fmt.Fprintln(out, "\nTop spending categories this month:")
			top := r.TopSpending
			if n := opts.cfg.Display.TopCategories; n != insight.TopSpendingCount {
				top = aggregate.TopCategories(aggregate.ForMonth(svc.All(), r.Month), n, model.KindExpense)
			}
			if len(top) == 0 {
				fmt.Fprintln(out, "  No expenses this month")
				return nil
			}
			tw = newTable(out)
			for i, ct := range top {
				fmt.Fprintf(tw, "  %d.\t%s\t%s\n", i+1, ct.Category, money(ct.Amount))
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&month, "month", "", "month to report as YYYY-MM (default current month)")

	return cmd
}
