package commands

import (
	"fmt"
	"slices"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/id"
	"github.com/cleared-dev/fintrack/internal/model"
)

type listFlags struct {
	kind      string
	category  string
	search    string
	from      string
	to        string
	min       string
	max       string
	sortBy    string
	sortOrder string
}

// spec builds the filter. Sort flags left unset fall back to the display
// defaults of the config.
func (f *listFlags) spec(cmd *cobra.Command, opts *rootOptions) (model.FilterSpec, error) {
	spec := model.DefaultFilter()
	spec.Type = model.ParseTypeFilter(f.kind)
	if f.category != "" && f.category != model.CategoryAll {
		if !slices.Contains(model.AllCategories(), f.category) {
			return model.FilterSpec{}, fmt.Errorf("unknown category %q, see: fintrack categories", f.category)
		}
		spec.Category = f.category
	}
	spec.Search = f.search
	spec.DateFrom = f.from
	spec.DateTo = f.to
	spec.AmountMin = model.ParseAmountBound(f.min)
	spec.AmountMax = model.ParseAmountBound(f.max)

	sortBy, sortOrder := opts.cfg.Display.SortBy, opts.cfg.Display.SortOrder
	if cmd.Flags().Changed("sort") {
		sortBy = f.sortBy
	}
	if cmd.Flags().Changed("order") {
		sortOrder = f.sortOrder
	}
	spec.SortBy = model.ParseSortField(sortBy)
	spec.SortOrder = model.ParseSortOrder(sortOrder)
	return spec, nil
}

func newListCommand(opts *rootOptions) *cobra.Command {
	var flags listFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List transactions matching filters",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			spec, err := flags.spec(cmd, opts)
			if err != nil {
				return err
			}

			svc, closeStore, err := opts.openLedger(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			out := cmd.OutOrStdout()
			if svc.Len() == 0 {
				fmt.Fprintln(out, "No transactions yet. Add one with: fintrack add")
				return nil
			}

			res := svc.View(spec, now())
			if len(res.Rows) == 0 {
				fmt.Fprintln(out, "No transactions match the current filters.")
				return nil
			}

			tw := newTable(out)
			fmt.Fprintln(tw, "ID\tDATE\tTYPE\tCATEGORY\tDESCRIPTION\tAMOUNT")
			for _, t := range res.Rows {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
					id.Short(t.ID), t.Date, t.Kind, t.Category, t.Description, signedMoney(t))
			}
			if err := tw.Flush(); err != nil {
				return err
			}

			printer.Fprintf(out, "\n%d of %d %s", len(res.Rows), svc.Len(), plural(svc.Len(), "transaction"))
			if res.ActiveFilters > 0 {
				fmt.Fprintf(out, " (%d %s active)", res.ActiveFilters, plural(res.ActiveFilters, "filter"))
			}
			fmt.Fprintf(out, "\nIncome %s  Expenses %s  Net %s\n",
				money(res.Totals.TotalIncome), money(res.Totals.TotalExpenses), money(res.Totals.NetIncome))
			return nil
		},
	}

	fs := cmd.Flags()
	fs.StringVarP(&flags.kind, "type", "t", string(model.TypeAll), "all, income or expense")
	fs.StringVarP(&flags.category, "category", "c", model.CategoryAll, "category or all")
	fs.StringVarP(&flags.search, "search", "s", "", "case-insensitive text in the description")
	fs.StringVar(&flags.from, "from", "", "earliest date, YYYY-MM-DD inclusive")
	fs.StringVar(&flags.to, "to", "", "latest date, YYYY-MM-DD inclusive")
	fs.StringVar(&flags.min, "min", "", "minimum amount; ignored if not a number")
	fs.StringVar(&flags.max, "max", "", "maximum amount; ignored if not a number")
	fs.StringVar(&flags.sortBy, "sort", "", "date, amount, description or category")
	fs.StringVar(&flags.sortOrder, "order", "", "asc or desc")

	return cmd
}
