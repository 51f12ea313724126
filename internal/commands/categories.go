package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/model"
)

func newCategoriesCommand() *cobra.Command {
	var kind string

	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List the categories for each transaction type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			kinds := []model.Kind{model.KindIncome, model.KindExpense}
			if kind != "" {
				k := model.Kind(strings.ToLower(kind))
				if !k.Valid() {
					return fmt.Errorf("invalid --type %q: must be income or expense", kind)
				}
				kinds = []model.Kind{k}
			}

			out := cmd.OutOrStdout()
			for _, k := range kinds {
				fmt.Fprintf(out, "%s:\n", k.Label())
				for _, c := range model.Categories(k) {
					fmt.Fprintf(out, "  %s\n", c)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", "income or expense (default both)")

	return cmd
}
