package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newClearCommand(opts *rootOptions) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Permanently delete all transactions",
		Long:  "Permanently delete all transactions. This cannot be undone; consider running export first.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			svc, closeStore, err := opts.openLedger(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if !yes {
				return fmt.Errorf("refusing to delete %d %s without --yes", svc.Len(), plural(svc.Len(), "transaction"))
			}

			n, err := svc.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "All data cleared: %d %s deleted\n", n, plural(n, "transaction"))
			return nil
		},
	}

	cmd.Flags().BoolVar(&yes, "yes", false, "confirm deletion")

	return cmd
}
