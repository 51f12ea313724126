package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/cleared-dev/fintrack/internal/id"
	"github.com/cleared-dev/fintrack/internal/ledger"
	"github.com/cleared-dev/fintrack/internal/model"
)

// draftFlags are the transaction fields shared by add and update.
type draftFlags struct {
	kind        string
	amount      string
	description string
	category    string
	date        string
}

func (f *draftFlags) register(fs *pflag.FlagSet) {
	fs.StringVarP(&f.kind, "type", "t", string(model.KindExpense), "income or expense (default from --category)")
	fs.StringVarP(&f.amount, "amount", "a", "", "amount, greater than 0")
	fs.StringVarP(&f.description, "description", "d", "", "description")
	fs.StringVarP(&f.category, "category", "c", "", "category, see: fintrack categories")
	fs.StringVar(&f.date, "date", "", "date as YYYY-MM-DD (default today)")
}

// apply overlays the flags set on the command line onto base.
func (f *draftFlags) apply(fs *pflag.FlagSet, base ledger.Draft) (ledger.Draft, error) {
	d := base
	if fs.Changed("type") {
		d.Kind = model.Kind(f.kind)
	}
	if fs.Changed("amount") {
		amount, err := ledger.ParseAmount(f.amount)
		if err != nil {
			return ledger.Draft{}, err
		}
		d.Amount = amount
	}
	if fs.Changed("description") {
		d.Description = f.description
	}
	if fs.Changed("category") {
		d.Category = f.category
		// A category names its type unless --type says otherwise.
		if k, ok := model.KindOfCategory(f.category); ok && !fs.Changed("type") {
			d.Kind = k
		}
	}
	if fs.Changed("date") {
		d.Date = f.date
	}
	return d, nil
}

func newAddCommand(opts *rootOptions) *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Record an income or expense",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			base := ledger.Draft{
				Kind: model.Kind(flags.kind),
				Date: model.FormatDate(now()),
			}
			d, err := flags.apply(cmd.Flags(), base)
			if err != nil {
				return err
			}

			svc, closeStore, err := opts.openLedger(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			txn, err := svc.Add(cmd.Context(), d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s of %s has been recorded (id %s)\n",
				txn.Kind.Label(), money(txn.Amount), id.Short(txn.ID))
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newUpdateCommand(opts *rootOptions) *cobra.Command {
	var flags draftFlags

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace fields of a transaction",
		Long:  "Replace fields of a transaction. Flags that are not given keep their current value. The ID may be a unique prefix.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := opts.openLedger(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			txnID, err := svc.Resolve(args[0])
			if err != nil {
				return err
			}
			current, err := svc.Get(txnID)
			if err != nil {
				return err
			}

			d, err := flags.apply(cmd.Flags(), ledger.DraftOf(current))
			if err != nil {
				return err
			}
			txn, err := svc.Update(cmd.Context(), txnID, d)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transaction %s has been updated\n", id.Short(txn.ID))
			return nil
		},
	}

	flags.register(cmd.Flags())

	return cmd
}

func newDeleteCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Remove a transaction",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, closeStore, err := opts.openLedger(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			txnID, err := svc.Resolve(args[0])
			if err != nil {
				return err
			}
			if err := svc.Delete(cmd.Context(), txnID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Transaction %s has been removed\n", id.Short(txnID))
			return nil
		},
	}
}
