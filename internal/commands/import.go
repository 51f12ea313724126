package commands

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/exchange"
	"github.com/cleared-dev/fintrack/internal/ledger"
)

func newImportCommand(opts *rootOptions) *cobra.Command {
	var format string
	var inbox bool

	cmd := &cobra.Command{
		Use:   "import <file> | --inbox",
		Short: "Merge transactions from a JSON or CSV file",
		Long: "Merge transactions from a JSON or CSV file. Records whose ID already exists are skipped " +
			"and invalid records are dropped. With --inbox every file in <data dir>/import/ is imported " +
			"and moved to import/processed/.",
		Args: func(cmd *cobra.Command, args []string) error {
			if inbox {
				return cobra.NoArgs(cmd, args)
			}
			return cobra.ExactArgs(1)(cmd, args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			reg := exchange.DefaultRegistry()

			svc, closeStore, err := opts.openLedger(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			if inbox {
				return runInbox(cmd, opts, reg, svc)
			}

			path := args[0]
			codec := reg.ForFile(path)
			if format != "" {
				codec = reg.Get(format)
			}
			if codec == nil {
				return fmt.Errorf("cannot tell the format of %s; pass --format", path)
			}
			return importFile(cmd, svc, codec, path)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "", "json or csv (default from file extension)")
	cmd.Flags().BoolVar(&inbox, "inbox", false, "import every file waiting in the import directory")

	return cmd
}

func importFile(cmd *cobra.Command, svc *ledger.Service, codec exchange.Codec, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("opening %s: %w", path, err)
	}
	defer f.Close()

	return importFrom(cmd, svc, codec, f, path)
}

func importFrom(cmd *cobra.Command, svc *ledger.Service, codec exchange.Codec, r io.Reader, name string) error {
	batch, err := codec.Decode(r)
	if err != nil {
		return fmt.Errorf("import of %s failed: %w", name, err)
	}

	res, err := svc.Import(cmd.Context(), batch.Transactions)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Imported %d %s from %s", res.Added, plural(res.Added, "transaction"), name)
	if res.Skipped > 0 || batch.Invalid > 0 {
		fmt.Fprintf(cmd.OutOrStdout(), " (%d already present, %d invalid)", res.Skipped, batch.Invalid)
	}
	fmt.Fprintln(cmd.OutOrStdout())
	return nil
}

func runInbox(cmd *cobra.Command, opts *rootOptions, reg *exchange.Registry, svc *ledger.Service) error {
	files, err := reg.Scan(opts.baseDir)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No files waiting in the import directory")
		return nil
	}

	var failed int
	for _, fi := range files {
		err := importFile(cmd, svc, fi.Codec, fi.Path)
		var ierr *exchange.ImportError
		if errors.As(err, &ierr) {
			failed++
			opts.log.Warn().Str("file", fi.Name).Err(err).Msg("import skipped")
			fmt.Fprintf(cmd.OutOrStdout(), "Skipped %s: %s\n", fi.Name, ierr.Message)
			continue
		}
		if err != nil {
			return err
		}
		if err := exchange.MarkProcessed(opts.baseDir, fi.Name); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d %s could not be imported", failed, len(files), plural(len(files), "file"))
	}
	return nil
}
