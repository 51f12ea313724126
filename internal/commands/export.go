package commands

import (
	"bytes"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/exchange"
)

func newExportCommand(opts *rootOptions) *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write every transaction to a JSON or CSV file",
		Long:  "Write every transaction to a JSON or CSV file. Use -o - to write to standard output.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codec := exchange.DefaultRegistry().Get(format)
			if codec == nil {
				return fmt.Errorf("unknown export format %q", format)
			}

			svc, closeStore, err := opts.openLedger(cmd)
			if err != nil {
				return err
			}
			defer closeStore()

			txns := svc.All()
			if output == "-" {
				return codec.Encode(cmd.OutOrStdout(), txns)
			}

			if output == "" {
				output = exchange.ExportFileName(now(), codec)
			}
			var buf bytes.Buffer
			if err := codec.Encode(&buf, txns); err != nil {
				return err
			}
			if err := os.WriteFile(output, buf.Bytes(), 0o644); err != nil {
				return fmt.Errorf("writing export: %w", err)
			}

			opts.log.Info().Str("file", output).Int("count", len(txns)).Msg("data exported")
			fmt.Fprintf(cmd.OutOrStdout(), "Exported %d %s to %s\n", len(txns), plural(len(txns), "transaction"), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "json", "json or csv")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default expense-tracker-data-<date>.<ext>)")

	return cmd
}
