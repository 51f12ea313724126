package commands

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/config"
	"github.com/cleared-dev/fintrack/internal/exchange"
	"github.com/cleared-dev/fintrack/internal/store"
)

func newInitCommand(opts *rootOptions) *cobra.Command {
	var backend string

	cmd := &cobra.Command{
		Use:   "init [directory]",
		Short: "Initialize a new fintrack data directory",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir := "."
			if len(args) > 0 {
				dir = args[0]
			}

			absDir, err := filepath.Abs(dir)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			return runInit(cmd, absDir, backend)
		},
	}

	cmd.Flags().StringVar(&backend, "backend", store.BackendJSON, "storage backend (json or sqlite)")

	return cmd
}

func runInit(cmd *cobra.Command, dir, backend string) error {
	cfgPath := filepath.Join(dir, config.FileName)
	if _, err := os.Stat(cfgPath); err == nil {
		return fmt.Errorf("%s already exists", cfgPath)
	} else if !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking %s: %w", cfgPath, err)
	}

	// Create directory structure.
	dirs := []string{
		"data",
		exchange.InboxDir,
		exchange.ProcessedDir,
	}
	for _, d := range dirs {
		if err := os.MkdirAll(filepath.Join(dir, d), 0o755); err != nil {
			return fmt.Errorf("creating directory %s: %w", d, err)
		}
	}

	// Write fintrack.yaml.
	cfg := config.Default()
	cfg.Storage.Backend = backend
	if backend == store.BackendSQLite {
		cfg.Storage.Path = filepath.Join("data", "fintrack.db")
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	if err := config.Save(cfgPath, cfg); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	// Create an empty snapshot.
	ctx := cmd.Context()
	st, err := store.Open(ctx, cfg.Storage.Backend, cfg.DataPath(dir))
	if err != nil {
		return err
	}
	defer st.Close()
	if err := st.Save(ctx, nil); err != nil {
		return fmt.Errorf("creating data store: %w", err)
	}

	// Write import/.gitkeep.
	if err := os.WriteFile(filepath.Join(dir, exchange.InboxDir, ".gitkeep"), []byte{}, 0o644); err != nil {
		return fmt.Errorf("writing .gitkeep: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Initialized fintrack data directory at %s (%s backend)\n", dir, cfg.Storage.Backend)
	return nil
}
