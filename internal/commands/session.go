package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/ledger"
	"github.com/cleared-dev/fintrack/internal/logger"
	"github.com/cleared-dev/fintrack/internal/store"
)

// openLedger opens the configured store and loads it into a ledger. The
// returned func closes the store.
func (o *rootOptions) openLedger(cmd *cobra.Command) (*ledger.Service, func(), error) {
	ctx := cmd.Context()
	path := o.cfg.DataPath(o.baseDir)
	log := logger.WithFields(o.log, map[string]interface{}{
		"backend": o.cfg.Storage.Backend,
		"store":   path,
	})
	ctx = logger.WithContext(ctx, log)
	cmd.SetContext(ctx)

	st, err := store.Open(ctx, o.cfg.Storage.Backend, path)
	if err != nil {
		return nil, nil, err
	}
	closeStore := func() {
		if err := st.Close(); err != nil {
			log.Warn().Err(err).Msg("closing store")
		}
	}

	svc, err := ledger.NewService(ctx, st, ledger.WithLogger(log))
	if err != nil {
		closeStore()
		return nil, nil, fmt.Errorf("opening ledger: %w", err)
	}
	return svc, closeStore, nil
}
