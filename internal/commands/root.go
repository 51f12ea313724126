package commands

import (
	"path/filepath"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cleared-dev/fintrack/internal/buildinfo"
	"github.com/cleared-dev/fintrack/internal/config"
	"github.com/cleared-dev/fintrack/internal/logger"
)

// now is the reference clock for default dates, insights and export names.
var now = time.Now

// rootOptions carries global flags and the state PersistentPreRunE derives
// from them.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg     *config.Config
	baseDir string
	log     zerolog.Logger
}

// NewRootCommand creates the root CLI command with all subcommands registered.
func NewRootCommand() *cobra.Command {
	opts := &rootOptions{}

	rootCmd := &cobra.Command{
		Use:     "fintrack",
		Short:   "Personal income and expense tracker",
		Version: buildinfo.String(),
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.setup(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", config.FileName, "path to "+config.FileName)
	rootCmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "log format (console or json)")

	rootCmd.AddCommand(
		newInitCommand(opts),
		newAddCommand(opts),
		newUpdateCommand(opts),
		newDeleteCommand(opts),
		newListCommand(opts),
		newSummaryCommand(opts),
		newInsightsCommand(opts),
		newChartCommand(opts),
		newExportCommand(opts),
		newImportCommand(opts),
		newClearCommand(opts),
		newCategoriesCommand(),
	)

	return rootCmd
}

// setup loads .env, the config file and environment overrides, then builds
// the logger and stores it in the command context.
func (o *rootOptions) setup(cmd *cobra.Command) error {
	o.baseDir = filepath.Dir(o.configPath)

	if err := config.LoadEnvFile(filepath.Join(o.baseDir, ".env")); err != nil {
		return err
	}

	cfg, err := config.LoadOrDefault(o.configPath)
	if err != nil {
		return err
	}
	cfg.ApplyEnv()
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	o.cfg = cfg

	log, err := logger.NewFormat(cmd.ErrOrStderr(), cfg.Log.Format, cfg.Log.Level)
	if err != nil {
		return err
	}
	o.log = log
	cmd.SetContext(logger.WithContext(cmd.Context(), log))

	log.Debug().
		Str("config", o.configPath).
		Str("backend", cfg.Storage.Backend).
		Str("data", cfg.DataPath(o.baseDir)).
		Msg("configuration loaded")
	return nil
}
