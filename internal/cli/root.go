// Package cli holds the zeedle command line: the player itself and a few
// inspection subcommands.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/llehouerou/zeedle/internal/config"
	"github.com/llehouerou/zeedle/internal/logger"
)

// options are the flags shared by every command.
type options struct {
	configPath string
	library    string
	verbose    bool
}

// NewRootCmd builds the command tree. Without a subcommand it runs the
// player.
func NewRootCmd() *cobra.Command {
	opts := &options{}

	root := &cobra.Command{
		Use:           "zeedle",
		Short:         "A terminal music player for a local library, with synced lyrics",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runPlayer(cmd.Context(), opts)
		},
	}

	f := root.PersistentFlags()
	f.StringVar(&opts.configPath, "config", config.Path(), "settings file")
	f.StringVar(&opts.library, "library", "", "music directory, overrides the settings file")
	f.BoolVarP(&opts.verbose, "verbose", "v", false, "log at debug level")

	root.AddCommand(
		newScanCmd(opts),
		newLyricsCmd(opts),
		newHistoryCmd(opts),
	)
	return root
}

// loadConfig reads the settings and applies the flags over them.
func (o *options) loadConfig() (*config.Config, error) {
	cfg, err := config.Load(o.configPath)
	if o.library != "" {
		cfg.LibraryRoot = o.library
	}
	if o.verbose {
		cfg.LogLevel = string(logger.DebugLevel)
	}
	return cfg, err
}

// initLogger installs the file logger. console also logs to stderr, which
// only the non-interactive commands may do.
func initLogger(cfg *config.Config, console bool) error {
	lc := logger.DefaultConfig(cfg.LogFile)
	lc.Level = logger.LogLevel(cfg.LogLevel)
	lc.Console = console
	return logger.Init(lc)
}
