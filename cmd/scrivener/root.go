package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"verity-hq/scrivener/pkg/config"
	"verity-hq/scrivener/pkg/telemetry/logging"
)

var (
	// Global flags
	cfgFile string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "scrivener",
	Short: "Scrivener - policy document assembly pipeline",
	Long: `Scrivener assembles tailored compliance policy documents from a clause
library. A firm's profile and wizard answers drive a rules engine that
selects, excludes, and suggests clauses; selected clauses are rendered
with firm-specific variables, cleaned up, and bound into a document
together with an audit bundle recording the full decision trail.`,
	Version: Version,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}

// loadConfig loads the configuration honoring the --config flag; with
// no flag and no file present, defaults apply.
func loadConfig() (*config.Config, error) {
	path := cfgFile
	if path == "" {
		if _, err := os.Stat("scrivener.yaml"); err == nil {
			path = "scrivener.yaml"
		}
	}
	return config.Load(path)
}

// newLogger builds the process logger; --verbose forces debug level.
func newLogger(cfg *config.Config, w io.Writer) *slog.Logger {
	lc := cfg.Telemetry.Logging
	if verbose {
		lc.Level = "debug"
	}
	return logging.New(lc, w)
}
