// Command barchart is the command line companion to barchart-gui. It can
// show a chart in the terminal, render a chart to PNG, and generate a live
// sample stream.
//
//	barchart sample | barchart-gui --data -
//	barchart snapshot --data sales.csv --fraction 0.4 --out sales.png
//	barchart tui --data sales.csv
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/barchart/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

// globalFlags are shared by every subcommand.
type globalFlags struct {
	configPath string
	dataPath   string
	logLevel   string
}

func newRootCommand() *cobra.Command {
	var flags globalFlags
	cmd := &cobra.Command{
		Use:          "barchart",
		Short:        "Bar chart tools",
		SilenceUsage: true,
	}
	pf := cmd.PersistentFlags()
	pf.StringVarP(&flags.configPath, "config", "c", "", "YAML chart configuration")
	pf.StringVarP(&flags.dataPath, "data", "d", "", "dataset to open (CSV or XLSX)")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(
		newTUICommand(&flags),
		newSnapshotCommand(&flags),
		newSampleCommand(),
	)
	return cmd
}

// load reads the optional config file and applies flag overrides.
func (f *globalFlags) load(cmd *cobra.Command) (config.Config, error) {
	cfg := config.Default()
	if f.configPath != "" {
		var err error
		cfg, err = config.Load(f.configPath)
		if err != nil {
			return config.Config{}, err
		}
	}
	if cmd.Flags().Changed("data") {
		cfg.Data = f.dataPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = f.logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}
