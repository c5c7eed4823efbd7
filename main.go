// Command barchart-gui shows an interactive bar chart of a CSV or XLSX
// dataset. Press and drag across the chart to read individual bars.
//
//	barchart-gui --data sales.csv
//	barchart sample | barchart-gui --data -
package main

import (
	"context"
	"fmt"
	"os"

	"gioui.org/app"
	"gioui.org/op"
	"gioui.org/unit"
	"gioui.org/x/explorer"
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/barchart/backend"
	"git.sr.ht/~whereswaldon/barchart/config"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var (
		configPath string
		dataPath   string
		logLevel   string
	)
	cmd := &cobra.Command{
		Use:          "barchart-gui",
		Short:        "Interactive bar chart viewer",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, configPath, dataPath, logLevel)
			if err != nil {
				return err
			}
			logger := cfg.Logger(cmd.ErrOrStderr())
			go func() {
				w := app.NewWindow(
					app.Title("Bar Chart"),
					app.Size(unit.Dp(480), unit.Dp(640)),
				)
				if err := loop(w, cfg, logger); err != nil {
					logger.Fatal("window closed with error", "err", err)
				}
				os.Exit(0)
			}()
			app.Main()
			return nil
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "YAML chart configuration")
	cmd.Flags().StringVarP(&dataPath, "data", "d", "", `dataset to open (CSV or XLSX, "-" for a live CSV stream on stdin)`)
	cmd.Flags().StringVar(&logLevel, "log-level", "", "log level (debug, info, warn, error)")
	return cmd
}

// loadConfig reads the optional config file and applies flag overrides.
func loadConfig(cmd *cobra.Command, configPath, dataPath, logLevel string) (config.Config, error) {
	cfg := config.Default()
	if configPath != "" {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return config.Config{}, err
		}
	}
	if cmd.Flags().Changed("data") {
		cfg.Data = dataPath
	}
	if cmd.Flags().Changed("log-level") {
		cfg.LogLevel = logLevel
	}
	if err := cfg.Validate(); err != nil {
		return config.Config{}, fmt.Errorf("invalid flags: %w", err)
	}
	return cfg, nil
}

func loop(w *app.Window, cfg config.Config, logger *log.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	ds, err := backend.NewDatasource(ctx, logger)
	if err != nil {
		return err
	}
	expl := explorer.NewExplorer(w)
	ws := backend.NewWindowState(ctx, backend.NewBundle(ds), w)
	ui := NewUI(ws, expl, cfg, logger)
	if cfg.Data != "" {
		// Failures are logged and shown in the window.
		_ = ds.LoadFromPath(cfg.Data)
	}
	var ops op.Ops
	for {
		ev := w.NextEvent()
		expl.ListenEvents(ev)
		switch ev := ev.(type) {
		case app.DestroyEvent:
			return ev.Err
		case app.FrameEvent:
			gtx := app.NewContext(&ops, ev)
			ui.Layout(gtx)
			ev.Frame(gtx.Ops)
		}
	}
}
