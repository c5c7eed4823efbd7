package main

import (
	"context"
	"errors"
	"io"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/barchart/backend"
	"git.sr.ht/~whereswaldon/barchart/interaction"
	"git.sr.ht/~whereswaldon/barchart/tui"
)

func newTUICommand(global *globalFlags) *cobra.Command {
	var logFile string
	cmd := &cobra.Command{
		Use:   "tui",
		Short: "Show the chart in the terminal",
		Long: `Show the chart in the terminal. Click and drag across the bars to read
them. The dataset is reloaded whenever the file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := global.load(cmd)
			if err != nil {
				return err
			}
			if cfg.Data == "-" {
				return errors.New("the terminal view cannot read from standard input")
			}
			// The terminal is busy drawing the chart, so logs go to a file.
			var logOut io.Writer = io.Discard
			if logFile != "" {
				f, err := os.OpenFile(logFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
				if err != nil {
					return err
				}
				defer f.Close()
				logOut = f
			}
			logger := cfg.Logger(logOut)

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()
			ds, err := backend.NewDatasource(ctx, logger)
			if err != nil {
				return err
			}
			m := tui.New(cfg, interaction.Dataset{}, ds.Status(ctx))
			m.SetPaused = ds.SetPaused
			m.OnSelectionChanged = func(sel interaction.Selection) {
				logger.Debug("selection changed", "index", sel.Index, "label", sel.Label, "value", sel.Value)
			}
			if cfg.Data != "" {
				// Failures show up in the status line.
				_ = ds.LoadFromPath(cfg.Data)
			}
			_, err = tea.NewProgram(m,
				tea.WithAltScreen(),
				tea.WithMouseCellMotion(),
				tea.WithContext(ctx),
				tea.WithOutput(cmd.OutOrStdout()),
			).Run()
			if errors.Is(err, tea.ErrProgramKilled) {
				return nil
			}
			return err
		},
	}
	cmd.Flags().StringVar(&logFile, "log-file", "", "append logs to this file")
	return cmd
}
