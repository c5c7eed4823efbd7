package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"git.sr.ht/~whereswaldon/barchart/backend"
	"git.sr.ht/~whereswaldon/barchart/config"
	"git.sr.ht/~whereswaldon/barchart/interaction"
	"git.sr.ht/~whereswaldon/barchart/render"
)

type snapshotFlags struct {
	out      string
	fraction float64
	height   int
	width    int
}

func newSnapshotCommand(global *globalFlags) *cobra.Command {
	var flags snapshotFlags
	cmd := &cobra.Command{
		Use:   "snapshot",
		Short: "Render the chart to a PNG image",
		Long: `Render the chart to a PNG image. With --fraction the chart is drawn as if
touched at that fraction of its width, showing the selected value and label.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := global.load(cmd)
			if err != nil {
				return err
			}
			logger := cfg.Logger(cmd.ErrOrStderr())
			if cfg.Data == "" {
				return errors.New("no dataset: use --data or set data in the config file")
			}
			data, err := backend.Load(cfg.Data)
			if err != nil {
				return err
			}
			opts := snapshotOptions(cfg, data, flags)
			if cmd.Flags().Changed("fraction") {
				opts.Touch = interaction.TouchAt(flags.fraction)
			}

			var out io.Writer = cmd.OutOrStdout()
			if flags.out != "-" {
				f, err := os.Create(flags.out)
				if err != nil {
					return fmt.Errorf("failed creating output: %w", err)
				}
				defer f.Close()
				out = f
			}
			res, err := render.Snapshot(out, opts)
			if err != nil {
				return err
			}
			if res.Selected {
				logger.Info("rendered selection", "index", res.Selection.Index, "label", res.Selection.Label, "value", res.Selection.Value)
			} else {
				logger.Info("rendered chart", "bars", data.Len())
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&flags.out, "out", "o", "chart.png", `output file, "-" for standard output`)
	cmd.Flags().Float64Var(&flags.fraction, "fraction", 0, "touch position as a fraction of the chart width")
	cmd.Flags().IntVar(&flags.width, "width", 0, "image width in pixels (defaults to the configured form)")
	cmd.Flags().IntVar(&flags.height, "height", 0, "image height in pixels (defaults to the configured form)")
	return cmd
}

func snapshotOptions(cfg config.Config, data interaction.Dataset, flags snapshotFlags) render.Options {
	w, h, _ := cfg.Form.Size()
	width, height := int(w), int(h)
	if flags.width > 0 {
		width = flags.width
	}
	if flags.height > 0 {
		height = flags.height
	}
	return render.Options{
		Title:          cfg.Title,
		Legend:         cfg.Legend,
		ShowLegend:     cfg.ShowsLegend(),
		Width:          width,
		Height:         height,
		Data:           data,
		Touch:          interaction.NoTouch,
		LabelBoxWidth:  cfg.LabelBox.Width,
		LabelBoxMargin: cfg.LabelBox.Margin,
		Palette:        cfg.Palette(),
		Classify:       cfg.Classifier(),
	}
}
