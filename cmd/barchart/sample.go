package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/spf13/cobra"
)

type sampleFlags struct {
	interval time.Duration
	count    int
	seed     uint64
	output   string
}

func newSampleCommand() *cobra.Command {
	var flags sampleFlags
	cmd := &cobra.Command{
		Use:   "sample",
		Short: "Write a live CSV stream of sample bars",
		Long: `Write a header and then one label,value row per interval, suitable for
piping into "barchart-gui --data -".`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()
			var output io.Writer = cmd.OutOrStdout()
			if flags.output != "-" {
				f, err := os.Create(flags.output)
				if err != nil {
					return fmt.Errorf("failed opening output file %q: %w", flags.output, err)
				}
				defer f.Close()
				output = f
			}
			rng := rand.New(rand.NewPCG(flags.seed, flags.seed))
			return writeSamples(ctx, output, flags.count, flags.interval, rng)
		},
	}
	cmd.Flags().DurationVar(&flags.interval, "sample-interval", 500*time.Millisecond, "interval between rows")
	cmd.Flags().IntVarP(&flags.count, "count", "n", 12, "number of rows to write, 0 for no limit")
	cmd.Flags().Uint64Var(&flags.seed, "seed", uint64(time.Now().UnixNano()), "random seed")
	cmd.Flags().StringVar(&flags.output, "output", "-", "output file for CSV data")
	return cmd
}

// writeSamples writes a header and count rows of a bounded random walk, one
// per interval. It stops early when ctx is done.
func writeSamples(ctx context.Context, output io.Writer, count int, interval time.Duration, rng *rand.Rand) error {
	w := csv.NewWriter(output)
	write := func(rec ...string) error {
		if err := w.Write(rec); err != nil {
			return err
		}
		w.Flush()
		return w.Error()
	}
	if err := write("label", "value"); err != nil {
		return err
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	value := 50.0
	for i := 1; count == 0 || i <= count; i++ {
		if i > 1 {
			select {
			case <-ctx.Done():
				return nil
			case <-ticker.C:
			}
		}
		value = min(100, max(0, value+rng.Float64()*30-15))
		if err := write("S"+strconv.Itoa(i), strconv.FormatFloat(value, 'f', 1, 64)); err != nil {
			return fmt.Errorf("failed writing sample: %w", err)
		}
	}
	return nil
}
