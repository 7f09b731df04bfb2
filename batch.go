package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"raintarget/internal/batch"
	"raintarget/internal/logging"
	"raintarget/internal/metrics"
)

func newBatchCmd(a *app) *cobra.Command {
	var (
		file   string
		format string
	)
	cmd := &cobra.Command{
		Use:   "batch",
		Short: "Evaluate every scenario in a YAML file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := batch.Load(file)
			if err != nil {
				return err
			}
			outcomes := batch.Evaluate(f, a.cfg.ScheduledOvers)
			if err := batch.Render(cmd.OutOrStdout(), outcomes, format); err != nil {
				return err
			}

			rejected := batch.CountRejected(outcomes)
			a.logger.Debug().Str(logging.FieldSource, metrics.SourceBatch).
				Str("file", file).
				Int("scenarios", len(outcomes)).
				Int("rejected", rejected).
				Msg("batch evaluated")
			if rejected > 0 {
				return exitError{code: exitRejected, err: fmt.Errorf("%d of %d scenarios rejected", rejected, len(outcomes))}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "Scenario file (YAML)")
	cmd.Flags().StringVar(&format, "format", batch.FormatText, "Output format (text, json or yaml)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
