// Package batch implements the batch command
package batch

import (
	"context"
	"fmt"

	"fjacquet/finhealth/cmd/root"
	"fjacquet/finhealth/internal/batch"
	"fjacquet/finhealth/internal/container"
	"fjacquet/finhealth/internal/logging"
	"fjacquet/finhealth/internal/report"

	"github.com/spf13/cobra"
)

var (
	inputDir   string
	workers    int
	withTrends bool
)

// Cmd represents the batch command
var Cmd = &cobra.Command{
	Use:   "batch",
	Short: "Score every household of a directory",
	Long: `Score every household of an input directory in parallel. Each
sub-directory holds one household: transactions.csv or transactions.xml,
optionally accounts.csv or accounts.yaml and profile.yaml. One report per
household and a summary are written to the output directory.

Example:
  finhealth batch -i users/ -o reports/ --workers 8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(cmd.Context(), root.GetContainer(), inputDir, root.SharedFlags.Output, root.SharedFlags.Format)
	},
}

func init() {
	Cmd.Flags().StringVarP(&inputDir, "input", "i", "", "Directory holding one sub-directory per household")
	Cmd.Flags().IntVarP(&workers, "workers", "w", 0, "Number of households scored in parallel (default from config)")
	Cmd.Flags().BoolVar(&withTrends, "with-trends", false, "Also write the trends report of every household")
	_ = Cmd.MarkFlagRequired("input")
}

func run(ctx context.Context, c *container.Container, input, output, format string) error {
	if c == nil {
		return fmt.Errorf("container not initialized")
	}
	if output == "" {
		return fmt.Errorf("an output directory is required (-o)")
	}
	if ctx == nil {
		ctx = context.Background()
	}

	f := c.OutputFormat()
	if format != "" {
		parsed, err := report.ParseFormat(format)
		if err != nil {
			return err
		}
		f = parsed
	}

	n := workers
	if n < 1 {
		n = c.GetConfig().Batch.Workers
	}

	runner := batch.NewRunner(c, c.GetReportGenerator(), batch.Options{
		Workers:    n,
		Format:     f,
		WithTrends: withTrends,
	}, c.GetLogger())

	summary, err := runner.Run(ctx, input, output)
	if err != nil {
		return fmt.Errorf("batch run failed: %w", err)
	}

	c.GetLogger().Info("Batch processing completed",
		logging.F("processed", summary.Processed),
		logging.F("failed", summary.Failed),
		logging.F("skipped", summary.Skipped))
	if summary.Failed > 0 {
		return fmt.Errorf("%d of %d households failed, see %s", summary.Failed, len(summary.Results), output)
	}
	return nil
}
