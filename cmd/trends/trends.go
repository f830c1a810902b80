// Package trends implements the trends command
package trends

import (
	"io"

	"fjacquet/finhealth/cmd/common"
	"fjacquet/finhealth/cmd/root"
	"fjacquet/finhealth/internal/container"

	"github.com/spf13/cobra"
)

var flags common.DatasetFlags

// Cmd represents the trends command
var Cmd = &cobra.Command{
	Use:   "trends",
	Short: "Report spending trends and savings opportunities",
	Long: `Report spending trends and savings opportunities: monthly comparison,
next-month prediction, recurring charges, unusual expenses, budget status,
savings goal projections and category optimization hints.

Example:
  finhealth trends -t transactions.csv -a accounts.csv -p profile.yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return run(root.GetContainer(), flags, cmd.OutOrStdout(), root.SharedFlags.Output, root.SharedFlags.Format)
	},
}

func init() {
	common.AddDatasetFlags(Cmd, &flags)
}

func run(c *container.Container, f common.DatasetFlags, w io.Writer, output, format string) error {
	ds, profile, err := common.LoadInputs(c, f)
	if err != nil {
		return err
	}
	return common.WriteResult(c, w, c.Analyze(ds, profile), output, format)
}
