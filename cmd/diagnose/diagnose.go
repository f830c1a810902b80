// Package diagnose implements the diagnose command
package diagnose

import (
	"io"

	"fjacquet/finhealth/cmd/common"
	"fjacquet/finhealth/cmd/root"
	"fjacquet/finhealth/internal/container"
	"fjacquet/finhealth/internal/logging"

	"github.com/spf13/cobra"
)

var flags common.DatasetFlags

// Cmd represents the diagnose command
var Cmd = &cobra.Command{
	Use:   "diagnose",
	Short: "Score the financial health of one household",
	Long: `Score the financial health of one household from its transactions and
accounts tables. The report holds the ten category diagnostics, the overall
score and grade, detected gaps and risks, recommendations and a follow-up
questionnaire.

Example:
  finhealth diagnose -t transactions.csv -a accounts.csv -p profile.yaml -f yaml`,
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

	result := c.Diagnose(ds, profile)
	c.GetLogger().Info("Diagnosis ready",
		logging.F(logging.FieldScore, result.OverallScore),
		logging.F(logging.FieldGrade, result.Grade))

	return common.WriteResult(c, w, result, output, format)
}
