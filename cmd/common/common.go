// Package common contains shared functionality for command handlers
package common

import (
	"fmt"
	"io"

	"fjacquet/finhealth/internal/container"
	"fjacquet/finhealth/internal/logging"
	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/report"

	"github.com/spf13/cobra"
)

// DatasetFlags locate the input tables of a single-user command.
type DatasetFlags struct {
	Transactions string
	Accounts     string
	Profile      string
}

// AddDatasetFlags registers the -t, -a and -p flags on cmd.
func AddDatasetFlags(cmd *cobra.Command, f *DatasetFlags) {
	cmd.Flags().StringVarP(&f.Transactions, "transactions", "t", "", "Transactions table (.csv or CAMT.053 .xml)")
	cmd.Flags().StringVarP(&f.Accounts, "accounts", "a", "", "Accounts table (.csv or .yaml)")
	cmd.Flags().StringVarP(&f.Profile, "profile", "p", "", "Optional profile with goals and budgets (.yaml)")
	_ = cmd.MarkFlagRequired("transactions")
}

// LoadInputs imports the dataset and the optional profile named by f.
func LoadInputs(c *container.Container, f DatasetFlags) (models.Dataset, *models.UserProfile, error) {
	if c == nil {
		return models.Dataset{}, nil, fmt.Errorf("container not initialized")
	}

	ds, err := c.LoadDataset(f.Transactions, f.Accounts)
	if err != nil {
		return models.Dataset{}, nil, err
	}

	profile, err := c.LoadProfile(f.Profile)
	if err != nil {
		return models.Dataset{}, nil, err
	}

	c.GetLogger().Debug("Inputs loaded",
		logging.F(logging.FieldInputFile, f.Transactions),
		logging.F("transactions", len(ds.Transactions)),
		logging.F("accounts", len(ds.Accounts)))
	return ds, profile, nil
}

// WriteResult renders result to the output file, or to w when output is
// empty. An empty format selects the configured default.
func WriteResult(c *container.Container, w io.Writer, result any, output, format string) error {
	f := c.OutputFormat()
	if format != "" {
		parsed, err := report.ParseFormat(format)
		if err != nil {
			return err
		}
		f = parsed
	}

	if output == "" {
		return c.GetReportGenerator().Write(w, result, f)
	}
	if err := c.GetReportGenerator().WriteFile(output, result, f); err != nil {
		return err
	}
	c.GetLogger().Info("Report written", logging.F(logging.FieldOutputFile, output))
	return nil
}
