// Package importer loads the transactions and accounts tables from files.
// Transactions come from CSV or CAMT.053 XML statements, accounts from CSV or
// YAML. Required columns are checked before any row is decoded.
package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"fjacquet/finhealth/internal/fileutils"
	"fjacquet/finhealth/internal/logging"
	"fjacquet/finhealth/internal/models"
	"fjacquet/finhealth/internal/normalizer"
	"fjacquet/finhealth/internal/parsererror"
	"fjacquet/finhealth/internal/xmlutils"

	"github.com/gocarina/gocsv"
	"gopkg.in/xmlpath.v2"
	"gopkg.in/yaml.v3"
)

// Table names used in errors and logs
const (
	TableTransactions = "transactions"
	TableAccounts     = "accounts"
)

// Importer reads input tables. It is safe for concurrent use.
type Importer struct {
	delimiter rune
	logger    logging.Logger
}

// New creates an Importer reading CSV files with the given delimiter. A zero
// delimiter means a comma.
func New(delimiter rune, logger logging.Logger) *Importer {
	if delimiter == 0 {
		delimiter = ','
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Importer{delimiter: delimiter, logger: logger}
}

// LoadTransactions reads a transactions table from a .csv or .xml file.
func (i *Importer) LoadTransactions(path string) ([]models.RawTransaction, error) {
	log := i.logger.WithFields(logging.F(logging.FieldFile, path), logging.F(logging.FieldTable, TableTransactions))

	var (
		rows []models.RawTransaction
		err  error
	)
	switch fileutils.Extension(path) {
	case "csv":
		rows, err = readCSVFile[models.RawTransaction](path, TableTransactions, normalizer.TransactionColumns, i.delimiter)
	case "xml":
		rows, err = i.readCAMTFile(path)
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: ".csv or .xml",
			Msg:            "unsupported transactions file extension",
		}
	}
	if err != nil {
		log.WithError(err).Error("Failed to load table")
		return nil, err
	}

	log.Info("Loaded table", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

// LoadAccounts reads an accounts table from a .csv, .yaml or .yml file.
func (i *Importer) LoadAccounts(path string) ([]models.RawAccount, error) {
	log := i.logger.WithFields(logging.F(logging.FieldFile, path), logging.F(logging.FieldTable, TableAccounts))

	var (
		rows []models.RawAccount
		err  error
	)
	switch fileutils.Extension(path) {
	case "csv":
		rows, err = readCSVFile[models.RawAccount](path, TableAccounts, normalizer.AccountColumns, i.delimiter)
	case "yaml", "yml":
		rows, err = readAccountsYAML(path)
	default:
		return nil, &parsererror.InvalidFormatError{
			FilePath:       path,
			ExpectedFormat: ".csv, .yaml or .yml",
			Msg:            "unsupported accounts file extension",
		}
	}
	if err != nil {
		log.WithError(err).Error("Failed to load table")
		return nil, err
	}

	log.Info("Loaded table", logging.F(logging.FieldCount, len(rows)))
	return rows, nil
}

func readCSVFile[T any](path, table string, required []string, delimiter rune) ([]T, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("error opening %s file: %w", table, err)
	}
	defer file.Close()

	return ReadCSV[T](file, table, required, delimiter)
}

// ReadCSV decodes a CSV table into rows of T, matching columns by their csv
// tags. Header names are trimmed and lower-cased first, and the required
// columns must all be present.
func ReadCSV[T any](r io.Reader, table string, required []string, delimiter rune) ([]T, error) {
	reader := csv.NewReader(r)
	reader.Comma = delimiter
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, &parsererror.ParseError{Parser: "csv", Field: table, Value: "", Err: err}
	}
	if len(records) == 0 {
		return nil, &parsererror.MissingColumnsError{Table: table, Missing: required}
	}

	header := records[0]
	for j, name := range header {
		header[j] = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
	}
	if err := normalizer.ValidateColumns(table, header, required); err != nil {
		return nil, err
	}

	rows := []T{}
	if len(records) == 1 {
		return rows, nil
	}
	if err := gocsv.UnmarshalCSV(&recordReader{records: records}, &rows); err != nil {
		return nil, &parsererror.ParseError{Parser: "csv", Field: table, Value: "", Err: err}
	}
	return rows, nil
}

// recordReader serves already-read records to gocsv.
type recordReader struct {
	records [][]string
	pos     int
}

func (r *recordReader) Read() ([]string, error) {
	if r.pos >= len(r.records) {
		return nil, io.EOF
	}
	rec := r.records[r.pos]
	r.pos++
	return rec, nil
}

func (r *recordReader) ReadAll() ([][]string, error) {
	rest := r.records[r.pos:]
	r.pos = len(r.records)
	return rest, nil
}

var _ gocsv.CSVReader = (*recordReader)(nil)

func (i *Importer) readCAMTFile(path string) ([]models.RawTransaction, error) {
	root, err := xmlutils.LoadXMLFile(path)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{FilePath: path, ExpectedFormat: "CAMT.053 XML", Msg: err.Error()}
	}
	return fromStatement(root, path)
}

// ReadCAMT converts the entries of a CAMT.053 statement into raw
// transactions. Credits become income and debits expenses.
func ReadCAMT(r io.Reader, name string) ([]models.RawTransaction, error) {
	root, err := xmlutils.Parse(r)
	if err != nil {
		return nil, &parsererror.InvalidFormatError{FilePath: name, ExpectedFormat: "CAMT.053 XML", Msg: err.Error()}
	}
	return fromStatement(root, name)
}

func fromStatement(root *xmlpath.Node, name string) ([]models.RawTransaction, error) {
	if !xmlutils.IsCAMT053(root) {
		return nil, &parsererror.InvalidFormatError{FilePath: name, ExpectedFormat: "CAMT.053 XML", Msg: "no statement found"}
	}

	entries, err := xmlutils.ExtractEntries(root, xmlutils.DefaultEntryPaths())
	if err != nil {
		return nil, err
	}

	rows := make([]models.RawTransaction, 0, len(entries))
	for _, e := range entries {
		typ := models.TypeIncome
		if e.CreditDebit == xmlutils.Debit {
			typ = models.TypeExpense
		}
		rows = append(rows, models.RawTransaction{
			Date:        e.Date,
			Amount:      e.Amount,
			Type:        typ,
			Description: e.Description,
		})
	}
	return rows, nil
}

// accountsDocument accepts either a bare list or an "accounts" key.
type accountsDocument struct {
	Accounts []models.RawAccount `yaml:"accounts"`
}

func readAccountsYAML(path string) ([]models.RawAccount, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("error opening accounts file: %w", err)
	}
	return ReadAccountsYAML(data)
}

// ReadAccountsYAML decodes an accounts table written as YAML, either a list of
// accounts or a mapping with an "accounts" list.
func ReadAccountsYAML(data []byte) ([]models.RawAccount, error) {
	var list []models.RawAccount
	listErr := yaml.Unmarshal(data, &list)
	if listErr != nil {
		var doc accountsDocument
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, &parsererror.ParseError{Parser: "yaml", Field: TableAccounts, Err: errors.Join(listErr, err)}
		}
		list = doc.Accounts
	}

	var missing []string
	for idx, a := range list {
		if strings.TrimSpace(a.Balance) == "" || strings.TrimSpace(a.Type) == "" {
			missing = append(missing, fmt.Sprintf("row %d", idx+1))
		}
	}
	if len(missing) > 0 {
		return nil, &parsererror.MissingColumnsError{Table: TableAccounts, Missing: missing}
	}
	if list == nil {
		list = []models.RawAccount{}
	}
	return list, nil
}
