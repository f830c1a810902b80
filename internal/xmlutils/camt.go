// Package xmlutils reads bank-to-customer statements (ISO 20022 CAMT.053)
// with XPath expressions.
package xmlutils

import (
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"

	"gopkg.in/xmlpath.v2"
)

// Absolute paths of a CAMT.053 document
const (
	StatementPath = "//BkToCstmrStmt/Stmt"
	EntryPath     = "//Ntry"
)

// Credit/debit indicators
const (
	Credit = "CRDT"
	Debit  = "DBIT"
)

// EntryPaths holds XPath expressions evaluated relative to one Ntry element.
type EntryPaths struct {
	Amount              string
	CreditDebitInd      string
	BookingDate         string
	BookingDateTime     string
	ValueDate           string
	Remittance          string
	AdditionalTxInfo    string
	AdditionalEntryInfo string
	CreditorName        string
	DebtorName          string
}

// DefaultEntryPaths returns the standard CAMT.053 entry layout.
func DefaultEntryPaths() EntryPaths {
	return EntryPaths{
		Amount:              "Amt",
		CreditDebitInd:      "CdtDbtInd",
		BookingDate:         "BookgDt/Dt",
		BookingDateTime:     "BookgDt/DtTm",
		ValueDate:           "ValDt/Dt",
		Remittance:          "NtryDtls/TxDtls/RmtInf/Ustrd",
		AdditionalTxInfo:    "NtryDtls/TxDtls/AddtlTxInf",
		AdditionalEntryInfo: "AddtlNtryInf",
		CreditorName:        "NtryDtls/TxDtls/RltdPties/Cdtr/Nm",
		DebtorName:          "NtryDtls/TxDtls/RltdPties/Dbtr/Nm",
	}
}

// Entry is one statement entry with its fields still as text.
type Entry struct {
	Amount       string
	CreditDebit  string
	Date         string
	Description  string
	Counterparty string
}

// Parse reads an XML document.
func Parse(r io.Reader) (*xmlpath.Node, error) {
	root, err := xmlpath.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse XML: %w", err)
	}
	return root, nil
}

// LoadXMLFile loads an XML file and returns its root node.
func LoadXMLFile(xmlFilePath string) (*xmlpath.Node, error) {
	file, err := os.Open(xmlFilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open XML file: %w", err)
	}
	defer file.Close()

	return Parse(file)
}

// IsCAMT053 reports whether the document contains at least one statement.
func IsCAMT053(root *xmlpath.Node) bool {
	return xmlpath.MustCompile(StatementPath).Exists(root)
}

// ExtractFromXML returns the string value of every node matching xpath.
func ExtractFromXML(root *xmlpath.Node, xpath string) ([]string, error) {
	path, err := xmlpath.Compile(xpath)
	if err != nil {
		return nil, fmt.Errorf("failed to compile XPath %q: %w", xpath, err)
	}

	var values []string
	iter := path.Iter(root)
	for iter.Next() {
		values = append(values, iter.Node().String())
	}
	return values, nil
}

type compiledPaths struct {
	amount, cdtDbt, bookingDate, bookingDateTime, valueDate *xmlpath.Path
	remittance, addTxInfo, addEntryInfo, creditor, debtor   *xmlpath.Path
}

func compilePaths(p EntryPaths) (*compiledPaths, error) {
	var c compiledPaths
	targets := []struct {
		expr string
		dst  **xmlpath.Path
	}{
		{p.Amount, &c.amount},
		{p.CreditDebitInd, &c.cdtDbt},
		{p.BookingDate, &c.bookingDate},
		{p.BookingDateTime, &c.bookingDateTime},
		{p.ValueDate, &c.valueDate},
		{p.Remittance, &c.remittance},
		{p.AdditionalTxInfo, &c.addTxInfo},
		{p.AdditionalEntryInfo, &c.addEntryInfo},
		{p.CreditorName, &c.creditor},
		{p.DebtorName, &c.debtor},
	}
	for _, t := range targets {
		path, err := xmlpath.Compile(t.expr)
		if err != nil {
			return nil, fmt.Errorf("failed to compile XPath %q: %w", t.expr, err)
		}
		*t.dst = path
	}
	return &c, nil
}

// ExtractEntries reads every Ntry element of a statement. The date is the
// booking date, falling back to the value date. The description prefers the
// unstructured remittance text, then the additional transaction and entry
// information; the counterparty is the creditor of a debit and the debtor of
// a credit.
func ExtractEntries(root *xmlpath.Node, paths EntryPaths) ([]Entry, error) {
	c, err := compilePaths(paths)
	if err != nil {
		return nil, err
	}

	var entries []Entry
	iter := xmlpath.MustCompile(EntryPath).Iter(root)
	for iter.Next() {
		node := iter.Node()

		e := Entry{
			Amount:      value(c.amount, node),
			CreditDebit: strings.ToUpper(value(c.cdtDbt, node)),
			Date:        firstNonEmpty(value(c.bookingDate, node), dateOf(value(c.bookingDateTime, node)), value(c.valueDate, node)),
		}
		if e.CreditDebit == Debit {
			e.Counterparty = CleanText(value(c.creditor, node))
		} else {
			e.Counterparty = CleanText(value(c.debtor, node))
		}
		e.Description = CleanText(firstNonEmpty(
			value(c.remittance, node),
			value(c.addTxInfo, node),
			value(c.addEntryInfo, node),
			e.Counterparty,
		))
		entries = append(entries, e)
	}
	return entries, nil
}

func value(path *xmlpath.Path, node *xmlpath.Node) string {
	if s, ok := path.String(node); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func dateOf(dateTime string) string {
	if i := strings.IndexByte(dateTime, 'T'); i > 0 {
		return dateTime[:i]
	}
	return dateTime
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	ibanLike   = regexp.MustCompile(`\b[A-Z]{2}[0-9]{2}[A-Z0-9]{4}[0-9]{7}([A-Z0-9]?){0,16}\b`)
	noisePrefs = []string{
		"Remittance Info: ",
		"Remittance Information: ",
		"Additional Entry Info: ",
		"Additional Transaction Info: ",
		"Details: ",
	}
)

// CleanText collapses whitespace, strips bank boilerplate prefixes and masks
// IBANs in free-text statement fields.
func CleanText(text string) string {
	text = strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	for _, prefix := range noisePrefs {
		text = strings.TrimPrefix(text, prefix)
	}
	return ibanLike.ReplaceAllString(text, "IBAN")
}
