// Package report renders diagnostic and analytics results as JSON or YAML.
package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"fjacquet/finhealth/internal/fileutils"
	"fjacquet/finhealth/internal/logging"

	"gopkg.in/yaml.v3"
)

// Format is an output encoding.
type Format string

// Supported output formats
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat maps a user-supplied format name to a Format. "yml" is accepted
// as an alias of yaml.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported report format: %s", name)
	}
}

// Extension returns the file extension used for the format, without the dot.
func (f Format) Extension() string {
	return string(f)
}

// Generator renders results in the requested format.
type Generator struct {
	logger logging.Logger
}

// NewGenerator creates a Generator.
func NewGenerator(logger logging.Logger) *Generator {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Generator{logger: logger.WithField(logging.FieldComponent, "report")}
}

// Render encodes v. YAML output carries the same keys, in the same order, as
// the JSON encoding.
func (g *Generator) Render(v any, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return g.renderJSON(v)
	case FormatYAML:
		return g.renderYAML(v)
	default:
		return nil, fmt.Errorf("unsupported report format: %s", format)
	}
}

func (g *Generator) renderJSON(v any) ([]byte, error) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal JSON report")
		return nil, fmt.Errorf("failed to marshal JSON report: %w", err)
	}
	return append(out, '\n'), nil
}

func (g *Generator) renderYAML(v any) ([]byte, error) {
	data, err := json.Marshal(v)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}

	// JSON is a subset of YAML: decoding it into a node keeps key order.
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to convert report to YAML: %w", err)
	}
	blockStyle(&doc)

	out, err := yaml.Marshal(&doc)
	if err != nil {
		g.logger.WithError(err).Error("Failed to marshal YAML report")
		return nil, fmt.Errorf("failed to marshal YAML report: %w", err)
	}
	return out, nil
}

// blockStyle drops the flow and quoting styles inherited from JSON. The
// encoder re-quotes strings that would otherwise change type.
func blockStyle(n *yaml.Node) {
	n.Style = 0
	for _, c := range n.Content {
		blockStyle(c)
	}
}

// Write renders v to w.
func (g *Generator) Write(w io.Writer, v any, format Format) error {
	out, err := g.Render(v, format)
	if err != nil {
		return err
	}
	if _, err := w.Write(out); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// WriteFile renders v to path, creating parent directories as needed.
func (g *Generator) WriteFile(path string, v any, format Format) error {
	out, err := g.Render(v, format)
	if err != nil {
		return err
	}
	if err := fileutils.WriteFile(path, out, 0644); err != nil {
		return err
	}
	g.logger.Debug("Report written",
		logging.F(logging.FieldOutputFile, path),
		logging.F(logging.FieldFormat, string(format)))
	return nil
}
