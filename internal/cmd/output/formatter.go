// Package output provides formatters for command output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"

	"github.com/mujaffa/commandcenter/internal/cmd/table"
)

// Format types for output.
type Format string

const (
	// FormatTable represents table output format.
	FormatTable Format = "table"
	// FormatJSON represents JSON output format.
	FormatJSON Format = "json"
	// FormatYAML represents YAML output format.
	FormatYAML Format = "yaml"
	// FormatWide represents wide table output format.
	FormatWide Format = "wide"
)

// Data represents data formatted for table output.
type Data table.Data

// Tabular is implemented by values that know how to lay themselves out as a
// table, such as build info or a list of probes.
type Tabular interface {
	TableData() table.Data
}

// Formatter interface for all output types.
type Formatter interface {
	Format(w io.Writer, data any) error
}

// NewFormatter creates appropriate formatter based on format.
func NewFormatter(format Format) Formatter {
	switch format {
	case FormatJSON:
		return &JSONFormatter{Indent: "  "}
	case FormatYAML:
		return &YAMLFormatter{}
	default:
		return &TableFormatter{Wide: format == FormatWide}
	}
}

// JSONFormatter outputs JSON format.
type JSONFormatter struct {
	Indent string
}

// Format implements the Formatter interface for JSON output.
func (f *JSONFormatter) Format(w io.Writer, data any) error {
	encoder := json.NewEncoder(w)
	if f.Indent != "" {
		encoder.SetIndent("", f.Indent)
	}
	return encoder.Encode(data)
}

// YAMLFormatter outputs YAML format.
type YAMLFormatter struct{}

// Format outputs data in YAML format.
func (f *YAMLFormatter) Format(w io.Writer, data any) error {
	out, err := yaml.MarshalWithOptions(data,
		yaml.Indent(2),
		yaml.IndentSequence(false),
	)
	if err != nil {
		return err
	}
	_, err = w.Write(out)
	return err
}

// TableFormatter renders Data and Tabular values with tablewriter. Anything
// else is printed as JSON.
type TableFormatter struct {
	Wide bool
}

// Format outputs data in table format.
func (f *TableFormatter) Format(w io.Writer, data any) error {
	switch v := data.(type) {
	case Data:
		return render(w, table.Data(v))
	case table.Data:
		return render(w, v)
	case Tabular:
		return render(w, v.TableData())
	default:
		return (&JSONFormatter{Indent: "  "}).Format(w, data)
	}
}

func render(w io.Writer, data table.Data) error {
	config := tablewriter.Config{}
	if align := alignments(data.ColumnAlignment); align != nil {
		config.Header.Alignment = tw.CellAlignment{PerColumn: align}
		config.Row.Alignment = tw.CellAlignment{PerColumn: align}
	}
	t := tablewriter.NewTable(w, tablewriter.WithConfig(config))

	// An all-empty header row is dropped.
	if hasHeaders(data.Headers) {
		t.Header(cells(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := t.Append(cells(row)...); err != nil {
			return err
		}
	}
	return t.Render()
}

// alignments translates column alignment to tablewriter's.
func alignments(columns []table.Align) []tw.Align {
	if len(columns) == 0 {
		return nil
	}
	out := make([]tw.Align, len(columns))
	for i, a := range columns {
		switch a {
		case table.AlignLeft:
			out[i] = tw.AlignLeft
		case table.AlignCenter:
			out[i] = tw.AlignCenter
		case table.AlignRight:
			out[i] = tw.AlignRight
		default:
			out[i] = tw.Skip
		}
	}
	return out
}

func cells(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}

func hasHeaders(headers []string) bool {
	for _, h := range headers {
		if h != "" {
			return true
		}
	}
	return false
}

// DetectFormat auto-detects format based on terminal and environment.
func DetectFormat(explicitFormat string) Format {
	if explicitFormat != "" {
		return Format(strings.ToLower(explicitFormat))
	}
	if isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return FormatTable
	}
	// Pipes and redirects get JSON.
	return FormatJSON
}

// ParseFormat converts string to Format with validation.
func ParseFormat(s string) (Format, error) {
	format := Format(strings.ToLower(s))
	switch format {
	case FormatTable, FormatJSON, FormatYAML, FormatWide, "":
		return format, nil
	default:
		return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml, wide", s)
	}
}
