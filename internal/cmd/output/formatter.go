// Package output renders command results as tables, JSON or YAML.
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

	"github.com/hxeb/hxebclass/internal/cmd/table"
)

// Format names an output encoding.
type Format string

// Supported formats. Wide is a table with extra columns.
const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
	FormatWide  Format = "wide"
)

// IsTable reports whether the format renders a table.
func (f Format) IsTable() bool {
	return f == FormatTable || f == FormatWide
}

// Render writes data in format. Table formats render toTable(wide) instead
// of data; with no converter they fall back to JSON.
func Render(w io.Writer, format Format, data any, toTable func(wide bool) table.Data) error {
	switch {
	case format.IsTable() && toTable != nil:
		return writeTable(w, toTable(format == FormatWide))
	case format == FormatYAML:
		return writeYAML(w, data)
	default:
		return writeJSON(w, data)
	}
}

func writeJSON(w io.Writer, data any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func writeYAML(w io.Writer, data any) error {
	b, err := yaml.MarshalWithOptions(data, yaml.Indent(2), yaml.IndentSequence(false))
	if err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	_, err = w.Write(b)
	return err
}

var twAlign = map[table.Align]tw.Align{
	table.AlignLeft:   tw.AlignLeft,
	table.AlignCenter: tw.AlignCenter,
	table.AlignRight:  tw.AlignRight,
}

func writeTable(w io.Writer, data table.Data) error {
	var cfg tablewriter.Config
	if n := len(data.ColumnAlignment); n > 0 {
		cols := make([]tw.Align, n)
		for i, a := range data.ColumnAlignment {
			if v, ok := twAlign[a]; ok {
				cols[i] = v
			} else {
				cols[i] = tw.Skip
			}
		}
		cfg.Header.Alignment = tw.CellAlignment{PerColumn: cols}
		cfg.Row.Alignment = tw.CellAlignment{PerColumn: cols}
	}

	tbl := tablewriter.NewTable(w, tablewriter.WithConfig(cfg))
	if len(data.Headers) > 0 {
		tbl.Header(cells(data.Headers)...)
	}
	for _, row := range data.Rows {
		if err := tbl.Append(cells(row)...); err != nil {
			return err
		}
	}
	return tbl.Render()
}

func cells(row []string) []any {
	out := make([]any, len(row))
	for i, c := range row {
		out[i] = c
	}
	return out
}

// DetectFormat returns explicit when set, a table on a terminal and JSON
// for pipes and redirects.
func DetectFormat(explicit string) Format {
	if explicit != "" {
		return Format(strings.ToLower(explicit))
	}
	fd := os.Stdout.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return FormatTable
	}
	return FormatJSON
}

// ParseFormat validates s. The empty string is accepted and means auto.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(s))
	switch f {
	case "", FormatTable, FormatJSON, FormatYAML, FormatWide:
		return f, nil
	}
	return "", fmt.Errorf("invalid format %q: must be one of: table, json, yaml, wide", s)
}
