package shell

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
)

// Formats lists the supported result output formats, in display order.
func Formats() []string {
	return []string{"table", "csv", "json", "markdown"}
}

func validFormat(format string) bool {
	for _, f := range Formats() {
		if f == format {
			return true
		}
	}
	return format == "md"
}

// renderRows drains a result set and renders it in the given format.
func renderRows(w io.Writer, rows *sql.Rows, format string) error {
	cols, err := rows.Columns()
	if err != nil {
		return err
	}

	var records [][]string
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		record := make([]string, len(cols))
		for i, v := range values {
			record[i] = formatValue(v)
		}
		records = append(records, record)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	return renderRecords(w, cols, records, format)
}

func renderRecords(w io.Writer, cols []string, records [][]string, format string) error {
	switch format {
	case "json":
		return renderJSON(w, cols, records)
	case "csv":
		return renderCSV(w, cols, records)
	case "md", "markdown":
		return renderMarkdown(w, cols, records)
	default:
		return renderTable(w, cols, records)
	}
}

func renderTable(w io.Writer, cols []string, records [][]string) error {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(cols))
	for i, col := range cols {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, record := range records {
		row := make(table.Row, len(record))
		for i, v := range record {
			row[i] = v
		}
		t.AppendRow(row)
	}

	t.Render()
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(records))
	return nil
}

func renderJSON(w io.Writer, cols []string, records [][]string) error {
	out := make([]map[string]string, 0, len(records))
	for _, record := range records {
		row := make(map[string]string, len(cols))
		for i, col := range cols {
			row[col] = record[i]
		}
		out = append(out, row)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}

func renderCSV(w io.Writer, cols []string, records [][]string) error {
	writeLine := func(fields []string) {
		escaped := make([]string, len(fields))
		for i, f := range fields {
			escaped[i] = escapeCSV(f)
		}
		_, _ = fmt.Fprintln(w, strings.Join(escaped, ","))
	}
	writeLine(cols)
	for _, record := range records {
		writeLine(record)
	}
	return nil
}

func renderMarkdown(w io.Writer, cols []string, records [][]string) error {
	if len(records) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(cols, " | "))
	seps := make([]string, len(cols))
	for i := range seps {
		seps[i] = "---"
	}
	_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(seps, " | "))
	for _, record := range records {
		_, _ = fmt.Fprintf(w, "| %s |\n", strings.Join(record, " | "))
	}
	return nil
}

func formatValue(v any) string {
	if v == nil {
		return "NULL"
	}
	if b, ok := v.([]byte); ok {
		return string(b)
	}
	return fmt.Sprintf("%v", v)
}

func escapeCSV(s string) string {
	if strings.ContainsAny(s, ",\"\n") {
		return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
	}
	return s
}
