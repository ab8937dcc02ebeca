// Package spreadsheet reads tabular workbook uploads for bulk import.
// It resolves header names case-insensitively through per-column synonym
// lists, so exports from different office tools map onto the same fields.
package spreadsheet

import (
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// Row is a parsed data row keyed by canonical column name. Values are
// trimmed; columns missing from the sheet are absent from the map.
type Row struct {
	// Number is the 1-based row number in the sheet, for error reporting.
	Number int
	Values map[string]string
}

// Get returns the value for a canonical column, or "" when absent.
func (r Row) Get(column string) string {
	return r.Values[column]
}

// ColumnSpec describes one expected column: its canonical name, the
// accepted header spellings, and whether a sheet missing it is an error.
type ColumnSpec struct {
	Name     string
	Synonyms []string
	Required bool
}

// Read parses the first sheet of an xlsx workbook. The first row is the
// header; every following row becomes a Row keyed by the canonical
// column names in specs. Rows whose cells are all empty are skipped.
func Read(reader io.Reader, specs []ColumnSpec) ([]Row, error) {
	file, err := excelize.OpenReader(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer file.Close()

	sheets := file.GetSheetList()
	if len(sheets) == 0 {
		return nil, fmt.Errorf("workbook has no sheets")
	}

	rows, err := file.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("sheet %q is empty", sheets[0])
	}

	columns, err := resolveHeader(rows[0], specs)
	if err != nil {
		return nil, err
	}

	var parsed []Row
	for i, cells := range rows[1:] {
		row := Row{Number: i + 2, Values: make(map[string]string, len(columns))}
		empty := true
		for name, idx := range columns {
			if idx >= len(cells) {
				continue
			}
			value := strings.TrimSpace(cells[idx])
			if value != "" {
				empty = false
			}
			row.Values[name] = value
		}
		if empty {
			continue
		}
		parsed = append(parsed, row)
	}

	return parsed, nil
}

// resolveHeader maps canonical column names to cell indexes. Matching is
// case-insensitive and tolerant of surrounding whitespace.
func resolveHeader(header []string, specs []ColumnSpec) (map[string]int, error) {
	normalized := make([]string, len(header))
	for i, cell := range header {
		normalized[i] = strings.ToLower(strings.TrimSpace(cell))
	}

	columns := make(map[string]int, len(specs))
	var missing []string

	for _, spec := range specs {
		idx := -1
		for _, synonym := range spec.Synonyms {
			for i, cell := range normalized {
				if cell == strings.ToLower(synonym) {
					idx = i
					break
				}
			}
			if idx >= 0 {
				break
			}
		}
		if idx < 0 {
			if spec.Required {
				missing = append(missing, spec.Name)
			}
			continue
		}
		columns[spec.Name] = idx
	}

	if len(missing) > 0 {
		return nil, fmt.Errorf("missing required columns: %s", strings.Join(missing, ", "))
	}

	return columns, nil
}
