package spreadsheet

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
)

// ErrEmptySheet is returned when the workbook has no data rows.
var ErrEmptySheet = errors.New("spreadsheet has no data rows")

// Row is a single data row keyed by lowercased header name. Number is the
// 1-based row number in the sheet, kept for failure reports.
type Row struct {
	Number int
	Values map[string]string
}

// Get returns the trimmed cell value under the given header (case
// insensitive), or "" when the column is missing.
func (r Row) Get(header string) string {
	return r.Values[strings.ToLower(header)]
}

// ReadRows opens an xlsx workbook from r and returns the data rows of its
// first sheet keyed by the header row. An unparseable workbook fails the
// whole read; short rows simply leave trailing columns empty.
func ReadRows(r io.Reader) ([]Row, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet: %w", err)
	}
	defer f.Close()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrEmptySheet
	}

	rows, err := f.GetRows(sheets[0])
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", sheets[0], err)
	}
	if len(rows) < 2 {
		return nil, ErrEmptySheet
	}

	headers := make([]string, len(rows[0]))
	for i, h := range rows[0] {
		headers[i] = strings.ToLower(strings.TrimSpace(h))
	}

	result := make([]Row, 0, len(rows)-1)
	for i, cells := range rows[1:] {
		values := make(map[string]string, len(headers))
		empty := true
		for j, header := range headers {
			if header == "" {
				continue
			}
			var v string
			if j < len(cells) {
				v = strings.TrimSpace(cells[j])
			}
			if v != "" {
				empty = false
			}
			values[header] = v
		}
		if empty {
			continue // skip fully blank rows
		}
		result = append(result, Row{Number: i + 2, Values: values})
	}

	if len(result) == 0 {
		return nil, ErrEmptySheet
	}
	return result, nil
}
