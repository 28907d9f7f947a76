// Package sheet extracts the ordered label column from an uploaded
// spreadsheet. Both the modern .xlsx format (excelize) and the legacy
// binary .xls format are accepted; in both cases the first row is a
// header and the labels are read from the first column of the rows
// below it, top to bottom.
package sheet

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
)

// ErrUnreadable is returned when the byte stream is not a valid
// spreadsheet of a supported variant.
var ErrUnreadable = errors.New("sheet: unreadable spreadsheet")

// ErrNoColumns is returned when the spreadsheet has no data columns.
var ErrNoColumns = errors.New("sheet: spreadsheet must have at least one column")

// Supported reports whether filename carries an accepted spreadsheet
// extension (case-insensitive).
func Supported(filename string) bool {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx", ".xls":
		return true
	}
	return false
}

// ReadLabels parses the spreadsheet and returns the first column of
// every data row in order. Missing or empty cells yield empty strings;
// a blank cell is never an error. The format is chosen from the
// filename extension.
func ReadLabels(rs io.ReadSeeker, filename string) ([]string, error) {
	var rows [][]string
	var err error

	switch strings.ToLower(filepath.Ext(filename)) {
	case ".xlsx":
		rows, err = readXLSX(rs)
	case ".xls":
		rows, err = readXLS(rs)
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrUnreadable, filepath.Ext(filename))
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnreadable, err)
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	if cols == 0 {
		return nil, ErrNoColumns
	}

	// First row is a header, matching how the label sheet template is
	// laid out. Labels start on row two.
	labels := make([]string, 0, len(rows)-1)
	for _, row := range rows[1:] {
		if len(row) == 0 {
			labels = append(labels, "")
			continue
		}
		labels = append(labels, row[0])
	}
	return labels, nil
}
