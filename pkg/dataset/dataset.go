// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

// Package dataset holds tabular results fetched from a SAS session.
// Data crosses the session boundary as CSV (proc export), is decoded
// here, and rendered back to the terminal as a table.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Dataset is an in-memory table: a header row plus string cells
type Dataset struct {
	Columns []string
	Rows    [][]string
}

// FromCSV decodes a proc export CSV stream. The first record is the
// header. Ragged records are an error, SAS never produces them.
func FromCSV(r io.Reader) (*Dataset, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty CSV stream")
		}
		return nil, err
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	ds := &Dataset{Columns: header}
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		if len(record) != len(header) {
			return nil, fmt.Errorf("row %d has %d fields, expected %d", len(ds.Rows)+1, len(record), len(header))
		}
		ds.Rows = append(ds.Rows, record)
	}
	return ds, nil
}

// NumRows returns the number of data rows
func (ds *Dataset) NumRows() int {
	return len(ds.Rows)
}

// NumColumns returns the number of columns
func (ds *Dataset) NumColumns() int {
	return len(ds.Columns)
}

// Column returns the values of the named column
func (ds *Dataset) Column(name string) ([]string, error) {
	idx := -1
	for i, c := range ds.Columns {
		if strings.EqualFold(c, name) {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, fmt.Errorf("no column %q", name)
	}
	values := make([]string, len(ds.Rows))
	for i, row := range ds.Rows {
		values[i] = row[idx]
	}
	return values, nil
}

// Head returns a copy limited to the first n rows
func (ds *Dataset) Head(n int) *Dataset {
	if n >= len(ds.Rows) {
		return ds
	}
	return &Dataset{Columns: ds.Columns, Rows: ds.Rows[:n]}
}

// WriteCSV encodes the dataset back to CSV
func (ds *Dataset) WriteCSV(w io.Writer) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(ds.Columns); err != nil {
		return err
	}
	for _, row := range ds.Rows {
		if err := writer.Write(row); err != nil {
			return err
		}
	}
	writer.Flush()
	return writer.Error()
}

// numericColumn reports whether every non-empty cell of column idx
// parses as a number. Used for right-alignment when rendering.
func (ds *Dataset) numericColumn(idx int) bool {
	seen := false
	for _, row := range ds.Rows {
		cell := strings.TrimSpace(row[idx])
		if cell == "" || cell == "." {
			// SAS missing value
			continue
		}
		if _, err := strconv.ParseFloat(cell, 64); err != nil {
			return false
		}
		seen = true
	}
	return seen
}
