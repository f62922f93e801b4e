// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"io"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// Table wraps tablewriter with the small surface the CLI needs
type Table struct {
	*tablewriter.Table
}

// NewTable creates a table writing to w
func NewTable(w io.Writer) *Table {
	return &Table{
		Table: tablewriter.NewTable(w),
	}
}

// SetHeader sets the header row
func (t *Table) SetHeader(headers []string) {
	anyHeaders := make([]any, len(headers))
	for i, h := range headers {
		anyHeaders[i] = h
	}
	t.Table.Header(anyHeaders...)
}

// SetColumnAlignment sets per-column alignment for data rows
func (t *Table) SetColumnAlignment(aligns []tw.Align) {
	t.Table.Configure(func(config *tablewriter.Config) {
		config.Row.Alignment.PerColumn = aligns
	})
}

// AppendRow adds a data row
func (t *Table) AppendRow(row []string) {
	_ = t.Table.Append(row)
}
