// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package dataset

import (
	"fmt"
	"io"

	"github.com/olekukonko/tablewriter/tw"

	"github.com/jordanamos/sas-cli/pkg/ux"
)

// Render writes the dataset as a table. Numeric columns are
// right-aligned, everything else left-aligned.
func (ds *Dataset) Render(w io.Writer) error {
	table := ux.NewTable(w)
	table.SetHeader(ds.Columns)

	aligns := make([]tw.Align, len(ds.Columns))
	for i := range ds.Columns {
		if ds.numericColumn(i) {
			aligns[i] = tw.AlignRight
		} else {
			aligns[i] = tw.AlignLeft
		}
	}
	table.SetColumnAlignment(aligns)

	for _, row := range ds.Rows {
		table.AppendRow(row)
	}
	if err := table.Render(); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "(%s rows)\n", ux.ConvertToStringWithThousandSeparator(uint64(len(ds.Rows))))
	return err
}
