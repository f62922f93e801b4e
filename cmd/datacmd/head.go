// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package datacmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/sas"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

func newHeadCmd() *cobra.Command {
	var numRows int
	cmd := &cobra.Command{
		Use:   "head LIBREF.DATASET",
		Short: "Show the first rows of a dataset",
		Example: `  sas data head sashelp.class
  sas data head work.report -n 50`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(ctx context.Context, sess *sas.Session) error {
				ds, err := sess.Head(ctx, args[0], numRows)
				if err != nil {
					return err
				}
				return ds.Render(ux.Logger.Writer())
			})
		},
	}
	cmd.Flags().IntVarP(&numRows, "rows", "n", constants.DefaultHeadRows, "number of rows to show")
	return cmd
}
