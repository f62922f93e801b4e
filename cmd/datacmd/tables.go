// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package datacmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jordanamos/sas-cli/pkg/sas"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

func newTablesCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "tables LIBREF",
		Short:        "List the datasets of a library",
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(ctx context.Context, sess *sas.Session) error {
				ds, err := sess.ListTables(ctx, args[0])
				if err != nil {
					return err
				}
				return ds.Render(ux.Logger.Writer())
			})
		},
	}
}
