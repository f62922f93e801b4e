// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package datacmd

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/jordanamos/sas-cli/pkg/sas"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

func newLibsCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "libs",
		Short:        "List the libraries assigned in the session",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withSession(cmd.Context(), func(ctx context.Context, sess *sas.Session) error {
				ds, err := sess.ListLibraries(ctx)
				if err != nil {
					return err
				}
				return ds.Render(ux.Logger.Writer())
			})
		},
	}
}
