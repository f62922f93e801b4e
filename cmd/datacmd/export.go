// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package datacmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/jordanamos/sas-cli/pkg/sas"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

func newExportCmd() *cobra.Command {
	var outFile string
	cmd := &cobra.Command{
		Use:   "export LIBREF.DATASET",
		Short: "Export a dataset as CSV",
		Long: `Export materializes a dataset as CSV on the session side and
transfers it back, to stdout or to --output.`,
		Example: `  sas data export sashelp.class
  sas data export work.report -o report.csv`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd.Context(), func(ctx context.Context, sess *sas.Session) error {
				var dst io.Writer = os.Stdout
				var progress func(int64) io.Writer
				if outFile != "" {
					f, err := os.Create(outFile)
					if err != nil {
						return err
					}
					defer f.Close()
					dst = f
					progress = func(total int64) io.Writer {
						return ux.TransferBar(total, fmt.Sprintf("Exporting %s", args[0]))
					}
				}
				n, err := sess.Export(ctx, args[0], dst, progress)
				if err != nil {
					return err
				}
				if outFile != "" {
					ux.Logger.GreenCheckmarkToUser("Exported %s to %s (%d bytes)", args[0], outFile, n)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVarP(&outFile, "output", "o", "", "write CSV to this file instead of stdout")
	return cmd
}
