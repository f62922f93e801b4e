// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package datacmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jordanamos/sas-cli/cmd/flags"
	"github.com/jordanamos/sas-cli/pkg/application"
	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/sas"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

var (
	app *application.App

	profileName string
)

func NewCmd(injectedApp *application.App) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "data",
		Short: "Inspect and export SAS datasets",
		Long: `Inspect the libraries and datasets visible to a session and pull
data back as tables or CSV.

Datasets are referenced as LIBREF.DATASET, e.g. sashelp.class.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}

	flags.AddProfileFlag(cmd.PersistentFlags(), &profileName)

	cmd.AddCommand(newLibsCmd())
	cmd.AddCommand(newTablesCmd())
	cmd.AddCommand(newHeadCmd())
	cmd.AddCommand(newDescribeCmd())
	cmd.AddCommand(newExportCmd())

	return cmd
}

// withSession opens a session for the active profile, runs fn, and
// closes the session
func withSession(ctx context.Context, fn func(context.Context, *sas.Session) error) error {
	prof, err := app.LoadProfile(profileName)
	if err != nil {
		return err
	}

	tracker := ux.NewStepTracker(ux.Logger, 30*time.Second)
	tracker.Start(fmt.Sprintf("Connecting to SAS (profile %q)", prof.Name))
	stopWarn := tracker.Watch()
	sess, err := sas.NewSession(ctx, prof, app.Log)
	stopWarn()
	if err != nil {
		tracker.Failed(err.Error())
		return err
	}
	tracker.Complete(sess.Info().Version)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), constants.SessionCloseTimeout)
		defer cancel()
		if err := sess.Close(closeCtx); err != nil {
			app.Log.Warnf("failed to close session cleanly: %v", err)
		}
	}()

	return fn(ctx, sess)
}
