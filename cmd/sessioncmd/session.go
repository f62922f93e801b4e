// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package sessioncmd

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
		Use:   "session",
		Short: "Test the SAS connection and show runtime details",
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}

	flags.AddProfileFlag(cmd.PersistentFlags(), &profileName)

	cmd.AddCommand(newTestCmd())
	cmd.AddCommand(newInfoCmd())

	return cmd
}

func openSession(ctx context.Context) (*sas.Session, func(), error) {
	prof, err := app.LoadProfile(profileName)
	if err != nil {
		return nil, nil, err
	}

	tracker := ux.NewStepTracker(ux.Logger, 30*time.Second)
	tracker.Start(fmt.Sprintf("Connecting to SAS (profile %q)", prof.Name))
	stopWarn := tracker.Watch()
	sess, err := sas.NewSession(ctx, prof, app.Log)
	stopWarn()
	if err != nil {
		tracker.Failed(err.Error())
		return nil, nil, err
	}
	tracker.Complete(sess.Info().Version)

	cleanup := func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), constants.SessionCloseTimeout)
		defer cancel()
		if err := sess.Close(closeCtx); err != nil {
			app.Log.Warnf("failed to close session cleanly: %v", err)
		}
	}
	return sess, cleanup, nil
}

func newTestCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "Open a session, verify it responds, and close it",
		Long: `Test opens a session with the active profile, submits a trivial
program, and reports whether the runtime responded. Use it to verify
a new profile before running real work.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, cleanup, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			res, err := sess.Submit(cmd.Context(), `data _null_; x = 1; run;`)
			if err != nil {
				return err
			}
			if res.Failed() {
				return fmt.Errorf("test submission failed with %d error(s)", res.Errors)
			}
			ux.Logger.GreenCheckmarkToUser("SAS connection established (%s)", sess.Info().Version)
			return nil
		},
	}
}

func newInfoCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "info",
		Short:        "Show details about the SAS runtime",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, cleanup, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer cleanup()

			info := sess.Info()
			ux.Logger.PrintToUser("SAS version:  %s", info.Version)
			ux.Logger.PrintToUser("Platform:     %s", info.Platform)
			ux.Logger.PrintToUser("Hostname:     %s", info.Hostname)
			ux.Logger.PrintToUser("Encoding:     %s", info.Encoding)
			ux.Logger.PrintToUser("WORK path:    %s", info.WorkPath)
			return nil
		},
	}
}
