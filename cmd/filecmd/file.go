// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package filecmd

import (
	"context"
	"fmt"
	"os"
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
		Use:   "file",
		Short: "Transfer files to and from the session host",
		Long: `Transfer files between the local machine and wherever the active
profile runs SAS. In ssh mode the transfer goes over SFTP on the
session connection; in stdio mode it is a local copy.`,
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}

	flags.AddProfileFlag(cmd.PersistentFlags(), &profileName)

	cmd.AddCommand(newUploadCmd())
	cmd.AddCommand(newDownloadCmd())

	return cmd
}

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

func newUploadCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "upload LOCAL REMOTE",
		Short:        "Copy a local file to the session host",
		Example:      `  sas file upload input.csv /data/input.csv --profile server`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			local, remote := args[0], args[1]
			return withSession(cmd.Context(), func(ctx context.Context, sess *sas.Session) error {
				f, err := os.Open(local)
				if err != nil {
					return err
				}
				defer f.Close()
				info, err := f.Stat()
				if err != nil {
					return err
				}

				bar := ux.TransferBar(info.Size(), fmt.Sprintf("Uploading %s", local))
				if err := sess.Upload(ctx, f, remote, bar); err != nil {
					return fmt.Errorf("upload failed: %w", err)
				}
				ux.Logger.GreenCheckmarkToUser("Uploaded %s to %s (%d bytes)", local, remote, info.Size())
				return nil
			})
		},
	}
}

func newDownloadCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "download REMOTE LOCAL",
		Short:        "Copy a file from the session host",
		Example:      `  sas file download /data/output.csv output.csv --profile server`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			remote, local := args[0], args[1]
			return withSession(cmd.Context(), func(ctx context.Context, sess *sas.Session) error {
				f, err := os.Create(local)
				if err != nil {
					return err
				}
				defer f.Close()

				size, err := sess.RemoteFileSize(ctx, remote)
				if err != nil {
					size = -1
				}
				bar := ux.TransferBar(size, fmt.Sprintf("Downloading %s", remote))
				n, err := sess.Download(ctx, remote, f, bar)
				if err != nil {
					return fmt.Errorf("download failed: %w", err)
				}
				ux.Logger.GreenCheckmarkToUser("Downloaded %s to %s (%d bytes)", remote, local, n)
				return nil
			})
		},
	}
}
