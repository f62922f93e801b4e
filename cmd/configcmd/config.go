// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jordanamos/sas-cli/pkg/application"
)

var app *application.App

func NewCmd(injectedApp *application.App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage CLI settings and connection profiles",
		Long: `Manage CLI settings (~/.sas-cli/cli.json) and the connection
profiles that describe how to reach a SAS runtime
(~/.sas-cli/profiles.yaml).`,
		Run: func(cmd *cobra.Command, args []string) {
			err := cmd.Help()
			if err != nil {
				fmt.Println(err)
			}
		},
	}
	app = injectedApp

	cmd.AddCommand(newInitCmd())
	cmd.AddCommand(newGetCmd())
	cmd.AddCommand(newSetCmd())
	cmd.AddCommand(newListCmd())
	cmd.AddCommand(newProfilesCmd())

	return cmd
}
