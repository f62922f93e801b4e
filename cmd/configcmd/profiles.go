// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jordanamos/sas-cli/pkg/profile"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

func newProfilesCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "profiles",
		Short:        "List connection profiles",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			profiles, err := app.LoadProfiles()
			if err != nil {
				return err
			}

			names := profiles.Names()
			sort.Strings(names)

			table := ux.NewTable(ux.Logger.Writer())
			table.SetHeader([]string{"Name", "Mode", "Target", "Default"})
			for _, name := range names {
				prof := profiles.Profiles[name]
				target := prof.SASPath
				if prof.Mode == profile.ModeSSH {
					target = fmt.Sprintf("%s@%s:%d", prof.User, prof.Host, prof.SSHPort())
				}
				isDefault := ""
				if name == profiles.Default {
					isDefault = "*"
				}
				table.AppendRow([]string{name, string(prof.Mode), target, isDefault})
			}
			return table.Render()
		},
	}
}
