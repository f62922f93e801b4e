// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/jordanamos/sas-cli/pkg/ux"
)

func newListCmd() *cobra.Command {
	return &cobra.Command{
		Use:          "list",
		Short:        "Show all effective settings",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, _ []string) error {
			settings := app.Conf.AllSettings()
			if len(settings) == 0 {
				ux.Logger.PrintToUser("No settings configured. Use 'sas config set' to add one.")
				return nil
			}

			keys := make([]string, 0, len(settings))
			for key := range settings {
				keys = append(keys, key)
			}
			sort.Strings(keys)

			table := ux.NewTable(ux.Logger.Writer())
			table.SetHeader([]string{"Setting", "Value"})
			for _, key := range keys {
				table.AppendRow([]string{key, fmt.Sprintf("%v", settings[key])})
			}
			return table.Render()
		},
	}
}
