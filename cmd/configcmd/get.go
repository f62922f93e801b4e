// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jordanamos/sas-cli/pkg/ux"
)

func newGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get KEY",
		Short: "Show an effective setting value",
		Long: `Get shows the effective value of a setting after flags, environment
variables (SAS_CLI_*), and the settings file have been merged.

Known keys:
  profile   - name of the profile used when -p/--profile is not given
  strict    - treat WARNING lines as failures (true/false)
  keep-log  - always save run logs under ~/.sas-cli/results (true/false)
  color     - colorize the streamed SAS log (true/false)`,
		Example:      `  sas config get profile`,
		Args:         cobra.ExactArgs(1),
		SilenceUsage: true,
		RunE: func(_ *cobra.Command, args []string) error {
			key := args[0]
			if err := validateSettingKey(key); err != nil {
				return err
			}
			if !app.Conf.ConfigValueIsSet(key) {
				return fmt.Errorf("%q is not set", key)
			}
			ux.Logger.PrintToUser("%s = %v", key, app.Conf.GetConfigStringValue(key))
			return nil
		},
	}
}
