// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

type settingKind int

const (
	stringSetting settingKind = iota
	boolSetting
	intSetting
)

// settingKeys maps each known key to the type of value it takes
var settingKeys = map[string]settingKind{
	constants.ConfigProfileKey: stringSetting,
	constants.ConfigStrictKey:  boolSetting,
	constants.ConfigKeepLogKey: boolSetting,
	constants.ConfigColorKey:   boolSetting,
	constants.ConfigJobsKey:    intSetting,
}

func validateSettingKey(key string) error {
	if _, ok := settingKeys[key]; !ok {
		return fmt.Errorf("unknown setting %q (known keys: profile, strict, keep-log, color, jobs)", key)
	}
	return nil
}

// parseSettingValue converts raw into the typed value key expects
func parseSettingValue(key, raw string) (interface{}, error) {
	switch settingKeys[key] {
	case boolSetting:
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, fmt.Errorf("%q expects true or false, got %q", key, raw)
		}
		return b, nil
	case intSetting:
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("%q expects a positive integer, got %q", key, raw)
		}
		return n, nil
	default:
		return raw, nil
	}
}

func newSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set KEY VALUE",
		Short: "Set a setting value",
		Long: `Set writes a setting to the settings file (~/.sas-cli/cli.json).

Known keys:
  profile   - name of the profile used when -p/--profile is not given
  strict    - treat WARNING lines as failures (true/false)
  keep-log  - always save run logs under ~/.sas-cli/results (true/false)
  color     - colorize the streamed SAS log (true/false)
  jobs      - default --jobs for run (positive integer)`,
		Example: `  sas config set profile server
  sas config set strict true`,
		Args:         cobra.ExactArgs(2),
		SilenceUsage: true,
		RunE:         runSet,
	}
}

func runSet(_ *cobra.Command, args []string) error {
	key, raw := args[0], args[1]
	if err := validateSettingKey(key); err != nil {
		return err
	}

	value, err := parseSettingValue(key, raw)
	if err != nil {
		return err
	}
	if key == constants.ConfigProfileKey {
		// fail early on a profile that does not exist
		if _, err := app.LoadProfile(raw); err != nil {
			return err
		}
	}

	if err := app.Conf.SetConfigValue(key, value); err != nil {
		return fmt.Errorf("failed to save setting: %w", err)
	}
	ux.Logger.GreenCheckmarkToUser("Set %s = %v", key, value)
	return nil
}
