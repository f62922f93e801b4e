// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

// Package commands shells out to the sas binary the way a user would.
package commands

import (
	"os"
	"os/exec"

	"github.com/jordanamos/sas-cli/tests/e2e/utils"
)

// SAS runs the binary under test with HOME pointed at the given
// directory and prompting disabled, returning the combined output
func SAS(home string, args ...string) (string, error) {
	cmd := exec.Command(utils.CLIBinary(), args...)
	cmd.Env = append(os.Environ(),
		"HOME="+home,
		"SAS_CLI_NON_INTERACTIVE=1",
	)
	out, err := cmd.CombinedOutput()
	return string(out), err
}
