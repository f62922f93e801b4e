// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package doctorcmd

import (
	"github.com/spf13/cobra"

	"github.com/jordanamos/sas-cli/pkg/application"
)

var (
	app     *application.App
	fixMode bool
)

// NewCmd returns a new cobra.Command for doctor operations
func NewCmd(injectedApp *application.App) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "doctor",
		Short: "Check the local environment setup",
		Long: `The doctor command checks your environment for problems that would
stop sas from working.

It verifies:
  - The profiles file exists and parses
  - The SAS executable of each stdio profile is present
  - The key file of each ssh profile is present
  - The ~/.sas-cli directories exist and are writable
  - Free disk space and memory

Use --fix to attempt automatic remediation of detected issues.`,
		RunE: runDoctor,
	}

	cmd.Flags().BoolVar(&fixMode, "fix", false, "attempt to automatically fix detected issues")

	return cmd
}

func runDoctor(_ *cobra.Command, _ []string) error {
	doctor := NewDoctor(app, fixMode)
	return doctor.Run()
}
