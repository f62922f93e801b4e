// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

// Package flags holds flag helpers shared by the command packages.
package flags

import (
	"github.com/spf13/pflag"
)

// AddProfileFlag registers the --profile flag used by every command
// that opens a session
func AddProfileFlag(fs *pflag.FlagSet, target *string) {
	fs.StringVarP(target, "profile", "p", "", "connection profile to use (default from profiles.yaml)")
}

// AddNoColorFlag registers the --no-color flag for log display
func AddNoColorFlag(fs *pflag.FlagSet, target *bool) {
	fs.BoolVar(target, "no-color", false, "disable colored log output")
}
