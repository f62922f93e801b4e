// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"

	"github.com/jordanamos/sas-cli/pkg/constants"
)

// FileExists checks if a file exists
func FileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// ValidateProgramFile checks that path points to an existing, non-empty
// SAS program file. The returned error message matches the shape users
// see when they pass a bad path on the command line.
func ValidateProgramFile(path string) error {
	if !strings.HasSuffix(path, constants.ProgramSuffix) || !FileExists(path) {
		return fmt.Errorf("'%s' does not exist or is not a valid %s file", path, constants.ProgramSuffix)
	}
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if info.Size() == 0 {
		return fmt.Errorf("'%s' is empty", path)
	}
	return nil
}

// ExpandHome expands a leading ~ in path to the current user's home directory
func ExpandHome(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		usr, err := user.Current()
		if err != nil {
			return path
		}
		if path == "~" {
			return usr.HomeDir
		}
		return filepath.Join(usr.HomeDir, path[2:])
	}
	return path
}

// BaseNameNoExt returns the file name of path without its extension
func BaseNameNoExt(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}
