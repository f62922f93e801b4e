// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package constants

import "errors"

var (
	ErrNoProfiles      = errors.New("no profiles file found, run 'sas config init' first")
	ErrProfileNotFound = errors.New("profile not found")
	ErrSessionClosed   = errors.New("session is closed")
)
