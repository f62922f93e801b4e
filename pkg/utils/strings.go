// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"regexp"
	"strings"

	"github.com/pborman/ansi"
)

var controlRegex = regexp.MustCompile(`[\x00-\x08\x0B-\x0C\x0E-\x1F]`)

// CleanLogLine removes ANSI escape sequences and terminal control
// characters from a line of SAS log output before it is written to a
// log artifact. The interactive display keeps the colors.
func CleanLogLine(s string) string {
	if stripped, err := ansi.Strip([]byte(s)); err == nil {
		s = string(stripped)
	}
	s = strings.ReplaceAll(s, "\r", "")
	return controlRegex.ReplaceAllString(s, "")
}

// TruncateString truncates s to max runes, appending "..." when cut
func TruncateString(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 3 {
		return string(r[:max])
	}
	return string(r[:max-3]) + "..."
}
