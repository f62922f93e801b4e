// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package sas

import (
	"regexp"
	"strings"
)

// LineKind classifies a line of SAS log output
type LineKind int

const (
	LineSource LineKind = iota
	LineNote
	LineWarning
	LineError
)

// SAS message lines: "ERROR:", "ERROR 22-322:", "WARNING:", "NOTE:".
// Continuation lines are indented and stay LineSource.
var (
	errorRe   = regexp.MustCompile(`^ERROR(\s\d+-\d+)?:`)
	warningRe = regexp.MustCompile(`^WARNING(\s\d+-\d+)?:`)
	noteRe    = regexp.MustCompile(`^NOTE(\s\d+-\d+)?:`)
)

// ANSI colors matching the SAS display manager log window:
// errors red, warnings green, notes blue.
const (
	colorRed   = "\x1b[31m"
	colorGreen = "\x1b[32m"
	colorBlue  = "\x1b[34m"
	colorReset = "\x1b[0m"
)

// ClassifyLine returns the kind of a single log line
func ClassifyLine(line string) LineKind {
	switch {
	case errorRe.MatchString(line):
		return LineError
	case warningRe.MatchString(line):
		return LineWarning
	case noteRe.MatchString(line):
		return LineNote
	default:
		return LineSource
	}
}

// ColorizeLine wraps a log line in the ANSI color for its kind
func ColorizeLine(line string) string {
	switch ClassifyLine(line) {
	case LineError:
		return colorRed + line + colorReset
	case LineWarning:
		return colorGreen + line + colorReset
	case LineNote:
		return colorBlue + line + colorReset
	default:
		return line
	}
}

// LogStats summarizes the message lines of a log
type LogStats struct {
	Errors   int
	Warnings int
	Notes    int
}

// ScanLog counts message lines in a complete log
func ScanLog(log string) LogStats {
	var stats LogStats
	for _, line := range strings.Split(log, "\n") {
		switch ClassifyLine(line) {
		case LineError:
			stats.Errors++
		case LineWarning:
			stats.Warnings++
		case LineNote:
			stats.Notes++
		}
	}
	return stats
}

// ErrorLines returns the ERROR message lines of a log, for compact
// reporting after a failed run
func ErrorLines(log string) []string {
	var lines []string
	for _, line := range strings.Split(log, "\n") {
		if ClassifyLine(line) == LineError {
			lines = append(lines, line)
		}
	}
	return lines
}
