// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCleanLogLine(t *testing.T) {
	require := require.New(t)

	require.Equal("ERROR: bad", CleanLogLine("\x1b[31mERROR: bad\x1b[0m"))
	require.Equal("plain text", CleanLogLine("plain text"))
	require.Equal("line", CleanLogLine("line\r"))
	require.Equal("ab", CleanLogLine("a\x08b"))
	require.Equal("", CleanLogLine(""))
}

func TestTruncateString(t *testing.T) {
	require := require.New(t)

	require.Equal("short", TruncateString("short", 10))
	require.Equal("exact", TruncateString("exact", 5))
	require.Equal("lo...", TruncateString("longer string", 5))
	require.Equal("lo", TruncateString("longer", 2))
}
