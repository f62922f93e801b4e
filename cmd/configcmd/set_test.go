// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidateSettingKey(t *testing.T) {
	require := require.New(t)

	for _, key := range []string{"profile", "strict", "keep-log", "color", "jobs"} {
		require.NoError(validateSettingKey(key))
	}
	require.ErrorContains(validateSettingKey("bogus"), "unknown setting")
}

func TestParseSettingValue(t *testing.T) {
	require := require.New(t)

	v, err := parseSettingValue("profile", "server")
	require.NoError(err)
	require.Equal("server", v)

	v, err = parseSettingValue("strict", "true")
	require.NoError(err)
	require.Equal(true, v)

	_, err = parseSettingValue("strict", "yes please")
	require.ErrorContains(err, "expects true or false")

	v, err = parseSettingValue("jobs", "4")
	require.NoError(err)
	require.Equal(4, v)

	_, err = parseSettingValue("jobs", "0")
	require.ErrorContains(err, "positive integer")

	_, err = parseSettingValue("jobs", "many")
	require.ErrorContains(err, "positive integer")
}
