// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSpinnerGroupNonTTY(t *testing.T) {
	require := require.New(t)

	ul, buf := newTestUserLog()
	orig := Logger
	Logger = ul
	t.Cleanup(func() { Logger = orig })

	sg := &SpinnerGroup{isTTY: false}
	h1 := sg.Add("report.sas")
	h2 := sg.Add("etl.sas")
	sg.Start()

	h1.Update("report.sas - running") // no-op without a live spinner
	h1.Complete("report.sas: 0 error(s)")
	h2.Fail("etl.sas: 2 error(s)")
	sg.Stop()

	out := buf.String()
	require.Contains(out, "report.sas...")
	require.Contains(out, "etl.sas...")
	require.Contains(out, "✓ report.sas: 0 error(s)")
	require.Contains(out, "✗ etl.sas: 2 error(s)")
}
