// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestUserLog() (*UserLog, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return &UserLog{log: zap.NewNop().Sugar(), writer: buf}, buf
}

func TestPrintToUser(t *testing.T) {
	ul, buf := newTestUserLog()
	ul.PrintToUser("ran %d program(s)", 3)
	require.Equal(t, "ran 3 program(s)\n", buf.String())
}

func TestCheckmarkAndRedX(t *testing.T) {
	require := require.New(t)
	ul, buf := newTestUserLog()

	ul.GreenCheckmarkToUser("connected to %s", "server")
	ul.RedXToUser("lost connection")

	require.Contains(buf.String(), "✓ connected to server\n")
	require.Contains(buf.String(), "✗ lost connection\n")
}

func TestPrintError(t *testing.T) {
	ul, buf := newTestUserLog()
	ul.PrintError("profile %q not found", "server")
	require.Contains(t, buf.String(), "ERROR: profile \"server\" not found")
}

func TestPrintLineSeparator(t *testing.T) {
	require := require.New(t)
	ul, buf := newTestUserLog()

	ul.PrintLineSeparator()
	require.Contains(buf.String(), "==========")

	buf.Reset()
	ul.PrintLineSeparator("---- etl.sas ----")
	require.Equal("---- etl.sas ----\n", buf.String())
}

func TestStepTracker(t *testing.T) {
	require := require.New(t)
	ul, buf := newTestUserLog()

	st := NewStepTracker(ul, 50*time.Millisecond)
	st.Start("Connecting to SAS")
	require.Contains(buf.String(), "Connecting to SAS...")

	require.False(st.CheckWarn(), "no warning before the threshold")

	time.Sleep(60 * time.Millisecond)
	require.True(st.CheckWarn())
	require.Contains(buf.String(), "taking longer than expected")
	require.False(st.CheckWarn(), "warning prints once per step")

	st.Complete("9.04.01M7")
	require.Contains(buf.String(), "✓ Connecting to SAS")
	require.Contains(buf.String(), "9.04.01M7")
}

func TestStepTrackerFailed(t *testing.T) {
	ul, buf := newTestUserLog()

	st := NewStepTracker(ul, time.Minute)
	st.Start("Connecting to SAS")
	st.Failed("connection refused")

	require.Contains(t, buf.String(), "FAILED: connection refused")
}

func TestStepTrackerWatchStopIsIdempotent(t *testing.T) {
	ul, _ := newTestUserLog()

	st := NewStepTracker(ul, time.Minute)
	st.Start("Connecting to SAS")
	stop := st.Watch()
	stop()
	stop()
}

func TestConvertToStringWithThousandSeparator(t *testing.T) {
	require := require.New(t)

	require.Equal("0", ConvertToStringWithThousandSeparator(0))
	require.Equal("999", ConvertToStringWithThousandSeparator(999))
	require.Equal("1,234", ConvertToStringWithThousandSeparator(1234))
	require.Equal("1,234,567", ConvertToStringWithThousandSeparator(1234567))
}
