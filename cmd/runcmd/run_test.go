// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package runcmd

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jordanamos/sas-cli/pkg/application"
	"github.com/jordanamos/sas-cli/pkg/config"
	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/prompts"
	"github.com/jordanamos/sas-cli/pkg/sas"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

func setupTestApp(t *testing.T) {
	t.Helper()
	ux.NewUserLog(zap.NewNop().Sugar(), io.Discard)
	orig := app
	app = application.New()
	app.Setup(t.TempDir(), zap.NewNop().Sugar(), config.New(), prompts.NewNonInteractivePrompter())
	t.Cleanup(func() { app = orig })
}

func TestProgramResultFailed(t *testing.T) {
	require := require.New(t)

	clean := &programResult{result: &sas.Result{}}
	require.False(clean.failed(false))
	require.False(clean.failed(true))

	withErrors := &programResult{result: &sas.Result{Errors: 2}}
	require.True(withErrors.failed(false))

	withWarnings := &programResult{result: &sas.Result{Warnings: 1}}
	require.False(withWarnings.failed(false))
	require.True(withWarnings.failed(true), "--strict promotes warnings to failures")

	withErr := &programResult{err: os.ErrClosed}
	require.True(withErr.failed(false))
}

func TestSummaryLine(t *testing.T) {
	pr := &programResult{
		program:  "report.sas",
		result:   &sas.Result{Errors: 1, Warnings: 2},
		duration: 1500 * time.Millisecond,
	}
	require.Equal(t, "report.sas: 1 error(s), 2 warning(s) (1.5s)", summaryLine(pr))
}

func TestWriteCleaned(t *testing.T) {
	require := require.New(t)

	path := filepath.Join(t.TempDir(), "out.log")
	require.NoError(writeCleaned(path, "\x1b[31mERROR: bad\x1b[0m\nNOTE: fine"))

	data, err := os.ReadFile(path)
	require.NoError(err)
	require.Equal("ERROR: bad\nNOTE: fine\n", string(data))
}

func TestSaveArtifacts(t *testing.T) {
	require := require.New(t)
	setupTestApp(t)

	pr := &programResult{
		program: "report.sas",
		result:  &sas.Result{Log: "NOTE: done", Listing: "The SAS System"},
	}
	require.NoError(saveArtifacts(pr, Options{Save: true}))

	entries, err := os.ReadDir(app.GetResultsDir())
	require.NoError(err)
	require.Len(entries, 2, "expected a log and a listing artifact")

	var suffixes []string
	for _, e := range entries {
		suffixes = append(suffixes, filepath.Ext(e.Name()))
	}
	require.ElementsMatch([]string{constants.LogSuffix, constants.ListingSuffix}, suffixes)
}

func TestSaveArtifactsExplicitPaths(t *testing.T) {
	require := require.New(t)
	setupTestApp(t)

	logPath := filepath.Join(t.TempDir(), "explicit.log")
	pr := &programResult{
		program: "report.sas",
		result:  &sas.Result{Log: "NOTE: done"},
	}
	require.NoError(saveArtifacts(pr, Options{LogFile: logPath}))
	require.FileExists(logPath)
}

func TestRunProgramsRejectsBadPaths(t *testing.T) {
	require := require.New(t)
	setupTestApp(t)

	err := RunPrograms(nil, app, []string{"missing.sas"}, Options{})
	require.ErrorContains(err, "does not exist")

	notSAS := filepath.Join(t.TempDir(), "prog.txt")
	require.NoError(os.WriteFile(notSAS, []byte("data _null_; run;"), 0o644))
	err = RunPrograms(nil, app, []string{notSAS}, Options{})
	require.ErrorContains(err, "not a valid .sas file")
}

func TestRunProgramsRejectsLogFileWithManyPrograms(t *testing.T) {
	require := require.New(t)
	setupTestApp(t)

	dir := t.TempDir()
	var programs []string
	for _, name := range []string{"a.sas", "b.sas"} {
		p := filepath.Join(dir, name)
		require.NoError(os.WriteFile(p, []byte("data _null_; run;"), 0o644))
		programs = append(programs, p)
	}

	err := RunPrograms(nil, app, programs, Options{LogFile: "out.log"})
	require.ErrorContains(err, "require a single program")
}

func TestFailureErr(t *testing.T) {
	require.EqualError(t, failureErr(2, 5), "2 of 5 program(s) failed")
}

func TestAbortErr(t *testing.T) {
	require := require.New(t)

	boom := errors.New("session ended unexpectedly")
	errored := &programResult{program: "a.sas", err: boom}
	require.NoError(abortErr(errored, Options{KeepGoing: true}, 1, 3),
		"--keep-going continues past submit-level errors")
	require.ErrorIs(abortErr(errored, Options{}, 1, 3), boom)

	withErrors := &programResult{program: "b.sas", result: &sas.Result{Errors: 2}}
	require.NoError(abortErr(withErrors, Options{KeepGoing: true}, 1, 3))
	require.EqualError(abortErr(withErrors, Options{}, 1, 3), "1 of 3 program(s) failed")

	warned := &programResult{program: "c.sas", result: &sas.Result{Warnings: 1}}
	require.NoError(abortErr(warned, Options{}, 1, 3))
	require.EqualError(abortErr(warned, Options{Strict: true}, 1, 3), "1 of 3 program(s) failed")
}

func TestDefaultOptionsFromConfig(t *testing.T) {
	require := require.New(t)
	setupTestApp(t)
	t.Cleanup(viper.Reset)

	viper.Set(constants.ConfigStrictKey, true)
	viper.Set(constants.ConfigKeepLogKey, true)
	viper.Set(constants.ConfigJobsKey, 3)

	o := DefaultOptions(app)
	require.True(o.Strict)
	require.True(o.Save)
	require.Equal(3, o.Jobs)
}
