// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package utils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestFileExists(t *testing.T) {
	require := require.New(t)

	path := writeTempFile(t, "exists.sas", "data _null_; run;")
	require.True(FileExists(path))
	require.False(FileExists(filepath.Join(t.TempDir(), "nope.sas")))
	require.False(FileExists(filepath.Dir(path)), "a directory is not a file")
}

func TestValidateProgramFile(t *testing.T) {
	require := require.New(t)

	good := writeTempFile(t, "report.sas", "proc print; run;")
	require.NoError(ValidateProgramFile(good))

	wrongExt := writeTempFile(t, "report.txt", "proc print; run;")
	require.ErrorContains(ValidateProgramFile(wrongExt), "not a valid .sas file")

	missing := filepath.Join(t.TempDir(), "missing.sas")
	require.ErrorContains(ValidateProgramFile(missing), "does not exist")

	empty := writeTempFile(t, "empty.sas", "")
	require.ErrorContains(ValidateProgramFile(empty), "is empty")
}

func TestExpandHome(t *testing.T) {
	require := require.New(t)

	home, err := os.UserHomeDir()
	require.NoError(err)

	require.Equal(home, ExpandHome("~"))
	require.Equal(filepath.Join(home, ".ssh", "id_rsa"), ExpandHome("~/.ssh/id_rsa"))
	require.Equal("/abs/path.sas", ExpandHome("/abs/path.sas"))
	require.Equal("relative.sas", ExpandHome("relative.sas"))
	require.Equal("~user/file", ExpandHome("~user/file"), "only a bare ~ prefix expands")
}

func TestBaseNameNoExt(t *testing.T) {
	require := require.New(t)

	require.Equal("report", BaseNameNoExt("/path/to/report.sas"))
	require.Equal("report", BaseNameNoExt("report.sas"))
	require.Equal("noext", BaseNameNoExt("noext"))
	require.Equal("archive.tar", BaseNameNoExt("archive.tar.gz"))
}
