// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

// Package utils holds shared scaffolding for the e2e suites: a fake
// SAS executable that speaks the STDIO protocol, and helpers to lay
// out an isolated home directory for each test.
package utils

import (
	"fmt"
	"os"
	"path/filepath"
)

// fakeSASScript impersonates a SAS executable well enough for the CLI:
// it answers %put statements on stdout (the log stream) and the
// listing marker data step on stderr (the listing stream).
const fakeSASScript = `#!/usr/bin/env bash
work=$(mktemp -d)
trap 'rm -rf "$work"' EXIT
while IFS= read -r line; do
  case "$line" in
    "%put WORKPATH="*) echo "WORKPATH=$work" ;;
    "%put SASVERSION="*) echo "SASVERSION=9.04.01M7P080520" ;;
    "%put ENCODING="*) echo "ENCODING=utf-8" ;;
    "%put HOSTNAME="*) echo "HOSTNAME=e2ebox" ;;
    "%put PLATFORM="*) echo "PLATFORM=Linux" ;;
    "%put "*) s=${line#"%put "}; echo "${s%;}" ;;
    "data _null_; file print; put '"*) s=${line#*put \'}; echo "${s%\'; run;}" >&2 ;;
    "endsas;") exit 0 ;;
  esac
done
`

// CLIBinary returns the path of the sas binary under test. Set
// SAS_CLI_E2E_BIN to point the suite at a specific build.
func CLIBinary() string {
	if bin := os.Getenv("SAS_CLI_E2E_BIN"); bin != "" {
		return bin
	}
	return "./bin/sas"
}

// SetupHome creates an isolated home directory with a fake SAS install
// and a stdio profile pointing at it, returning the home path
func SetupHome() (string, error) {
	home, err := os.MkdirTemp("", "sas-cli-e2e-*")
	if err != nil {
		return "", err
	}
	sasPath, err := InstallFakeSAS(home)
	if err != nil {
		return "", err
	}
	if err := WriteStdioProfile(home, sasPath); err != nil {
		return "", err
	}
	return home, nil
}

// InstallFakeSAS writes the fake SAS executable under dir
func InstallFakeSAS(dir string) (string, error) {
	path := filepath.Join(dir, "fakesas")
	if err := os.WriteFile(path, []byte(fakeSASScript), 0o755); err != nil {
		return "", err
	}
	return path, nil
}

// WriteStdioProfile writes a profiles.yaml under home/.sas-cli with a
// single stdio profile using the given SAS path
func WriteStdioProfile(home, sasPath string) error {
	baseDir := filepath.Join(home, ".sas-cli")
	if err := os.MkdirAll(baseDir, 0o755); err != nil {
		return err
	}
	content := fmt.Sprintf("default: local\nprofiles:\n  local:\n    mode: stdio\n    sas-path: %s\n", sasPath)
	return os.WriteFile(filepath.Join(baseDir, "profiles.yaml"), []byte(content), 0o644)
}

// WriteProgram writes a .sas program into dir and returns its path
func WriteProgram(dir, name, content string) (string, error) {
	path := filepath.Join(dir, name)
	return path, os.WriteFile(path, []byte(content), 0o644)
}
