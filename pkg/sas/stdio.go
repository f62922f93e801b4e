// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package sas

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/exec"

	"github.com/jordanamos/sas-cli/pkg/profile"
	"github.com/jordanamos/sas-cli/pkg/utils"
)

// launch options for the STDIO access method. -stdio routes source,
// log and listing through the standard streams; the rest suppress
// interactive behavior in a batch child.
func stdioOptions(prof *profile.Profile) []string {
	opts := []string{
		"-stdio",
		"-nodms",
		"-nonews",
		"-noterminal",
		"-nosyntaxcheck",
		"-pagesize", "MAX",
	}
	if prof.Encoding != "" {
		opts = append(opts, "-encoding", prof.Encoding)
	}
	return append(opts, prof.Options...)
}

// stdioDriver runs SAS as a local child process
type stdioDriver struct {
	prof *profile.Profile
	cmd  *exec.Cmd
}

func newStdioDriver(prof *profile.Profile) *stdioDriver {
	return &stdioDriver{prof: prof}
}

func (d *stdioDriver) Start(_ context.Context) (io.WriteCloser, io.Reader, io.Reader, error) {
	if !utils.FileExists(d.prof.SASPath) {
		return nil, nil, nil, fmt.Errorf("SAS executable not found at %s", d.prof.SASPath)
	}

	// The child outlives the start context, so it is launched without one.
	cmd := exec.Command(d.prof.SASPath, stdioOptions(d.prof)...)

	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, nil, nil, err
	}
	logOut, err := cmd.StdoutPipe()
	if err != nil {
		return nil, nil, nil, err
	}
	lstOut, err := cmd.StderrPipe()
	if err != nil {
		return nil, nil, nil, err
	}
	if err := cmd.Start(); err != nil {
		return nil, nil, nil, fmt.Errorf("failed to launch %s: %w", d.prof.SASPath, err)
	}
	d.cmd = cmd
	return stdin, logOut, lstOut, nil
}

func (d *stdioDriver) FetchFile(_ context.Context, path string, dst io.Writer, progress io.Writer) (int64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()

	w := dst
	if progress != nil {
		w = io.MultiWriter(dst, progress)
	}
	return io.Copy(w, f)
}

func (d *stdioDriver) StoreFile(_ context.Context, src io.Reader, path string, progress io.Writer) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	if progress != nil {
		w = io.MultiWriter(f, progress)
	}
	if _, err := io.Copy(w, src); err != nil {
		return err
	}
	return f.Sync()
}

func (d *stdioDriver) FileSize(_ context.Context, path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (d *stdioDriver) RemoveFile(_ context.Context, path string) error {
	return os.Remove(path)
}

func (d *stdioDriver) Wait() error {
	if d.cmd == nil {
		return nil
	}
	return d.cmd.Wait()
}

func (d *stdioDriver) Close() error {
	if d.cmd == nil || d.cmd.Process == nil {
		return nil
	}
	if d.cmd.ProcessState != nil {
		// already exited
		return nil
	}
	return d.cmd.Process.Kill()
}
