// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package sas

import (
	"context"
	"fmt"
	"io"
	"net"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/melbahja/goph"
	"github.com/pkg/sftp"
	cryptossh "golang.org/x/crypto/ssh"

	"github.com/jordanamos/sas-cli/pkg/profile"
)

// sshDriver runs SAS on a remote host over SSH, with file transfer
// over SFTP on the same connection
type sshDriver struct {
	prof   *profile.Profile
	client *goph.Client
	sess   *cryptossh.Session
	sftpc  *sftp.Client
}

func newSSHDriver(prof *profile.Profile) *sshDriver {
	return &sshDriver{prof: prof}
}

// knownHostsPath overrides the known_hosts location in tests; empty
// means ~/.ssh/known_hosts
var knownHostsPath = ""

// verifyHost checks the remote key against known_hosts, trusting new
// hosts on first use the way the OpenSSH client does
func verifyHost(host string, remote net.Addr, key cryptossh.PublicKey) error {
	hostFound, err := goph.CheckKnownHost(host, remote, key, knownHostsPath)
	if hostFound && err != nil {
		return err
	}
	if hostFound && err == nil {
		return nil
	}
	return goph.AddKnownHost(host, remote, key, knownHostsPath)
}

func (d *sshDriver) auth() (goph.Auth, error) {
	if d.prof.KeyFile != "" {
		return goph.Key(d.prof.KeyFile, "")
	}
	if d.prof.PasswordEnv != "" {
		pass := os.Getenv(d.prof.PasswordEnv)
		if pass == "" {
			return nil, fmt.Errorf("environment variable %s is not set", d.prof.PasswordEnv)
		}
		return goph.Password(pass), nil
	}
	return nil, fmt.Errorf("profile %q has no ssh credentials", d.prof.Name)
}

func (d *sshDriver) Start(ctx context.Context) (io.WriteCloser, io.Reader, io.Reader, error) {
	auth, err := d.auth()
	if err != nil {
		return nil, nil, nil, err
	}

	timeout := goph.DefaultTimeout
	if deadline, ok := ctx.Deadline(); ok {
		timeout = time.Until(deadline)
	}
	client, err := goph.NewConn(&goph.Config{
		User:     d.prof.User,
		Addr:     d.prof.Host,
		Port:     uint(d.prof.SSHPort()),
		Auth:     auth,
		Timeout:  timeout,
		Callback: verifyHost,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("ssh connection to %s failed: %w", d.prof.Host, err)
	}
	d.client = client

	sess, err := client.NewSession()
	if err != nil {
		_ = client.Close()
		return nil, nil, nil, err
	}
	d.sess = sess

	stdin, err := sess.StdinPipe()
	if err != nil {
		_ = d.Close()
		return nil, nil, nil, err
	}
	logOut, err := sess.StdoutPipe()
	if err != nil {
		_ = d.Close()
		return nil, nil, nil, err
	}
	lstOut, err := sess.StderrPipe()
	if err != nil {
		_ = d.Close()
		return nil, nil, nil, err
	}

	if err := sess.Start(remoteCommand(d.prof)); err != nil {
		_ = d.Close()
		return nil, nil, nil, fmt.Errorf("failed to launch SAS on %s: %w", d.prof.Host, err)
	}
	return stdin, logOut, lstOut, nil
}

// remoteCommand builds the shell command line launching SAS remotely
func remoteCommand(prof *profile.Profile) string {
	parts := append([]string{prof.SASPath}, stdioOptions(prof)...)
	quoted := make([]string, len(parts))
	for i, p := range parts {
		quoted[i] = shellQuote(p)
	}
	return strings.Join(quoted, " ")
}

// shellSafeRe matches arguments that can be passed to a POSIX shell
// without quoting. Anything else gets single-quoted.
var shellSafeRe = regexp.MustCompile(`^[A-Za-z0-9_./:=-]+$`)

// shellQuote single-quotes s for a POSIX shell unless every character
// is known safe
func shellQuote(s string) string {
	if shellSafeRe.MatchString(s) {
		return s
	}
	return "'" + strings.ReplaceAll(s, "'", `'\''`) + "'"
}

func (d *sshDriver) sftp() (*sftp.Client, error) {
	if d.sftpc != nil {
		return d.sftpc, nil
	}
	if d.client == nil {
		return nil, fmt.Errorf("ssh connection not established")
	}
	sftpc, err := d.client.NewSftp()
	if err != nil {
		return nil, fmt.Errorf("failed to open sftp channel: %w", err)
	}
	d.sftpc = sftpc
	return sftpc, nil
}

func (d *sshDriver) FetchFile(_ context.Context, path string, dst io.Writer, progress io.Writer) (int64, error) {
	sftpc, err := d.sftp()
	if err != nil {
		return 0, err
	}
	f, err := sftpc.Open(path)
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

func (d *sshDriver) StoreFile(_ context.Context, src io.Reader, path string, progress io.Writer) error {
	sftpc, err := d.sftp()
	if err != nil {
		return err
	}
	f, err := sftpc.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	var w io.Writer = f
	if progress != nil {
		w = io.MultiWriter(f, progress)
	}
	_, err = io.Copy(w, src)
	return err
}

func (d *sshDriver) FileSize(_ context.Context, path string) (int64, error) {
	sftpc, err := d.sftp()
	if err != nil {
		return 0, err
	}
	info, err := sftpc.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

func (d *sshDriver) RemoveFile(_ context.Context, path string) error {
	sftpc, err := d.sftp()
	if err != nil {
		return err
	}
	return sftpc.Remove(path)
}

func (d *sshDriver) Wait() error {
	if d.sess == nil {
		return nil
	}
	return d.sess.Wait()
}

func (d *sshDriver) Close() error {
	var firstErr error
	if d.sftpc != nil {
		if err := d.sftpc.Close(); err != nil {
			firstErr = err
		}
		d.sftpc = nil
	}
	if d.sess != nil {
		_ = d.sess.Close()
		d.sess = nil
	}
	if d.client != nil {
		if err := d.client.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
		d.client = nil
	}
	return firstErr
}
