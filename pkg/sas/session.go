// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

// Package sas drives a SAS runtime through its STDIO access method:
// the SAS executable is started with -stdio, program source is written
// to stdin, the log comes back on stdout and the listing (print
// output) on stderr. Submissions are delimited with marker tokens put
// into both streams, the same technique the saspy bridging library
// uses over this transport.
package sas

import (
	"bufio"
	"context"
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/profile"
)

// Result is the outcome of one Submit
type Result struct {
	Log      string
	Listing  string
	Errors   int
	Warnings int
}

// Failed reports whether the submitted code produced ERROR lines
func (r *Result) Failed() bool {
	return r.Errors > 0
}

// Info describes the runtime a session is connected to
type Info struct {
	Version  string
	Encoding string
	Hostname string
	Platform string
	WorkPath string
}

// Session is a live connection to a SAS runtime. A session processes
// one submission at a time; Submit and Close are safe for concurrent
// callers but serialize on an internal mutex.
type Session struct {
	prof *profile.Profile
	log  *zap.SugaredLogger

	drv      driver
	stdin    io.WriteCloser
	logLines chan string
	lstLines chan string

	info Info

	mu     sync.Mutex
	closed bool
}

// NewSession opens a session using the given profile. The context
// bounds startup (process launch, SSH dial, handshake), not the
// session lifetime.
func NewSession(ctx context.Context, prof *profile.Profile, logger *zap.SugaredLogger) (*Session, error) {
	var drv driver
	switch prof.Mode {
	case profile.ModeStdio:
		drv = newStdioDriver(prof)
	case profile.ModeSSH:
		drv = newSSHDriver(prof)
	default:
		return nil, fmt.Errorf("profile %q: unsupported mode %q", prof.Name, prof.Mode)
	}
	return newSessionWithDriver(ctx, prof, drv, logger)
}

func newSessionWithDriver(ctx context.Context, prof *profile.Profile, drv driver, logger *zap.SugaredLogger) (*Session, error) {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	s := &Session{
		prof: prof,
		log:  logger,
		drv:  drv,
	}

	startCtx, cancel := context.WithTimeout(ctx, constants.SessionStartTimeout)
	defer cancel()

	stdin, logOut, lstOut, err := drv.Start(startCtx)
	if err != nil {
		return nil, fmt.Errorf("failed to start SAS session: %w", err)
	}
	s.stdin = stdin
	s.logLines = make(chan string, 256)
	s.lstLines = make(chan string, 256)
	go scanInto(logOut, s.logLines)
	go scanInto(lstOut, s.lstLines)

	if err := s.handshake(startCtx); err != nil {
		_ = drv.Close()
		return nil, err
	}
	s.log.Infow("SAS session established",
		"profile", prof.Name,
		"version", s.info.Version,
		"workpath", s.info.WorkPath,
	)
	return s, nil
}

func scanInto(r io.Reader, ch chan<- string) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		ch <- sc.Text()
	}
	close(ch)
}

// handshake queries the automatic macro variables that identify the
// runtime and locate the WORK library on the session side.
func (s *Session) handshake(ctx context.Context) error {
	code := strings.Join([]string{
		`%put WORKPATH=%sysfunc(pathname(work));`,
		`%put SASVERSION=&sysvlong;`,
		`%put ENCODING=&sysencoding;`,
		`%put HOSTNAME=&syshostname;`,
		`%put PLATFORM=&sysscpl;`,
	}, "\n")
	res, err := s.submit(ctx, code, nil)
	if err != nil {
		return fmt.Errorf("session handshake failed: %w", err)
	}
	for _, line := range strings.Split(res.Log, "\n") {
		switch {
		case strings.HasPrefix(line, "WORKPATH="):
			s.info.WorkPath = strings.TrimPrefix(line, "WORKPATH=")
		case strings.HasPrefix(line, "SASVERSION="):
			s.info.Version = strings.TrimPrefix(line, "SASVERSION=")
		case strings.HasPrefix(line, "ENCODING="):
			s.info.Encoding = strings.TrimPrefix(line, "ENCODING=")
		case strings.HasPrefix(line, "HOSTNAME="):
			s.info.Hostname = strings.TrimPrefix(line, "HOSTNAME=")
		case strings.HasPrefix(line, "PLATFORM="):
			s.info.Platform = strings.TrimPrefix(line, "PLATFORM=")
		}
	}
	if s.info.WorkPath == "" {
		return fmt.Errorf("session handshake failed: WORK path not reported")
	}
	return nil
}

// Info returns the runtime details captured during the handshake
func (s *Session) Info() Info {
	return s.info
}

// WorkPath returns the server-side path of the WORK library
func (s *Session) WorkPath() string {
	return s.info.WorkPath
}

// Submit runs a block of SAS code and returns its log and listing
func (s *Session) Submit(ctx context.Context, code string) (*Result, error) {
	return s.SubmitWithLog(ctx, code, nil)
}

// SubmitWithLog runs a block of SAS code, invoking onLogLine for each
// log line as it arrives. Used by run to stream the log live.
func (s *Session) SubmitWithLog(ctx context.Context, code string, onLogLine func(string)) (*Result, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, constants.ErrSessionClosed
	}
	return s.submit(ctx, code, onLogLine)
}

// submit implements the marker protocol. The listing marker step runs
// first so its log NOTEs land before the log marker; the bare token
// line on each stream ends collection. Echoed source lines carry line
// numbers and the "%put " text, so they never match the bare token.
func (s *Session) submit(ctx context.Context, code string, onLogLine func(string)) (*Result, error) {
	tok, err := newToken()
	if err != nil {
		return nil, err
	}

	var block strings.Builder
	block.WriteString(code)
	if !strings.HasSuffix(code, "\n") {
		block.WriteByte('\n')
	}
	fmt.Fprintf(&block, "data _null_; file print; put '%s'; run;\n", tok)
	fmt.Fprintf(&block, "%%put %s;\n", tok)

	if _, err := io.WriteString(s.stdin, block.String()); err != nil {
		return nil, fmt.Errorf("failed to write to SAS session: %w", err)
	}

	if s.prof.SubmitTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.prof.SubmitTimeout)
		defer cancel()
	}

	logCollected, err := collectUntil(ctx, s.logLines, tok, onLogLine)
	if err != nil {
		return nil, s.submitErr(err)
	}
	lstCollected, err := collectUntil(ctx, s.lstLines, tok, nil)
	if err != nil {
		return nil, s.submitErr(err)
	}

	res := &Result{
		Log:     strings.Join(logCollected, "\n"),
		Listing: strings.Join(lstCollected, "\n"),
	}
	stats := ScanLog(res.Log)
	res.Errors = stats.Errors
	res.Warnings = stats.Warnings
	return res, nil
}

// submitErr folds the process exit error in when a stream ended early
func (s *Session) submitErr(err error) error {
	if strings.Contains(err.Error(), "ended unexpectedly") {
		s.closed = true
		if waitErr := s.drv.Wait(); waitErr != nil {
			return fmt.Errorf("%w (%v)", err, waitErr)
		}
	}
	return err
}

func collectUntil(ctx context.Context, ch <-chan string, token string, onLine func(string)) ([]string, error) {
	var lines []string
	for {
		select {
		case line, ok := <-ch:
			if !ok {
				return lines, fmt.Errorf("SAS session ended unexpectedly")
			}
			if strings.TrimSpace(line) == token {
				return lines, nil
			}
			lines = append(lines, line)
			if onLine != nil {
				onLine(line)
			}
		case <-ctx.Done():
			return lines, fmt.Errorf("waiting for SAS output: %w", ctx.Err())
		}
	}
}

// Download copies a file from the session host into dst
func (s *Session) Download(ctx context.Context, remotePath string, dst io.Writer, progress io.Writer) (int64, error) {
	return s.drv.FetchFile(ctx, remotePath, dst, progress)
}

// Upload copies src to a file on the session host
func (s *Session) Upload(ctx context.Context, src io.Reader, remotePath string, progress io.Writer) error {
	return s.drv.StoreFile(ctx, src, remotePath, progress)
}

// RemoteFileSize returns the size of a file on the session host
func (s *Session) RemoteFileSize(ctx context.Context, remotePath string) (int64, error) {
	return s.drv.FileSize(ctx, remotePath)
}

// Close submits endsas and waits for the SAS process to exit. The
// session is unusable afterwards.
func (s *Session) Close(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true

	_, werr := io.WriteString(s.stdin, "endsas;\n")
	_ = s.stdin.Close()

	done := make(chan error, 1)
	go func() { done <- s.drv.Wait() }()

	timeout := time.After(constants.SessionCloseTimeout)
	var waitErr error
	select {
	case waitErr = <-done:
	case <-ctx.Done():
		waitErr = ctx.Err()
	case <-timeout:
		waitErr = fmt.Errorf("timed out waiting for SAS to exit")
	}

	closeErr := s.drv.Close()
	if werr != nil {
		return werr
	}
	if waitErr != nil {
		return waitErr
	}
	return closeErr
}

func newToken() (string, error) {
	buf := make([]byte, 8)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return "SASCLI" + strings.ToUpper(hex.EncodeToString(buf)), nil
}
