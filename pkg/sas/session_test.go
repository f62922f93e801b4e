// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package sas

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"regexp"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/profile"
)

// fakeReply is the scripted output for one submitted block
type fakeReply struct {
	logLines []string
	lstLines []string
}

// fakeDriver speaks the marker protocol from the SAS side: it watches
// stdin for the trailing %put marker of each block and answers with
// scripted log and listing lines followed by the token.
type fakeDriver struct {
	mu        sync.Mutex
	logW      *io.PipeWriter
	lstW      *io.PipeWriter
	replies   []fakeReply
	submitted []string
	files     map[string][]byte
	waitOnce  sync.Once
	waitCh    chan struct{}
	waitErr   error
}

var (
	submitTokenRe = regexp.MustCompile(`%put (SASCLI[0-9A-F]{16});`)
	outfileRe     = regexp.MustCompile(`outfile="([^"]+)"`)
)

func newFakeDriver(replies ...fakeReply) *fakeDriver {
	return &fakeDriver{
		replies: replies,
		files:   map[string][]byte{},
		waitCh:  make(chan struct{}),
	}
}

type fakeStdin struct {
	d   *fakeDriver
	buf bytes.Buffer
}

func (w *fakeStdin) Write(p []byte) (int, error) {
	w.buf.Write(p)
	for {
		m := submitTokenRe.FindSubmatchIndex(w.buf.Bytes())
		if m == nil {
			break
		}
		block := string(w.buf.Bytes()[:m[0]])
		token := string(w.buf.Bytes()[m[2]:m[3]])
		w.buf.Next(m[1])
		w.d.respond(block, token)
	}
	return len(p), nil
}

func (w *fakeStdin) Close() error {
	w.d.waitOnce.Do(func() { close(w.d.waitCh) })
	return nil
}

func (d *fakeDriver) Start(context.Context) (io.WriteCloser, io.Reader, io.Reader, error) {
	logR, logW := io.Pipe()
	lstR, lstW := io.Pipe()
	d.logW = logW
	d.lstW = lstW
	return &fakeStdin{d: d}, logR, lstR, nil
}

func (d *fakeDriver) respond(block, token string) {
	d.mu.Lock()
	d.submitted = append(d.submitted, block)

	var reply fakeReply
	if strings.Contains(block, "WORKPATH=%sysfunc") {
		reply = fakeReply{logLines: []string{
			"WORKPATH=/tmp/SAS_work1234",
			"SASVERSION=9.04.01M7P080520",
			"ENCODING=utf-8",
			"HOSTNAME=testbox",
			"PLATFORM=Linux",
		}}
	} else if len(d.replies) > 0 {
		reply = d.replies[0]
		d.replies = d.replies[1:]
	}

	// a proc export block creates the CSV on the "server"
	if m := outfileRe.FindStringSubmatch(block); m != nil {
		if _, ok := d.files[m[1]]; !ok {
			d.files[m[1]] = []byte("name,age\nalice,3\nbob,5\n")
		}
	}
	d.mu.Unlock()

	for _, line := range reply.logLines {
		fmt.Fprintln(d.logW, line)
	}
	fmt.Fprintln(d.logW, token)
	for _, line := range reply.lstLines {
		fmt.Fprintln(d.lstW, line)
	}
	fmt.Fprintln(d.lstW, token)
}

func (d *fakeDriver) FetchFile(_ context.Context, path string, dst io.Writer, progress io.Writer) (int64, error) {
	d.mu.Lock()
	data, ok := d.files[path]
	d.mu.Unlock()
	if !ok {
		return 0, fmt.Errorf("no such file %s", path)
	}
	if progress != nil {
		dst = io.MultiWriter(dst, progress)
	}
	n, err := dst.Write(data)
	return int64(n), err
}

func (d *fakeDriver) StoreFile(_ context.Context, src io.Reader, path string, progress io.Writer) error {
	if progress != nil {
		src = io.TeeReader(src, progress)
	}
	data, err := io.ReadAll(src)
	if err != nil {
		return err
	}
	d.mu.Lock()
	d.files[path] = data
	d.mu.Unlock()
	return nil
}

func (d *fakeDriver) FileSize(_ context.Context, path string) (int64, error) {
	d.mu.Lock()
	defer d.mu.Unlock()
	data, ok := d.files[path]
	if !ok {
		return 0, fmt.Errorf("no such file %s", path)
	}
	return int64(len(data)), nil
}

func (d *fakeDriver) RemoveFile(_ context.Context, path string) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.files, path)
	return nil
}

func (d *fakeDriver) Wait() error {
	<-d.waitCh
	return d.waitErr
}

func (d *fakeDriver) Close() error {
	d.waitOnce.Do(func() { close(d.waitCh) })
	if d.logW != nil {
		_ = d.logW.Close()
	}
	if d.lstW != nil {
		_ = d.lstW.Close()
	}
	return nil
}

func (d *fakeDriver) lastSubmitted() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	if len(d.submitted) == 0 {
		return ""
	}
	return d.submitted[len(d.submitted)-1]
}

func testProfile() *profile.Profile {
	return &profile.Profile{
		Name:    "test",
		Mode:    profile.ModeStdio,
		SASPath: "/usr/bin/true",
	}
}

func newTestSession(t *testing.T, drv *fakeDriver) *Session {
	t.Helper()
	sess, err := newSessionWithDriver(context.Background(), testProfile(), drv, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = sess.Close(context.Background()) })
	return sess
}

func TestSessionHandshake(t *testing.T) {
	require := require.New(t)
	sess := newTestSession(t, newFakeDriver())

	info := sess.Info()
	require.Equal("/tmp/SAS_work1234", info.WorkPath)
	require.Equal("9.04.01M7P080520", info.Version)
	require.Equal("utf-8", info.Encoding)
	require.Equal("testbox", info.Hostname)
	require.Equal("Linux", info.Platform)
}

func TestSubmitCollectsLogAndListing(t *testing.T) {
	require := require.New(t)
	drv := newFakeDriver(fakeReply{
		logLines: []string{
			"1    data _null_; run;",
			"NOTE: DATA statement used (Total process time):",
			"WARNING: the data set may be incomplete.",
			"ERROR: file WORK.NOPE.DATA does not exist.",
		},
		lstLines: []string{"The SAS System", "alice  3"},
	})
	sess := newTestSession(t, drv)

	res, err := sess.Submit(context.Background(), "data _null_; run;")
	require.NoError(err)
	require.Equal(1, res.Errors)
	require.Equal(1, res.Warnings)
	require.True(res.Failed())
	require.Contains(res.Log, "ERROR: file WORK.NOPE.DATA does not exist.")
	require.Equal("The SAS System\nalice  3", res.Listing)
}

func TestSubmitStreamsLogLines(t *testing.T) {
	require := require.New(t)
	drv := newFakeDriver(fakeReply{
		logLines: []string{"NOTE: one", "NOTE: two"},
	})
	sess := newTestSession(t, drv)

	var streamed []string
	res, err := sess.SubmitWithLog(context.Background(), "data _null_; run;", func(line string) {
		streamed = append(streamed, line)
	})
	require.NoError(err)
	require.False(res.Failed())
	require.Equal([]string{"NOTE: one", "NOTE: two"}, streamed)
}

func TestSubmitAppendsMarkers(t *testing.T) {
	require := require.New(t)
	drv := newFakeDriver(fakeReply{})
	sess := newTestSession(t, drv)

	_, err := sess.Submit(context.Background(), "proc print data=sashelp.class; run;")
	require.NoError(err)

	block := drv.lastSubmitted()
	require.Contains(block, "proc print data=sashelp.class; run;\n")
	// listing marker step comes before the log marker
	require.Contains(block, "data _null_; file print; put '")
}

func TestSubmitAfterCloseFails(t *testing.T) {
	require := require.New(t)
	drv := newFakeDriver()
	sess := newTestSession(t, drv)

	require.NoError(sess.Close(context.Background()))
	_, err := sess.Submit(context.Background(), "data _null_; run;")
	require.ErrorIs(err, constants.ErrSessionClosed)
}

func TestSubmitSessionDied(t *testing.T) {
	require := require.New(t)
	drv := newFakeDriver()
	sess := newTestSession(t, drv)

	// simulate SAS dying between submissions
	drv.waitErr = fmt.Errorf("exit status 2")
	_ = drv.logW.Close()
	_ = drv.lstW.Close()
	drv.waitOnce.Do(func() { close(drv.waitCh) })

	_, err := sess.Submit(context.Background(), "data _null_; run;")
	require.Error(err)
	require.Contains(err.Error(), "ended unexpectedly")
	require.Contains(err.Error(), "exit status 2")
}

func TestCloseIsIdempotent(t *testing.T) {
	require := require.New(t)
	sess := newTestSession(t, newFakeDriver())

	require.NoError(sess.Close(context.Background()))
	require.NoError(sess.Close(context.Background()))
}

func TestUploadDownloadRoundTrip(t *testing.T) {
	require := require.New(t)
	drv := newFakeDriver()
	sess := newTestSession(t, drv)
	ctx := context.Background()

	payload := []byte("proc print; run;\n")
	require.NoError(sess.Upload(ctx, bytes.NewReader(payload), "/data/prog.sas", nil))

	size, err := sess.RemoteFileSize(ctx, "/data/prog.sas")
	require.NoError(err)
	require.Equal(int64(len(payload)), size)

	var out bytes.Buffer
	n, err := sess.Download(ctx, "/data/prog.sas", &out, nil)
	require.NoError(err)
	require.Equal(int64(len(payload)), n)
	require.Equal(payload, out.Bytes())
}

func TestNewTokenFormat(t *testing.T) {
	require := require.New(t)
	tok, err := newToken()
	require.NoError(err)
	require.Regexp(`^SASCLI[0-9A-F]{16}$`, tok)

	other, err := newToken()
	require.NoError(err)
	require.NotEqual(tok, other)
}
