// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package sas

import (
	"context"
	"io"
)

// driver launches a SAS process somewhere and moves files to and from
// wherever that is. The stdio driver runs SAS locally, the ssh driver
// runs it on a remote host. Both expose the same three streams of the
// STDIO access method: program source in, log out, listing out.
type driver interface {
	// Start launches SAS and returns its stdin, the log stream and
	// the listing stream.
	Start(ctx context.Context) (stdin io.WriteCloser, logOut io.Reader, lstOut io.Reader, err error)

	// FetchFile copies the file at path (where SAS runs) into dst,
	// returning the number of bytes copied. progress may be nil.
	FetchFile(ctx context.Context, path string, dst io.Writer, progress io.Writer) (int64, error)

	// StoreFile copies src to path (where SAS runs). progress may be nil.
	StoreFile(ctx context.Context, src io.Reader, path string, progress io.Writer) error

	// FileSize returns the size of the file at path, for progress totals.
	FileSize(ctx context.Context, path string) (int64, error)

	// RemoveFile deletes the file at path. Used for temp CSV cleanup.
	RemoveFile(ctx context.Context, path string) error

	// Wait blocks until the SAS process exits.
	Wait() error

	// Close tears down the process and transport. Safe after Wait.
	Close() error
}
