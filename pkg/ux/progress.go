// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"io"
	"os"

	ansi "github.com/k0kubun/go-ansi"
	"github.com/mattn/go-isatty"
	"github.com/schollz/progressbar/v3"
)

// TransferBar returns a byte progress bar for file transfers.
// total may be -1 when the size is unknown. On a non-TTY the bar is
// silent (io.Discard) so piped output stays clean.
func TransferBar(total int64, description string) *progressbar.ProgressBar {
	var writer io.Writer = ansi.NewAnsiStdout()
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		writer = io.Discard
	}
	return progressbar.NewOptions64(
		total,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionSetDescription(description),
		progressbar.OptionShowBytes(true),
		progressbar.OptionSetWidth(15),
		progressbar.OptionClearOnFinish(),
		progressbar.OptionSetTheme(progressbar.Theme{
			Saucer:        "=",
			SaucerHead:    ">",
			SaucerPadding: " ",
			BarStart:      "[",
			BarEnd:        "]",
		}),
	)
}
