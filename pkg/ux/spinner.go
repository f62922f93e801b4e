// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"os"

	"github.com/chelnak/ysmrr"
	"github.com/mattn/go-isatty"
)

// SpinnerGroup manages spinners for concurrent steps. On a non-TTY it
// degrades to plain line output through the user logger.
type SpinnerGroup struct {
	manager ysmrr.SpinnerManager
	isTTY   bool
}

// SpinnerHandle is a single tracked step inside a SpinnerGroup
type SpinnerHandle struct {
	spinner *ysmrr.Spinner
	group   *SpinnerGroup
	name    string
}

// NewSpinnerGroup creates a spinner group writing to stdout
func NewSpinnerGroup() *SpinnerGroup {
	isTTY := isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	sg := &SpinnerGroup{isTTY: isTTY}
	if isTTY {
		sg.manager = ysmrr.NewSpinnerManager()
	}
	return sg
}

// Add registers a new step
func (sg *SpinnerGroup) Add(name string) *SpinnerHandle {
	h := &SpinnerHandle{group: sg, name: name}
	if sg.isTTY {
		h.spinner = sg.manager.AddSpinner(name)
	} else {
		Logger.PrintToUser("%s...", name)
	}
	return h
}

// Start begins rendering
func (sg *SpinnerGroup) Start() {
	if sg.isTTY {
		sg.manager.Start()
	}
}

// Stop stops rendering
func (sg *SpinnerGroup) Stop() {
	if sg.isTTY {
		sg.manager.Stop()
	}
}

// Update changes the step message
func (h *SpinnerHandle) Update(msg string) {
	if h.spinner != nil {
		h.spinner.UpdateMessage(msg)
	}
}

// Complete marks the step as successful
func (h *SpinnerHandle) Complete(msg string) {
	if h.spinner != nil {
		h.spinner.UpdateMessage(msg)
		h.spinner.Complete()
		return
	}
	Logger.GreenCheckmarkToUser("%s", msg)
}

// Fail marks the step as failed
func (h *SpinnerHandle) Fail(msg string) {
	if h.spinner != nil {
		h.spinner.UpdateMessage(msg)
		h.spinner.Error()
		return
	}
	Logger.RedXToUser("%s", msg)
}
