// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package ux

import (
	"fmt"
	"io"
	"sync"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"go.uber.org/zap"
)

var Logger *UserLog

type UserLog struct {
	log    *zap.SugaredLogger
	writer io.Writer
}

func NewUserLog(log *zap.SugaredLogger, userwriter io.Writer) {
	if Logger == nil {
		Logger = &UserLog{
			log:    log,
			writer: userwriter,
		}
	}
}

// PrintToUser prints msg directly to stdout (command output)
// Does NOT log to avoid duplication - logs should go to the log file separately
func (ul *UserLog) PrintToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
}

// Info logs an info message
func (ul *UserLog) Info(msg string, args ...interface{}) {
	ul.log.Infof(msg, args...)
}

// Error logs an error message
func (ul *UserLog) Error(msg string, args ...interface{}) {
	ul.log.Errorf(msg, args...)
}

// PrintLineSeparator prints a line separator
func (ul *UserLog) PrintLineSeparator(msg ...string) {
	separator := "=========================================="
	if len(msg) > 0 && msg[0] != "" {
		separator = msg[0]
	}
	_, _ = fmt.Fprintln(ul.writer, separator)
	ul.log.Info(separator)
}

// RedXToUser prints a red X error message to the user
func (ul *UserLog) RedXToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf("✗ %s", fmt.Sprintf(msg, args...))
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
	ul.log.Error(formattedMsg)
}

// GreenCheckmarkToUser prints a green checkmark success message to the user
func (ul *UserLog) GreenCheckmarkToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf("✓ %s", fmt.Sprintf(msg, args...))
	_, _ = fmt.Fprintln(ul.writer, formattedMsg)
	ul.log.Info(formattedMsg)
}

// PrintError prints a visible error message with ERROR prefix to the user
func (ul *UserLog) PrintError(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	errorMsg := fmt.Sprintf("\nERROR: %s\n", formattedMsg)
	_, _ = fmt.Fprintln(ul.writer, errorMsg)
	ul.log.Error(formattedMsg)
}

// Writer returns the user-facing output writer
func (ul *UserLog) Writer() io.Writer {
	return ul.writer
}

// StepTracker tracks progress of multi-step operations with elapsed time
type StepTracker struct {
	stepStart    time.Time
	warnAfter    time.Duration
	warningShown bool
	stepName     string
	ul           *UserLog
}

// NewStepTracker creates a tracker that warns if a step takes longer than warnAfter
func NewStepTracker(ul *UserLog, warnAfter time.Duration) *StepTracker {
	return &StepTracker{
		ul:        ul,
		warnAfter: warnAfter,
	}
}

// Start begins tracking a new step
func (st *StepTracker) Start(stepName string) {
	st.stepStart = time.Now()
	st.stepName = stepName
	st.warningShown = false
	st.ul.PrintToUser("%s...", stepName)
}

// Elapsed returns the elapsed time for the current step
func (st *StepTracker) Elapsed() time.Duration {
	return time.Since(st.stepStart)
}

// CheckWarn prints a warning if the step has taken longer than the threshold
// Returns true if warning was printed
func (st *StepTracker) CheckWarn() bool {
	if st.warningShown {
		return false
	}
	elapsed := st.Elapsed()
	if elapsed > st.warnAfter {
		st.ul.PrintToUser("Warning: %s taking longer than expected (%.1fs)...", st.stepName, elapsed.Seconds())
		st.warningShown = true
		return true
	}
	return false
}

// Watch polls CheckWarn in the background so a slow step warns the
// user while the caller blocks. The returned stop function must be
// called when the step finishes; calling it more than once is fine.
func (st *StepTracker) Watch() func() {
	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(time.Second)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				st.CheckWarn()
			}
		}
	}()
	var once sync.Once
	return func() { once.Do(func() { close(done) }) }
}

// Complete marks the step as done with success
func (st *StepTracker) Complete(suffix string) {
	elapsed := st.Elapsed()
	if suffix != "" {
		st.ul.GreenCheckmarkToUser("%s (%.1fs) - %s", st.stepName, elapsed.Seconds(), suffix)
	} else {
		st.ul.GreenCheckmarkToUser("%s (%.1fs)", st.stepName, elapsed.Seconds())
	}
}

// Failed marks the step as failed with an error
func (st *StepTracker) Failed(reason string) {
	elapsed := st.Elapsed()
	st.ul.RedXToUser("%s (%.1fs) - FAILED: %s", st.stepName, elapsed.Seconds(), reason)
}

func ConvertToStringWithThousandSeparator(input uint64) string {
	p := message.NewPrinter(language.English)
	return p.Sprintf("%d", input)
}
