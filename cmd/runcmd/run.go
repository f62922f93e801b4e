// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package runcmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/jordanamos/sas-cli/cmd/flags"
	"github.com/jordanamos/sas-cli/pkg/application"
	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/profile"
	"github.com/jordanamos/sas-cli/pkg/sas"
	"github.com/jordanamos/sas-cli/pkg/utils"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

var (
	app *application.App

	opts Options
)

// Options controls how programs are submitted
type Options struct {
	ProfileName string
	Jobs        int
	LogFile     string
	LstFile     string
	NoColor     bool
	Strict      bool
	KeepGoing   bool
	Save        bool
}

// DefaultOptions returns the options used when a program is passed to
// the bare `sas` command, honoring configured defaults
func DefaultOptions(a *application.App) Options {
	o := Options{Jobs: 1}
	if a.Conf != nil {
		o.Strict = a.Conf.GetConfigBoolValue(constants.ConfigStrictKey)
		o.Save = a.Conf.GetConfigBoolValue(constants.ConfigKeepLogKey)
		if j := a.Conf.GetConfigIntValue(constants.ConfigJobsKey); j > 0 {
			o.Jobs = j
		}
	}
	return o
}

func NewCmd(injectedApp *application.App) *cobra.Command {
	app = injectedApp
	cmd := &cobra.Command{
		Use:   "run PROGRAM...",
		Short: "Run one or more SAS programs",
		Long: `Run submits .sas programs to the SAS runtime of the active profile.

The log streams back as the program executes, colored the way the SAS
display manager colors it: errors red, warnings green, notes blue.
The exit status is nonzero when any program's log contains ERROR lines
(or WARNING lines with --strict).

With --jobs > 1 the programs run concurrently, each in its own
session, and their logs are saved under ~/.sas-cli/results instead of
streamed.

Examples:
  sas run report.sas
  sas run --profile server nightly/*.sas --jobs 4 --keep-going
  sas run etl.sas --log-file etl.log --strict`,
		Args:         cobra.MinimumNArgs(1),
		RunE:         runPrograms,
		SilenceUsage: true,
	}

	flags.AddProfileFlag(cmd.Flags(), &opts.ProfileName)
	flags.AddNoColorFlag(cmd.Flags(), &opts.NoColor)
	cmd.Flags().IntVarP(&opts.Jobs, "jobs", "j", 1, "number of programs to run concurrently")
	cmd.Flags().StringVar(&opts.LogFile, "log-file", "", "write the SAS log to this file (single program only)")
	cmd.Flags().StringVar(&opts.LstFile, "lst-file", "", "write the listing output to this file (single program only)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "treat warnings as failures")
	cmd.Flags().BoolVarP(&opts.KeepGoing, "keep-going", "k", false, "continue with remaining programs after a failure")
	cmd.Flags().BoolVar(&opts.Save, "save", false, "save log and listing under the results directory")

	return cmd
}

func runPrograms(cmd *cobra.Command, args []string) error {
	// the jobs setting supplies a default, the flag wins when given
	if !cmd.Flags().Changed("jobs") && app.Conf != nil {
		if j := app.Conf.GetConfigIntValue(constants.ConfigJobsKey); j > 0 {
			opts.Jobs = j
		}
	}
	return RunPrograms(cmd.Context(), app, args, opts)
}

// RunPrograms validates and submits the given program files. It is
// called by both `sas run` and the bare `sas program.sas` form.
func RunPrograms(ctx context.Context, a *application.App, programs []string, o Options) error {
	if ctx == nil {
		ctx = context.Background()
	}
	app = a

	// fail on bad paths before opening any session
	for _, program := range programs {
		if err := utils.ValidateProgramFile(program); err != nil {
			return err
		}
	}
	if len(programs) > 1 && (o.LogFile != "" || o.LstFile != "") {
		return fmt.Errorf("--log-file and --lst-file require a single program")
	}

	// the color setting can turn coloring off globally, the flag per run
	if !o.NoColor && a.Conf != nil &&
		a.Conf.ConfigValueIsSet(constants.ConfigColorKey) && !a.Conf.GetConfigBoolValue(constants.ConfigColorKey) {
		o.NoColor = true
	}

	prof, err := a.LoadProfile(o.ProfileName)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt)
	defer stop()

	if o.Jobs > 1 && len(programs) > 1 {
		return runParallel(ctx, programs, prof, o)
	}
	return runSequential(ctx, programs, prof, o)
}

type programResult struct {
	program  string
	result   *sas.Result
	duration time.Duration
	err      error
}

func (pr *programResult) failed(strict bool) bool {
	if pr.err != nil {
		return true
	}
	return pr.result.Failed() || (strict && pr.result.Warnings > 0)
}

func runSequential(ctx context.Context, programs []string, prof *profile.Profile, o Options) error {
	tracker := ux.NewStepTracker(ux.Logger, 30*time.Second)
	tracker.Start(fmt.Sprintf("Connecting to SAS (profile %q)", prof.Name))
	stopWarn := tracker.Watch()
	sess, err := sas.NewSession(ctx, prof, app.Log)
	stopWarn()
	if err != nil {
		tracker.Failed(err.Error())
		return err
	}
	tracker.Complete(sess.Info().Version)
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), constants.SessionCloseTimeout)
		defer cancel()
		if err := sess.Close(closeCtx); err != nil {
			app.Log.Warnf("failed to close session cleanly: %v", err)
		}
	}()

	failures := 0
	for i, program := range programs {
		if i > 0 {
			ux.Logger.PrintLineSeparator()
		}
		pr := submitProgram(ctx, sess, program, o, true)
		if err := saveArtifacts(pr, o); err != nil {
			return err
		}
		printSummary(pr, o)
		if pr.failed(o.Strict) {
			failures++
		}
		if err := abortErr(pr, o, failures, len(programs)); err != nil {
			return err
		}
	}
	if failures > 0 {
		return failureErr(failures, len(programs))
	}
	return nil
}

// abortErr returns the error that ends a sequential run after pr, or
// nil when the run moves on to the next program. --keep-going covers
// submit-level errors as well as ERROR lines in the log.
func abortErr(pr *programResult, o Options, failures, total int) error {
	if !pr.failed(o.Strict) || o.KeepGoing {
		return nil
	}
	if pr.err != nil {
		return pr.err
	}
	return failureErr(failures, total)
}

func runParallel(ctx context.Context, programs []string, prof *profile.Profile, o Options) error {
	// logs can't be streamed interleaved, so they always go to the
	// results dir in parallel mode
	o.Save = true

	spinners := ux.NewSpinnerGroup()
	handles := make([]*ux.SpinnerHandle, len(programs))
	for i, program := range programs {
		handles[i] = spinners.Add(utils.TruncateString(program, 60))
	}
	spinners.Start()

	results := make([]*programResult, len(programs))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(o.Jobs)
	for i, program := range programs {
		i, program := i, program
		g.Go(func() error {
			handle := handles[i]
			sess, err := sas.NewSession(gctx, prof, app.Log)
			if err != nil {
				results[i] = &programResult{program: program, err: err}
				handle.Fail(fmt.Sprintf("%s - %v", program, err))
				// a connection failure will repeat for every program, stop early
				return err
			}
			defer func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), constants.SessionCloseTimeout)
				defer cancel()
				_ = sess.Close(closeCtx)
			}()
			handle.Update(fmt.Sprintf("%s - running", program))

			pr := submitProgram(gctx, sess, program, o, false)
			results[i] = pr
			if pr.err != nil {
				handle.Fail(fmt.Sprintf("%s - %v", program, pr.err))
				if !o.KeepGoing {
					return pr.err
				}
				return nil
			}
			if pr.failed(o.Strict) {
				handle.Fail(summaryLine(pr))
			} else {
				handle.Complete(summaryLine(pr))
			}
			return nil
		})
	}
	groupErr := g.Wait()
	spinners.Stop()

	failures := 0
	for _, pr := range results {
		if pr == nil {
			continue
		}
		if err := saveArtifacts(pr, o); err != nil {
			return err
		}
		if pr.failed(o.Strict) {
			failures++
			if pr.result != nil {
				for _, line := range sas.ErrorLines(pr.result.Log) {
					ux.Logger.PrintToUser("  %s: %s", pr.program, line)
				}
			}
		}
	}
	if groupErr != nil {
		return groupErr
	}
	if failures > 0 {
		return failureErr(failures, len(programs))
	}
	return nil
}

func submitProgram(ctx context.Context, sess *sas.Session, program string, o Options, stream bool) *programResult {
	contents, err := os.ReadFile(program)
	if err != nil {
		return &programResult{program: program, err: err}
	}

	var onLogLine func(string)
	if stream {
		useColor := !o.NoColor
		onLogLine = func(line string) {
			if useColor {
				line = sas.ColorizeLine(line)
			}
			ux.Logger.PrintToUser("%s", line)
		}
	}

	start := time.Now()
	res, err := sess.SubmitWithLog(ctx, string(contents), onLogLine)
	return &programResult{
		program:  program,
		result:   res,
		duration: time.Since(start),
		err:      err,
	}
}

func saveArtifacts(pr *programResult, o Options) error {
	if pr.result == nil {
		return nil
	}
	logPath := o.LogFile
	lstPath := o.LstFile
	if o.Save {
		if logPath == "" {
			logPath = app.ResultArtifactPath(pr.program, constants.LogSuffix)
		}
		if lstPath == "" && pr.result.Listing != "" {
			lstPath = app.ResultArtifactPath(pr.program, constants.ListingSuffix)
		}
	}
	if logPath != "" {
		if err := app.EnsureResultsDir(); err != nil {
			return err
		}
		if err := writeCleaned(logPath, pr.result.Log); err != nil {
			return fmt.Errorf("failed to write log file: %w", err)
		}
		ux.Logger.PrintToUser("Log written to %s", logPath)
	}
	if lstPath != "" && pr.result.Listing != "" {
		if err := app.EnsureResultsDir(); err != nil {
			return err
		}
		if err := writeCleaned(lstPath, pr.result.Listing); err != nil {
			return fmt.Errorf("failed to write listing file: %w", err)
		}
		ux.Logger.PrintToUser("Listing written to %s", lstPath)
	}
	return nil
}

func writeCleaned(path, content string) error {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = utils.CleanLogLine(line)
	}
	return os.WriteFile(path, []byte(strings.Join(lines, "\n")+"\n"), constants.WriteReadReadPerms)
}

func summaryLine(pr *programResult) string {
	return fmt.Sprintf("%s: %d error(s), %d warning(s) (%.1fs)",
		pr.program, pr.result.Errors, pr.result.Warnings, pr.duration.Seconds())
}

func printSummary(pr *programResult, o Options) {
	if pr.result == nil {
		if pr.err != nil {
			ux.Logger.RedXToUser("%s - %v", pr.program, pr.err)
		}
		return
	}
	if pr.failed(o.Strict) {
		ux.Logger.RedXToUser("%s", summaryLine(pr))
	} else {
		ux.Logger.GreenCheckmarkToUser("%s", summaryLine(pr))
	}
}

func failureErr(failures, total int) error {
	return fmt.Errorf("%d of %d program(s) failed", failures, total)
}
