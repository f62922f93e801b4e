// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package doctorcmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/kardianos/osext"
	"github.com/shirou/gopsutil/disk"
	"github.com/shirou/gopsutil/mem"

	"github.com/jordanamos/sas-cli/pkg/application"
	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/profile"
	"github.com/jordanamos/sas-cli/pkg/utils"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

// CheckStatus represents the result of a single check
type CheckStatus int

const (
	StatusOK CheckStatus = iota
	StatusWarn
	StatusError
)

// CheckResult holds the outcome of a single check
type CheckResult struct {
	Name          string
	Status        CheckStatus
	Message       string
	FixSuggestion string
	CanAutoFix    bool
	AutoFix       func() error
}

// Doctor performs environment checks
type Doctor struct {
	app     *application.App
	fixMode bool
	results []CheckResult
	output  io.Writer
}

// NewDoctor creates a new Doctor instance
func NewDoctor(app *application.App, fixMode bool) *Doctor {
	return &Doctor{
		app:     app,
		fixMode: fixMode,
		results: make([]CheckResult, 0),
		output:  os.Stdout,
	}
}

// printToUser prints a message to the user (handles nil logger gracefully)
func (d *Doctor) printToUser(msg string, args ...interface{}) {
	formattedMsg := fmt.Sprintf(msg, args...)
	if ux.Logger != nil {
		ux.Logger.PrintToUser("%s", formattedMsg)
	} else {
		fmt.Fprintln(d.output, formattedMsg)
	}
}

// Run executes all checks and reports results
func (d *Doctor) Run() error {
	d.printToUser("sas doctor")
	d.printToUser("==========")
	d.printToUser("")

	d.checkExecutable()
	d.checkDirectories()
	d.checkSettings()
	profiles := d.checkProfiles()
	if profiles != nil {
		d.checkProfileTargets(profiles)
	}
	d.checkDiskSpace()
	d.checkMemory()

	d.printResults()

	if d.fixMode {
		return d.attemptFixes()
	}

	for _, r := range d.results {
		if r.Status == StatusError {
			return fmt.Errorf("environment check failed: see above for details")
		}
	}

	return nil
}

// checkExecutable reports where the running binary lives
func (d *Doctor) checkExecutable() {
	result := CheckResult{Name: "Executable"}

	path, err := osext.Executable()
	if err != nil {
		result.Status = StatusWarn
		result.Message = "Unable to determine executable path: " + err.Error()
	} else {
		result.Status = StatusOK
		result.Message = path
	}

	d.results = append(d.results, result)
}

// checkDirectories verifies the CLI directories exist and are writable
func (d *Doctor) checkDirectories() {
	result := CheckResult{Name: "CLI Directories"}

	home, err := os.UserHomeDir()
	if err != nil {
		result.Status = StatusError
		result.Message = "Unable to determine home directory"
		d.results = append(d.results, result)
		return
	}

	baseDir := filepath.Join(home, constants.BaseDirName)
	if d.app != nil && d.app.GetBaseDir() != "" {
		baseDir = d.app.GetBaseDir()
	}

	info, err := os.Stat(baseDir)
	if os.IsNotExist(err) {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("CLI directory not found: %s", baseDir)
		result.FixSuggestion = "Run any sas command to initialize directories"
		result.CanAutoFix = true
		result.AutoFix = func() error {
			return os.MkdirAll(baseDir, constants.DefaultPerms755)
		}
		d.results = append(d.results, result)
		return
	}
	if err != nil {
		result.Status = StatusError
		result.Message = "Error checking CLI directory: " + err.Error()
		d.results = append(d.results, result)
		return
	}
	if !info.IsDir() {
		result.Status = StatusError
		result.Message = fmt.Sprintf("%s exists but is not a directory", baseDir)
		d.results = append(d.results, result)
		return
	}

	testFile := filepath.Join(baseDir, ".doctor_test_"+strconv.FormatInt(time.Now().UnixNano(), 10))
	f, err := os.Create(testFile)
	if err != nil {
		result.Status = StatusError
		result.Message = fmt.Sprintf("CLI directory not writable: %s", baseDir)
		result.FixSuggestion = "Check directory permissions"
		d.results = append(d.results, result)
		return
	}
	f.Close()
	os.Remove(testFile)

	result.Status = StatusOK
	result.Message = fmt.Sprintf("CLI directory: %s", baseDir)
	d.results = append(d.results, result)
}

// checkSettings reports whether a settings file is in use
func (d *Doctor) checkSettings() {
	result := CheckResult{Name: "Settings"}

	if d.app == nil || d.app.Conf == nil {
		result.Status = StatusWarn
		result.Message = "Settings not checked (no application context)"
		d.results = append(d.results, result)
		return
	}

	if !d.app.Conf.ConfigFileExists() {
		result.Status = StatusWarn
		result.Message = "No settings file found, defaults in use"
		result.FixSuggestion = "Run 'sas config set <key> <value>' to create one"
	} else {
		result.Status = StatusOK
		result.Message = fmt.Sprintf("Using %s", d.app.Conf.GetConfigPath())
	}

	d.results = append(d.results, result)
}

// checkProfiles verifies the profiles file exists and parses, returning
// it for the per-profile checks when it does
func (d *Doctor) checkProfiles() *profile.File {
	result := CheckResult{Name: "Profiles"}

	if d.app == nil {
		result.Status = StatusWarn
		result.Message = "Profiles not checked (no application context)"
		d.results = append(d.results, result)
		return nil
	}

	profiles, err := d.app.LoadProfiles()
	if err != nil {
		if errors.Is(err, constants.ErrNoProfiles) {
			result.Status = StatusWarn
			result.Message = fmt.Sprintf("No profiles file at %s", d.app.GetProfilesPath())
			result.FixSuggestion = "Run 'sas config init' to create one"
		} else {
			result.Status = StatusError
			result.Message = "Profiles file is invalid: " + err.Error()
			result.FixSuggestion = "Fix " + d.app.GetProfilesPath() + " or recreate it with 'sas config init'"
		}
		d.results = append(d.results, result)
		return nil
	}

	result.Status = StatusOK
	result.Message = fmt.Sprintf("%d profile(s), default %q", len(profiles.Profiles), profiles.Default)
	d.results = append(d.results, result)
	return profiles
}

// checkProfileTargets verifies each profile's local prerequisites: the
// SAS executable for stdio profiles, the key file and password variable
// for ssh profiles
func (d *Doctor) checkProfileTargets(profiles *profile.File) {
	for _, name := range profiles.Names() {
		prof := profiles.Profiles[name]
		result := CheckResult{Name: fmt.Sprintf("Profile %q", name)}

		switch prof.Mode {
		case profile.ModeStdio:
			if !utils.FileExists(prof.SASPath) {
				result.Status = StatusError
				result.Message = fmt.Sprintf("SAS executable not found: %s", prof.SASPath)
				result.FixSuggestion = "Point sas-path at your SAS install (often under !SASROOT/bin)"
			} else {
				result.Status = StatusOK
				result.Message = fmt.Sprintf("stdio via %s", prof.SASPath)
			}
		case profile.ModeSSH:
			switch {
			case prof.KeyFile != "" && !utils.FileExists(prof.KeyFile):
				result.Status = StatusError
				result.Message = fmt.Sprintf("key file not found: %s", prof.KeyFile)
			case prof.PasswordEnv != "" && os.Getenv(prof.PasswordEnv) == "":
				result.Status = StatusWarn
				result.Message = fmt.Sprintf("password variable %s is not set", prof.PasswordEnv)
				result.FixSuggestion = fmt.Sprintf("export %s before connecting", prof.PasswordEnv)
			default:
				result.Status = StatusOK
				result.Message = fmt.Sprintf("ssh to %s@%s:%d", prof.User, prof.Host, prof.SSHPort())
			}
		}

		d.results = append(d.results, result)
	}
}

// checkDiskSpace verifies available disk space under the home directory
func (d *Doctor) checkDiskSpace() {
	result := CheckResult{Name: "Disk Space"}

	home, err := os.UserHomeDir()
	if err != nil {
		result.Status = StatusWarn
		result.Message = "Unable to determine home directory"
		d.results = append(d.results, result)
		return
	}

	usage, err := disk.Usage(home)
	if err != nil {
		result.Status = StatusWarn
		result.Message = "Unable to check disk space: " + err.Error()
		d.results = append(d.results, result)
		return
	}

	availableGB := float64(usage.Free) / (1024 * 1024 * 1024)
	totalGB := float64(usage.Total) / (1024 * 1024 * 1024)

	if availableGB < constants.MinDiskSpaceGB {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("%.1f GB available (%.1f GB total), recommended minimum is %d GB",
			availableGB, totalGB, constants.MinDiskSpaceGB)
		result.FixSuggestion = "Free up disk space; run logs and results accumulate under ~/.sas-cli/results"
	} else {
		result.Status = StatusOK
		result.Message = fmt.Sprintf("%.1f GB available (%.1f GB total)", availableGB, totalGB)
	}

	d.results = append(d.results, result)
}

// checkMemory verifies available memory
func (d *Doctor) checkMemory() {
	result := CheckResult{Name: "Memory"}

	vm, err := mem.VirtualMemory()
	if err != nil {
		result.Status = StatusWarn
		result.Message = "Unable to check memory: " + err.Error()
		d.results = append(d.results, result)
		return
	}

	availableMB := float64(vm.Available) / (1024 * 1024)
	if availableMB < constants.MinFreeMemoryMB {
		result.Status = StatusWarn
		result.Message = fmt.Sprintf("%.0f MB available, recommended minimum is %d MB",
			availableMB, constants.MinFreeMemoryMB)
	} else {
		result.Status = StatusOK
		result.Message = fmt.Sprintf("%.0f MB available of %.0f MB", availableMB, float64(vm.Total)/(1024*1024))
	}

	d.results = append(d.results, result)
}

// printResults displays all check results with color coding
func (d *Doctor) printResults() {
	d.printToUser("")

	okCount, warnCount, errorCount := 0, 0, 0

	for _, r := range d.results {
		var statusIcon, statusColor string
		switch r.Status {
		case StatusOK:
			statusIcon = "[OK]"
			statusColor = "\033[32m"
			okCount++
		case StatusWarn:
			statusIcon = "[WARN]"
			statusColor = "\033[33m"
			warnCount++
		case StatusError:
			statusIcon = "[ERROR]"
			statusColor = "\033[31m"
			errorCount++
		}
		resetColor := "\033[0m"

		d.printToUser("%s%s%s %s: %s", statusColor, statusIcon, resetColor, r.Name, r.Message)

		if r.FixSuggestion != "" && r.Status != StatusOK {
			d.printToUser("      Fix: %s", r.FixSuggestion)
		}
	}

	d.printToUser("")
	d.printToUser("Summary: %d OK, %d warnings, %d errors", okCount, warnCount, errorCount)

	if warnCount > 0 || errorCount > 0 {
		canFix := 0
		for _, r := range d.results {
			if r.CanAutoFix && r.Status != StatusOK {
				canFix++
			}
		}
		if canFix > 0 {
			d.printToUser("")
			d.printToUser("Run 'sas doctor --fix' to attempt automatic fixes for %d issue(s)", canFix)
		}
	}
}

// attemptFixes tries to automatically fix issues that support it
func (d *Doctor) attemptFixes() error {
	d.printToUser("")
	d.printToUser("Attempting automatic fixes...")
	d.printToUser("")

	fixedCount, failedCount := 0, 0

	for _, r := range d.results {
		if r.Status == StatusOK || !r.CanAutoFix {
			continue
		}

		d.printToUser("Fixing: %s", r.Name)
		if err := r.AutoFix(); err != nil {
			d.printToUser("  Failed: %s", err.Error())
			failedCount++
		} else {
			d.printToUser("  Fixed")
			fixedCount++
		}
	}

	d.printToUser("")
	d.printToUser("Fixed %d issue(s), %d failed", fixedCount, failedCount)

	if failedCount > 0 {
		return fmt.Errorf("%d fix(es) failed", failedCount)
	}

	return nil
}
