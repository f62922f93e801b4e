// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.
package application

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.uber.org/zap"

	"github.com/jordanamos/sas-cli/pkg/config"
	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/profile"
	"github.com/jordanamos/sas-cli/pkg/prompts"
	"github.com/jordanamos/sas-cli/pkg/utils"
)

// App carries the per-invocation wiring every command needs: the
// logger, settings, the prompter, and the base directory layout under
// ~/.sas-cli
type App struct {
	Log     *zap.SugaredLogger
	baseDir string
	Conf    *config.Config
	Prompt  prompts.Prompter
}

func New() *App {
	return &App{}
}

func (app *App) Setup(baseDir string, log *zap.SugaredLogger, conf *config.Config, prompt prompts.Prompter) {
	app.baseDir = baseDir
	app.Log = log
	app.Conf = conf
	app.Prompt = prompt
}

func (app *App) GetBaseDir() string {
	return app.baseDir
}

func (app *App) GetLogDir() string {
	return filepath.Join(app.baseDir, constants.LogDir)
}

func (app *App) GetResultsDir() string {
	return filepath.Join(app.baseDir, constants.ResultsDir)
}

func (app *App) GetProfilesPath() string {
	return filepath.Join(app.baseDir, constants.ProfilesFileName)
}

func (app *App) ProfilesFileExists() bool {
	return utils.FileExists(app.GetProfilesPath())
}

// LoadProfiles reads the profiles file from the base directory
func (app *App) LoadProfiles() (*profile.File, error) {
	return profile.Load(app.GetProfilesPath())
}

// LoadProfile resolves the active profile: the given name when set,
// otherwise the configured default (config key "profile"), otherwise
// the profiles file default
func (app *App) LoadProfile(name string) (*profile.Profile, error) {
	profiles, err := app.LoadProfiles()
	if err != nil {
		return nil, err
	}
	if name == "" && app.Conf != nil {
		name = app.Conf.GetConfigStringValue(constants.ConfigProfileKey)
	}
	return profiles.Get(name)
}

// WriteProfiles writes the profiles file into the base directory
func (app *App) WriteProfiles(f *profile.File) error {
	if err := os.MkdirAll(app.baseDir, constants.DefaultPerms755); err != nil {
		return err
	}
	return f.Write(app.GetProfilesPath())
}

// ResultArtifactPath returns a timestamped path under the results dir
// for a run artifact of the given program, e.g. report_20240131T154210.log
func (app *App) ResultArtifactPath(programPath, suffix string) string {
	stem := utils.BaseNameNoExt(programPath)
	stamp := time.Now().Format("20060102T150405")
	return filepath.Join(app.GetResultsDir(), fmt.Sprintf("%s_%s%s", stem, stamp, suffix))
}

// EnsureResultsDir creates the results directory if needed
func (app *App) EnsureResultsDir() error {
	return os.MkdirAll(app.GetResultsDir(), constants.DefaultPerms755)
}
