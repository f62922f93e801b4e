// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

package configcmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/profile"
	"github.com/jordanamos/sas-cli/pkg/prompts"
	"github.com/jordanamos/sas-cli/pkg/ux"
)

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create a connection profile",
		Long: `Init walks through creating a connection profile and writes it to
~/.sas-cli/profiles.yaml. In non-interactive mode it writes a stdio
profile pointing at the default SAS install path instead of
prompting.`,
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         runInit,
	}
}

func runInit(_ *cobra.Command, _ []string) error {
	profiles, err := app.LoadProfiles()
	if err != nil {
		if !errors.Is(err, constants.ErrNoProfiles) {
			return err
		}
		profiles = &profile.File{Profiles: map[string]*profile.Profile{}}
	}

	prof, name, err := captureProfile(profiles)
	if err != nil {
		if errors.Is(err, prompts.ErrNonInteractive) {
			return writeDefaultTemplate()
		}
		return err
	}

	if err := prof.Validate(); err != nil {
		return err
	}
	profiles.Profiles[name] = prof
	if profiles.Default == "" || len(profiles.Profiles) == 1 {
		profiles.Default = name
	} else {
		makeDefault, err := app.Prompt.CaptureYesNo(fmt.Sprintf("Make %q the default profile", name))
		if err != nil {
			return err
		}
		if makeDefault {
			profiles.Default = name
		}
	}

	if err := app.WriteProfiles(profiles); err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Profile %q written to %s", name, app.GetProfilesPath())
	return nil
}

func captureProfile(profiles *profile.File) (*profile.Profile, string, error) {
	name, err := app.Prompt.CaptureString("Profile name")
	if err != nil {
		return nil, "", err
	}
	if _, exists := profiles.Profiles[name]; exists {
		overwrite, err := app.Prompt.CaptureNoYes(fmt.Sprintf("Profile %q already exists. Overwrite it", name))
		if err != nil {
			return nil, "", err
		}
		if !overwrite {
			return nil, "", fmt.Errorf("profile %q already exists", name)
		}
	}

	modeStr, err := app.Prompt.CaptureList(
		"How does this machine reach SAS",
		[]string{string(profile.ModeStdio), string(profile.ModeSSH)},
	)
	if err != nil {
		return nil, "", err
	}

	prof := &profile.Profile{Name: name, Mode: profile.Mode(modeStr)}

	switch prof.Mode {
	case profile.ModeStdio:
		prof.SASPath, err = app.Prompt.CaptureExistingFilepath(
			fmt.Sprintf("Path to the SAS executable (e.g. %s)", constants.DefaultSASPath))
		if err != nil {
			return nil, "", err
		}
	case profile.ModeSSH:
		if err := captureSSHFields(prof); err != nil {
			return nil, "", err
		}
	}

	encoding, err := app.Prompt.CaptureStringAllowEmpty("Session encoding (empty for the install default)")
	if err != nil {
		return nil, "", err
	}
	prof.Encoding = encoding

	return prof, name, nil
}

func captureSSHFields(prof *profile.Profile) error {
	var err error
	if prof.Host, err = app.Prompt.CaptureString("SSH host"); err != nil {
		return err
	}
	if prof.User, err = app.Prompt.CaptureString("SSH user"); err != nil {
		return err
	}
	port, err := app.Prompt.CapturePositiveInt(fmt.Sprintf("SSH port (%d)", constants.DefaultSSHPort))
	if err != nil {
		return err
	}
	prof.Port = port
	if prof.SASPath, err = app.Prompt.CaptureString("Path to the SAS executable on the remote host"); err != nil {
		return err
	}

	auth, err := app.Prompt.CaptureList("SSH authentication", []string{"private key file", "password from environment variable"})
	if err != nil {
		return err
	}
	if auth == "private key file" {
		if prof.KeyFile, err = app.Prompt.CaptureExistingFilepath("Private key file"); err != nil {
			return err
		}
	} else {
		env, err := app.Prompt.CaptureString(
			fmt.Sprintf("Environment variable holding the password (e.g. %s)", constants.EnvPasswordVar))
		if err != nil {
			return err
		}
		prof.PasswordEnv = env
	}
	return nil
}

func writeDefaultTemplate() error {
	if app.ProfilesFileExists() {
		return fmt.Errorf("%s already exists; running non-interactively, refusing to overwrite it", app.GetProfilesPath())
	}
	if err := app.WriteProfiles(profile.DefaultTemplate()); err != nil {
		return err
	}
	ux.Logger.GreenCheckmarkToUser("Wrote a default stdio profile to %s", app.GetProfilesPath())
	ux.Logger.PrintToUser("Edit it to point at your SAS install, then verify with 'sas session test'.")
	return nil
}
