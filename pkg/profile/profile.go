// Copyright (C) 2022-2025, Jordan Amos. All rights reserved.
// See the file LICENSE for licensing terms.

// Package profile loads the SAS connection profiles file, the
// equivalent of the bridging library's sascfg_personal configuration:
// a default selector plus named connection definitions.
package profile

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/jordanamos/sas-cli/pkg/constants"
	"github.com/jordanamos/sas-cli/pkg/utils"
)

// Mode selects how a session reaches the SAS runtime
type Mode string

const (
	// ModeStdio launches a local SAS executable
	ModeStdio Mode = "stdio"
	// ModeSSH launches SAS on a remote host over SSH
	ModeSSH Mode = "ssh"
)

// Profile describes one way to reach a SAS runtime
type Profile struct {
	Name string `yaml:"-"`

	Mode    Mode     `yaml:"mode"`
	SASPath string   `yaml:"sas-path"`
	Options []string `yaml:"options,omitempty"`

	// ssh mode only
	Host        string `yaml:"host,omitempty"`
	Port        int    `yaml:"port,omitempty"`
	User        string `yaml:"user,omitempty"`
	KeyFile     string `yaml:"key-file,omitempty"`
	PasswordEnv string `yaml:"password-env,omitempty"`

	Encoding      string        `yaml:"encoding,omitempty"`
	SubmitTimeout time.Duration `yaml:"submit-timeout,omitempty"`
}

// File is the on-disk shape of profiles.yaml
type File struct {
	Default  string              `yaml:"default"`
	Profiles map[string]*Profile `yaml:"profiles"`
}

// Validate checks a profile for the fields its mode requires
func (p *Profile) Validate() error {
	switch p.Mode {
	case ModeStdio:
		if p.SASPath == "" {
			return fmt.Errorf("profile %q: sas-path is required for stdio mode", p.Name)
		}
	case ModeSSH:
		if p.Host == "" {
			return fmt.Errorf("profile %q: host is required for ssh mode", p.Name)
		}
		if p.User == "" {
			return fmt.Errorf("profile %q: user is required for ssh mode", p.Name)
		}
		if p.SASPath == "" {
			return fmt.Errorf("profile %q: sas-path is required for ssh mode", p.Name)
		}
		if p.KeyFile == "" && p.PasswordEnv == "" {
			return fmt.Errorf("profile %q: one of key-file or password-env is required for ssh mode", p.Name)
		}
	default:
		return fmt.Errorf("profile %q: unknown mode %q (expected %q or %q)", p.Name, p.Mode, ModeStdio, ModeSSH)
	}
	return nil
}

// SSHPort returns the configured port or the SSH default
func (p *Profile) SSHPort() int {
	if p.Port == 0 {
		return constants.DefaultSSHPort
	}
	return p.Port
}

// Load reads and validates the profiles file at path
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, constants.ErrNoProfiles
		}
		return nil, err
	}
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if len(f.Profiles) == 0 {
		return nil, fmt.Errorf("%s defines no profiles", path)
	}
	for name, p := range f.Profiles {
		if p == nil {
			return nil, fmt.Errorf("profile %q is empty", name)
		}
		p.Name = name
		p.SASPath = utils.ExpandHome(p.SASPath)
		p.KeyFile = utils.ExpandHome(p.KeyFile)
		if err := p.Validate(); err != nil {
			return nil, err
		}
	}
	if f.Default == "" {
		if len(f.Profiles) == 1 {
			for name := range f.Profiles {
				f.Default = name
			}
		} else {
			return nil, fmt.Errorf("%s has multiple profiles but no default", path)
		}
	}
	if _, ok := f.Profiles[f.Default]; !ok {
		return nil, fmt.Errorf("default profile %q: %w", f.Default, constants.ErrProfileNotFound)
	}
	return &f, nil
}

// Get returns the named profile, or the default when name is empty
func (f *File) Get(name string) (*Profile, error) {
	if name == "" {
		name = f.Default
	}
	p, ok := f.Profiles[name]
	if !ok {
		return nil, fmt.Errorf("profile %q: %w", name, constants.ErrProfileNotFound)
	}
	return p, nil
}

// Names returns the profile names in no particular order
func (f *File) Names() []string {
	names := make([]string, 0, len(f.Profiles))
	for name := range f.Profiles {
		names = append(names, name)
	}
	return names
}

// Write marshals f to path
func (f *File) Write(path string) error {
	data, err := yaml.Marshal(f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, constants.WriteReadReadPerms)
}

// DefaultTemplate returns the profiles file written by 'sas config init'
func DefaultTemplate() *File {
	return &File{
		Default: constants.DefaultProfileName,
		Profiles: map[string]*Profile{
			constants.DefaultProfileName: {
				Mode:    ModeStdio,
				SASPath: constants.DefaultSASPath,
			},
		},
	}
}
